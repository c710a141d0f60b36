package todos

import (
	"time"

	"github.com/rsh/tracker-backend/internal/dto"
	"github.com/rsh/tracker-backend/internal/models"
)

type Todo struct {
	ID          uint    `gorm:"primaryKey"`
	Title       string  `gorm:"size:200;not null"`
	Description *string `gorm:"type:text"`
	Importance  int     `gorm:"not null;default:2"`
	Urgency     int     `gorm:"not null;default:2"`
	Status      string  `gorm:"size:50;not null;default:'pending'"`
	OwnerID     uint    `gorm:"not null;index"`
	Owner       models.User
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var TodoStatuses = []string{"pending", "in_progress", "completed"}

const (
	defaultStatus = "pending"
	defaultLevel  = 2
)

// --- DTOs ---

type CreateTodoRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Importance  *int    `json:"importance"`
	Urgency     *int    `json:"urgency"`
	Status      *string `json:"status"`
}

// UpdateTodoRequest carries partial-update semantics: a nil field (absent
// from the payload, or explicitly null) leaves the stored value untouched.
type UpdateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Importance  *int    `json:"importance"`
	Urgency     *int    `json:"urgency"`
	Status      *string `json:"status"`
}

type TodoResponse struct {
	ID              uint             `json:"id"`
	Title           string           `json:"title"`
	Description     *string          `json:"description"`
	Importance      int              `json:"importance"`
	Urgency         int              `json:"urgency"`
	Status          string           `json:"status"`
	PriorityScore   float64          `json:"priority_score"`
	ImportanceLabel string           `json:"importance_label"`
	UrgencyLabel    string           `json:"urgency_label"`
	ImportanceIcon  string           `json:"importance_icon"`
	UrgencyIcon     string           `json:"urgency_icon"`
	Owner           dto.UserResponse `json:"owner"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func newTodoResponse(todo *Todo) TodoResponse {
	return TodoResponse{
		ID:              todo.ID,
		Title:           todo.Title,
		Description:     todo.Description,
		Importance:      todo.Importance,
		Urgency:         todo.Urgency,
		Status:          todo.Status,
		PriorityScore:   Score(todo.Importance, todo.Urgency),
		ImportanceLabel: Label(todo.Importance),
		UrgencyLabel:    Label(todo.Urgency),
		ImportanceIcon:  Icon(todo.Importance),
		UrgencyIcon:     Icon(todo.Urgency),
		Owner:           dto.NewUserResponse(&todo.Owner, false),
		CreatedAt:       todo.CreatedAt,
		UpdatedAt:       todo.UpdatedAt,
	}
}
