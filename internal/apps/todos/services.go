package todos

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rsh/tracker-backend/internal/identity"
)

var ErrTodoNotFound = errors.New("todo not found")

type TodoService struct {
	db *gorm.DB
}

func NewTodoService(db *gorm.DB) *TodoService {
	return &TodoService{db: db}
}

// CreateTodo constructs a new todo owned by ownerID, applying the level and
// status defaults for absent fields.
func (s *TodoService) CreateTodo(ownerID uint, req *CreateTodoRequest) (*Todo, error) {
	importance := defaultLevel
	if req.Importance != nil {
		importance = *req.Importance
	}
	urgency := defaultLevel
	if req.Urgency != nil {
		urgency = *req.Urgency
	}
	status := defaultStatus
	if req.Status != nil {
		status = *req.Status
	}

	todo := Todo{
		Title:       req.Title,
		Description: req.Description,
		Importance:  importance,
		Urgency:     urgency,
		Status:      status,
		OwnerID:     ownerID,
	}
	if err := s.db.Create(&todo).Error; err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	return s.GetTodo(todo.ID)
}

// GetTodo fetches a todo with its owner. Ownership is the caller's check; a
// missing id is always ErrTodoNotFound regardless of who asks.
func (s *TodoService) GetTodo(id uint) (*Todo, error) {
	var todo Todo
	err := s.db.Preload("Owner").First(&todo, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTodoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch todo: %w", err)
	}
	return &todo, nil
}

// ListTodos returns the owner's todos ordered by priority score descending,
// oldest first among equal scores.
func (s *TodoService) ListTodos(ownerID uint) ([]Todo, error) {
	var todos []Todo
	err := s.db.Scopes(identity.OwnedBy(ownerID)).
		Preload("Owner").
		Order(orderByPriority).
		Find(&todos).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// UpdateTodo applies the non-nil fields of req to the todo and returns the
// reloaded row.
func (s *TodoService) UpdateTodo(todo *Todo, req *UpdateTodoRequest) (*Todo, error) {
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Importance != nil {
		updates["importance"] = *req.Importance
	}
	if req.Urgency != nil {
		updates["urgency"] = *req.Urgency
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) == 0 {
		return todo, nil
	}

	if err := s.db.Model(&Todo{}).Where("id = ?", todo.ID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}
	return s.GetTodo(todo.ID)
}

func (s *TodoService) DeleteTodo(id uint) error {
	result := s.db.Delete(&Todo{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete todo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTodoNotFound
	}
	return nil
}
