package items

import (
	"time"

	"github.com/rsh/tracker-backend/internal/dto"
	"github.com/rsh/tracker-backend/internal/models"
)

// Category is a global lookup table; it has no owner and no delete endpoint,
// so referential integrity reduces to an existence check at item write time.
type Category struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:100;not null;uniqueIndex"`
	Description *string   `gorm:"type:text"`
	CreatedAt   time.Time
}

type Item struct {
	ID          uint    `gorm:"primaryKey"`
	Title       string  `gorm:"size:200;not null"`
	Description *string `gorm:"type:text"`
	CategoryID  *uint   `gorm:"index"`
	Category    *Category
	OwnerID     uint `gorm:"not null;index"`
	Owner       models.User
	Status      string `gorm:"size:50;not null;default:'active'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var ItemStatuses = []string{"active", "inactive", "archived"}

const defaultStatus = "active"

// --- DTOs ---

type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type CreateItemRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	CategoryID  *uint   `json:"category_id"`
	Status      *string `json:"status"`
}

// UpdateItemRequest carries partial-update semantics: a nil field (absent
// from the payload, or explicitly null) leaves the stored value untouched.
type UpdateItemRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	CategoryID  *uint   `json:"category_id"`
	Status      *string `json:"status"`
}

type CategoryResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type ItemResponse struct {
	ID          uint              `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Category    *CategoryResponse `json:"category"`
	Owner       dto.UserResponse  `json:"owner"`
	Status      string            `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func newCategoryResponse(cat *Category) CategoryResponse {
	return CategoryResponse{
		ID:          cat.ID,
		Name:        cat.Name,
		Description: cat.Description,
		CreatedAt:   cat.CreatedAt,
	}
}

func newItemResponse(item *Item) ItemResponse {
	resp := ItemResponse{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Owner:       dto.NewUserResponse(&item.Owner, false),
		Status:      item.Status,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
	if item.Category != nil {
		cat := newCategoryResponse(item.Category)
		resp.Category = &cat
	}
	return resp
}
