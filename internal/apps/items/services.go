package items

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rsh/tracker-backend/internal/identity"
)

var (
	ErrItemNotFound     = errors.New("item not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
)

type ItemService struct {
	db *gorm.DB
}

func NewItemService(db *gorm.DB) *ItemService {
	return &ItemService{db: db}
}

func (s *ItemService) ListCategories() ([]Category, error) {
	var categories []Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *ItemService) CreateCategory(name string, description *string) (*Category, error) {
	var existing Category
	err := s.db.Where("name = ?", name).First(&existing).Error
	if err == nil {
		return nil, ErrCategoryExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check category: %w", err)
	}

	category := Category{Name: name, Description: description}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

func (s *ItemService) categoryExists(id uint) error {
	var category Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		return ErrCategoryNotFound
	}
	return nil
}

// CreateItem constructs a new item owned by ownerID. A supplied category
// reference must resolve at write time.
func (s *ItemService) CreateItem(ownerID uint, req *CreateItemRequest) (*Item, error) {
	if req.CategoryID != nil {
		if err := s.categoryExists(*req.CategoryID); err != nil {
			return nil, err
		}
	}

	status := defaultStatus
	if req.Status != nil {
		status = *req.Status
	}

	item := Item{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		OwnerID:     ownerID,
		Status:      status,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return s.GetItem(item.ID)
}

// GetItem fetches an item with its owner and category. Ownership is the
// caller's check; a missing id is always ErrItemNotFound regardless of who
// asks.
func (s *ItemService) GetItem(id uint) (*Item, error) {
	var item Item
	err := s.db.Preload("Owner").Preload("Category").First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch item: %w", err)
	}
	return &item, nil
}

// ListItems returns the owner's items newest first.
func (s *ItemService) ListItems(ownerID uint) ([]Item, error) {
	var items []Item
	err := s.db.Scopes(identity.OwnedBy(ownerID)).
		Preload("Owner").Preload("Category").
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// UpdateItem applies the non-nil fields of req to the item and returns the
// reloaded row.
func (s *ItemService) UpdateItem(item *Item, req *UpdateItemRequest) (*Item, error) {
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.CategoryID != nil {
		if err := s.categoryExists(*req.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *req.CategoryID
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) == 0 {
		return item, nil
	}

	if err := s.db.Model(&Item{}).Where("id = ?", item.ID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	return s.GetItem(item.ID)
}

func (s *ItemService) DeleteItem(id uint) error {
	result := s.db.Delete(&Item{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}
