package items

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/rsh/tracker-backend/internal/config"
)

type ItemsPlugin struct{}

func New() *ItemsPlugin {
	return &ItemsPlugin{}
}

func (p *ItemsPlugin) ID() string { return "items" }

func (p *ItemsPlugin) Models() []interface{} {
	return []interface{}{
		&Category{},
		&Item{},
	}
}

func (p *ItemsPlugin) RegisterRoutes(api fiber.Router, guard fiber.Handler, db *gorm.DB, cfg *config.Config) {
	svc := NewItemService(db)
	handler := NewItemHandler(svc)

	// Category listing is the only public resource endpoint.
	api.Get("/categories", handler.ListCategories)
	api.Post("/categories", guard, handler.CreateCategory)

	api.Get("/items", guard, handler.ListItems)
	api.Post("/items", guard, handler.CreateItem)
	api.Get("/items/:id", guard, handler.GetItem)
	api.Patch("/items/:id", guard, handler.UpdateItem)
	api.Delete("/items/:id", guard, handler.DeleteItem)
}

func (p *ItemsPlugin) PurgeUser(tx *gorm.DB, userID uint) error {
	return tx.Where("owner_id = ?", userID).Delete(&Item{}).Error
}
