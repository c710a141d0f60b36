package todos

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/rsh/tracker-backend/internal/config"
)

type TodosPlugin struct{}

func New() *TodosPlugin {
	return &TodosPlugin{}
}

func (p *TodosPlugin) ID() string { return "todos" }

func (p *TodosPlugin) Models() []interface{} {
	return []interface{}{
		&Todo{},
	}
}

func (p *TodosPlugin) RegisterRoutes(api fiber.Router, guard fiber.Handler, db *gorm.DB, cfg *config.Config) {
	svc := NewTodoService(db)
	handler := NewTodoHandler(svc)

	api.Get("/todos", guard, handler.ListTodos)
	api.Post("/todos", guard, handler.CreateTodo)
	api.Get("/todos/:id", guard, handler.GetTodo)
	api.Patch("/todos/:id", guard, handler.UpdateTodo)
	api.Delete("/todos/:id", guard, handler.DeleteTodo)
}

func (p *TodosPlugin) PurgeUser(tx *gorm.DB, userID uint) error {
	return tx.Where("owner_id = ?", userID).Delete(&Todo{}).Error
}
