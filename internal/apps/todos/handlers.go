package todos

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/rsh/tracker-backend/internal/dto"
	"github.com/rsh/tracker-backend/internal/identity"
	"github.com/rsh/tracker-backend/internal/validate"
)

type TodoHandler struct {
	todoService *TodoService
}

func NewTodoHandler(todoService *TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// ListTodos handles GET /todos — the caller's own todos, highest priority
// first.
func (h *TodoHandler) ListTodos(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: "Authentication required",
		})
	}

	todos, err := h.todoService.ListTodos(userID)
	if err != nil {
		slog.Error("failed to list todos", "error", err, "user_id", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal server error",
		})
	}

	responses := make([]TodoResponse, len(todos))
	for i := range todos {
		responses[i] = newTodoResponse(&todos[i])
	}
	return c.JSON(fiber.Map{"todos": responses})
}

// CreateTodo handles POST /todos.
func (h *TodoHandler) CreateTodo(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: "Authentication required",
		})
	}

	var req CreateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid request body",
		})
	}

	v := validate.New()
	v.Required("title", req.Title != "")
	v.Length("title", req.Title, 1, 200)
	if req.Importance != nil {
		v.Range("importance", *req.Importance, 1, 4)
	}
	if req.Urgency != nil {
		v.Range("urgency", *req.Urgency, 1, 4)
	}
	if req.Status != nil {
		v.OneOf("status", *req.Status, TodoStatuses...)
	}
	if !v.OK() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": v.Errors()})
	}

	todo, err := h.todoService.CreateTodo(userID, &req)
	if err != nil {
		slog.Error("failed to create todo", "error", err, "user_id", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"todo": newTodoResponse(todo)})
}

// getOwnedTodo fetches the todo and runs the ownership check: a missing id
// is 404 for everyone; an existing id owned by someone else is 403.
func (h *TodoHandler) getOwnedTodo(c *fiber.Ctx) (*Todo, uint, error) {
	userID, err := identity.UserID(c)
	if err != nil {
		return nil, 0, c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: "Authentication required",
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return nil, 0, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid todo ID",
		})
	}

	todo, err := h.todoService.GetTodo(uint(id))
	if err != nil {
		if errors.Is(err, ErrTodoNotFound) {
			return nil, 0, c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "Todo not found",
			})
		}
		slog.Error("failed to fetch todo", "error", err, "todo_id", id)
		return nil, 0, c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal server error",
		})
	}

	if todo.OwnerID != userID {
		return nil, 0, c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: "Unauthorized",
		})
	}

	return todo, userID, nil
}

// GetTodo handles GET /todos/:id.
func (h *TodoHandler) GetTodo(c *fiber.Ctx) error {
	todo, _, err := h.getOwnedTodo(c)
	if todo == nil {
		return err
	}
	return c.JSON(fiber.Map{"todo": newTodoResponse(todo)})
}

// UpdateTodo handles PATCH /todos/:id.
func (h *TodoHandler) UpdateTodo(c *fiber.Ctx) error {
	todo, userID, err := h.getOwnedTodo(c)
	if todo == nil {
		return err
	}

	var req UpdateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid request body",
		})
	}

	v := validate.New()
	if req.Title != nil {
		v.Required("title", *req.Title != "")
		v.Length("title", *req.Title, 1, 200)
	}
	if req.Importance != nil {
		v.Range("importance", *req.Importance, 1, 4)
	}
	if req.Urgency != nil {
		v.Range("urgency", *req.Urgency, 1, 4)
	}
	if req.Status != nil {
		v.OneOf("status", *req.Status, TodoStatuses...)
	}
	if !v.OK() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": v.Errors()})
	}

	updated, err := h.todoService.UpdateTodo(todo, &req)
	if err != nil {
		slog.Error("failed to update todo", "error", err, "todo_id", todo.ID, "user_id", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal server error",
		})
	}

	return c.JSON(fiber.Map{"todo": newTodoResponse(updated)})
}

// DeleteTodo handles DELETE /todos/:id.
func (h *TodoHandler) DeleteTodo(c *fiber.Ctx) error {
	todo, userID, err := h.getOwnedTodo(c)
	if todo == nil {
		return err
	}

	if err := h.todoService.DeleteTodo(todo.ID); err != nil {
		slog.Error("failed to delete todo", "error", err, "todo_id", todo.ID, "user_id", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal server error",
		})
	}

	return c.JSON(fiber.Map{"message": "Todo deleted successfully"})
}
