package items

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/rsh/tracker-backend/internal/dto"
	"github.com/rsh/tracker-backend/internal/identity"
	"github.com/rsh/tracker-backend/internal/validate"
)

type ItemHandler struct {
	itemService *ItemService
}

func NewItemHandler(itemService *ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// ListCategories handles GET /categories — public.
func (h *ItemHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.itemService.ListCategories()
	if err != nil {
		slog.Error("failed to list categories", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal server error",
		})
	}

	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = newCategoryResponse(&categories[i])
	}
	return c.JSON(fiber.Map{"categories": responses})
}

// CreateCategory handles POST /categories.
func (h *ItemHandler) CreateCategory(c *fiber.Ctx) error {
	var req CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid request body",
		})
	}

	v := validate.New()
	v.Required("name", req.Name != "")
	v.Length("name", req.Name, 1, 100)
	if !v.OK() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": v.Errors()})
	}

	category, err := h.itemService.CreateCategory(req.Name, req.Description)
	if err != nil {
		if errors.Is(err, ErrCategoryExists) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: "Category already exists",
			})
		}
		slog.Error("failed to create category", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"category": newCategoryResponse(category)})
}

// ListItems handles GET /items — the caller's own items, newest first.
func (h *ItemHandler) ListItems(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: "Authentication required",
		})
	}

	items, err := h.itemService.ListItems(userID)
	if err != nil {
		slog.Error("failed to list items", "error", err, "user_id", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal server error",
		})
	}

	responses := make([]ItemResponse, len(items))
	for i := range items {
		responses[i] = newItemResponse(&items[i])
	}
	return c.JSON(fiber.Map{"items": responses})
}

// CreateItem handles POST /items.
func (h *ItemHandler) CreateItem(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: "Authentication required",
		})
	}

	var req CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid request body",
		})
	}

	v := validate.New()
	v.Required("title", req.Title != "")
	v.Length("title", req.Title, 1, 200)
	if req.Status != nil {
		v.OneOf("status", *req.Status, ItemStatuses...)
	}
	if !v.OK() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": v.Errors()})
	}

	item, err := h.itemService.CreateItem(userID, &req)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "Category not found",
			})
		}
		slog.Error("failed to create item", "error", err, "user_id", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"item": newItemResponse(item)})
}

// getOwnedItem fetches the item and runs the ownership check: a missing id
// is 404 for everyone; an existing id owned by someone else is 403.
func (h *ItemHandler) getOwnedItem(c *fiber.Ctx) (*Item, uint, error) {
	userID, err := identity.UserID(c)
	if err != nil {
		return nil, 0, c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: "Authentication required",
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return nil, 0, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid item ID",
		})
	}

	item, err := h.itemService.GetItem(uint(id))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, 0, c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "Item not found",
			})
		}
		slog.Error("failed to fetch item", "error", err, "item_id", id)
		return nil, 0, c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal server error",
		})
	}

	if item.OwnerID != userID {
		return nil, 0, c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: "Unauthorized",
		})
	}

	return item, userID, nil
}

// GetItem handles GET /items/:id.
func (h *ItemHandler) GetItem(c *fiber.Ctx) error {
	item, _, err := h.getOwnedItem(c)
	if item == nil {
		return err
	}
	return c.JSON(fiber.Map{"item": newItemResponse(item)})
}

// UpdateItem handles PATCH /items/:id.
func (h *ItemHandler) UpdateItem(c *fiber.Ctx) error {
	item, userID, err := h.getOwnedItem(c)
	if item == nil {
		return err
	}

	var req UpdateItemRequest
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
	if req.Status != nil {
		v.OneOf("status", *req.Status, ItemStatuses...)
	}
	if !v.OK() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": v.Errors()})
	}

	updated, err := h.itemService.UpdateItem(item, &req)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "Category not found",
			})
		}
		slog.Error("failed to update item", "error", err, "item_id", item.ID, "user_id", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal server error",
		})
	}

	return c.JSON(fiber.Map{"item": newItemResponse(updated)})
}

// DeleteItem handles DELETE /items/:id.
func (h *ItemHandler) DeleteItem(c *fiber.Ctx) error {
	item, userID, err := h.getOwnedItem(c)
	if item == nil {
		return err
	}

	if err := h.itemService.DeleteItem(item.ID); err != nil {
		slog.Error("failed to delete item", "error", err, "item_id", item.ID, "user_id", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal server error",
		})
	}

	return c.JSON(fiber.Map{"message": "Item deleted successfully"})
}
