package handler

import (
	"errors"
	"net/http"

	"biteclub-backend/internal/domains/menu/model"
	"biteclub-backend/internal/domains/menu/service"
	"biteclub-backend/internal/shared/middleware"
	"biteclub-backend/internal/shared/response"
	"biteclub-backend/pkg/logger"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MenuHandler struct {
	menuService service.MenuService
}

func NewMenuHandler(menuService service.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// GetMenu handles GET /api/v1/restaurants/:id/menu
func (h *MenuHandler) GetMenu(c *gin.Context) {
	restaurantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid restaurant ID")
		return
	}

	items, err := h.menuService.GetMenu(c.Request.Context(), restaurantID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, items)
}

// CreateItem handles POST /api/v1/menu/items
func (h *MenuHandler) CreateItem(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "Missing authentication")
		return
	}

	var req model.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.menuService.CreateItem(c.Request.Context(), actor, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, item)
}

// UpdateItem handles PUT /api/v1/menu/items/:id
func (h *MenuHandler) UpdateItem(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "Missing authentication")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	var req model.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.menuService.UpdateItem(c.Request.Context(), actor, itemID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, item)
}

// SetAvailability handles PATCH /api/v1/menu/items/:id/availability
func (h *MenuHandler) SetAvailability(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "Missing authentication")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	var req struct {
		Available bool `json:"available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.menuService.SetAvailability(c.Request.Context(), actor, itemID, req.Available); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Availability updated"})
}

// DeleteItem handles DELETE /api/v1/menu/items/:id
func (h *MenuHandler) DeleteItem(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "Missing authentication")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.menuService.DeleteItem(c.Request.Context(), actor, itemID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Menu item deleted"})
}

func (h *MenuHandler) handleError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY", "Validation failed", validationErrs)
		return
	}

	var menuErr *model.MenuError
	if errors.As(err, &menuErr) {
		response.ErrorResponse(c, http.StatusUnprocessableEntity, menuErr.Code, menuErr.Message)
		return
	}

	switch {
	case errors.Is(err, model.ErrItemNotFound):
		response.NotFound(c, "Menu item not found")
	case errors.Is(err, model.ErrUnauthorized):
		response.Forbidden(c, "Not allowed to manage this menu")
	default:
		logger.Error("menu handler error", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
