package handler

import (
	"errors"
	"net/http"
	"strconv"

	creditmodel "biteclub-backend/internal/domains/credit/model"
	menumodel "biteclub-backend/internal/domains/menu/model"
	"biteclub-backend/internal/domains/order/model"
	"biteclub-backend/internal/domains/order/service"
	promomodel "biteclub-backend/internal/domains/promotion/model"
	"biteclub-backend/internal/shared"
	"biteclub-backend/internal/shared/middleware"
	"biteclub-backend/internal/shared/response"
	"biteclub-backend/pkg/logger"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Checkout handles POST /api/v1/orders/checkout
func (h *OrderHandler) Checkout(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "Missing authentication")
		return
	}

	var req model.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	receipt, err := h.orderService.Checkout(c.Request.Context(), actor, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, receipt)
}

// GetOrder handles GET /api/v1/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "Missing authentication")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), actor, orderID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, order)
}

// GetStatusHistory handles GET /api/v1/orders/:id/history
func (h *OrderHandler) GetStatusHistory(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "Missing authentication")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	history, err := h.orderService.GetStatusHistory(c.Request.Context(), actor, orderID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, history)
}

// ListMine handles GET /api/v1/orders (student order history)
func (h *OrderHandler) ListMine(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "Missing authentication")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	orders, total, err := h.orderService.ListForStudent(c.Request.Context(), actor, page, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, orders, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// ListIncoming handles GET /api/v1/restaurants/me/orders
func (h *OrderHandler) ListIncoming(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "Missing authentication")
		return
	}

	status := c.Query("status")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	orders, total, err := h.orderService.ListForRestaurant(c.Request.Context(), actor, status, page, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, orders, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// Accept handles POST /api/v1/orders/:id/accept
func (h *OrderHandler) Accept(c *gin.Context) {
	h.applyTransition(c, func(actor shared.Actor, orderID uuid.UUID) (*model.Order, error) {
		return h.orderService.Accept(c.Request.Context(), actor, orderID)
	})
}

// Reject handles POST /api/v1/orders/:id/reject
func (h *OrderHandler) Reject(c *gin.Context) {
	// Body is optional; reject without a reason is fine.
	var req model.RejectRequest
	_ = c.ShouldBindJSON(&req)

	h.applyTransition(c, func(actor shared.Actor, orderID uuid.UUID) (*model.Order, error) {
		return h.orderService.Reject(c.Request.Context(), actor, orderID, req.Reason)
	})
}

// Cancel handles POST /api/v1/orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	h.applyTransition(c, func(actor shared.Actor, orderID uuid.UUID) (*model.Order, error) {
		return h.orderService.Cancel(c.Request.Context(), actor, orderID)
	})
}

// Advance handles POST /api/v1/orders/:id/advance
func (h *OrderHandler) Advance(c *gin.Context) {
	h.applyTransition(c, func(actor shared.Actor, orderID uuid.UUID) (*model.Order, error) {
		return h.orderService.Advance(c.Request.Context(), actor, orderID)
	})
}

// Closeout handles POST /api/v1/orders/:id/closeout
func (h *OrderHandler) Closeout(c *gin.Context) {
	h.applyTransition(c, func(actor shared.Actor, orderID uuid.UUID) (*model.Order, error) {
		return h.orderService.Closeout(c.Request.Context(), actor, orderID)
	})
}

func (h *OrderHandler) applyTransition(c *gin.Context, fn func(actor shared.Actor, orderID uuid.UUID) (*model.Order, error)) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "Missing authentication")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := fn(actor, orderID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, order)
}

func (h *OrderHandler) handleError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY", "Validation failed", validationErrs)
		return
	}

	var orderErr *model.OrderError
	if errors.As(err, &orderErr) {
		switch orderErr.Code {
		case model.ErrCodeInsufficientCredit, model.ErrCodeInvalidTransition, model.ErrCodeConcurrency:
			response.ErrorResponse(c, http.StatusConflict, orderErr.Code, orderErr.Message)
		case model.ErrCodeNotFound:
			response.ErrorResponse(c, http.StatusNotFound, orderErr.Code, orderErr.Message)
		default:
			response.ErrorResponse(c, http.StatusUnprocessableEntity, orderErr.Code, orderErr.Message)
		}
		return
	}

	var menuErr *menumodel.MenuError
	if errors.As(err, &menuErr) {
		response.ErrorResponse(c, http.StatusUnprocessableEntity, menuErr.Code, menuErr.Message)
		return
	}

	var promoErr *promomodel.PromotionError
	if errors.As(err, &promoErr) {
		response.ErrorResponse(c, http.StatusUnprocessableEntity, promoErr.Code, promoErr.Message)
		return
	}

	switch {
	case errors.Is(err, model.ErrOrderNotFound):
		response.NotFound(c, "Order not found")
	case errors.Is(err, model.ErrInvalidTransition):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeInvalidTransition, "Invalid order status transition")
	case errors.Is(err, model.ErrVersionMismatch):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeConcurrency, "Order was modified concurrently, retry")
	case errors.Is(err, creditmodel.ErrInsufficientCredit):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeInsufficientCredit, "Insufficient credit balance")
	case errors.Is(err, model.ErrUnauthorized):
		response.Forbidden(c, "Not allowed to act on this order")
	default:
		logger.Error("order handler error", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
