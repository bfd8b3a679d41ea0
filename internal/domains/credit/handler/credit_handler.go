package handler

import (
	"errors"
	"net/http"
	"strconv"

	"biteclub-backend/internal/domains/credit/model"
	"biteclub-backend/internal/domains/credit/service"
	"biteclub-backend/internal/shared/middleware"
	"biteclub-backend/internal/shared/response"
	"biteclub-backend/pkg/logger"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
)

type CreditHandler struct {
	creditService service.CreditService
}

func NewCreditHandler(creditService service.CreditService) *CreditHandler {
	return &CreditHandler{creditService: creditService}
}

// Topup handles POST /api/v1/credits/topup
func (h *CreditHandler) Topup(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "Missing authentication")
		return
	}

	var req model.TopupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.creditService.Topup(c.Request.Context(), actor, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, entry)
}

// AdminAdjust handles POST /api/v1/credits/adjust (admin only)
func (h *CreditHandler) AdminAdjust(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "Missing authentication")
		return
	}

	var req model.AdminAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.creditService.AdminAdjust(c.Request.Context(), actor, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, entry)
}

// GetBalance handles GET /api/v1/credits/balance
func (h *CreditHandler) GetBalance(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "Missing authentication")
		return
	}

	balance, err := h.creditService.GetBalance(c.Request.Context(), actor)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, balance)
}

// History handles GET /api/v1/credits/transactions
func (h *CreditHandler) History(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "Missing authentication")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	entries, total, err := h.creditService.History(c.Request.Context(), actor, page, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, entries, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

func (h *CreditHandler) handleError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY", "Validation failed", validationErrs)
		return
	}

	var creditErr *model.CreditError
	if errors.As(err, &creditErr) {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, model.ErrInsufficientCredit) {
			status = http.StatusConflict
		}
		response.ErrorResponse(c, status, creditErr.Code, creditErr.Message)
		return
	}

	switch {
	case errors.Is(err, model.ErrInsufficientCredit):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeInsufficientCredit, "Insufficient credit balance")
	case errors.Is(err, model.ErrStudentNotFound):
		response.NotFound(c, "Student not found")
	case errors.Is(err, model.ErrInvalidAmount), errors.Is(err, model.ErrInvalidType):
		response.UnprocessableEntity(c, err.Error())
	case errors.Is(err, model.ErrUnauthorized):
		response.Forbidden(c, "Not allowed to perform this action")
	default:
		logger.Error("credit handler error", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
