package handler

import (
	"errors"
	"net/http"

	"biteclub-backend/internal/domains/promotion/model"
	"biteclub-backend/internal/domains/promotion/service"
	restmodel "biteclub-backend/internal/domains/restaurant/model"
	"biteclub-backend/internal/shared/middleware"
	"biteclub-backend/internal/shared/response"
	"biteclub-backend/pkg/logger"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
)

type PromotionHandler struct {
	quoteService *service.QuoteService
}

func NewPromotionHandler(quoteService *service.QuoteService) *PromotionHandler {
	return &PromotionHandler{quoteService: quoteService}
}

// Quote handles POST /api/v1/promotions/quote
func (h *PromotionHandler) Quote(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "Missing authentication")
		return
	}

	var req model.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.quoteService.Quote(c.Request.Context(), actor, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *PromotionHandler) handleError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY", "Validation failed", validationErrs)
		return
	}

	var promoErr *model.PromotionError
	if errors.As(err, &promoErr) {
		response.ErrorResponse(c, http.StatusUnprocessableEntity, promoErr.Code, promoErr.Message)
		return
	}

	if errors.Is(err, restmodel.ErrRestaurantNotFound) {
		response.NotFound(c, "Restaurant not found")
		return
	}

	logger.Error("promotion handler error", err)
	response.InternalServerError(c, "Something went wrong")
}
