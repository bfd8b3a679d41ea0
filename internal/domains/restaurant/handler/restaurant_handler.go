package handler

import (
	"errors"
	"net/http"
	"strconv"

	promomodel "biteclub-backend/internal/domains/promotion/model"
	"biteclub-backend/internal/domains/restaurant/model"
	"biteclub-backend/internal/domains/restaurant/service"
	"biteclub-backend/internal/shared/middleware"
	"biteclub-backend/internal/shared/response"
	"biteclub-backend/pkg/logger"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RestaurantHandler struct {
	restaurantService service.RestaurantService
}

func NewRestaurantHandler(restaurantService service.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{restaurantService: restaurantService}
}

// Signup handles POST /api/v1/restaurants/signup
func (h *RestaurantHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	auth, err := h.restaurantService.Signup(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, auth)
}

// Login handles POST /api/v1/restaurants/login
func (h *RestaurantHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	auth, err := h.restaurantService.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, auth)
}

// List handles GET /api/v1/restaurants (students browsing)
func (h *RestaurantHandler) List(c *gin.Context) {
	school := c.Query("school")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	restaurants, total, err := h.restaurantService.List(c.Request.Context(), school, page, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, restaurants, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// GetByID handles GET /api/v1/restaurants/:id
func (h *RestaurantHandler) GetByID(c *gin.Context) {
	restaurantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid restaurant ID")
		return
	}

	restaurant, err := h.restaurantService.GetByID(c.Request.Context(), restaurantID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, restaurant)
}

// GetProfile handles GET /api/v1/restaurants/me
func (h *RestaurantHandler) GetProfile(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "Missing authentication")
		return
	}

	restaurant, err := h.restaurantService.GetProfile(c.Request.Context(), actor)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, restaurant)
}

// UpdateProfile handles PATCH /api/v1/restaurants/me
func (h *RestaurantHandler) UpdateProfile(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "Missing authentication")
		return
	}

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.restaurantService.UpdateProfile(c.Request.Context(), actor, req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Profile updated"})
}

// UpdatePromotion handles PUT /api/v1/restaurants/me/promotion
func (h *RestaurantHandler) UpdatePromotion(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "Missing authentication")
		return
	}

	var req model.UpdatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.restaurantService.UpdatePromotion(c.Request.Context(), actor, req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Promotion config updated"})
}

// UpdateCallDispatch handles PUT /api/v1/restaurants/me/call-dispatch
func (h *RestaurantHandler) UpdateCallDispatch(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "Missing authentication")
		return
	}

	var req model.UpdateCallDispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.restaurantService.UpdateCallDispatch(c.Request.Context(), actor, req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Call dispatch config updated"})
}

// Deactivate handles DELETE /api/v1/restaurants/:id
func (h *RestaurantHandler) Deactivate(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "Missing authentication")
		return
	}

	restaurantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid restaurant ID")
		return
	}

	if err := h.restaurantService.Deactivate(c.Request.Context(), actor, restaurantID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Restaurant deactivated"})
}

func (h *RestaurantHandler) handleError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY", "Validation failed", validationErrs)
		return
	}

	var promoErr *promomodel.PromotionError
	if errors.As(err, &promoErr) {
		response.ErrorResponse(c, http.StatusUnprocessableEntity, promoErr.Code, promoErr.Message)
		return
	}

	switch {
	case errors.Is(err, model.ErrEmailAlreadyExists):
		response.Conflict(c, "Email already registered")
	case errors.Is(err, model.ErrRestaurantNotFound):
		response.NotFound(c, "Restaurant not found")
	case errors.Is(err, model.ErrInvalidCredentials):
		response.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, model.ErrRestaurantInactive):
		response.Forbidden(c, "Account is deactivated")
	case errors.Is(err, model.ErrUnauthorized):
		response.Forbidden(c, "Not allowed to perform this action")
	default:
		logger.Error("restaurant handler error", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
