package handler

import (
	"errors"
	"net/http"
	"strconv"

	"biteclub-backend/internal/domains/student/model"
	"biteclub-backend/internal/domains/student/service"
	"biteclub-backend/internal/shared/middleware"
	"biteclub-backend/internal/shared/response"
	"biteclub-backend/pkg/logger"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StudentHandler struct {
	studentService service.StudentService
}

func NewStudentHandler(studentService service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// Signup handles POST /api/v1/students/signup
func (h *StudentHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	auth, err := h.studentService.Signup(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, auth)
}

// Login handles POST /api/v1/students/login
func (h *StudentHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	auth, err := h.studentService.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, auth)
}

// Refresh handles POST /api/v1/students/refresh
func (h *StudentHandler) Refresh(c *gin.Context) {
	var req model.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	accessToken, err := h.studentService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"access_token": accessToken})
}

// GetProfile handles GET /api/v1/students/me
func (h *StudentHandler) GetProfile(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "Missing authentication")
		return
	}

	profile, err := h.studentService.GetProfile(c.Request.Context(), actor)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// Deactivate handles DELETE /api/v1/students/:id
func (h *StudentHandler) Deactivate(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "Missing authentication")
		return
	}

	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	if err := h.studentService.Deactivate(c.Request.Context(), actor, studentID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Student deactivated"})
}

// List handles GET /api/v1/students (admin only)
func (h *StudentHandler) List(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "Missing authentication")
		return
	}

	school := c.Query("school")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	students, total, err := h.studentService.List(c.Request.Context(), actor, school, page, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, students, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

func (h *StudentHandler) handleError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY", "Validation failed", validationErrs)
		return
	}

	switch {
	case errors.Is(err, model.ErrEmailAlreadyExists):
		response.Conflict(c, "Email already registered")
	case errors.Is(err, model.ErrStudentNotFound):
		response.NotFound(c, "Student not found")
	case errors.Is(err, model.ErrInvalidCredentials):
		response.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, model.ErrStudentInactive):
		response.Forbidden(c, "Account is deactivated")
	case errors.Is(err, model.ErrUnauthorized):
		response.Forbidden(c, "Not allowed to perform this action")
	default:
		logger.Error("student handler error", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
