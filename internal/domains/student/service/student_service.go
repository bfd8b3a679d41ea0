package service

import (
	"context"
	"errors"
	"fmt"

	"biteclub-backend/internal/domains/student/model"
	"biteclub-backend/internal/domains/student/repository"
	"biteclub-backend/internal/shared"
	"biteclub-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type StudentService interface {
	Signup(ctx context.Context, req model.SignupRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	GetProfile(ctx context.Context, actor shared.Actor) (*model.StudentResponse, error)
	Deactivate(ctx context.Context, actor shared.Actor, studentID uuid.UUID) error
	List(ctx context.Context, actor shared.Actor, school string, page, limit int) ([]model.StudentResponse, int, error)
}

type studentService struct {
	studentRepo repository.StudentRepository
	jwtManager  *jwt.Manager
}

func NewStudentService(studentRepo repository.StudentRepository, jwtManager *jwt.Manager) StudentService {
	return &studentService{
		studentRepo: studentRepo,
		jwtManager:  jwtManager,
	}
}

func (s *studentService) Signup(ctx context.Context, req model.SignupRequest) (*model.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid signup request: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	student := &model.Student{
		ID:            uuid.New(),
		Email:         req.Email,
		PasswordHash:  string(hash),
		FullName:      req.FullName,
		School:        req.School,
		CreditBalance: decimal.Zero,
		Active:        true,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	return s.buildAuthResponse(student)
}

func (s *studentService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid login request: %w", err)
	}

	student, err := s.studentRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrStudentNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	if !student.Active {
		return nil, model.ErrStudentInactive
	}

	return s.buildAuthResponse(student)
}

func (s *studentService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", model.ErrUnauthorized
	}

	studentID, err := uuid.Parse(claims.SubjectID)
	if err != nil {
		return "", model.ErrUnauthorized
	}

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return "", err
	}
	if !student.Active {
		return "", model.ErrStudentInactive
	}

	return s.jwtManager.GenerateAccessToken(student.ID.String(), student.Email, string(shared.RoleStudent))
}

func (s *studentService) GetProfile(ctx context.Context, actor shared.Actor) (*model.StudentResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, actor.EffectiveID())
	if err != nil {
		return nil, err
	}

	resp := student.ToResponse()
	return &resp, nil
}

func (s *studentService) Deactivate(ctx context.Context, actor shared.Actor, studentID uuid.UUID) error {
	// Students may deactivate themselves; anything else is admin-only.
	if !actor.IsAdmin() && actor.SubjectID != studentID {
		return model.ErrUnauthorized
	}

	return s.studentRepo.Deactivate(ctx, studentID)
}

func (s *studentService) List(ctx context.Context, actor shared.Actor, school string, page, limit int) ([]model.StudentResponse, int, error) {
	if !actor.IsAdmin() {
		return nil, 0, model.ErrUnauthorized
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	students, total, err := s.studentRepo.List(ctx, school, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]model.StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, student.ToResponse())
	}

	return responses, total, nil
}

func (s *studentService) buildAuthResponse(student *model.Student) (*model.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(student.ID.String(), student.Email, string(shared.RoleStudent))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(student.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &model.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Student:      student.ToResponse(),
	}, nil
}
