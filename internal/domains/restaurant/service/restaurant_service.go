package service

import (
	"context"
	"errors"
	"fmt"

	promomodel "biteclub-backend/internal/domains/promotion/model"
	"biteclub-backend/internal/domains/restaurant/model"
	"biteclub-backend/internal/domains/restaurant/repository"
	"biteclub-backend/internal/shared"
	"biteclub-backend/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type RestaurantService interface {
	Signup(ctx context.Context, req model.SignupRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.RestaurantResponse, error)
	GetProfile(ctx context.Context, actor shared.Actor) (*model.Restaurant, error)
	List(ctx context.Context, school string, page, limit int) ([]model.RestaurantResponse, int, error)
	UpdateProfile(ctx context.Context, actor shared.Actor, req model.UpdateProfileRequest) error
	UpdatePromotion(ctx context.Context, actor shared.Actor, req model.UpdatePromotionRequest) error
	UpdateCallDispatch(ctx context.Context, actor shared.Actor, req model.UpdateCallDispatchRequest) error
	Deactivate(ctx context.Context, actor shared.Actor, restaurantID uuid.UUID) error
}

type restaurantService struct {
	restaurantRepo repository.RestaurantRepository
	jwtManager     *jwt.Manager
}

func NewRestaurantService(restaurantRepo repository.RestaurantRepository, jwtManager *jwt.Manager) RestaurantService {
	return &restaurantService{
		restaurantRepo: restaurantRepo,
		jwtManager:     jwtManager,
	}
}

func (s *restaurantService) Signup(ctx context.Context, req model.SignupRequest) (*model.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid signup request: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	restaurant := &model.Restaurant{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		School:       req.School,
		Phone:        req.Phone,
		OpenHours:    req.OpenHours,
		Active:       true,
		// Promotions start disabled; call dispatch defaults to the
		// public phone until the owner configures a dedicated line.
		Promotion: promomodel.Config{},
		CallDispatch: model.CallDispatchConfig{
			PhoneNumber:    req.Phone,
			MaxRetries:     2,
			TimeoutSeconds: 60,
		},
	}

	if err := s.restaurantRepo.Create(ctx, restaurant); err != nil {
		return nil, err
	}

	return s.buildAuthResponse(restaurant)
}

func (s *restaurantService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid login request: %w", err)
	}

	restaurant, err := s.restaurantRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrRestaurantNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(restaurant.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	if !restaurant.Active {
		return nil, model.ErrRestaurantInactive
	}

	return s.buildAuthResponse(restaurant)
}

func (s *restaurantService) GetByID(ctx context.Context, id uuid.UUID) (*model.RestaurantResponse, error) {
	restaurant, err := s.restaurantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := restaurant.ToResponse()
	return &resp, nil
}

// GetProfile returns the full restaurant record, call-dispatch config
// included. Owner or admin only.
func (s *restaurantService) GetProfile(ctx context.Context, actor shared.Actor) (*model.Restaurant, error) {
	return s.restaurantRepo.GetByID(ctx, actor.EffectiveID())
}

func (s *restaurantService) List(ctx context.Context, school string, page, limit int) ([]model.RestaurantResponse, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	restaurants, total, err := s.restaurantRepo.List(ctx, school, true, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]model.RestaurantResponse, 0, len(restaurants))
	for _, restaurant := range restaurants {
		responses = append(responses, restaurant.ToResponse())
	}

	return responses, total, nil
}

func (s *restaurantService) UpdateProfile(ctx context.Context, actor shared.Actor, req model.UpdateProfileRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid profile update: %w", err)
	}

	restaurant, err := s.restaurantRepo.GetByID(ctx, actor.EffectiveID())
	if err != nil {
		return err
	}

	if req.Name != nil {
		restaurant.Name = *req.Name
	}
	if req.Phone != nil {
		restaurant.Phone = *req.Phone
	}
	if req.OpenHours != nil {
		restaurant.OpenHours = *req.OpenHours
	}

	return s.restaurantRepo.UpdateProfile(ctx, restaurant)
}

func (s *restaurantService) UpdatePromotion(ctx context.Context, actor shared.Actor, req model.UpdatePromotionRequest) error {
	cfg := req.ToConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	return s.restaurantRepo.UpdatePromotion(ctx, actor.EffectiveID(), cfg)
}

func (s *restaurantService) UpdateCallDispatch(ctx context.Context, actor shared.Actor, req model.UpdateCallDispatchRequest) error {
	cfg := req.ToConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid call dispatch config: %w", err)
	}

	return s.restaurantRepo.UpdateCallDispatch(ctx, actor.EffectiveID(), cfg)
}

func (s *restaurantService) Deactivate(ctx context.Context, actor shared.Actor, restaurantID uuid.UUID) error {
	if !actor.IsAdmin() && actor.SubjectID != restaurantID {
		return model.ErrUnauthorized
	}

	return s.restaurantRepo.Deactivate(ctx, restaurantID)
}

func (s *restaurantService) buildAuthResponse(restaurant *model.Restaurant) (*model.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(restaurant.ID.String(), restaurant.Email, string(shared.RoleRestaurant))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(restaurant.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &model.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Restaurant:   restaurant.ToResponse(),
	}, nil
}
