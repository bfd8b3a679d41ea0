package repository

import (
	"context"

	promomodel "biteclub-backend/internal/domains/promotion/model"
	"biteclub-backend/internal/domains/restaurant/model"

	"github.com/google/uuid"
)

type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *model.Restaurant) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Restaurant, error)
	GetByEmail(ctx context.Context, email string) (*model.Restaurant, error)
	List(ctx context.Context, school string, activeOnly bool, page, limit int) ([]model.Restaurant, int, error)
	UpdateProfile(ctx context.Context, restaurant *model.Restaurant) error
	UpdatePromotion(ctx context.Context, id uuid.UUID, cfg promomodel.Config) error
	UpdateCallDispatch(ctx context.Context, id uuid.UUID, cfg model.CallDispatchConfig) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}
