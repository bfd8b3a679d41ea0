package service

import (
	"context"

	"biteclub-backend/internal/domains/promotion/model"
	restmodel "biteclub-backend/internal/domains/restaurant/model"
	"biteclub-backend/internal/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HistorySource provides a student's completed-order history at one
// restaurant. Implemented by the order repository.
type HistorySource interface {
	GetPromotionHistory(ctx context.Context, studentID, restaurantID uuid.UUID) (model.History, error)
}

// RestaurantSource provides the restaurant's promotion config.
type RestaurantSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*restmodel.Restaurant, error)
}

// QuoteService answers "what would this order cost me" without writing
// anything. Checkout re-runs the same evaluation inside its
// transaction; a quote is never a reservation.
type QuoteService struct {
	evaluator   *Evaluator
	restaurants RestaurantSource
	history     HistorySource
}

func NewQuoteService(evaluator *Evaluator, restaurants RestaurantSource, history HistorySource) *QuoteService {
	return &QuoteService{
		evaluator:   evaluator,
		restaurants: restaurants,
		history:     history,
	}
}

func (s *QuoteService) Quote(ctx context.Context, actor shared.Actor, req model.EvaluateRequest) (*model.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	restaurantID, err := uuid.Parse(req.RestaurantID)
	if err != nil {
		return nil, model.NewPromotionError(model.ErrCodeInvalidSubtotal, "invalid restaurant id", model.ErrInvalidSubtotal)
	}

	subtotal, err := decimal.NewFromString(req.Subtotal)
	if err != nil {
		return nil, model.NewPromotionError(model.ErrCodeInvalidSubtotal, "subtotal is not a valid amount", model.ErrInvalidSubtotal)
	}

	restaurant, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	history, err := s.history.GetPromotionHistory(ctx, actor.EffectiveID(), restaurantID)
	if err != nil {
		return nil, err
	}

	return s.evaluator.Evaluate(restaurant.Promotion, history, subtotal)
}
