package repository

import (
	"context"

	"biteclub-backend/internal/domains/order/model"
	promomodel "biteclub-backend/internal/domains/promotion/model"

	"github.com/google/uuid"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	CreateItems(ctx context.Context, items []model.OrderItem) error
	GetByID(ctx context.Context, orderID uuid.UUID) (*model.Order, error)
	// UpdateStatus moves the order to newStatus iff the stored version
	// still matches. Zero rows affected surfaces as ErrVersionMismatch
	// (or ErrOrderNotFound when the order does not exist at all).
	UpdateStatus(ctx context.Context, orderID uuid.UUID, version int, newStatus string) error
	AddStatusHistory(ctx context.Context, entry *model.StatusHistory) error
	GetStatusHistory(ctx context.Context, orderID uuid.UUID) ([]model.StatusHistory, error)
	// GetPromotionHistory counts the student's COMPLETED orders at the
	// restaurant and sums their final amounts. Pending and cancelled
	// orders never count.
	GetPromotionHistory(ctx context.Context, studentID, restaurantID uuid.UUID) (promomodel.History, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID, page, limit int) ([]model.Order, int, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, status string, page, limit int) ([]model.Order, int, error)
}
