package repository

import (
	"context"

	"biteclub-backend/internal/domains/menu/model"

	"github.com/google/uuid"
)

type MenuRepository interface {
	CreateItem(ctx context.Context, item *model.MenuItem) error
	// ReplaceItem updates the item row and swaps its modifier groups.
	// Callers run it inside WithinTransaction.
	ReplaceItem(ctx context.Context, item *model.MenuItem) error
	GetItem(ctx context.Context, itemID uuid.UUID) (*model.MenuItem, error)
	// GetItemsForCheckout loads the given items with their modifier
	// groups, verifying all belong to the restaurant.
	GetItemsForCheckout(ctx context.Context, restaurantID uuid.UUID, itemIDs []uuid.UUID) (map[uuid.UUID]*model.MenuItem, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]model.MenuItem, error)
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	SetAvailability(ctx context.Context, itemID uuid.UUID, available bool) error
}
