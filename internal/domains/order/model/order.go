package model

import (
	"time"

	menumodel "biteclub-backend/internal/domains/menu/model"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// ORDER STATUS CONSTANTS
// =====================================================
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

func IsTerminalStatus(status string) bool {
	return status == StatusCompleted || status == StatusCancelled
}

// =====================================================
// ENTITY: Order
// =====================================================
// FinalAmount = TotalAmount - DiscountAmount, never negative.
// PromotionApplied is nil or exactly one promotion kind. Version backs
// optimistic locking on status transitions.
type Order struct {
	ID                  uuid.UUID       `json:"id"`
	StudentID           uuid.UUID       `json:"student_id"`
	RestaurantID        uuid.UUID       `json:"restaurant_id"`
	TotalAmount         decimal.Decimal `json:"total_amount"`
	DiscountAmount      decimal.Decimal `json:"discount_amount"`
	FinalAmount         decimal.Decimal `json:"final_amount"`
	PromotionApplied    *string         `json:"promotion_applied,omitempty"`
	Status              string          `json:"status"`
	SpecialInstructions string          `json:"special_instructions,omitempty"`
	Version             int             `json:"version"`
	Items               []OrderItem     `json:"items,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// OrderItem snapshots names and prices at order time so receipts stay
// stable when the menu changes later.
// TotalPrice = (UnitPrice + sum of modifier prices) * Quantity.
type OrderItem struct {
	ID         uuid.UUID                    `json:"id"`
	OrderID    uuid.UUID                    `json:"order_id"`
	MenuItemID uuid.UUID                    `json:"menu_item_id"`
	Name       string                       `json:"name"`
	Quantity   int                          `json:"quantity"`
	UnitPrice  decimal.Decimal              `json:"unit_price"`
	Modifiers  []menumodel.SelectedModifier `json:"modifiers"`
	TotalPrice decimal.Decimal              `json:"total_price"`
}

// StatusHistory is one audit row per transition.
type StatusHistory struct {
	ID         uuid.UUID `json:"id"`
	OrderID    uuid.UUID `json:"order_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ChangedBy  uuid.UUID `json:"changed_by"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// =====================================================
// REQUEST DTOs
// =====================================================

type CartItem struct {
	MenuItemID  uuid.UUID   `json:"menu_item_id"`
	Quantity    int         `json:"quantity"`
	ModifierIDs []uuid.UUID `json:"modifier_ids"`
}

type CheckoutRequest struct {
	RestaurantID        uuid.UUID  `json:"restaurant_id"`
	Items               []CartItem `json:"items"`
	SpecialInstructions string     `json:"special_instructions"`
}

func (r CheckoutRequest) Validate() error {
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.RestaurantID, validation.Required),
		validation.Field(&r.Items, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.SpecialInstructions, validation.Length(0, 500)),
	); err != nil {
		return err
	}
	for _, item := range r.Items {
		if item.MenuItemID == uuid.Nil {
			return NewOrderError(ErrCodeValidation, "cart item is missing a menu item", ErrValidation)
		}
		if item.Quantity <= 0 {
			return NewOrderError(ErrCodeValidation, "cart item quantity must be positive", ErrValidation)
		}
	}
	return nil
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// Receipt is the checkout response: the created order plus a summary
// of what the promotion evaluation did to it.
type Receipt struct {
	Order            *Order          `json:"order"`
	PromotionApplied string          `json:"promotion_applied"`
	DiscountAmount   decimal.Decimal `json:"discount_amount"`
	LoyaltyReward    decimal.Decimal `json:"loyalty_reward"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}
