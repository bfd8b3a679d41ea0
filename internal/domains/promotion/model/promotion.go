package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// =====================================================
// PROMOTION KIND CONSTANTS
// =====================================================
// At most one promotion fires per order; the kind is the structural
// guarantee of that, not a set of optional flags.
const (
	KindNone      = "none"
	KindFirstTime = "first_time"
	KindLoyalty   = "loyalty"
)

// =====================================================
// ENTITY: Config
// =====================================================
// Config is a restaurant's promotion configuration. A disabled flag
// means the evaluator skips that rule entirely regardless of the other
// fields.
type Config struct {
	FirstTimeEnabled      bool            `json:"first_time_enabled"`
	FirstTimePercent      decimal.Decimal `json:"first_time_percent"` // 0-100
	LoyaltyEnabled        bool            `json:"loyalty_enabled"`
	LoyaltySpendThreshold decimal.Decimal `json:"loyalty_spend_threshold"`
	LoyaltyRewardAmount   decimal.Decimal `json:"loyalty_reward_amount"`
}

// Validate checks the configured ranges: percent within 0-100,
// threshold and reward strictly positive when loyalty is enabled.
func (c Config) Validate() error {
	if c.FirstTimePercent.LessThan(decimal.Zero) ||
		c.FirstTimePercent.GreaterThan(decimal.NewFromInt(100)) {
		return NewPromotionError(ErrCodeInvalidConfig, "first-time percent must be between 0 and 100", ErrInvalidConfig)
	}

	if c.LoyaltyEnabled {
		if c.LoyaltySpendThreshold.LessThanOrEqual(decimal.Zero) {
			return NewPromotionError(ErrCodeInvalidConfig, "loyalty spend threshold must be positive", ErrInvalidConfig)
		}
		if c.LoyaltyRewardAmount.LessThanOrEqual(decimal.Zero) {
			return NewPromotionError(ErrCodeInvalidConfig, "loyalty reward amount must be positive", ErrInvalidConfig)
		}
	} else {
		if c.LoyaltySpendThreshold.LessThan(decimal.Zero) || c.LoyaltyRewardAmount.LessThan(decimal.Zero) {
			return NewPromotionError(ErrCodeInvalidConfig, "loyalty amounts must be non-negative", ErrInvalidConfig)
		}
	}

	return nil
}

// =====================================================
// HISTORY: prior completed orders at one restaurant
// =====================================================
// Only orders that reached COMPLETED count; pending or cancelled orders
// would make the first-time discount exploitable by abandoned carts.
type History struct {
	CompletedOrders int             `json:"completed_orders"`
	CompletedSpend  decimal.Decimal `json:"completed_spend"`
}

// =====================================================
// RESULT
// =====================================================

// LoyaltyProgress is display-only information: how far the student is
// toward the next reward. It has no monetary effect.
type LoyaltyProgress struct {
	CurrentSpend decimal.Decimal `json:"current_spend"`
	Threshold    decimal.Decimal `json:"threshold"`
	Remaining    decimal.Decimal `json:"remaining"`
}

// Result is the evaluator's answer for one candidate order.
type Result struct {
	Kind           string          `json:"kind"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`

	// LoyaltyReward is credited to the student's balance after the
	// order is created; it is not a discount on this order.
	LoyaltyReward decimal.Decimal `json:"loyalty_reward"`

	LoyaltyProgress *LoyaltyProgress `json:"loyalty_progress,omitempty"`
}

// =====================================================
// REQUEST: standalone evaluation (quote endpoint)
// =====================================================
type EvaluateRequest struct {
	RestaurantID string `json:"restaurant_id" binding:"required"`
	Subtotal     string `json:"subtotal" binding:"required"`
}

func (r EvaluateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RestaurantID, validation.Required),
		validation.Field(&r.Subtotal, validation.Required),
	)
}
