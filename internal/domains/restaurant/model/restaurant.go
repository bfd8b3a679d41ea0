package model

import (
	"time"

	promomodel "biteclub-backend/internal/domains/promotion/model"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// ENTITY: Restaurant
// =====================================================
// Restaurants are deactivated, never deleted. An inactive restaurant
// rejects checkout but keeps its order history readable.
type Restaurant struct {
	ID           uuid.UUID          `json:"id"`
	Email        string             `json:"email"`
	PasswordHash string             `json:"-"`
	Name         string             `json:"name"`
	School       string             `json:"school"`
	Phone        string             `json:"phone"`
	OpenHours    string             `json:"open_hours"`
	Active       bool               `json:"active"`
	Promotion    promomodel.Config  `json:"promotion"`
	CallDispatch CallDispatchConfig `json:"call_dispatch"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// CallDispatchConfig controls the automated phone call placed when a
// new order arrives. MaxRetries bounds how often the worker re-dials a
// restaurant that does not pick up.
type CallDispatchConfig struct {
	PhoneNumber    string `json:"phone_number"`
	MaxRetries     int    `json:"max_retries"`     // 0-5
	TimeoutSeconds int    `json:"timeout_seconds"` // per call attempt
}

func (c CallDispatchConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.PhoneNumber, validation.Required, validation.Length(7, 20)),
		validation.Field(&c.MaxRetries, validation.Min(0), validation.Max(5)),
		validation.Field(&c.TimeoutSeconds, validation.Required, validation.Min(10), validation.Max(300)),
	)
}

// =====================================================
// REQUEST DTOs
// =====================================================

type SignupRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	Name      string `json:"name" binding:"required"`
	School    string `json:"school" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	OpenHours string `json:"open_hours"`
}

func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&r.School, validation.Required, validation.Length(1, 120)),
		validation.Field(&r.Phone, validation.Required, validation.Length(7, 20)),
		validation.Field(&r.OpenHours, validation.Length(0, 200)),
	)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

type UpdateProfileRequest struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	OpenHours *string `json:"open_hours"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(1, 120)),
		validation.Field(&r.Phone, validation.Length(7, 20)),
		validation.Field(&r.OpenHours, validation.Length(0, 200)),
	)
}

// UpdatePromotionRequest replaces the whole promotion config. Partial
// updates would make the enabled-flag / amount invariants ambiguous.
type UpdatePromotionRequest struct {
	FirstTimeEnabled      bool            `json:"first_time_enabled"`
	FirstTimePercent      decimal.Decimal `json:"first_time_percent"`
	LoyaltyEnabled        bool            `json:"loyalty_enabled"`
	LoyaltySpendThreshold decimal.Decimal `json:"loyalty_spend_threshold"`
	LoyaltyRewardAmount   decimal.Decimal `json:"loyalty_reward_amount"`
}

func (r UpdatePromotionRequest) ToConfig() promomodel.Config {
	return promomodel.Config{
		FirstTimeEnabled:      r.FirstTimeEnabled,
		FirstTimePercent:      r.FirstTimePercent,
		LoyaltyEnabled:        r.LoyaltyEnabled,
		LoyaltySpendThreshold: r.LoyaltySpendThreshold,
		LoyaltyRewardAmount:   r.LoyaltyRewardAmount,
	}
}

type UpdateCallDispatchRequest struct {
	PhoneNumber    string `json:"phone_number" binding:"required"`
	MaxRetries     int    `json:"max_retries"`
	TimeoutSeconds int    `json:"timeout_seconds" binding:"required"`
}

func (r UpdateCallDispatchRequest) ToConfig() CallDispatchConfig {
	return CallDispatchConfig{
		PhoneNumber:    r.PhoneNumber,
		MaxRetries:     r.MaxRetries,
		TimeoutSeconds: r.TimeoutSeconds,
	}
}

// =====================================================
// RESPONSE DTOs
// =====================================================

type RestaurantResponse struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	School    string            `json:"school"`
	Phone     string            `json:"phone"`
	OpenHours string            `json:"open_hours"`
	Active    bool              `json:"active"`
	Promotion promomodel.Config `json:"promotion"`
	CreatedAt time.Time         `json:"created_at"`
}

type AuthResponse struct {
	AccessToken  string             `json:"access_token"`
	RefreshToken string             `json:"refresh_token"`
	Restaurant   RestaurantResponse `json:"restaurant"`
}

// ToResponse converts Restaurant to RestaurantResponse. CallDispatch
// is intentionally omitted; it is owner-only data served separately.
func (r *Restaurant) ToResponse() RestaurantResponse {
	return RestaurantResponse{
		ID:        r.ID,
		Name:      r.Name,
		School:    r.School,
		Phone:     r.Phone,
		OpenHours: r.OpenHours,
		Active:    r.Active,
		Promotion: r.Promotion,
		CreatedAt: r.CreatedAt,
	}
}
