package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// TRANSACTION TYPE CONSTANTS
// =====================================================
const (
	TypePurchase      = "purchase"
	TypeSpend         = "spend"
	TypeRefund        = "refund"
	TypeLoyaltyReward = "loyalty_reward"
	TypeAdminAdd      = "admin_add"
)

func IsValidType(t string) bool {
	switch t {
	case TypePurchase, TypeSpend, TypeRefund, TypeLoyaltyReward, TypeAdminAdd:
		return true
	}
	return false
}

// =====================================================
// ENTITY: CreditTransaction
// =====================================================
// The ledger is append-only. Amount is signed: spends are negative,
// everything else positive except admin_add which may go either way.
// students.credit_balance is updated in the same database transaction
// as every append, so the balance always equals the ledger sum.
type CreditTransaction struct {
	ID        uuid.UUID       `json:"id"`
	StudentID uuid.UUID       `json:"student_id"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	OrderID   *uuid.UUID      `json:"order_id,omitempty"`
	Note      string          `json:"note,omitempty"`
	CreatedBy uuid.UUID       `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

// =====================================================
// REQUEST DTOs
// =====================================================

// TopupRequest records a credit purchase after the external payment
// provider reports success.
type TopupRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference"`
}

func (r TopupRequest) Validate() error {
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return NewCreditError(ErrCodeInvalidAmount, "top-up amount must be positive", ErrInvalidAmount)
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Reference, validation.Length(0, 200)),
	)
}

type AdminAdjustRequest struct {
	StudentID uuid.UUID       `json:"student_id"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note"`
}

func (r AdminAdjustRequest) Validate() error {
	if r.Amount.IsZero() {
		return NewCreditError(ErrCodeInvalidAmount, "adjustment amount cannot be zero", ErrInvalidAmount)
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.StudentID, validation.Required),
		validation.Field(&r.Note, validation.Required, validation.Length(1, 200)),
	)
}

// =====================================================
// RESPONSE DTOs
// =====================================================

type BalanceResponse struct {
	StudentID uuid.UUID       `json:"student_id"`
	Balance   decimal.Decimal `json:"balance"`
}
