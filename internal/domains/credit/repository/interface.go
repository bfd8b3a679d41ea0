package repository

import (
	"context"

	"biteclub-backend/internal/domains/credit/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditRepository appends to the ledger and keeps the denormalized
// balance in sync. Append runs both writes; callers wrap it in
// WithinTransaction together with whatever business write caused it.
type CreditRepository interface {
	// Append inserts the ledger row and applies its amount to
	// students.credit_balance. Returns ErrInsufficientCredit when the
	// resulting balance would be negative.
	Append(ctx context.Context, entry *model.CreditTransaction) error
	// GetBalanceForUpdate reads the balance under a row lock. Only
	// meaningful inside a transaction.
	GetBalanceForUpdate(ctx context.Context, studentID uuid.UUID) (decimal.Decimal, error)
	GetBalance(ctx context.Context, studentID uuid.UUID) (decimal.Decimal, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID, page, limit int) ([]model.CreditTransaction, int, error)
}
