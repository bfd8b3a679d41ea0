package repository

import (
	"context"
	"errors"
	"fmt"

	"biteclub-backend/internal/domains/credit/model"
	"biteclub-backend/internal/infrastructure/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================
type postgresCreditRepository struct {
	db *database.PostgresDB
}

func NewPostgresCreditRepository(db *database.PostgresDB) CreditRepository {
	return &postgresCreditRepository{db: db}
}

func (r *postgresCreditRepository) Append(ctx context.Context, entry *model.CreditTransaction) error {
	if !model.IsValidType(entry.Type) {
		return model.ErrInvalidType
	}

	// The balance guard in the WHERE clause is what enforces the
	// non-negative invariant; 0 rows means the spend would overdraw.
	balanceQuery := `
		UPDATE students
		SET credit_balance = credit_balance + $2, updated_at = NOW()
		WHERE id = $1 AND credit_balance + $2 >= 0
	`

	result, err := r.db.Querier(ctx).Exec(ctx, balanceQuery, entry.StudentID, entry.Amount)
	if err != nil {
		return fmt.Errorf("failed to apply balance delta: %w", err)
	}
	if result.RowsAffected() == 0 {
		var exists bool
		if err := r.db.Querier(ctx).QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM students WHERE id = $1)`, entry.StudentID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check student: %w", err)
		}
		if !exists {
			return model.ErrStudentNotFound
		}
		return model.ErrInsufficientCredit
	}

	insertQuery := `
		INSERT INTO credit_transactions (id, student_id, type, amount, order_id, note, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err = r.db.Querier(ctx).QueryRow(ctx, insertQuery,
		entry.ID,
		entry.StudentID,
		entry.Type,
		entry.Amount,
		entry.OrderID,
		entry.Note,
		entry.CreatedBy,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert credit transaction: %w", err)
	}

	return nil
}

func (r *postgresCreditRepository) GetBalanceForUpdate(ctx context.Context, studentID uuid.UUID) (decimal.Decimal, error) {
	query := `SELECT credit_balance FROM students WHERE id = $1 FOR UPDATE`

	var balance decimal.Decimal
	err := r.db.Querier(ctx).QueryRow(ctx, query, studentID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, model.ErrStudentNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to lock student balance: %w", err)
	}

	return balance, nil
}

func (r *postgresCreditRepository) GetBalance(ctx context.Context, studentID uuid.UUID) (decimal.Decimal, error) {
	query := `SELECT credit_balance FROM students WHERE id = $1`

	var balance decimal.Decimal
	err := r.db.Querier(ctx).QueryRow(ctx, query, studentID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, model.ErrStudentNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to get student balance: %w", err)
	}

	return balance, nil
}

func (r *postgresCreditRepository) ListByStudent(ctx context.Context, studentID uuid.UUID, page, limit int) ([]model.CreditTransaction, int, error) {
	offset := (page - 1) * limit

	var total int
	if err := r.db.Querier(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM credit_transactions WHERE student_id = $1`, studentID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count credit transactions: %w", err)
	}

	query := `
		SELECT id, student_id, type, amount, order_id, note, created_by, created_at
		FROM credit_transactions
		WHERE student_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Querier(ctx).Query(ctx, query, studentID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list credit transactions: %w", err)
	}
	defer rows.Close()

	var entries []model.CreditTransaction
	for rows.Next() {
		var entry model.CreditTransaction
		err := rows.Scan(
			&entry.ID,
			&entry.StudentID,
			&entry.Type,
			&entry.Amount,
			&entry.OrderID,
			&entry.Note,
			&entry.CreatedBy,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan credit transaction: %w", err)
		}
		entries = append(entries, entry)
	}

	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("error iterating credit transactions: %w", rows.Err())
	}

	return entries, total, nil
}
