package repository

import (
	"context"
	"errors"
	"fmt"

	"biteclub-backend/internal/domains/student/model"
	"biteclub-backend/internal/infrastructure/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================
type postgresStudentRepository struct {
	db *database.PostgresDB
}

func NewPostgresStudentRepository(db *database.PostgresDB) StudentRepository {
	return &postgresStudentRepository{db: db}
}

func (r *postgresStudentRepository) Create(ctx context.Context, student *model.Student) error {
	query := `
		INSERT INTO students (
			id, email, password_hash, full_name, school, credit_balance, active
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := r.db.Querier(ctx).QueryRow(ctx, query,
		student.ID,
		student.Email,
		student.PasswordHash,
		student.FullName,
		student.School,
		student.CreditBalance,
		student.Active,
	).Scan(&student.CreatedAt, &student.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to create student: %w", err)
	}

	return nil
}

func (r *postgresStudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	query := `
		SELECT id, email, password_hash, full_name, school, credit_balance, active, created_at, updated_at
		FROM students
		WHERE id = $1
	`

	var student model.Student
	err := r.db.Querier(ctx).QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.Email,
		&student.PasswordHash,
		&student.FullName,
		&student.School,
		&student.CreditBalance,
		&student.Active,
		&student.CreatedAt,
		&student.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student by id: %w", err)
	}

	return &student, nil
}

func (r *postgresStudentRepository) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	query := `
		SELECT id, email, password_hash, full_name, school, credit_balance, active, created_at, updated_at
		FROM students
		WHERE email = $1
	`

	var student model.Student
	err := r.db.Querier(ctx).QueryRow(ctx, query, email).Scan(
		&student.ID,
		&student.Email,
		&student.PasswordHash,
		&student.FullName,
		&student.School,
		&student.CreditBalance,
		&student.Active,
		&student.CreatedAt,
		&student.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student by email: %w", err)
	}

	return &student, nil
}

func (r *postgresStudentRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE students
		SET active = FALSE, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Querier(ctx).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate student: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrStudentNotFound
	}

	return nil
}

func (r *postgresStudentRepository) List(ctx context.Context, school string, page, limit int) ([]model.Student, int, error) {
	offset := (page - 1) * limit

	query := `
		SELECT id, email, password_hash, full_name, school, credit_balance, active, created_at, updated_at
		FROM students
		WHERE 1=1
	`
	countQuery := `SELECT COUNT(*) FROM students WHERE 1=1`
	args := []interface{}{}
	countArgs := []interface{}{}

	if school != "" {
		query += ` AND school = $1`
		countQuery += ` AND school = $1`
		args = append(args, school)
		countArgs = append(countArgs, school)
	}

	query += ` ORDER BY created_at DESC LIMIT $` + fmt.Sprintf("%d", len(args)+1) + ` OFFSET $` + fmt.Sprintf("%d", len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := r.db.Querier(ctx).QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count students: %w", err)
	}

	rows, err := r.db.Querier(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		var student model.Student
		err := rows.Scan(
			&student.ID,
			&student.Email,
			&student.PasswordHash,
			&student.FullName,
			&student.School,
			&student.CreditBalance,
			&student.Active,
			&student.CreatedAt,
			&student.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, student)
	}

	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("error iterating students: %w", rows.Err())
	}

	return students, total, nil
}
