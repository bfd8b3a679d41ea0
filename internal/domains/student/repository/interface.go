package repository

import (
	"context"

	"biteclub-backend/internal/domains/student/model"

	"github.com/google/uuid"
)

type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Student, error)
	GetByEmail(ctx context.Context, email string) (*model.Student, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, school string, page, limit int) ([]model.Student, int, error)
}
