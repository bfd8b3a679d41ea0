package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// ENTITY: Student
// =====================================================
// CreditBalance is denormalized from the credit ledger and must always
// equal the sum of the student's credit transactions; both are updated
// inside the same database transaction. Students are deactivated, never
// deleted.
type Student struct {
	ID            uuid.UUID       `json:"id"`
	Email         string          `json:"email"`
	PasswordHash  string          `json:"-"`
	FullName      string          `json:"full_name"`
	School        string          `json:"school"`
	CreditBalance decimal.Decimal `json:"credit_balance"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// =====================================================
// REQUEST DTOs
// =====================================================

type SignupRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	School   string `json:"school" binding:"required"`
}

func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
		validation.Field(&r.FullName, validation.Required, validation.Length(1, 120)),
		validation.Field(&r.School, validation.Required, validation.Length(1, 120)),
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

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// =====================================================
// RESPONSE DTOs
// =====================================================

type StudentResponse struct {
	ID            uuid.UUID       `json:"id"`
	Email         string          `json:"email"`
	FullName      string          `json:"full_name"`
	School        string          `json:"school"`
	CreditBalance decimal.Decimal `json:"credit_balance"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
}

type AuthResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	Student      StudentResponse `json:"student"`
}

// ToResponse converts Student to StudentResponse
func (s *Student) ToResponse() StudentResponse {
	return StudentResponse{
		ID:            s.ID,
		Email:         s.Email,
		FullName:      s.FullName,
		School:        s.School,
		CreditBalance: s.CreditBalance,
		Active:        s.Active,
		CreatedAt:     s.CreatedAt,
	}
}
