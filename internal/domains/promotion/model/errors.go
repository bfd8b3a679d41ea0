package model

import "errors"

// =====================================================
// CUSTOM ERROR CODES
// =====================================================
const (
	ErrCodeInvalidSubtotal = "PRM001"
	ErrCodeInvalidConfig   = "PRM002"
)

// =====================================================
// ERROR DEFINITIONS
// =====================================================
var (
	ErrInvalidSubtotal = errors.New("subtotal must be a non-negative amount")
	ErrInvalidConfig   = errors.New("invalid promotion configuration")
)

// =====================================================
// CUSTOM ERROR TYPE
// =====================================================
type PromotionError struct {
	Code    string
	Message string
	Err     error
}

func (e *PromotionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *PromotionError) Unwrap() error {
	return e.Err
}

// NewPromotionError creates a new PromotionError
func NewPromotionError(code, message string, err error) *PromotionError {
	return &PromotionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
