package model

import "errors"

// =====================================================
// CUSTOM ERROR CODES
// =====================================================
const (
	ErrCodeValidation         = "ORD001"
	ErrCodeInsufficientCredit = "ORD002"
	ErrCodeInvalidTransition  = "ORD003"
	ErrCodeConcurrency        = "ORD004"
	ErrCodeNotFound           = "ORD005"
	ErrCodeRestaurantInactive = "ORD006"
	ErrCodeItemUnavailable    = "ORD007"
)

// =====================================================
// ERROR DEFINITIONS
// =====================================================
var (
	ErrValidation         = errors.New("invalid checkout request")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrVersionMismatch    = errors.New("order was modified concurrently")
	ErrOrderNotFound      = errors.New("order not found")
	ErrRestaurantInactive = errors.New("restaurant is not accepting orders")
	ErrUnauthorized       = errors.New("unauthorized access")
)

// =====================================================
// CUSTOM ERROR TYPE
// =====================================================
type OrderError struct {
	Code    string
	Message string
	Err     error
}

func (e *OrderError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *OrderError) Unwrap() error {
	return e.Err
}

// NewOrderError creates a new OrderError
func NewOrderError(code, message string, err error) *OrderError {
	return &OrderError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
