package model

import "errors"

// =====================================================
// CUSTOM ERROR CODES
// =====================================================
const (
	ErrCodeInsufficientCredit = "CRD001"
	ErrCodeInvalidAmount      = "CRD002"
	ErrCodeInvalidType        = "CRD003"
)

// =====================================================
// ERROR DEFINITIONS
// =====================================================
var (
	ErrInsufficientCredit = errors.New("insufficient credit balance")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidType        = errors.New("invalid transaction type")
	ErrStudentNotFound    = errors.New("student not found")
	ErrUnauthorized       = errors.New("unauthorized access")
)

// =====================================================
// CUSTOM ERROR TYPE
// =====================================================
type CreditError struct {
	Code    string
	Message string
	Err     error
}

func (e *CreditError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CreditError) Unwrap() error {
	return e.Err
}

// NewCreditError creates a new CreditError
func NewCreditError(code, message string, err error) *CreditError {
	return &CreditError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
