package model

import "errors"

// =====================================================
// CUSTOM ERROR CODES
// =====================================================
const (
	ErrCodeItemNotFound        = "MNU001"
	ErrCodeModifierNotFound    = "MNU002"
	ErrCodeItemUnavailable     = "MNU003"
	ErrCodeModifierUnavailable = "MNU004"
	ErrCodeInvalidSelection    = "MNU005"
)

// =====================================================
// ERROR DEFINITIONS
// =====================================================
var (
	ErrItemNotFound        = errors.New("menu item not found")
	ErrModifierNotFound    = errors.New("modifier not found")
	ErrItemUnavailable     = errors.New("menu item is unavailable")
	ErrModifierUnavailable = errors.New("modifier is unavailable")
	ErrInvalidSelection    = errors.New("invalid modifier selection")
	ErrUnauthorized        = errors.New("unauthorized access")
)

// =====================================================
// CUSTOM ERROR TYPE
// =====================================================
type MenuError struct {
	Code    string
	Message string
	Err     error
}

func (e *MenuError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *MenuError) Unwrap() error {
	return e.Err
}

// NewMenuError creates a new MenuError
func NewMenuError(code, message string, err error) *MenuError {
	return &MenuError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
