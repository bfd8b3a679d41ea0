package model

import "errors"

// Repository-level errors
var (
	ErrStudentNotFound    = errors.New("student not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Service-level (business logic) errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrStudentInactive    = errors.New("student account is deactivated")
	ErrUnauthorized       = errors.New("unauthorized access")
)
