package model

import "errors"

// Repository-level errors
var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Service-level (business logic) errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRestaurantInactive = errors.New("restaurant account is deactivated")
	ErrUnauthorized       = errors.New("unauthorized access")
)
