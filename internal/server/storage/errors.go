package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken indicates that a user with this email already exists
	ErrEmailTaken = errors.New("email already registered")

	// ErrUsernameTaken indicates that a user with this username already exists
	ErrUsernameTaken = errors.New("username already registered")

	// ErrOrderNotFound indicates that order was not found in storage
	ErrOrderNotFound = errors.New("order not found")
)
