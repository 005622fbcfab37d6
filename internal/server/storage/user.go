package storage

import (
	"context"

	"github.com/akozhevnikov/coffeeshop/internal/models"
)

// UserStorage defines interface for user data persistence.
// Callers pass already-normalized values: email lowercased+trimmed,
// username trimmed. The implementation enforces uniqueness of both
// (last line of defense behind the service-level existence checks).
type UserStorage interface {
	// CreateUser creates a new user in the storage.
	// Returns ErrEmailTaken or ErrUsernameTaken on a uniqueness violation.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves user by normalized email.
	// Returns ErrUserNotFound if user doesn't exist.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByUsername retrieves user by trimmed username.
	// Returns ErrUserNotFound if user doesn't exist.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID retrieves user by ID.
	// Returns ErrUserNotFound if user doesn't exist.
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// UpdateUser updates username, email, password hash, role and phone.
	// Returns ErrUserNotFound if user doesn't exist,
	// ErrEmailTaken/ErrUsernameTaken on a uniqueness violation.
	UpdateUser(ctx context.Context, user *models.User) error

	// DeleteUser deletes user by ID.
	// Returns ErrUserNotFound if user doesn't exist.
	DeleteUser(ctx context.Context, userID string) error

	// ListUsers returns all users.
	ListUsers(ctx context.Context) ([]*models.User, error)
}
