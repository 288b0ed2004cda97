package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/nevo-app/nevo-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// It handles domain validation and password hashing internally.
	// Returns ErrEmailExists if the email is already taken.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	// The returned user contains all fields except the plaintext password.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateLearningProfile sets the denormalized learning profile code on
	// the user and marks the assessment as completed.
	// Returns ErrUserNotFound if the user does not exist.
	UpdateLearningProfile(ctx context.Context, id uuid.UUID, code domain.LearningProfileCode) error

	// CountByRole returns the number of users with the given role.
	CountByRole(ctx context.Context, role domain.UserRole) (int, error)

	// WithTx returns a new UserStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) UserStore
}
