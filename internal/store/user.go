package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/promanage/promanage-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user must already carry a
	// hashed password; stores never see plaintext.
	// Returns ErrEmailExists if the email is already taken.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address. The comparison is
	// case-insensitive.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update persists changes to an existing user's name, email, and
	// password hash.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists if updating to an email that already exists.
	Update(ctx context.Context, user *domain.User) error

	// SearchEmailsByPrefix returns the emails of users whose email starts
	// with the given prefix, compared case-insensitively. The user with
	// excludeID (normally the caller) is omitted from the results.
	SearchEmailsByPrefix(ctx context.Context, prefix string, excludeID uuid.UUID) ([]string, error)
}
