package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/oakmont-labs/storefront-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The caller must have hashed the
	// password already; Create never persists plaintext credentials.
	// Returns ErrEmailExists, ErrUsernameExists, or ErrPhoneNumberExists if
	// the corresponding unique field is already taken. Uniqueness is enforced
	// atomically by the storage layer, so concurrent creates with the same
	// unique field resolve to exactly one winner.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	// The returned user contains all fields except the plaintext password.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByUsername retrieves a user by their username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByIdentifier retrieves a user by email or username, trying the
	// email match first. Returns ErrUserNotFound if neither matches.
	GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error)

	// List returns all users ordered by creation time, newest first.
	List(ctx context.Context) ([]*domain.User, error)

	// Update modifies an existing user's details. The caller MUST provide a
	// complete user object including HashedPassword. If a new plaintext
	// Password is set, the caller must hash it into HashedPassword first.
	// Returns ErrUserNotFound if the user does not exist and the duplicate
	// errors from Create if updating into a taken unique field.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	// This operation is permanent and cannot be undone.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new UserStore instance that uses the provided
	// transaction. The transaction should be created and managed by the
	// caller (typically a service).
	WithTx(tx *sql.Tx) UserStore
}
