package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/oakmont-labs/storefront-api/internal/domain"
	"github.com/oakmont-labs/storefront-api/internal/platform/logger"
	"github.com/oakmont-labs/storefront-api/internal/service/auth"
	"github.com/oakmont-labs/storefront-api/internal/store"
)

// RegistrationInput carries the fields a new account is created from.
// PasswordConfirm must match Password exactly.
type RegistrationInput struct {
	Email           string
	Username        string
	PhoneNumber     string
	Password        string
	PasswordConfirm string
}

// UpdateInput carries the optional fields an account update may change.
// Nil fields are left untouched.
type UpdateInput struct {
	Email       *string
	Username    *string
	PhoneNumber *string
	Password    *string
	IsActive    *bool
	IsStaff     *bool
}

// AfterRegisterFunc runs after a registration commits. Failures inside the
// hook must not fail the registration; implementations handle their own
// errors.
type AfterRegisterFunc func(ctx context.Context, user *domain.User)

// UserService implements account registration, authentication, and
// administrative account management.
type UserService struct {
	userStore     store.UserStore
	hasher        auth.PasswordHasher
	verifier      auth.PasswordVerifier
	afterRegister AfterRegisterFunc

	// db, when set, makes multi-statement operations run inside a
	// transaction via the store's WithTx binding.
	db *sql.DB
}

// NewUserService creates a UserService with the given dependencies.
// The afterRegister hook is optional.
func NewUserService(userStore store.UserStore, hasher auth.PasswordHasher, verifier auth.PasswordVerifier, afterRegister AfterRegisterFunc) *UserService {
	return &UserService{
		userStore:     userStore,
		hasher:        hasher,
		verifier:      verifier,
		afterRegister: afterRegister,
	}
}

// WithTransactions returns the service configured to run read-modify-write
// operations inside database transactions on the given handle.
func (s *UserService) WithTransactions(db *sql.DB) *UserService {
	s.db = db
	return s
}

// Register creates a new active account from the input. Validation and
// uniqueness failures come back as *domain.ValidationError carrying the
// offending field so the API layer can report per-field errors.
func (s *UserService) Register(ctx context.Context, input RegistrationInput) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, slog.Default())

	if input.Password != input.PasswordConfirm {
		return nil, domain.NewValidationError("password_confirm", "passwords do not match", domain.ErrPasswordMismatch)
	}

	user, err := domain.NewUser(input.Email, input.Username, input.PhoneNumber, input.Password)
	if err != nil {
		return nil, fieldError(err)
	}

	hashedPassword, err := s.hasher.Hash(user.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	user.HashedPassword = hashedPassword
	user.Password = ""

	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, fieldError(err)
	}

	log.Info("user registered",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))

	if s.afterRegister != nil {
		s.afterRegister(ctx, user)
	}

	return user, nil
}

// Authenticate verifies an identifier/password pair and returns the matching
// account. The identifier may be an email address or a username; lookup
// tries email first. Unknown accounts and wrong passwords both come back as
// auth.ErrInvalidCredentials so callers cannot probe which part was wrong.
// A correct password on a deactivated account returns auth.ErrAccountDisabled.
func (s *UserService) Authenticate(ctx context.Context, identifier, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, slog.Default())

	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, auth.ErrMissingCredentials
	}

	user, err := s.userStore.GetByIdentifier(ctx, identifier)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up account: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("password comparison failed", slog.String("user_id", user.ID.String()))
		return nil, auth.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, auth.ErrAccountDisabled
	}

	return user, nil
}

// Get returns the account with the given ID.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userStore.GetByID(ctx, id)
}

// List returns all accounts, most recently created first.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.userStore.List(ctx)
}

// Update applies the non-nil fields of input to the account with the given
// ID. A new password is re-validated against the password policy and hashed
// before storage. With a transactional handle configured, the read and the
// write run in a single transaction so concurrent updates cannot interleave.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*domain.User, error) {
	if s.db == nil {
		return s.update(ctx, s.userStore, id, input)
	}

	var updated *domain.User
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var txErr error
		updated, txErr = s.update(ctx, s.userStore.WithTx(tx), id, input)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *UserService) update(ctx context.Context, users store.UserStore, id uuid.UUID, input UpdateInput) (*domain.User, error) {
	user, err := users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		user.Email = strings.TrimSpace(*input.Email)
	}
	if input.Username != nil {
		user.Username = strings.TrimSpace(*input.Username)
	}
	if input.PhoneNumber != nil {
		phone, err := domain.NormalizePhoneNumber(*input.PhoneNumber)
		if err != nil {
			return nil, fieldError(err)
		}
		user.PhoneNumber = phone
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.IsStaff != nil {
		user.IsStaff = *input.IsStaff
	}
	if input.Password != nil {
		user.Password = *input.Password
	}

	if err := user.Validate(); err != nil {
		return nil, fieldError(err)
	}

	if input.Password != nil {
		hashedPassword, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		user.HashedPassword = hashedPassword
	}
	user.Password = ""

	if err := users.Update(ctx, user); err != nil {
		return nil, fieldError(err)
	}

	return user, nil
}

// Delete removes the account with the given ID.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.userStore.Delete(ctx, id)
}

// fieldError maps domain validation sentinels and store uniqueness
// violations to field-level validation errors. Errors with no field
// mapping pass through unchanged.
func fieldError(err error) error {
	switch {
	case errors.Is(err, domain.ErrEmptyEmail), errors.Is(err, domain.ErrInvalidEmail):
		return domain.NewValidationError("email", "invalid email address", err)
	case errors.Is(err, domain.ErrEmptyUsername), errors.Is(err, domain.ErrInvalidUsername):
		return domain.NewValidationError("username", "invalid username", err)
	case errors.Is(err, domain.ErrInvalidPhoneNumber):
		return domain.NewValidationError("phone_number", "invalid phone number format", err)
	case errors.Is(err, domain.ErrPasswordTooShort):
		return domain.NewValidationError("password", "password must be at least 8 characters long", err)
	case errors.Is(err, domain.ErrPasswordTooLong):
		return domain.NewValidationError("password", "password must be at most 72 characters long", err)
	case errors.Is(err, domain.ErrEmptyPassword):
		return domain.NewValidationError("password", "password cannot be empty", err)
	case errors.Is(err, store.ErrEmailExists):
		return domain.NewValidationError("email", "an account with this email already exists", err)
	case errors.Is(err, store.ErrUsernameExists):
		return domain.NewValidationError("username", "this username is already taken", err)
	case errors.Is(err, store.ErrPhoneNumberExists):
		return domain.NewValidationError("phone_number", "an account with this phone number already exists", err)
	default:
		return err
	}
}
