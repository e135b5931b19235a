package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oakmont-labs/storefront-api/internal/store"
)

// uniqueViolationCode is the PostgreSQL error code for unique constraint
// violations.
const uniqueViolationCode = "23505"

// Constraint names from the schema migrations. mapUniqueViolation relies on
// these to attribute a violation to the offending user field.
const (
	constraintUsersEmail       = "users_email_key"
	constraintUsersUsername    = "users_username_key"
	constraintUsersPhoneNumber = "users_phone_number_key"
)

// isUniqueViolation checks whether err is a PostgreSQL unique constraint
// violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// mapUniqueViolation translates a unique violation into the store sentinel
// for the violated field. Unrecognized constraints map to the generic
// store.ErrDuplicate. Returns err unchanged when it is not a unique
// violation.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return err
	}

	switch {
	case pgErr.ConstraintName == constraintUsersEmail,
		strings.Contains(pgErr.ConstraintName, "email"):
		return store.ErrEmailExists
	case pgErr.ConstraintName == constraintUsersUsername,
		strings.Contains(pgErr.ConstraintName, "username"):
		return store.ErrUsernameExists
	case pgErr.ConstraintName == constraintUsersPhoneNumber,
		strings.Contains(pgErr.ConstraintName, "phone"):
		return store.ErrPhoneNumberExists
	default:
		return store.ErrDuplicate
	}
}
