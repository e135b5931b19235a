package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/oakmont-labs/storefront-api/internal/store"
)

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{
		Code:           uniqueViolationCode,
		ConstraintName: constraint,
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, isUniqueViolation(uniqueViolation("users_email_key")))
	assert.True(t, isUniqueViolation(fmt.Errorf("wrapped: %w", uniqueViolation("users_email_key"))))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("plain error")))
	assert.False(t, isUniqueViolation(nil))
}

func TestMapUniqueViolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		constraint string
		want       error
	}{
		{name: "email constraint", constraint: "users_email_key", want: store.ErrEmailExists},
		{name: "username constraint", constraint: "users_username_key", want: store.ErrUsernameExists},
		{name: "phone constraint", constraint: "users_phone_number_key", want: store.ErrPhoneNumberExists},
		{name: "renamed email index", constraint: "idx_users_email_unique", want: store.ErrEmailExists},
		{name: "unknown constraint", constraint: "users_mystery_key", want: store.ErrDuplicate},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := mapUniqueViolation(uniqueViolation(tc.constraint))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestMapUniqueViolation_PassesThroughOtherErrors(t *testing.T) {
	t.Parallel()

	plain := errors.New("connection reset")
	assert.Same(t, plain, mapUniqueViolation(plain))

	fk := &pgconn.PgError{Code: foreignKeyViolationCode}
	assert.Equal(t, error(fk), mapUniqueViolation(fk))
}
