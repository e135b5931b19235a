package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakmont-labs/storefront-api/internal/domain"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("valid user", func(t *testing.T) {
		t.Parallel()

		user, err := domain.NewUser("jane@example.com", "jane", "+12025550147", "correct-horse-battery")
		require.NoError(t, err)

		assert.NotEqual(t, "", user.ID.String())
		assert.Equal(t, "jane@example.com", user.Email)
		assert.Equal(t, "jane", user.Username)
		assert.Equal(t, "+12025550147", user.PhoneNumber)
		assert.True(t, user.IsActive)
		assert.False(t, user.IsStaff)
		assert.False(t, user.CreatedAt.IsZero())
	})

	tests := []struct {
		name     string
		email    string
		username string
		phone    string
		password string
		wantErr  error
	}{
		{
			name:     "empty email",
			email:    "",
			username: "jane",
			phone:    "+12025550147",
			password: "correct-horse-battery",
			wantErr:  domain.ErrEmptyEmail,
		},
		{
			name:     "malformed email",
			email:    "not-an-email",
			username: "jane",
			phone:    "+12025550147",
			password: "correct-horse-battery",
			wantErr:  domain.ErrInvalidEmail,
		},
		{
			name:     "empty username",
			email:    "jane@example.com",
			username: "",
			phone:    "+12025550147",
			password: "correct-horse-battery",
			wantErr:  domain.ErrEmptyUsername,
		},
		{
			name:     "password too short",
			email:    "jane@example.com",
			username: "jane",
			phone:    "+12025550147",
			password: "short",
			wantErr:  domain.ErrPasswordTooShort,
		},
		{
			name:     "password too long",
			email:    "jane@example.com",
			username: "jane",
			phone:    "+12025550147",
			password: strings.Repeat("a", 73),
			wantErr:  domain.ErrPasswordTooLong,
		},
		{
			name:     "invalid phone",
			email:    "jane@example.com",
			username: "jane",
			phone:    "12345",
			password: "correct-horse-battery",
			wantErr:  domain.ErrInvalidPhoneNumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			user, err := domain.NewUser(tt.email, tt.username, tt.phone, tt.password)
			assert.Nil(t, user)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNormalizePhoneNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "formatted US number with country code",
			input: "+1 (123) 456-7890",
			want:  "+11234567890",
		},
		{
			name:  "formatted number without plus",
			input: "(123) 456-7890",
			want:  "1234567890",
		},
		{
			name:  "already normalized",
			input: "+4915123456789",
			want:  "+4915123456789",
		},
		{
			name:  "dashes only",
			input: "123-456-78901",
			want:  "12345678901",
		},
		{
			name:    "too short",
			input:   "+123456",
			wantErr: true,
		},
		{
			name:    "too long",
			input:   "+1234567890123456",
			wantErr: true,
		},
		{
			name:    "leading zero",
			input:   "0123456789012",
			wantErr: true,
		},
		{
			name:    "letters",
			input:   "+1 (800) CALL-NOW",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := domain.NormalizePhoneNumber(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidPhoneNumber)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserValidateStoredCredential(t *testing.T) {
	t.Parallel()

	// A user loaded from the database has no plaintext password; it must
	// carry a hashed credential instead.
	user, err := domain.NewUser("jane@example.com", "jane", "+12025550147", "correct-horse-battery")
	require.NoError(t, err)

	user.Password = ""
	user.HashedPassword = ""
	assert.ErrorIs(t, user.Validate(), domain.ErrEmptyPassword)

	user.HashedPassword = "$2a$10$abcdefghijklmnopqrstuv"
	assert.NoError(t, user.Validate())
}

func TestUserPublic(t *testing.T) {
	t.Parallel()

	user, err := domain.NewUser("jane@example.com", "jane", "+12025550147", "correct-horse-battery")
	require.NoError(t, err)

	profile := user.Public()
	assert.Equal(t, user.ID, profile.ID)
	assert.Equal(t, user.ID, profile.UUID)
	assert.Equal(t, user.Email, profile.Email)
	assert.Equal(t, user.Username, profile.Username)
}
