package mocks

import (
	"errors"

	"github.com/oakmont-labs/storefront-api/internal/service/auth"
)

// MockPasswordHasher implements auth.PasswordHasher and
// auth.PasswordVerifier for testing without paying bcrypt's cost.
// Hash prefixes the plaintext so tests can assert the stored credential
// is not the plaintext itself.
type MockPasswordHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	// ShouldSucceed controls the default Compare behavior.
	ShouldSucceed bool
	HashErr       error
}

// Ensure MockPasswordHasher implements both interfaces
var (
	_ auth.PasswordHasher   = (*MockPasswordHasher)(nil)
	_ auth.PasswordVerifier = (*MockPasswordHasher)(nil)
)

// Hash implements the auth.PasswordHasher interface.
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	if m.HashErr != nil {
		return "", m.HashErr
	}
	return "hashed:" + password, nil
}

// Compare implements the auth.PasswordVerifier interface.
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.ShouldSucceed {
		return nil
	}
	if hashedPassword == "hashed:"+password {
		return nil
	}
	return errors.New("password mismatch")
}
