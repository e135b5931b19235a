package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Password length policy. The upper bound is bcrypt's practical input limit.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// phonePattern matches an international phone number after normalization:
// an optional leading +, a non-zero first digit, 10-15 digits total.
var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{9,14}$`)

// phoneStripper removes the separators tolerated in user-entered numbers.
var phoneStripper = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

// User represents a registered customer account.
// It contains identity, contact, and authentication details.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	PhoneNumber    string    `json:"phone_number"`
	Password       string    `json:"-"` // Plaintext password, used temporarily during registration/updates
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	IsActive       bool      `json:"is_active"`
	IsStaff        bool      `json:"is_staff"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given contact details and password.
// It generates a new UUID for the user ID, normalizes the phone number,
// marks the account active, and sets the creation/update timestamps.
// Returns an error if validation fails.
//
// NOTE: This function only sets up the user structure with the plaintext
// password. The caller is responsible for hashing the password before
// storing the user.
func NewUser(email, username, phoneNumber, password string) (*User, error) {
	normalizedPhone, err := NormalizePhoneNumber(phoneNumber)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &User{
		ID:          uuid.New(),
		Email:       strings.TrimSpace(email),
		Username:    strings.TrimSpace(username),
		PhoneNumber: normalizedPhone,
		Password:    password, // Plaintext password - must be hashed before storage
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if u.Username == "" {
		return ErrEmptyUsername
	}
	if len(u.Username) > 150 {
		return ErrInvalidUsername
	}

	if !phonePattern.MatchString(u.PhoneNumber) {
		return ErrInvalidPhoneNumber
	}

	// Password validation
	// During user creation/update we need to validate the provided password
	if u.Password != "" {
		if len(u.Password) < MinPasswordLength {
			return ErrPasswordTooShort
		}
		if len(u.Password) > MaxPasswordLength {
			return ErrPasswordTooLong
		}
	} else {
		// When no plaintext password is provided, the user must have a hashed
		// password (the case for existing users loaded from the database).
		if u.HashedPassword == "" {
			return ErrEmptyPassword
		}
	}

	return nil
}

// PublicProfile is the minimal account projection returned by auth endpoints.
type PublicProfile struct {
	ID       uuid.UUID `json:"id"`
	UUID     uuid.UUID `json:"uuid"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
}

// Public returns the minimal projection of the user safe to expose to clients.
// The id and uuid fields carry the same value: the account's primary key is
// its external UUID.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:       u.ID,
		UUID:     u.ID,
		Email:    u.Email,
		Username: u.Username,
	}
}

// NormalizePhoneNumber strips spaces, dashes, and parentheses from a
// user-entered phone number and validates the result against the
// international format: optional leading +, then 10-15 digits with a
// non-zero first digit. Returns the normalized number or
// ErrInvalidPhoneNumber.
func NormalizePhoneNumber(raw string) (string, error) {
	phone := phoneStripper.Replace(strings.TrimSpace(raw))
	if !phonePattern.MatchString(phone) {
		return "", ErrInvalidPhoneNumber
	}
	return phone, nil
}

// validateEmailFormat performs basic validation of email format.
// Returns true if the email appears to be in a valid format:
// local part, a single @, and a domain containing an interior dot.
func validateEmailFormat(email string) bool {
	atIndex := strings.IndexByte(email, '@')
	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}
	if strings.IndexByte(email[atIndex+1:], '@') != -1 {
		return false
	}

	domainPart := email[atIndex+1:]
	if len(domainPart) < 3 { // minimum would be "a.b"
		return false
	}

	dotIndex := strings.IndexByte(domainPart, '.')
	return dotIndex > 0 && dotIndex < len(domainPart)-1
}
