package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrInvalidRefreshToken indicates the refresh token is invalid
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrExpiredRefreshToken indicates the refresh token has expired
	ErrExpiredRefreshToken = errors.New("refresh token has expired")

	// ErrWrongTokenType indicates a token was presented in the wrong context,
	// e.g. an access token used where a refresh token is required
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrMissingCredentials indicates the login request lacked an email or password
	ErrMissingCredentials = errors.New("email and password are required")

	// ErrInvalidCredentials indicates the identifier/password pair did not
	// match any account
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountDisabled indicates the credentials were correct but the
	// account is deactivated
	ErrAccountDisabled = errors.New("account is disabled")
)
