package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/oakmont-labs/storefront-api/internal/api/shared"
	"github.com/oakmont-labs/storefront-api/internal/domain"
	"github.com/oakmont-labs/storefront-api/internal/service/auth"
	"github.com/oakmont-labs/storefront-api/internal/store"
)

// MapErrorToStatusCode maps service and store errors to HTTP status codes.
// Unknown errors map to 500 so internals never leak into responses.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, auth.ErrMissingCredentials):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrAccountDisabled),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrValidation),
		isValidationError(err):
		return http.StatusBadRequest
	case store.IsNotFoundError(err):
		return http.StatusNotFound
	case store.IsDuplicateError(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func isValidationError(err error) bool {
	var validationErr *domain.ValidationError
	return errors.As(err, &validationErr)
}

// HandleServiceError writes the response for an error returned by a service.
// Field-level validation failures (including duplicate unique fields wrapped
// as ValidationError) become a 400 with per-field details; everything else
// goes through MapErrorToStatusCode with a sanitized message for 500s.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		shared.RespondWithFieldErrors(w, r, []shared.FieldError{
			{Field: validationErr.Field, Message: validationErr.Message},
		})
		return
	}

	status := MapErrorToStatusCode(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	shared.RespondWithError(w, r, status, message)
}

// fieldErrorsFromValidator converts go-playground/validator struct
// validation failures into field-level errors using the json tag names
// registered on the validator.
func fieldErrorsFromValidator(err error) []shared.FieldError {
	var invalidErr *validator.InvalidValidationError
	if errors.As(err, &invalidErr) {
		return []shared.FieldError{{Field: "", Message: "invalid request"}}
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []shared.FieldError{{Field: "", Message: err.Error()}}
	}

	details := make([]shared.FieldError, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		details = append(details, shared.FieldError{
			Field:   fieldErr.Field(),
			Message: messageForTag(fieldErr),
		})
	}
	return details
}

// messageForTag renders a human-readable message for a failed validation tag.
func messageForTag(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fieldErr.Param() + " characters long"
	case "max":
		return "must be at most " + fieldErr.Param() + " characters long"
	default:
		return "invalid value"
	}
}
