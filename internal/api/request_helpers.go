package api

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/oakmont-labs/storefront-api/internal/api/shared"
)

// maxRequestBodySize bounds request bodies to 1 MiB.
const maxRequestBodySize = 1 << 20

// NewValidator creates the request validator used by all handlers. Field
// names in validation errors come from the json tags, so clients see the
// wire names rather than Go identifiers.
func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// DecodeAndValidate decodes the request body into dst and runs struct
// validation on it. On failure it writes the error response and returns
// false; callers should return immediately.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, validate *validator.Validate, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request body")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		shared.RespondWithFieldErrors(w, r, fieldErrorsFromValidator(err))
		return false
	}

	return true
}
