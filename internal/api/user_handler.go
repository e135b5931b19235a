package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/oakmont-labs/storefront-api/internal/api/shared"
	"github.com/oakmont-labs/storefront-api/internal/service"
	"github.com/oakmont-labs/storefront-api/internal/store"
)

// UserHandler serves the staff-only account management endpoints.
type UserHandler struct {
	userService *service.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a UserHandler with the given dependencies.
func NewUserHandler(userService *service.UserService, validate *validator.Validate) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validate,
	}
}

// List handles GET /api/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewUserResponse(user))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// Create handles POST /api/users. Unlike self-registration, duplicate
// unique fields come back as 409 rather than field errors.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !DecodeAndValidate(w, r, h.validate, &req) {
		return
	}

	user, err := h.userService.Register(r.Context(), service.RegistrationInput{
		Email:           req.Email,
		Username:        req.Username,
		PhoneNumber:     req.PhoneNumber,
		Password:        req.Password,
		PasswordConfirm: req.Password,
	})
	if err != nil {
		if store.IsDuplicateError(err) {
			shared.RespondWithError(w, r, http.StatusConflict, "account with this email, username, or phone number already exists")
			return
		}
		HandleServiceError(w, r, err)
		return
	}

	// Apply flags the self-registration path doesn't expose.
	if req.IsActive != nil || req.IsStaff != nil {
		user, err = h.userService.Update(r.Context(), user.ID, service.UpdateInput{
			IsActive: req.IsActive,
			IsStaff:  req.IsStaff,
		})
		if err != nil {
			HandleServiceError(w, r, err)
			return
		}
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewUserResponse(user))
}

// Get handles GET /api/users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}

	user, err := h.userService.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// Update handles PUT and PATCH /api/users/{id}. Both apply partial updates:
// absent fields keep their stored values.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !DecodeAndValidate(w, r, h.validate, &req) {
		return
	}

	user, err := h.userService.Update(r.Context(), id, service.UpdateInput{
		Email:       req.Email,
		Username:    req.Username,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
		IsActive:    req.IsActive,
		IsStaff:     req.IsStaff,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// Delete handles DELETE /api/users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// userID parses the {id} path parameter. On failure it writes a 400 and
// returns false.
func (h *UserHandler) userID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid user id")
		return uuid.Nil, false
	}
	return id, true
}
