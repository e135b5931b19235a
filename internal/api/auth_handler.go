package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/oakmont-labs/storefront-api/internal/api/shared"
	"github.com/oakmont-labs/storefront-api/internal/domain"
	"github.com/oakmont-labs/storefront-api/internal/platform/logger"
	"github.com/oakmont-labs/storefront-api/internal/service"
	"github.com/oakmont-labs/storefront-api/internal/service/auth"
)

// AuthHandler serves the registration, login, and token refresh endpoints.
type AuthHandler struct {
	userService *service.UserService
	jwtService  auth.JWTService
	validate    *validator.Validate
}

// NewAuthHandler creates an AuthHandler with the given dependencies.
func NewAuthHandler(userService *service.UserService, jwtService auth.JWTService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		validate:    validate,
	}
}

// Register handles POST /api/auth/register. A successful registration
// returns 201 with the public profile and a fresh token pair, so the client
// is signed in immediately.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !DecodeAndValidate(w, r, h.validate, &req) {
		return
	}

	user, err := h.userService.Register(r.Context(), service.RegistrationInput{
		Email:           req.Email,
		Username:        req.Username,
		PhoneNumber:     req.PhoneNumber,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	tokens, err := h.tokenResponse(w, r, user)
	if err != nil {
		return // tokenResponse already wrote the error
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, tokens)
}

// Login handles POST /api/auth/login. The email field also accepts a
// username as the identifier.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !DecodeAndValidate(w, r, h.validate, &req) {
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	tokens, err := h.tokenResponse(w, r, user)
	if err != nil {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tokens)
}

// Refresh handles POST /api/auth/refresh, rotating the token pair from a
// valid refresh token.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if !DecodeAndValidate(w, r, h.validate, &req) {
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	// The account must still exist and be active to rotate tokens.
	user, err := h.userService.Get(r.Context(), claims.UserID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "invalid refresh token")
		return
	}
	if !user.IsActive {
		shared.RespondWithError(w, r, http.StatusForbidden, auth.ErrAccountDisabled.Error())
		return
	}

	tokens, err := h.tokenResponse(w, r, user)
	if err != nil {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tokens)
}

// tokenResponse issues a fresh access/refresh pair for the user. On failure
// it writes a 500 and returns the error so callers can bail out.
func (h *AuthHandler) tokenResponse(w http.ResponseWriter, r *http.Request, user *domain.User) (*TokenResponse, error) {
	log := logger.FromContextOrDefault(r.Context(), slog.Default())

	accessToken, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		log.Error("generating access token failed",
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "internal server error")
		return nil, err
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(r.Context(), user.ID)
	if err != nil {
		log.Error("generating refresh token failed",
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "internal server error")
		return nil, err
	}

	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(h.jwtService.AccessTokenLifetime().Seconds()),
		User:         user.Public(),
	}, nil
}
