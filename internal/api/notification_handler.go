package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/oakmont-labs/storefront-api/internal/api/shared"
	"github.com/oakmont-labs/storefront-api/internal/service/auth"
	"github.com/oakmont-labs/storefront-api/internal/store"
)

// NotificationHandler serves the authenticated user's notification feed.
type NotificationHandler struct {
	notifications store.NotificationStore
}

// NewNotificationHandler creates a NotificationHandler with the given store.
func NewNotificationHandler(notifications store.NotificationStore) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List handles GET /api/notifications, returning the authenticated user's
// notifications newest first.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, auth.ErrMissingToken.Error())
		return
	}

	notifications, err := h.notifications.ListByUser(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	responses := make([]NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		responses = append(responses, NewNotificationResponse(notification))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// MarkRead handles POST /api/notifications/{id}/read. Only the owning user
// may mark a notification; anyone else sees a 404 so notification IDs leak
// nothing.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, auth.ErrMissingToken.Error())
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid notification id")
		return
	}

	notification, err := h.notifications.GetByID(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	if notification.UserID != userID {
		shared.RespondWithError(w, r, http.StatusNotFound, store.ErrNotificationNotFound.Error())
		return
	}

	updated, err := h.notifications.MarkAsRead(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewNotificationResponse(updated))
}
