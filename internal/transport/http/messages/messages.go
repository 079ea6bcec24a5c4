package messages

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/chocobean/storefront/internal/service/models/message"
	"github.com/chocobean/storefront/internal/transport/http/dto"
	"github.com/chocobean/storefront/internal/transport/http/httperr"
	"github.com/chocobean/storefront/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

// service is an interface for the inbox service layer.
type service interface {
	Send(ctx context.Context, fromUserID int64, toUserID *int64, subject, content string) (message.Message, error)
	ForUser(ctx context.Context, userID int64) ([]message.Message, error)
	AdminInbox(ctx context.Context) ([]message.Message, error)
	MarkRead(ctx context.Context, id int64) error
}

// Send stores a new message; the sender is the verified caller.
func Send(w http.ResponseWriter, r *http.Request, service service) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		httperr.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req dto.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.WriteError(w, "failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for message send", "error", err)

		return
	}

	sent, err := service.Send(r.Context(), claims.UserID, req.ToUserID, req.Subject, req.Content)
	if err != nil {
		httperr.Respond(w, err)
		slog.Error("Error sending message", "error", err, "from_user_id", claims.UserID)

		return
	}

	httperr.WriteJSON(w, dto.MessageFromModel(sent))
}

// ForUser lists a user's messages; self or admin.
func ForUser(w http.ResponseWriter, r *http.Request, service service) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		httperr.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		httperr.WriteError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if userID != claims.UserID && !claims.IsAdmin {
		httperr.WriteError(w, "forbidden", http.StatusForbidden)
		return
	}

	msgs, err := service.ForUser(r.Context(), userID)
	if err != nil {
		httperr.Respond(w, err)
		slog.Error("Error getting user messages", "error", err, "user_id", userID)

		return
	}

	httperr.WriteJSON(w, dto.MessagesFromModels(msgs))
}

// AdminInbox lists messages addressed to the administrators; admin only,
// enforced by middleware.
func AdminInbox(w http.ResponseWriter, r *http.Request, service service) {
	msgs, err := service.AdminInbox(r.Context())
	if err != nil {
		httperr.Respond(w, err)
		slog.Error("Error getting admin messages", "error", err)

		return
	}

	httperr.WriteJSON(w, dto.MessagesFromModels(msgs))
}

// MarkRead flags a message as read.
func MarkRead(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "messageId"), 10, 64)
	if err != nil {
		httperr.WriteError(w, "invalid message id", http.StatusBadRequest)
		return
	}

	if err := service.MarkRead(r.Context(), id); err != nil {
		httperr.Respond(w, err)
		slog.Error("Error marking message read", "error", err, "message_id", id)

		return
	}

	w.WriteHeader(http.StatusOK)
}
