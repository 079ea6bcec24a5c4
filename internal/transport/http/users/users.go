package users

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/chocobean/storefront/internal/auth"
	"github.com/chocobean/storefront/internal/service/models/user"
	"github.com/chocobean/storefront/internal/transport/http/dto"
	"github.com/chocobean/storefront/internal/transport/http/httperr"
	"github.com/chocobean/storefront/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

// service is an interface for the user service layer.
type service interface {
	Get(ctx context.Context, id int64) (*user.User, error)
	GetAll(ctx context.Context) ([]user.User, error)
	Delete(ctx context.Context, id int64) error
	UpdateStatus(ctx context.Context, id int64, status string) (*user.User, error)
	GetProfile(ctx context.Context, userID int64) (*user.Profile, error)
	UpsertProfile(ctx context.Context, userID int64, p user.Profile) (user.Profile, error)
}

// subject authorizes a self-or-admin route and returns the target user id.
func subject(w http.ResponseWriter, r *http.Request) (int64, *auth.Claims, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		httperr.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return 0, nil, false
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		httperr.WriteError(w, "invalid user id", http.StatusBadRequest)
		return 0, nil, false
	}

	if id != claims.UserID && !claims.IsAdmin {
		httperr.WriteError(w, "forbidden", http.StatusForbidden)
		return 0, nil, false
	}

	return id, claims, true
}

// Get returns one user; callers may only read themselves unless admin.
func Get(w http.ResponseWriter, r *http.Request, service service) {
	id, _, ok := subject(w, r)
	if !ok {
		return
	}

	u, err := service.Get(r.Context(), id)
	if err != nil {
		httperr.Respond(w, err)
		slog.Error("Error getting user", "error", err, "user_id", id)

		return
	}

	httperr.WriteJSON(w, dto.UserFromModel(*u))
}

// GetAll lists every account; admin only, enforced by middleware.
func GetAll(w http.ResponseWriter, r *http.Request, service service) {
	users, err := service.GetAll(r.Context())
	if err != nil {
		httperr.Respond(w, err)
		slog.Error("Error getting users", "error", err)

		return
	}

	httperr.WriteJSON(w, dto.UsersFromModels(users))
}

// Delete removes an account; self or admin.
func Delete(w http.ResponseWriter, r *http.Request, service service) {
	id, _, ok := subject(w, r)
	if !ok {
		return
	}

	if err := service.Delete(r.Context(), id); err != nil {
		httperr.Respond(w, err)
		slog.Error("Error deleting user", "error", err, "user_id", id)

		return
	}

	w.WriteHeader(http.StatusOK)
}

// UpdateStatus overwrites a user's free-text status; admin only, enforced by
// middleware.
func UpdateStatus(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		httperr.WriteError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var status string
	if err := json.NewDecoder(r.Body).Decode(&status); err != nil {
		httperr.WriteError(w, "failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for user status update", "error", err)

		return
	}

	u, err := service.UpdateStatus(r.Context(), id, status)
	if err != nil {
		httperr.Respond(w, err)
		slog.Error("Error updating user status", "error", err, "user_id", id)

		return
	}

	httperr.WriteJSON(w, dto.UserFromModel(*u))
}

// GetProfile returns a user's profile, or an empty object when none was
// saved yet.
func GetProfile(w http.ResponseWriter, r *http.Request, service service) {
	id, _, ok := subject(w, r)
	if !ok {
		return
	}

	p, err := service.GetProfile(r.Context(), id)
	if err != nil {
		httperr.Respond(w, err)
		slog.Error("Error getting user profile", "error", err, "user_id", id)

		return
	}

	httperr.WriteJSON(w, dto.ProfileFromModel(p))
}

// UpsertProfile creates or replaces a user's profile; self or admin.
func UpsertProfile(w http.ResponseWriter, r *http.Request, service service) {
	id, _, ok := subject(w, r)
	if !ok {
		return
	}

	var req dto.Profile
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.WriteError(w, "failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for profile upsert", "error", err)

		return
	}

	saved, err := service.UpsertProfile(r.Context(), id, req.ToModel())
	if err != nil {
		httperr.Respond(w, err)
		slog.Error("Error upserting user profile", "error", err, "user_id", id)

		return
	}

	httperr.WriteJSON(w, dto.ProfileFromModel(&saved))
}
