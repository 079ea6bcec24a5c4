package authn

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/chocobean/storefront/internal/service/services/authsvc"
	"github.com/chocobean/storefront/internal/transport/http/dto"
	"github.com/chocobean/storefront/internal/transport/http/httperr"
)

// service is an interface for the authentication service layer.
type service interface {
	Register(ctx context.Context, userName, email, password string) (authsvc.AuthResult, error)
	Login(ctx context.Context, email, password string) (authsvc.AuthResult, error)
}

// Signup creates a new account and returns a token for it.
func Signup(w http.ResponseWriter, r *http.Request, service service) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.WriteError(w, "failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for signup", "error", err)

		return
	}

	if req.UserName == "" || req.Email == "" || req.Password == "" {
		httperr.WriteError(w, "userName, email and password are required", http.StatusBadRequest)
		return
	}

	result, err := service.Register(r.Context(), req.UserName, req.Email, req.Password)
	if err != nil {
		httperr.Respond(w, err)
		slog.Error("Error registering user", "error", err)

		return
	}

	httperr.WriteJSON(w, dto.AuthResult{
		Token: result.Token,
		User:  dto.UserFromModel(result.User),
	})
}

// Login verifies credentials and returns a token.
func Login(w http.ResponseWriter, r *http.Request, service service) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.WriteError(w, "failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for login", "error", err)

		return
	}

	result, err := service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(w, err)
		slog.Error("Error logging in", "error", err)

		return
	}

	httperr.WriteJSON(w, dto.AuthResult{
		Token: result.Token,
		User:  dto.UserFromModel(result.User),
	})
}
