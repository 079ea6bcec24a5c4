package httperr

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/chocobean/storefront/internal/auth"
	"github.com/chocobean/storefront/internal/service/models/message"
	"github.com/chocobean/storefront/internal/service/models/order"
	"github.com/chocobean/storefront/internal/service/models/product"
	"github.com/chocobean/storefront/internal/service/models/user"
	"github.com/chocobean/storefront/internal/service/services/ordersvc"
)

// Status maps a service layer error to an HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, user.ErrEmailTaken),
		errors.Is(err, ordersvc.ErrEmptyOrder),
		errors.Is(err, ordersvc.ErrTooManyLines),
		errors.Is(err, ordersvc.ErrInvalidQuantity),
		errors.Is(err, auth.ErrPasswordTooShort):
		return http.StatusBadRequest
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, message.ErrMessageNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes a service layer error as a JSON error response. Internal
// errors are not echoed to the client.
func Respond(w http.ResponseWriter, err error) {
	status := Status(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}

	WriteError(w, msg, status)
}

// WriteError writes a JSON error body with the given status.
func WriteError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": msg}); err != nil {
		slog.Error("Error writing error response", "error", err)
	}
}

// WriteJSON writes a JSON success body.
func WriteJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error writing response", "error", err)
	}
}
