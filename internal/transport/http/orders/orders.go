package orders

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/chocobean/storefront/internal/service/models/order"
	"github.com/chocobean/storefront/internal/service/models/orderitem"
	"github.com/chocobean/storefront/internal/transport/http/dto"
	"github.com/chocobean/storefront/internal/transport/http/httperr"
	"github.com/chocobean/storefront/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/schema"
)

// service is an interface for the order workflow service layer.
type service interface {
	Create(ctx context.Context, userID int64, lines []orderitem.NewLine) (order.Order, error)
	Mine(ctx context.Context, userID int64) ([]order.Order, error)
	All(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	Get(ctx context.Context, orderID, userID int64) (order.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, rawStatus string) (order.Order, error)
	Delete(ctx context.Context, orderID, userID int64) error
}

const defaultListLimit = 100

// Create handles order placement. The owner comes from the verified token
// and the total price and status are always computed server-side.
func Create(w http.ResponseWriter, r *http.Request, service service) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		httperr.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.WriteError(w, "failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for order create", "error", err)

		return
	}

	created, err := service.Create(r.Context(), claims.UserID, req.Items)
	if err != nil {
		httperr.Respond(w, err)
		slog.Error("Error creating order", "error", err, "user_id", claims.UserID)

		return
	}

	httperr.WriteJSON(w, dto.OrderFromModel(created))
}

// Mine lists the caller's own orders, newest first.
func Mine(w http.ResponseWriter, r *http.Request, service service) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		httperr.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	orders, err := service.Mine(r.Context(), claims.UserID)
	if err != nil {
		httperr.Respond(w, err)
		slog.Error("Error getting orders", "error", err, "user_id", claims.UserID)

		return
	}

	httperr.WriteJSON(w, dto.OrdersFromModels(orders))
}

// Get retrieves one order owned by the caller. Missing and foreign orders
// are both 404.
func Get(w http.ResponseWriter, r *http.Request, service service) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		httperr.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderId"), 10, 64)
	if err != nil {
		httperr.WriteError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	o, err := service.Get(r.Context(), orderID, claims.UserID)
	if err != nil {
		httperr.Respond(w, err)
		slog.Error("Error getting order", "error", err, "order_id", orderID, "user_id", claims.UserID)

		return
	}

	httperr.WriteJSON(w, dto.OrderFromModel(o))
}

type listOrdersRequest struct {
	UserIds []int64 `schema:"userIds,omitempty"`
	Limit   int     `schema:"limit,omitempty"`
	Offset  int     `schema:"offset,omitempty"`
}

// All lists every order in the store; admin only, enforced by middleware.
func All(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &listOrdersRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		httperr.WriteError(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request", "error", err)

		return
	}

	if query.Limit <= 0 {
		query.Limit = defaultListLimit
	}

	orders, err := service.All(r.Context(), &order.QueryOrdersModel{
		UserIds: query.UserIds,
		Limit:   query.Limit,
		Offset:  query.Offset,
	})
	if err != nil {
		httperr.Respond(w, err)
		slog.Error("Error getting orders", "error", err)

		return
	}

	httperr.WriteJSON(w, dto.OrdersFromModels(orders))
}

// UpdateStatus overwrites the status of an order; admin only. The body is a
// raw JSON string holding either a canonical label or a legacy alias.
func UpdateStatus(w http.ResponseWriter, r *http.Request, service service) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderId"), 10, 64)
	if err != nil {
		httperr.WriteError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	var rawStatus string
	if err := json.NewDecoder(r.Body).Decode(&rawStatus); err != nil {
		httperr.WriteError(w, "failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for status update", "error", err)

		return
	}

	updated, err := service.UpdateStatus(r.Context(), orderID, rawStatus)
	if err != nil {
		httperr.Respond(w, err)
		slog.Error("Error updating order status", "error", err, "order_id", orderID)

		return
	}

	httperr.WriteJSON(w, dto.OrderFromModel(updated))
}

// Delete removes an order owned by the caller. Missing and foreign orders
// are both 404.
func Delete(w http.ResponseWriter, r *http.Request, service service) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		httperr.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderId"), 10, 64)
	if err != nil {
		httperr.WriteError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	if err := service.Delete(r.Context(), orderID, claims.UserID); err != nil {
		httperr.Respond(w, err)
		slog.Error("Error deleting order", "error", err, "order_id", orderID, "user_id", claims.UserID)

		return
	}

	w.WriteHeader(http.StatusOK)
}
