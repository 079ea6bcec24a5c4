package iorderrepo

import (
	"context"

	"github.com/chocobean/storefront/internal/service/models/order"
)

// Repository is the persistence boundary for orders.
type Repository interface {
	Insert(ctx context.Context, o order.Order) (order.Order, error)
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status order.Status) (bool, error)
	Delete(ctx context.Context, orderID, userID int64) (bool, error)
}
