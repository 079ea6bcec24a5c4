package iorderitemrepo

import (
	"context"

	"github.com/chocobean/storefront/internal/service/models/orderitem"
)

// Repository is the persistence boundary for order items.
type Repository interface {
	BulkInsert(ctx context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error)
	QueryByOrderIds(ctx context.Context, orderIds []int64) ([]orderitem.OrderItem, error)
}
