package order

import (
	"errors"
	"time"

	"github.com/chocobean/storefront/internal/service/models/orderitem"
	"github.com/shopspring/decimal"
)

var ErrOrderNotFound = errors.New("order not found")

// Order represents one purchase transaction. TotalPrice is computed from the
// item price snapshots at creation time and never recomputed afterwards.
// UserName is a display projection filled in by the service layer; it is
// never written back to the orders table.
type Order struct {
	ID         int64                 `json:"orderId"`
	UserID     int64                 `json:"userId"`
	UserName   string                `json:"userName"`
	OrderDate  time.Time             `json:"orderDate"`
	TotalPrice decimal.Decimal       `json:"totalPrice"`
	Status     Status                `json:"status"`
	Items      []orderitem.OrderItem `json:"items"`
}
