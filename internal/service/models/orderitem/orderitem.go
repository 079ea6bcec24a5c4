package orderitem

import "github.com/shopspring/decimal"

// OrderItem is one product line within an order. Price is the unit price
// snapshot taken from the catalog at order creation time. ProductName and
// ProductDescription are read through from the products table for display
// and are never persisted on the item itself.
type OrderItem struct {
	ID                 int64           `json:"-"`
	OrderID            int64           `json:"-"`
	ProductID          int64           `json:"productId"`
	ProductName        string          `json:"productName"`
	ProductDescription string          `json:"productDescription"`
	Quantity           int             `json:"quantity"`
	Price              decimal.Decimal `json:"price"`
}

// NewLine is a requested (product, quantity) pair before price lookup.
type NewLine struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}
