package product

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrProductNotFound = errors.New("product not found")

// Product is read-only catalog data from the order workflow's perspective.
type Product struct {
	ID             int64           `json:"productId"`
	ProductName    string          `json:"productName"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	CategoryID     int64           `json:"categoryId"`
	UnitsInPackage int             `json:"unitsInPackage"`
}
