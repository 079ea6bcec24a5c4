package iproductrepo

import (
	"context"

	"github.com/chocobean/storefront/internal/service/models/product"
)

// Repository is the read-only catalog boundary for products.
type Repository interface {
	GetById(ctx context.Context, id int64) (*product.Product, error)
	GetAll(ctx context.Context) ([]product.Product, error)
}
