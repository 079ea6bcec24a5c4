package icategoryrepo

import (
	"context"

	"github.com/chocobean/storefront/internal/service/models/category"
)

// Repository is the read-only catalog boundary for categories.
type Repository interface {
	GetAll(ctx context.Context) ([]category.Category, error)
}
