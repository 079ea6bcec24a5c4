package catalogsvc

import (
	"context"

	"github.com/chocobean/storefront/internal/dal/interfaces/icategoryrepo"
	"github.com/chocobean/storefront/internal/dal/interfaces/iproductrepo"
	"github.com/chocobean/storefront/internal/service/models/category"
	"github.com/chocobean/storefront/internal/service/models/product"
)

// CatalogService exposes the read-only product and category catalog.
type CatalogService struct {
	products   iproductrepo.Repository
	categories icategoryrepo.Repository
}

// option is a function that configures the CatalogService.
type option func(*CatalogService)

// MustNewCatalogService creates a new CatalogService.
func MustNewCatalogService(opts ...option) *CatalogService {
	s := &CatalogService{}
	for _, opt := range opts {
		opt(s)
	}
	if s.products == nil || s.categories == nil {
		panic("catalogsvc: missing product or category repository")
	}

	return s
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithProductRepository(products iproductrepo.Repository) option {
	return func(s *CatalogService) {
		s.products = products
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithCategoryRepository(categories icategoryrepo.Repository) option {
	return func(s *CatalogService) {
		s.categories = categories
	}
}

// Products retrieves the full catalog.
func (s *CatalogService) Products(ctx context.Context) ([]product.Product, error) {
	return s.products.GetAll(ctx)
}

// Product retrieves a single product by id.
func (s *CatalogService) Product(ctx context.Context, id int64) (*product.Product, error) {
	return s.products.GetById(ctx, id)
}

// Categories retrieves all catalog categories.
func (s *CatalogService) Categories(ctx context.Context) ([]category.Category, error) {
	return s.categories.GetAll(ctx)
}
