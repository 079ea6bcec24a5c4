package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chocobean/storefront/internal/service/models/category"
	"github.com/chocobean/storefront/internal/service/models/product"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	products map[int64]product.Product
}

func (s *fakeService) Products(ctx context.Context) ([]product.Product, error) {
	var result []product.Product
	for _, p := range s.products {
		result = append(result, p)
	}

	return result, nil
}

func (s *fakeService) Product(ctx context.Context, id int64) (*product.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, product.ErrProductNotFound)
	}

	return &p, nil
}

func (s *fakeService) Categories(ctx context.Context) ([]category.Category, error) {
	return []category.Category{{ID: 1, CategoryName: "שוקולדים"}}, nil
}

func productRequest(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/products/"+id, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("productId", id)

	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestGetProductFound(t *testing.T) {
	t.Parallel()

	svc := &fakeService{products: map[int64]product.Product{
		1: {ID: 1, ProductName: "שוקולד אגוזים", Price: decimal.RequireFromString("20.00")},
	}}

	rec := httptest.NewRecorder()
	GetProduct(rec, productRequest("1"), svc)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "שוקולד אגוזים", body["productName"])
}

func TestGetProductMissingIsNotFound(t *testing.T) {
	t.Parallel()

	svc := &fakeService{products: map[int64]product.Product{}}

	rec := httptest.NewRecorder()
	GetProduct(rec, productRequest("404"), svc)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetProductBadID(t *testing.T) {
	t.Parallel()

	svc := &fakeService{products: map[int64]product.Product{}}

	rec := httptest.NewRecorder()
	GetProduct(rec, productRequest("abc"), svc)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListProductsAndCategories(t *testing.T) {
	t.Parallel()

	svc := &fakeService{products: map[int64]product.Product{
		1: {ID: 1, ProductName: "שוקולד אגוזים", Price: decimal.RequireFromString("20.00")},
	}}

	rec := httptest.NewRecorder()
	ListProducts(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil), svc)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)

	rec = httptest.NewRecorder()
	ListCategories(rec, httptest.NewRequest(http.MethodGet, "/api/categories", nil), svc)
	require.Equal(t, http.StatusOK, rec.Code)

	var categories []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
	require.Len(t, categories, 1)
	require.Equal(t, "שוקולדים", categories[0]["categoryName"])
}
