package catalog

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/chocobean/storefront/internal/service/models/category"
	"github.com/chocobean/storefront/internal/service/models/product"
	"github.com/chocobean/storefront/internal/transport/http/httperr"
	"github.com/go-chi/chi/v5"
)

// service is an interface for the catalog service layer.
type service interface {
	Products(ctx context.Context) ([]product.Product, error)
	Product(ctx context.Context, id int64) (*product.Product, error)
	Categories(ctx context.Context) ([]category.Category, error)
}

// ListProducts returns the full catalog.
func ListProducts(w http.ResponseWriter, r *http.Request, service service) {
	products, err := service.Products(r.Context())
	if err != nil {
		httperr.Respond(w, err)
		slog.Error("Error getting products", "error", err)

		return
	}
	if products == nil {
		products = []product.Product{}
	}

	httperr.WriteJSON(w, products)
}

// GetProduct returns one product by id.
func GetProduct(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil {
		httperr.WriteError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	p, err := service.Product(r.Context(), id)
	if err != nil {
		// On a catalog read a missing product is a 404, unlike order
		// creation where a bad line item is a 400.
		if errors.Is(err, product.ErrProductNotFound) {
			httperr.WriteError(w, err.Error(), http.StatusNotFound)
		} else {
			httperr.Respond(w, err)
		}
		slog.Error("Error getting product", "error", err, "product_id", id)

		return
	}

	httperr.WriteJSON(w, p)
}

// ListCategories returns all catalog categories.
func ListCategories(w http.ResponseWriter, r *http.Request, service service) {
	categories, err := service.Categories(r.Context())
	if err != nil {
		httperr.Respond(w, err)
		slog.Error("Error getting categories", "error", err)

		return
	}
	if categories == nil {
		categories = []category.Category{}
	}

	httperr.WriteJSON(w, categories)
}
