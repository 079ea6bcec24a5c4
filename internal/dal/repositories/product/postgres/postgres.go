package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/chocobean/storefront/internal/dal/postgres"
	"github.com/chocobean/storefront/internal/service/models/product"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ProductDal represents product data access layer model
type ProductDal struct {
	Id             int64           `db:"id"`
	ProductName    string          `db:"product_name"`
	Description    string          `db:"description"`
	Price          decimal.Decimal `db:"price"`
	CategoryId     int64           `db:"category_id"`
	UnitsInPackage int             `db:"units_in_package"`
}

// ToModel converts ProductDal to service layer Product model
func (p *ProductDal) ToModel() *product.Product {
	return &product.Product{
		ID:             p.Id,
		ProductName:    p.ProductName,
		Description:    p.Description,
		Price:          p.Price,
		CategoryID:     p.CategoryId,
		UnitsInPackage: p.UnitsInPackage,
	}
}

type PostgresProductRepository struct {
	conn postgres.Querier
}

func NewPostgresProductRepository(conn postgres.Querier) *PostgresProductRepository {
	return &PostgresProductRepository{
		conn: conn,
	}
}

var productColumns = []string{
	"id",
	"product_name",
	"COALESCE(description, '')",
	"price",
	"category_id",
	"units_in_package",
}

// GetById retrieves a single product. Returns product.ErrProductNotFound
// when no such product exists.
func (r *PostgresProductRepository) GetById(ctx context.Context, id int64) (*product.Product, error) {
	query, args, err := sq.Select(productColumns...).
		From("products").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var dal ProductDal
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&dal.Id,
		&dal.ProductName,
		&dal.Description,
		&dal.Price,
		&dal.CategoryId,
		&dal.UnitsInPackage,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("product %d: %w", id, product.ErrProductNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return dal.ToModel(), nil
}

// GetAll retrieves the full catalog.
func (r *PostgresProductRepository) GetAll(ctx context.Context) ([]product.Product, error) {
	query, args, err := sq.Select(productColumns...).
		From("products").
		OrderBy("id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var result []product.Product
	for rows.Next() {
		var dal ProductDal
		err := rows.Scan(
			&dal.Id,
			&dal.ProductName,
			&dal.Description,
			&dal.Price,
			&dal.CategoryId,
			&dal.UnitsInPackage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
