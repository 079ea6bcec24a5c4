package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/chocobean/storefront/internal/dal/postgres"
	"github.com/chocobean/storefront/internal/service/models/category"
)

type PostgresCategoryRepository struct {
	conn postgres.Querier
}

func NewPostgresCategoryRepository(conn postgres.Querier) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{
		conn: conn,
	}
}

// GetAll retrieves all catalog categories.
func (r *PostgresCategoryRepository) GetAll(ctx context.Context) ([]category.Category, error) {
	query, args, err := sq.Select("id", "category_name").
		From("categories").
		OrderBy("id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var result []category.Category
	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.CategoryName); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		result = append(result, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
