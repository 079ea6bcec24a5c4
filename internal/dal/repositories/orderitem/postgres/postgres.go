package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/chocobean/storefront/internal/dal/postgres"
	"github.com/chocobean/storefront/internal/service/models/orderitem"
	"github.com/shopspring/decimal"
)

// OrderItemDal represents order item data access layer model. The product
// name and description come from a join and are display-only.
type OrderItemDal struct {
	Id                 int64           `db:"id"`
	OrderId            int64           `db:"order_id"`
	ProductId          int64           `db:"product_id"`
	ProductName        string          `db:"product_name"`
	ProductDescription string          `db:"product_description"`
	Quantity           int             `db:"quantity"`
	Price              decimal.Decimal `db:"price"`
}

// ToModel converts OrderItemDal to service layer OrderItem model
func (i *OrderItemDal) ToModel() *orderitem.OrderItem {
	return &orderitem.OrderItem{
		ID:                 i.Id,
		OrderID:            i.OrderId,
		ProductID:          i.ProductId,
		ProductName:        i.ProductName,
		ProductDescription: i.ProductDescription,
		Quantity:           i.Quantity,
		Price:              i.Price,
	}
}

type PostgresOrderItemRepository struct {
	conn postgres.Querier
}

func NewPostgresOrderItemRepository(conn postgres.Querier) *PostgresOrderItemRepository {
	return &PostgresOrderItemRepository{
		conn: conn,
	}
}

// BulkInsert inserts all items of an order in one statement and returns them
// with generated ids. Only the persisted columns are written; display fields
// stay untouched on the passed-in items.
func (r *PostgresOrderItemRepository) BulkInsert(ctx context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error) {
	if len(items) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	builder := sq.Insert("order_items").
		Columns("order_id", "product_id", "quantity", "price").
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar)

	for _, item := range items {
		builder = builder.Values(item.OrderID, item.ProductID, item.Quantity, item.Price)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert order items: %w", err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		if i >= len(items) {
			break
		}
		if err := rows.Scan(&items[i].ID); err != nil {
			return nil, fmt.Errorf("failed to scan order item id: %w", err)
		}
		i++
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return items, nil
}

// QueryByOrderIds retrieves the items of the given orders with the product
// display fields joined in.
func (r *PostgresOrderItemRepository) QueryByOrderIds(ctx context.Context, orderIds []int64) ([]orderitem.OrderItem, error) {
	if len(orderIds) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	query, args, err := sq.Select(
		"i.id",
		"i.order_id",
		"i.product_id",
		"p.product_name",
		"COALESCE(p.description, '')",
		"i.quantity",
		"i.price",
	).
		From("order_items i").
		Join("products p ON p.id = i.product_id").
		Where(sq.Eq{"i.order_id": orderIds}).
		OrderBy("i.id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var result []orderitem.OrderItem
	for rows.Next() {
		var dal OrderItemDal
		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.ProductId,
			&dal.ProductName,
			&dal.ProductDescription,
			&dal.Quantity,
			&dal.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
