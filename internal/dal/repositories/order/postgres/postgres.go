package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/chocobean/storefront/internal/dal/postgres"
	"github.com/chocobean/storefront/internal/service/models/order"
	"github.com/chocobean/storefront/internal/service/models/orderitem"
	"github.com/shopspring/decimal"
)

// OrderDal represents order data access layer model
type OrderDal struct {
	Id         int64           `db:"id"`
	UserId     int64           `db:"user_id"`
	UserName   string          `db:"user_name"`
	OrderDate  time.Time       `db:"order_date"`
	TotalPrice decimal.Decimal `db:"total_price"`
	Status     string          `db:"status"`
}

// ToModel converts OrderDal to service layer Order model
func (o *OrderDal) ToModel() (*order.Order, error) {
	st, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}
	return &order.Order{
		ID:         o.Id,
		UserID:     o.UserId,
		UserName:   o.UserName,
		OrderDate:  o.OrderDate,
		TotalPrice: o.TotalPrice,
		Status:     st,
		Items:      []orderitem.OrderItem{}, // Will be populated separately
	}, nil
}

type PostgresOrderRepository struct {
	conn postgres.Querier
}

func NewPostgresOrderRepository(conn postgres.Querier) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
	}
}

// Insert persists a new order and returns it with the generated id.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	query, args, err := sq.Insert("orders").
		Columns("user_id", "order_date", "total_price", "status").
		Values(o.UserID, o.OrderDate, o.TotalPrice, o.Status.String()).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&o.ID); err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	return o, nil
}

// Query retrieves orders based on filter criteria, newest first, with the
// owner's user name joined in for display.
func (r *PostgresOrderRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	builder := sq.Select(
		"o.id",
		"o.user_id",
		"u.user_name",
		"o.order_date",
		"o.total_price",
		"o.status",
	).
		From("orders o").
		Join("users u ON u.id = o.user_id").
		OrderBy("o.order_date DESC").
		PlaceholderFormat(sq.Dollar)

	if len(filter.Ids) > 0 {
		builder = builder.Where(sq.Eq{"o.id": filter.Ids})
	}
	if len(filter.UserIds) > 0 {
		builder = builder.Where(sq.Eq{"o.user_id": filter.UserIds})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		var dal OrderDal
		err := rows.Scan(
			&dal.Id,
			&dal.UserId,
			&dal.UserName,
			&dal.OrderDate,
			&dal.TotalPrice,
			&dal.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// UpdateStatus overwrites the status of a single order. Returns false when
// the order does not exist.
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, orderID int64, status order.Status) (bool, error) {
	query, args, err := sq.Update("orders").
		Set("status", status.String()).
		Where(sq.Eq{"id": orderID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update order status: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Delete removes an order owned by userID. Items go with it via the
// order_items FK cascade. Returns false when no matching row exists, which
// covers both a missing order and one owned by somebody else.
func (r *PostgresOrderRepository) Delete(ctx context.Context, orderID, userID int64) (bool, error) {
	query, args, err := sq.Delete("orders").
		Where(sq.Eq{"id": orderID, "user_id": userID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to delete order: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
