package ordersvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chocobean/storefront/internal/dal/interfaces/iorderitemrepo"
	"github.com/chocobean/storefront/internal/dal/interfaces/iorderrepo"
	"github.com/chocobean/storefront/internal/dal/interfaces/ioutboxrepo"
	"github.com/chocobean/storefront/internal/dal/interfaces/iproductrepo"
	"github.com/chocobean/storefront/internal/dal/postgres"
	"github.com/chocobean/storefront/internal/dal/uow"
	"github.com/chocobean/storefront/internal/service/models/order"
	"github.com/chocobean/storefront/internal/service/models/orderitem"
	"github.com/chocobean/storefront/internal/service/models/outbox"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Bounds on a single order. The source system left these unbounded; the
// limits here are enforced at creation and surfaced as validation errors.
const (
	MaxOrderLines   = 100
	MaxLineQuantity = 999
)

var (
	ErrEmptyOrder      = errors.New("order must contain at least one item")
	ErrTooManyLines    = errors.New("order exceeds the maximum number of lines")
	ErrInvalidQuantity = errors.New("item quantity out of range")
)

const (
	outboxMaxRetries       = 5
	orderCreatedRoutingKey = "order.created"
)

// OrderService implements the order workflow: price-snapshot creation,
// ownership-scoped reads and deletes, and the admin status transition.
type OrderService struct {
	pgClient *postgres.Client
	newUOW   func() unitOfWork
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.Repository
	OrderItemRepository() iorderitemrepo.Repository
	ProductRepository() iproductrepo.Repository
	OutboxRepository() ioutboxrepo.Repository
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}
	if s.newUOW == nil {
		panic("ordersvc: no unit of work configured")
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
	}
}

// WithUnitOfWorkFactory overrides the unit of work, used by tests.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(factory func() unitOfWork) option {
	return func(s *OrderService) {
		s.newUOW = factory
	}
}

// OrderPlacedEvent is the payload written to the outbox when an order is
// created.
type OrderPlacedEvent struct {
	EventID    string          `json:"eventId"`
	OrderID    int64           `json:"orderId"`
	UserID     int64           `json:"userId"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Status     string          `json:"status"`
	OrderDate  time.Time       `json:"orderDate"`
}

// Create places an order for userID. Unit prices are snapshotted from the
// catalog at lookup time, the total is the exact decimal sum over all lines,
// and the order, its items and the order.created outbox row are committed as
// one transaction. A missing product aborts the whole operation.
func (s *OrderService) Create(ctx context.Context, userID int64, lines []orderitem.NewLine) (order.Order, error) {
	if len(lines) == 0 {
		return order.Order{}, ErrEmptyOrder
	}
	if len(lines) > MaxOrderLines {
		return order.Order{}, ErrTooManyLines
	}
	for _, line := range lines {
		if line.Quantity < 1 || line.Quantity > MaxLineQuantity {
			return order.Order{}, fmt.Errorf("product %d: %w", line.ProductID, ErrInvalidQuantity)
		}
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return order.Order{}, err
	}
	defer func() { _ = work.Rollback(ctx) }()

	total := decimal.Zero
	items := make([]orderitem.OrderItem, 0, len(lines))
	for _, line := range lines {
		p, err := work.ProductRepository().GetById(ctx, line.ProductID)
		if err != nil {
			return order.Order{}, err
		}

		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		items = append(items, orderitem.OrderItem{
			ProductID:          p.ID,
			ProductName:        p.ProductName,
			ProductDescription: p.Description,
			Quantity:           line.Quantity,
			Price:              p.Price,
		})
	}

	o := order.Order{
		UserID:     userID,
		OrderDate:  time.Now().UTC(),
		TotalPrice: total,
		Status:     order.StatusReceived,
	}

	o, err := work.OrderRepository().Insert(ctx, o)
	if err != nil {
		return order.Order{}, err
	}

	for i := range items {
		items[i].OrderID = o.ID
	}
	items, err = work.OrderItemRepository().BulkInsert(ctx, items)
	if err != nil {
		return order.Order{}, err
	}

	if err := s.enqueueOrderPlaced(ctx, work, o); err != nil {
		return order.Order{}, err
	}

	if err := work.Commit(ctx); err != nil {
		return order.Order{}, err
	}

	// Re-read the order row for the denormalized user name; items already
	// carry their product display fields from the price lookup.
	persisted, err := s.newUOW().OrderRepository().Query(ctx, &order.QueryOrdersModel{Ids: []int64{o.ID}})
	if err != nil {
		return order.Order{}, err
	}
	if len(persisted) == 0 {
		return order.Order{}, order.ErrOrderNotFound
	}

	result := persisted[0]
	result.Items = items

	return result, nil
}

func (s *OrderService) enqueueOrderPlaced(ctx context.Context, work unitOfWork, o order.Order) error {
	payload, err := json.Marshal(OrderPlacedEvent{
		EventID:    uuid.NewString(),
		OrderID:    o.ID,
		UserID:     o.UserID,
		TotalPrice: o.TotalPrice,
		Status:     o.Status.String(),
		OrderDate:  o.OrderDate,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal order placed event: %w", err)
	}

	now := time.Now()

	return work.OutboxRepository().Insert(ctx, outbox.Message{
		ExchangeName: viper.GetString("rabbitmq.orders_exchange"),
		RoutingKey:   orderCreatedRoutingKey,
		Payload:      payload,
		ContentType:  "application/json",
		MaxRetries:   outboxMaxRetries,
		CreatedAt:    now,
		UpdatedAt:    now,
		NextRetryAt:  now,
	})
}

// Mine retrieves the orders owned by userID, newest first, with items and
// their product display fields.
func (s *OrderService) Mine(ctx context.Context, userID int64) ([]order.Order, error) {
	return s.queryMaterialized(ctx, &order.QueryOrdersModel{UserIds: []int64{userID}})
}

// All retrieves every order in the store; administrators only, enforced at
// the transport boundary.
func (s *OrderService) All(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	if filter == nil {
		filter = &order.QueryOrdersModel{}
	}

	return s.queryMaterialized(ctx, filter)
}

// Get retrieves one order only when it is owned by userID. A missing order
// and somebody else's order are indistinguishable: both are
// order.ErrOrderNotFound.
func (s *OrderService) Get(ctx context.Context, orderID, userID int64) (order.Order, error) {
	orders, err := s.queryMaterialized(ctx, &order.QueryOrdersModel{
		Ids:     []int64{orderID},
		UserIds: []int64{userID},
	})
	if err != nil {
		return order.Order{}, err
	}
	if len(orders) == 0 {
		return order.Order{}, order.ErrOrderNotFound
	}

	return orders[0], nil
}

// Delete removes an order owned by userID; its items go via cascade. Any
// lifecycle state may be deleted by its owner.
func (s *OrderService) Delete(ctx context.Context, orderID, userID int64) error {
	ok, err := s.newUOW().OrderRepository().Delete(ctx, orderID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return order.ErrOrderNotFound
	}

	return nil
}

// UpdateStatus decodes rawStatus and overwrites the order's status field.
// The item list and total are untouched. A string outside the canonical and
// legacy sets fails with order.ErrInvalidStatus and changes nothing.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, rawStatus string) (order.Order, error) {
	st, err := order.ParseStatus(rawStatus)
	if err != nil {
		return order.Order{}, err
	}

	work := s.newUOW()
	ok, err := work.OrderRepository().UpdateStatus(ctx, orderID, st)
	if err != nil {
		return order.Order{}, err
	}
	if !ok {
		return order.Order{}, order.ErrOrderNotFound
	}

	orders, err := s.queryMaterialized(ctx, &order.QueryOrdersModel{Ids: []int64{orderID}})
	if err != nil {
		return order.Order{}, err
	}
	if len(orders) == 0 {
		return order.Order{}, order.ErrOrderNotFound
	}

	return orders[0], nil
}

// queryMaterialized runs an order query and stitches the items of every
// returned order onto it.
func (s *OrderService) queryMaterialized(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	orderIds := make([]int64, 0, len(orders))
	for _, o := range orders {
		orderIds = append(orderIds, o.ID)
	}

	items, err := work.OrderItemRepository().QueryByOrderIds(ctx, orderIds)
	if err != nil {
		return nil, err
	}

	byOrder := make(map[int64][]orderitem.OrderItem, len(orders))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
		if orders[i].Items == nil {
			orders[i].Items = []orderitem.OrderItem{}
		}
	}

	return orders, nil
}
