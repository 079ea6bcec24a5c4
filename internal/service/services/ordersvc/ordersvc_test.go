package ordersvc

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/chocobean/storefront/internal/dal/interfaces/iorderitemrepo"
	"github.com/chocobean/storefront/internal/dal/interfaces/iorderrepo"
	"github.com/chocobean/storefront/internal/dal/interfaces/ioutboxrepo"
	"github.com/chocobean/storefront/internal/dal/interfaces/iproductrepo"
	"github.com/chocobean/storefront/internal/service/models/order"
	"github.com/chocobean/storefront/internal/service/models/orderitem"
	"github.com/chocobean/storefront/internal/service/models/outbox"
	"github.com/chocobean/storefront/internal/service/models/product"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// fakeStore is shared committed state behind the fake unit of work.
type fakeStore struct {
	products  map[int64]product.Product
	userNames map[int64]string

	orders []order.Order
	items  []orderitem.OrderItem
	outbox []outbox.Message

	nextOrderID int64
	nextItemID  int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:    map[int64]product.Product{},
		userNames:   map[int64]string{},
		nextOrderID: 1000,
		nextItemID:  1,
	}
}

func (s *fakeStore) addProduct(id int64, name, price string) {
	s.products[id] = product.Product{
		ID:          id,
		ProductName: name,
		Price:       decimal.RequireFromString(price),
	}
}

// fakeUOW buffers writes until Commit so an aborted creation leaves the store
// untouched.
type fakeUOW struct {
	store *fakeStore

	pendingOrders []order.Order
	pendingItems  []orderitem.OrderItem
	pendingOutbox []outbox.Message

	begun      bool
	committed  bool
	rolledBack bool
}

func (u *fakeUOW) Begin(ctx context.Context) error { u.begun = true; return nil }

func (u *fakeUOW) Commit(ctx context.Context) error {
	u.committed = true
	u.store.orders = append(u.store.orders, u.pendingOrders...)
	u.store.items = append(u.store.items, u.pendingItems...)
	u.store.outbox = append(u.store.outbox, u.pendingOutbox...)
	u.pendingOrders, u.pendingItems, u.pendingOutbox = nil, nil, nil

	return nil
}

func (u *fakeUOW) Rollback(ctx context.Context) error {
	if u.committed {
		return nil
	}
	u.rolledBack = true
	u.pendingOrders, u.pendingItems, u.pendingOutbox = nil, nil, nil

	return nil
}

func (u *fakeUOW) OrderRepository() iorderrepo.Repository         { return &fakeOrderRepo{u} }
func (u *fakeUOW) OrderItemRepository() iorderitemrepo.Repository { return &fakeOrderItemRepo{u} }
func (u *fakeUOW) ProductRepository() iproductrepo.Repository     { return &fakeProductRepo{u.store} }
func (u *fakeUOW) OutboxRepository() ioutboxrepo.Repository       { return &fakeOutboxRepo{u} }

type fakeOrderRepo struct{ u *fakeUOW }

func (r *fakeOrderRepo) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	o.ID = r.u.store.nextOrderID
	r.u.store.nextOrderID++
	r.u.pendingOrders = append(r.u.pendingOrders, o)

	return o, nil
}

func (r *fakeOrderRepo) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	var result []order.Order
	for _, o := range r.u.store.orders {
		if len(filter.Ids) > 0 && !containsID(filter.Ids, o.ID) {
			continue
		}
		if len(filter.UserIds) > 0 && !containsID(filter.UserIds, o.UserID) {
			continue
		}
		o.UserName = r.u.store.userNames[o.UserID]
		result = append(result, o)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].OrderDate.After(result[j].OrderDate)
	})

	return result, nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, orderID int64, status order.Status) (bool, error) {
	for i := range r.u.store.orders {
		if r.u.store.orders[i].ID == orderID {
			r.u.store.orders[i].Status = status
			return true, nil
		}
	}

	return false, nil
}

func (r *fakeOrderRepo) Delete(ctx context.Context, orderID, userID int64) (bool, error) {
	for i, o := range r.u.store.orders {
		if o.ID == orderID && o.UserID == userID {
			r.u.store.orders = append(r.u.store.orders[:i], r.u.store.orders[i+1:]...)
			kept := r.u.store.items[:0]
			for _, item := range r.u.store.items {
				if item.OrderID != orderID {
					kept = append(kept, item)
				}
			}
			r.u.store.items = kept

			return true, nil
		}
	}

	return false, nil
}

type fakeOrderItemRepo struct{ u *fakeUOW }

func (r *fakeOrderItemRepo) BulkInsert(ctx context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error) {
	for i := range items {
		items[i].ID = r.u.store.nextItemID
		r.u.store.nextItemID++
	}
	r.u.pendingItems = append(r.u.pendingItems, items...)

	return items, nil
}

func (r *fakeOrderItemRepo) QueryByOrderIds(ctx context.Context, orderIds []int64) ([]orderitem.OrderItem, error) {
	var result []orderitem.OrderItem
	for _, item := range r.u.store.items {
		if containsID(orderIds, item.OrderID) {
			result = append(result, item)
		}
	}

	return result, nil
}

type fakeProductRepo struct{ store *fakeStore }

func (r *fakeProductRepo) GetById(ctx context.Context, id int64) (*product.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, product.ErrProductNotFound)
	}

	return &p, nil
}

func (r *fakeProductRepo) GetAll(ctx context.Context) ([]product.Product, error) {
	var result []product.Product
	for _, p := range r.store.products {
		result = append(result, p)
	}

	return result, nil
}

type fakeOutboxRepo struct{ u *fakeUOW }

func (r *fakeOutboxRepo) Insert(ctx context.Context, msg outbox.Message) error {
	r.u.pendingOutbox = append(r.u.pendingOutbox, msg)
	return nil
}

func (r *fakeOutboxRepo) GetPendingMessages(ctx context.Context, limit int) ([]outbox.Message, error) {
	return r.u.store.outbox, nil
}

func (r *fakeOutboxRepo) Delete(ctx context.Context, id int64) error { return nil }

func (r *fakeOutboxRepo) UpdateRetry(ctx context.Context, id int64, retryCount int, lastError string, nextRetryAt time.Time) error {
	return nil
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}

	return false
}

func newTestService(store *fakeStore) *OrderService {
	return MustNewOrderService(
		WithUnitOfWorkFactory(func() unitOfWork {
			return &fakeUOW{store: store}
		}),
	)
}

func TestCreateComputesDecimalTotal(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addProduct(1, "שוקולד אגוזים", "20.00")
	store.addProduct(11, "קפסולה בטעם שוקולד", "27.00")
	store.userNames[7] = "dana"
	svc := newTestService(store)

	o, err := svc.Create(context.Background(), 7, []orderitem.NewLine{
		{ProductID: 1, Quantity: 2},
		{ProductID: 11, Quantity: 3},
	})
	require.NoError(t, err)

	require.True(t, o.TotalPrice.Equal(decimal.RequireFromString("121.00")),
		"total was %s", o.TotalPrice)
	require.Equal(t, order.StatusReceived, o.Status)
	require.Equal(t, "dana", o.UserName)
	require.Len(t, o.Items, 2)
	require.True(t, o.Items[0].Price.Equal(decimal.RequireFromString("20.00")))
	require.Equal(t, "שוקולד אגוזים", o.Items[0].ProductName)
}

func TestCreateWritesOrderPlacedEvent(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addProduct(1, "שוקולד אגוזים", "20.00")
	svc := newTestService(store)

	o, err := svc.Create(context.Background(), 7, []orderitem.NewLine{
		{ProductID: 1, Quantity: 2},
	})
	require.NoError(t, err)

	require.Len(t, store.outbox, 1)
	msg := store.outbox[0]
	require.Equal(t, "order.created", msg.RoutingKey)
	require.Equal(t, "application/json", msg.ContentType)

	var event OrderPlacedEvent
	require.NoError(t, json.Unmarshal(msg.Payload, &event))
	require.NotEmpty(t, event.EventID)
	require.Equal(t, o.ID, event.OrderID)
	require.Equal(t, int64(7), event.UserID)
	require.Equal(t, order.StatusReceived.String(), event.Status)
	require.True(t, event.TotalPrice.Equal(decimal.RequireFromString("40.00")))
}

func TestCreateSnapshotsPrices(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addProduct(1, "שוקולד אגוזים", "20.00")
	svc := newTestService(store)

	o, err := svc.Create(context.Background(), 7, []orderitem.NewLine{
		{ProductID: 1, Quantity: 1},
	})
	require.NoError(t, err)

	// A later catalog price change must not affect the persisted order.
	store.addProduct(1, "שוקולד אגוזים", "35.00")

	mine, err := svc.Mine(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, o.ID, mine[0].ID)
	require.True(t, mine[0].TotalPrice.Equal(decimal.RequireFromString("20.00")))
	require.Len(t, mine[0].Items, 1)
	require.True(t, mine[0].Items[0].Price.Equal(decimal.RequireFromString("20.00")))
}

func TestCreateMissingProductAbortsWholeOrder(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addProduct(1, "שוקולד אגוזים", "20.00")
	svc := newTestService(store)

	_, err := svc.Create(context.Background(), 7, []orderitem.NewLine{
		{ProductID: 1, Quantity: 1},
		{ProductID: 404, Quantity: 1},
	})
	require.ErrorIs(t, err, product.ErrProductNotFound)

	require.Empty(t, store.orders)
	require.Empty(t, store.items)
	require.Empty(t, store.outbox)
}

func TestCreateValidatesBounds(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addProduct(1, "שוקולד אגוזים", "20.00")
	svc := newTestService(store)
	ctx := context.Background()

	_, err := svc.Create(ctx, 7, nil)
	require.ErrorIs(t, err, ErrEmptyOrder)

	_, err = svc.Create(ctx, 7, []orderitem.NewLine{{ProductID: 1, Quantity: 0}})
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.Create(ctx, 7, []orderitem.NewLine{{ProductID: 1, Quantity: MaxLineQuantity + 1}})
	require.ErrorIs(t, err, ErrInvalidQuantity)

	tooMany := make([]orderitem.NewLine, MaxOrderLines+1)
	for i := range tooMany {
		tooMany[i] = orderitem.NewLine{ProductID: 1, Quantity: 1}
	}
	_, err = svc.Create(ctx, 7, tooMany)
	require.ErrorIs(t, err, ErrTooManyLines)

	require.Empty(t, store.orders)
}

func TestOwnershipIsolation(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addProduct(1, "שוקולד אגוזים", "20.00")
	svc := newTestService(store)
	ctx := context.Background()

	mineOrder, err := svc.Create(ctx, 1, []orderitem.NewLine{{ProductID: 1, Quantity: 1}})
	require.NoError(t, err)
	otherOrder, err := svc.Create(ctx, 2, []orderitem.NewLine{{ProductID: 1, Quantity: 2}})
	require.NoError(t, err)

	mine, err := svc.Mine(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, mineOrder.ID, mine[0].ID)

	// Another user's order reads and deletes as if it did not exist.
	_, err = svc.Get(ctx, otherOrder.ID, 1)
	require.ErrorIs(t, err, order.ErrOrderNotFound)

	err = svc.Delete(ctx, otherOrder.ID, 1)
	require.ErrorIs(t, err, order.ErrOrderNotFound)

	all, err := svc.All(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestDeleteRemovesOwnOrder(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addProduct(1, "שוקולד אגוזים", "20.00")
	svc := newTestService(store)
	ctx := context.Background()

	o, err := svc.Create(ctx, 1, []orderitem.NewLine{{ProductID: 1, Quantity: 1}})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, o.ID, 1))

	mine, err := svc.Mine(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, mine)
	require.Empty(t, store.items)

	err = svc.Delete(ctx, o.ID, 1)
	require.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestUpdateStatusAcceptsLegacyAlias(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addProduct(1, "שוקולד אגוזים", "20.00")
	svc := newTestService(store)
	ctx := context.Background()

	o, err := svc.Create(ctx, 1, []orderitem.NewLine{{ProductID: 1, Quantity: 1}})
	require.NoError(t, err)
	require.Equal(t, order.StatusReceived, o.Status)

	updated, err := svc.UpdateStatus(ctx, o.ID, "Paid")
	require.NoError(t, err)
	require.Equal(t, order.StatusPaid, updated.Status)
	require.True(t, updated.TotalPrice.Equal(o.TotalPrice))
	require.Len(t, updated.Items, 1)

	_, err = svc.UpdateStatus(ctx, o.ID, "Shipped")
	require.ErrorIs(t, err, order.ErrInvalidStatus)

	got, err := svc.Get(ctx, o.ID, 1)
	require.NoError(t, err)
	require.Equal(t, order.StatusPaid, got.Status)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeStore())

	_, err := svc.UpdateStatus(context.Background(), 9999, order.StatusCompleted.String())
	require.ErrorIs(t, err, order.ErrOrderNotFound)
}
