package uow

import (
	"context"

	"github.com/chocobean/storefront/internal/dal/interfaces/iorderitemrepo"
	"github.com/chocobean/storefront/internal/dal/interfaces/iorderrepo"
	"github.com/chocobean/storefront/internal/dal/interfaces/ioutboxrepo"
	"github.com/chocobean/storefront/internal/dal/interfaces/iproductrepo"
	"github.com/chocobean/storefront/internal/dal/postgres"
	orderrepo "github.com/chocobean/storefront/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/chocobean/storefront/internal/dal/repositories/orderitem/postgres"
	outboxrepo "github.com/chocobean/storefront/internal/dal/repositories/outbox/postgres"
	productrepo "github.com/chocobean/storefront/internal/dal/repositories/product/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// unitOfWork scopes the order workflow repositories to one pgx transaction.
// Before Begin the repositories run directly on the pool.
type unitOfWork struct {
	pool          *pgxpool.Pool
	tx            pgx.Tx
	orderRepo     iorderrepo.Repository
	orderItemRepo iorderitemrepo.Repository
	productRepo   iproductrepo.Repository
	outboxRepo    ioutboxrepo.Repository
}

func NewUnitOfWork(client *postgres.Client) *unitOfWork {
	pool := client.Pool()

	return &unitOfWork{
		pool:          pool,
		orderRepo:     orderrepo.NewPostgresOrderRepository(pool),
		orderItemRepo: orderitemrepo.NewPostgresOrderItemRepository(pool),
		productRepo:   productrepo.NewPostgresProductRepository(pool),
		outboxRepo:    outboxrepo.NewPostgresOutboxRepository(pool),
	}
}

func (u *unitOfWork) OrderRepository() iorderrepo.Repository {
	return u.orderRepo
}

func (u *unitOfWork) OrderItemRepository() iorderitemrepo.Repository {
	return u.orderItemRepo
}

func (u *unitOfWork) ProductRepository() iproductrepo.Repository {
	return u.productRepo
}

func (u *unitOfWork) OutboxRepository() ioutboxrepo.Repository {
	return u.outboxRepo
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.orderRepo = orderrepo.NewPostgresOrderRepository(tx)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(tx)
	u.productRepo = productrepo.NewPostgresProductRepository(tx)
	u.outboxRepo = outboxrepo.NewPostgresOutboxRepository(tx)

	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Commit(ctx)
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Rollback(ctx)
}
