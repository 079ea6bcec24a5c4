package ioutboxrepo

import (
	"context"
	"time"

	"github.com/chocobean/storefront/internal/service/models/outbox"
)

// Repository is the persistence boundary for the transactional outbox.
type Repository interface {
	Insert(ctx context.Context, msg outbox.Message) error
	GetPendingMessages(ctx context.Context, limit int) ([]outbox.Message, error)
	Delete(ctx context.Context, id int64) error
	UpdateRetry(ctx context.Context, id int64, retryCount int, lastError string, nextRetryAt time.Time) error
}
