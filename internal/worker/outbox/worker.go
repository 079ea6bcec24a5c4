package outbox

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/chocobean/storefront/internal/dal/interfaces/ioutboxrepo"
	"github.com/chocobean/storefront/internal/dal/rabbitmq"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
)

// Worker drains the outbox table into RabbitMQ. Rows that fail to publish
// stay in the table and are retried with exponential backoff until their
// max_retries budget runs out.
type Worker struct {
	outboxRepo    ioutboxrepo.Repository
	rabbitClient  *rabbitmq.Client
	pollInterval  time.Duration
	batchSize     int
	retryInterval time.Duration
	stopCh        chan struct{}
}

// NewWorker creates a new outbox worker.
func NewWorker(
	outboxRepo ioutboxrepo.Repository,
	rabbitClient *rabbitmq.Client,
) *Worker {
	pollIntervalSeconds := viper.GetInt("rabbitmq.outbox.poll_interval_seconds")
	if pollIntervalSeconds == 0 {
		pollIntervalSeconds = 10
	}

	batchSize := viper.GetInt("rabbitmq.outbox.batch_size")
	if batchSize == 0 {
		batchSize = 100
	}

	retryIntervalSeconds := viper.GetInt("rabbitmq.outbox.retry_interval_seconds")
	if retryIntervalSeconds == 0 {
		retryIntervalSeconds = 30
	}

	return &Worker{
		outboxRepo:    outboxRepo,
		rabbitClient:  rabbitClient,
		pollInterval:  time.Duration(pollIntervalSeconds) * time.Second,
		batchSize:     batchSize,
		retryInterval: time.Duration(retryIntervalSeconds) * time.Second,
		stopCh:        make(chan struct{}),
	}
}

// Start polls the outbox until the context is cancelled or Stop is called.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	slog.Info("Outbox worker started", "poll_interval", w.pollInterval, "batch_size", w.batchSize)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Outbox worker shutting down")

			return
		case <-w.stopCh:
			slog.Info("Outbox worker stopped")

			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

// nextRetryDelay doubles the configured retry interval per attempt, so with
// the default 30s interval the schedule is 60s, 120s, 240s and so on.
func (w *Worker) nextRetryDelay(retryCount int) time.Duration {
	return time.Duration(float64(w.retryInterval) * math.Pow(2, float64(retryCount)))
}

// drain publishes one batch of pending outbox rows.
func (w *Worker) drain(ctx context.Context) {
	pending, err := w.outboxRepo.GetPendingMessages(ctx, w.batchSize)
	if err != nil {
		slog.Error("Failed to get pending messages from outbox", "error", err)

		return
	}

	if len(pending) == 0 {
		return
	}

	slog.Info("Processing outbox messages", "count", len(pending))

	for _, msg := range pending {
		publishErr := w.rabbitClient.Channel().Publish(
			msg.ExchangeName,
			msg.RoutingKey,
			false,
			false,
			amqp.Publishing{
				ContentType: msg.ContentType,
				Body:        msg.Payload,
			},
		)

		if publishErr != nil {
			retries := msg.RetryCount + 1
			nextRetryAt := time.Now().Add(w.nextRetryDelay(retries))

			slog.Warn("Failed to publish message from outbox, will retry",
				"outbox_id", msg.ID,
				"retry_count", retries,
				"next_retry", nextRetryAt,
				"error", publishErr,
			)

			if err := w.outboxRepo.UpdateRetry(ctx, msg.ID, retries, publishErr.Error(), nextRetryAt); err != nil {
				slog.Error("Failed to update retry information", "outbox_id", msg.ID, "error", err)
			}

			continue
		}

		if err := w.outboxRepo.Delete(ctx, msg.ID); err != nil {
			slog.Error("Failed to delete message from outbox after publish", "outbox_id", msg.ID, "error", err)

			continue
		}

		slog.Info("Message published and removed from outbox", "outbox_id", msg.ID)
	}
}
