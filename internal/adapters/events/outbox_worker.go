package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/ports"
)

// OutboxWorker pulls unpublished outbox records and publishes them.
// Separating transactional writes from broker delivery keeps event
// failures from ever rolling back committed auction state.
type OutboxWorker struct {
	logger    *slog.Logger
	outbox    ports.OutboxRepository
	publisher ports.EventPublisher
	interval  time.Duration
	batchSize int
}

func NewOutboxWorker(logger *slog.Logger, outbox ports.OutboxRepository, publisher ports.EventPublisher, interval time.Duration, batchSize int) *OutboxWorker {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &OutboxWorker{
		logger:    logger,
		outbox:    outbox,
		publisher: publisher,
		interval:  interval,
		batchSize: batchSize,
	}
}

// Run executes the periodic publish loop until context cancellation.
func (w *OutboxWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if err := w.ProcessOnce(ctx); err != nil {
			w.logger.ErrorContext(ctx, "outbox iteration failed",
				"module", "events.outbox_worker",
				"layer", "adapter",
				"operation", "outbox_process_once",
				"outcome", "failure",
				"error", err,
			)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// ProcessOnce publishes one pending batch in enqueue order. A publish
// failure stops the batch; the record stays pending and is retried on
// the next tick.
func (w *OutboxWorker) ProcessOnce(ctx context.Context) error {
	pending, err := w.outbox.ListPending(ctx, w.batchSize)
	if err != nil {
		return err
	}
	for _, rec := range pending {
		if err := w.publisher.Publish(ctx, rec.Envelope); err != nil {
			return err
		}
		if err := w.outbox.MarkSent(ctx, rec.RecordID, time.Now().UTC()); err != nil {
			return err
		}
	}
	return nil
}
