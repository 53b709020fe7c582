package events_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/adapters/events"
	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/adapters/memory"
	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/contracts"
	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/domain"
	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/ports"
)

type capturePublisher struct {
	published []contracts.EventEnvelope
	failAfter int
}

func (p *capturePublisher) Publish(_ context.Context, envelope contracts.EventEnvelope) error {
	if p.failAfter > 0 && len(p.published) >= p.failAfter {
		return errors.New("broker unavailable")
	}
	p.published = append(p.published, envelope)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedOutbox(t *testing.T, repos *memory.Repositories, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		asset := domain.Asset{AssetID: uuid.New(), Name: "a", Description: "b", ImageRef: "c", OwnerID: uuid.New()}
		rec := ports.OutboxRecord{
			RecordID: uuid.NewString(),
			Envelope: contracts.EventEnvelope{
				EventID:   uuid.NewString(),
				EventType: domain.EventAssetMinted,
			},
			CreatedAt: time.Now().UTC(),
		}
		if err := repos.Assets.CreateWithOutboxTx(context.Background(), asset, rec); err != nil {
			t.Fatalf("seed outbox: %v", err)
		}
	}
}

func TestProcessOncePublishesAndMarksSent(t *testing.T) {
	t.Parallel()

	repos := memory.NewRepositories()
	seedOutbox(t, repos, 3)

	pub := &capturePublisher{}
	worker := events.NewOutboxWorker(testLogger(), repos.Outbox, pub, time.Second, 10)

	if err := worker.ProcessOnce(context.Background()); err != nil {
		t.Fatalf("process once failed: %v", err)
	}
	if len(pub.published) != 3 {
		t.Fatalf("published %d envelopes, want 3", len(pub.published))
	}

	pending, err := repos.Outbox.ListPending(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected empty outbox after publish, got %d pending", len(pending))
	}
}

func TestProcessOnceStopsOnPublishFailure(t *testing.T) {
	t.Parallel()

	repos := memory.NewRepositories()
	seedOutbox(t, repos, 3)

	pub := &capturePublisher{failAfter: 1}
	worker := events.NewOutboxWorker(testLogger(), repos.Outbox, pub, time.Second, 10)

	if err := worker.ProcessOnce(context.Background()); err == nil {
		t.Fatalf("expected publish failure to surface")
	}

	pending, err := repos.Outbox.ListPending(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("failed records must stay pending, got %d", len(pending))
	}

	// Retry after the broker recovers drains the rest.
	pub.failAfter = 0
	if err := worker.ProcessOnce(context.Background()); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	pending, err = repos.Outbox.ListPending(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected outbox drained after retry, got %d pending", len(pending))
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	repos := memory.NewRepositories()
	worker := events.NewOutboxWorker(testLogger(), repos.Outbox, &capturePublisher{}, 10*time.Millisecond, 10)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("worker did not stop on cancellation")
	}
}
