package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/contracts"
)

// LoggingPublisher writes envelopes to the log. Used as the local/dev
// sink and by tests.
type LoggingPublisher struct {
	logger *slog.Logger
}

func NewLoggingPublisher(logger *slog.Logger) *LoggingPublisher {
	return &LoggingPublisher{logger: logger}
}

func (p *LoggingPublisher) Publish(ctx context.Context, envelope contracts.EventEnvelope) error {
	p.logger.InfoContext(ctx, "published event",
		"event_id", envelope.EventID,
		"event_type", envelope.EventType,
		"event_class", envelope.EventClass,
		"partition_key", envelope.PartitionKey,
	)
	return nil
}

// NATSPublisher delivers envelopes to NATS on one subject per event
// type, e.g. auction.events.auction.bid_placed.
type NATSPublisher struct {
	conn          *nats.Conn
	subjectPrefix string
}

func NewNATSPublisher(conn *nats.Conn, subjectPrefix string) *NATSPublisher {
	if subjectPrefix == "" {
		subjectPrefix = "auction.events"
	}
	return &NATSPublisher{conn: conn, subjectPrefix: subjectPrefix}
}

func (p *NATSPublisher) Publish(_ context.Context, envelope contracts.EventEnvelope) error {
	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	subject := fmt.Sprintf("%s.%s", p.subjectPrefix, envelope.EventType)
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publish to %s: %w", subject, err)
	}
	return nil
}
