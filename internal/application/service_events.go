package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/contracts"
	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/domain"
	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/ports"
)

const timeLayout = time.RFC3339

// newOutboxRecord wraps an event payload in the canonical envelope. The
// record rides the repository transaction of the state change it
// describes, so the notifier only ever sees committed state.
func (s *Service) newOutboxRecord(eventType, partitionKey string, payload any, now time.Time) ports.OutboxRecord {
	data, err := json.Marshal(payload)
	if err != nil {
		data = []byte(`{}`)
	}
	env := contracts.EventEnvelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventClass:    domain.CanonicalEventClass(eventType),
		OccurredAt:    now,
		PartitionKey:  partitionKey,
		SourceService: s.cfg.ServiceName,
		TraceID:       uuid.NewString(),
		SchemaVersion: "v1",
		Data:          data,
	}
	return ports.OutboxRecord{
		RecordID:   uuid.NewString(),
		EventClass: env.EventClass,
		Envelope:   env,
		CreatedAt:  now,
	}
}

// ValidateToken verifies a bearer token and returns the caller claims.
func (s *Service) ValidateToken(_ context.Context, raw string) (ports.AuthClaims, error) {
	if s.tokens == nil {
		return ports.AuthClaims{}, domain.ErrUnauthorized
	}
	claims, err := s.tokens.ParseAndValidate(raw)
	if err != nil {
		return ports.AuthClaims{}, domain.ErrUnauthorized
	}
	return claims, nil
}

func logger() *slog.Logger {
	return slog.Default().With(
		"module", "application",
		"layer", "application",
	)
}
