package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/contracts"
)

// WalletLedger is the external account-balance ledger backing bid
// payments. Debit fails with domain.ErrInsufficientFunds when the account
// cannot cover the amount.
type WalletLedger interface {
	Debit(ctx context.Context, accountID uuid.UUID, amount uint64) error
	Credit(ctx context.Context, accountID uuid.UUID, amount uint64) error
}

// Clock is the external time oracle. NowMillis is read once per operation
// and never cached across operations.
type Clock interface {
	NowMillis() uint64
}

// BidSnapshot is the cached fast-path view of an auction's bid state.
type BidSnapshot struct {
	CurrentBid      uint64
	HighestBidderID uuid.UUID
	Ended           bool
}

// BidCache stores best-effort bid snapshots for read traffic. Failures
// are logged, never surfaced to callers; the repository stays
// authoritative.
type BidCache interface {
	StoreSnapshot(ctx context.Context, auctionID uuid.UUID, snap BidSnapshot) error
	GetSnapshot(ctx context.Context, auctionID uuid.UUID) (BidSnapshot, bool, error)
}

// EventPublisher delivers committed outbox envelopes to observers.
type EventPublisher interface {
	Publish(ctx context.Context, envelope contracts.EventEnvelope) error
}
