package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/contracts"
	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/domain"
)

// OutboxRecord is a pending notification written in the same transaction
// as the state change it describes. The worker publishes and marks it
// sent strictly after commit.
type OutboxRecord struct {
	RecordID   string
	EventClass string
	Envelope   contracts.EventEnvelope
	CreatedAt  time.Time
	SentAt     *time.Time
}

// AssetRepository persists registry assets. Write methods ride the given
// outbox record in the same transaction so a committed custody change and
// its notification are inseparable.
type AssetRepository interface {
	CreateWithOutboxTx(ctx context.Context, asset domain.Asset, rec OutboxRecord) error
	GetByID(ctx context.Context, assetID uuid.UUID) (domain.Asset, error)
	UpdateWithOutboxTx(ctx context.Context, asset domain.Asset, rec OutboxRecord) error
}

// AuctionRepository persists auction records. The *WithAssetTx variants
// update the held asset's custody in the same transaction as the auction
// row, which is what keeps the asset/auction 1:1 custody invariant.
type AuctionRepository interface {
	CreateWithAssetTx(ctx context.Context, auction domain.Auction, asset domain.Asset, rec OutboxRecord) error
	GetByID(ctx context.Context, auctionID uuid.UUID) (domain.Auction, error)
	// ListOpen returns every auction whose ended flag is still false.
	// Bootstrap uses it to rehydrate the escrow ledger after a restart.
	ListOpen(ctx context.Context) ([]domain.Auction, error)
	UpdateWithOutboxTx(ctx context.Context, auction domain.Auction, rec OutboxRecord) error
	UpdateWithAssetTx(ctx context.Context, auction domain.Auction, asset domain.Asset, rec OutboxRecord) error
}

type OutboxRepository interface {
	ListPending(ctx context.Context, limit int) ([]OutboxRecord, error)
	MarkSent(ctx context.Context, recordID string, at time.Time) error
}
