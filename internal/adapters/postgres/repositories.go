package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/domain"
	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/ports"
)

type Repositories struct {
	Assets   *AssetRepository
	Auctions *AuctionRepository
	Outbox   *OutboxRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Assets:   &AssetRepository{db: db},
		Auctions: &AuctionRepository{db: db},
		Outbox:   &OutboxRepository{db: db},
	}
}

type AssetRepository struct {
	db *gorm.DB
}

func (r *AssetRepository) CreateWithOutboxTx(ctx context.Context, asset domain.Asset, rec ports.OutboxRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := toAssetModel(asset)
		if err := tx.Create(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrConflict
			}
			return err
		}
		outbox := toOutboxModel(rec)
		return tx.Create(&outbox).Error
	})
}

func (r *AssetRepository) GetByID(ctx context.Context, assetID uuid.UUID) (domain.Asset, error) {
	var row assetModel
	err := r.db.WithContext(ctx).
		Where("asset_id = ? AND burned_at IS NULL", assetID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Asset{}, domain.ErrNotFound
		}
		return domain.Asset{}, err
	}
	return toDomainAsset(row), nil
}

func (r *AssetRepository) UpdateWithOutboxTx(ctx context.Context, asset domain.Asset, rec ports.OutboxRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveAsset(tx, asset); err != nil {
			return err
		}
		outbox := toOutboxModel(rec)
		return tx.Create(&outbox).Error
	})
}

type AuctionRepository struct {
	db *gorm.DB
}

func (r *AuctionRepository) CreateWithAssetTx(ctx context.Context, auction domain.Auction, asset domain.Asset, rec ports.OutboxRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := toAuctionModel(auction)
		if err := tx.Create(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrConflict
			}
			return err
		}
		if err := saveAsset(tx, asset); err != nil {
			return err
		}
		outbox := toOutboxModel(rec)
		return tx.Create(&outbox).Error
	})
}

func (r *AuctionRepository) GetByID(ctx context.Context, auctionID uuid.UUID) (domain.Auction, error) {
	var row auctionModel
	err := r.db.WithContext(ctx).Where("auction_id = ?", auctionID).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Auction{}, domain.ErrNotFound
		}
		return domain.Auction{}, err
	}
	return toDomainAuction(row), nil
}

func (r *AuctionRepository) ListOpen(ctx context.Context) ([]domain.Auction, error) {
	var rows []auctionModel
	err := r.db.WithContext(ctx).Where("ended = FALSE").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Auction, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainAuction(row))
	}
	return out, nil
}

func (r *AuctionRepository) UpdateWithOutboxTx(ctx context.Context, auction domain.Auction, rec ports.OutboxRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveAuction(tx, auction); err != nil {
			return err
		}
		outbox := toOutboxModel(rec)
		return tx.Create(&outbox).Error
	})
}

func (r *AuctionRepository) UpdateWithAssetTx(ctx context.Context, auction domain.Auction, asset domain.Asset, rec ports.OutboxRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveAuction(tx, auction); err != nil {
			return err
		}
		if err := saveAsset(tx, asset); err != nil {
			return err
		}
		outbox := toOutboxModel(rec)
		return tx.Create(&outbox).Error
	})
}

type OutboxRepository struct {
	db *gorm.DB
}

func (r *OutboxRepository) ListPending(ctx context.Context, limit int) ([]ports.OutboxRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	err := r.db.WithContext(ctx).
		Where("sent_at IS NULL").
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]ports.OutboxRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, toOutboxRecord(row))
	}
	return out, nil
}

func (r *OutboxRepository) MarkSent(ctx context.Context, recordID string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&outboxModel{}).
		Where("record_id = ?", recordID).
		Update("sent_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func saveAsset(tx *gorm.DB, asset domain.Asset) error {
	row := toAssetModel(asset)
	res := tx.Model(&assetModel{}).Where("asset_id = ?", row.AssetID).Updates(map[string]any{
		"owner_id":  row.OwnerID,
		"held_by":   row.HeldBy,
		"burned_at": row.BurnedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func saveAuction(tx *gorm.DB, auction domain.Auction) error {
	row := toAuctionModel(auction)
	res := tx.Model(&auctionModel{}).Where("auction_id = ?", row.AuctionID).Updates(map[string]any{
		"asset_held":        row.AssetHeld,
		"highest_bidder_id": row.HighestBidderID,
		"current_bid":       row.CurrentBid,
		"escrow_balance":    row.EscrowBalance,
		"ended":             row.Ended,
		"ended_at":          row.EndedAt,
		"claimed_at":        row.ClaimedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
