// Package memory provides mutex-guarded in-memory implementations of the
// repository and wallet ports. Unit tests and local runs without a
// database use this stack; the postgres adapter is the deployed one.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/domain"
	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/ports"
)

type Repositories struct {
	Assets   *AssetRepository
	Auctions *AuctionRepository
	Outbox   *OutboxRepository
}

func NewRepositories() *Repositories {
	outbox := &OutboxRepository{rows: map[string]ports.OutboxRecord{}}
	assets := &AssetRepository{rows: map[uuid.UUID]domain.Asset{}, outbox: outbox}
	auctions := &AuctionRepository{rows: map[uuid.UUID]domain.Auction{}, assets: assets, outbox: outbox}
	return &Repositories{Assets: assets, Auctions: auctions, Outbox: outbox}
}

type AssetRepository struct {
	mu     sync.Mutex
	rows   map[uuid.UUID]domain.Asset
	outbox *OutboxRepository
}

func (r *AssetRepository) CreateWithOutboxTx(_ context.Context, asset domain.Asset, rec ports.OutboxRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[asset.AssetID]; ok {
		return domain.ErrConflict
	}
	r.rows[asset.AssetID] = cloneAsset(asset)
	r.outbox.enqueue(rec)
	return nil
}

func (r *AssetRepository) GetByID(_ context.Context, assetID uuid.UUID) (domain.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getLocked(assetID)
}

func (r *AssetRepository) UpdateWithOutboxTx(_ context.Context, asset domain.Asset, rec ports.OutboxRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.putLocked(asset); err != nil {
		return err
	}
	r.outbox.enqueue(rec)
	return nil
}

func (r *AssetRepository) getLocked(assetID uuid.UUID) (domain.Asset, error) {
	row, ok := r.rows[assetID]
	if !ok || row.Burned() {
		return domain.Asset{}, domain.ErrNotFound
	}
	return cloneAsset(row), nil
}

func (r *AssetRepository) putLocked(asset domain.Asset) error {
	if _, ok := r.rows[asset.AssetID]; !ok {
		return domain.ErrNotFound
	}
	r.rows[asset.AssetID] = cloneAsset(asset)
	return nil
}

type AuctionRepository struct {
	mu     sync.Mutex
	rows   map[uuid.UUID]domain.Auction
	assets *AssetRepository
	outbox *OutboxRepository
}

func (r *AuctionRepository) CreateWithAssetTx(_ context.Context, auction domain.Auction, asset domain.Asset, rec ports.OutboxRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[auction.AuctionID]; ok {
		return domain.ErrConflict
	}

	r.assets.mu.Lock()
	defer r.assets.mu.Unlock()
	if err := r.assets.putLocked(asset); err != nil {
		return err
	}
	r.rows[auction.AuctionID] = cloneAuction(auction)
	r.outbox.enqueue(rec)
	return nil
}

func (r *AuctionRepository) GetByID(_ context.Context, auctionID uuid.UUID) (domain.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[auctionID]
	if !ok {
		return domain.Auction{}, domain.ErrNotFound
	}
	return cloneAuction(row), nil
}

func (r *AuctionRepository) ListOpen(_ context.Context) ([]domain.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Auction, 0)
	for _, row := range r.rows {
		if !row.Ended {
			out = append(out, cloneAuction(row))
		}
	}
	return out, nil
}

func (r *AuctionRepository) UpdateWithOutboxTx(_ context.Context, auction domain.Auction, rec ports.OutboxRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[auction.AuctionID]; !ok {
		return domain.ErrNotFound
	}
	r.rows[auction.AuctionID] = cloneAuction(auction)
	r.outbox.enqueue(rec)
	return nil
}

func (r *AuctionRepository) UpdateWithAssetTx(_ context.Context, auction domain.Auction, asset domain.Asset, rec ports.OutboxRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[auction.AuctionID]; !ok {
		return domain.ErrNotFound
	}

	r.assets.mu.Lock()
	defer r.assets.mu.Unlock()
	if err := r.assets.putLocked(asset); err != nil {
		return err
	}
	r.rows[auction.AuctionID] = cloneAuction(auction)
	r.outbox.enqueue(rec)
	return nil
}

type OutboxRepository struct {
	mu    sync.Mutex
	rows  map[string]ports.OutboxRecord
	order []string
}

func (r *OutboxRepository) enqueue(rec ports.OutboxRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[rec.RecordID]; ok {
		return
	}
	r.rows[rec.RecordID] = rec
	r.order = append(r.order, rec.RecordID)
}

func (r *OutboxRepository) ListPending(_ context.Context, limit int) ([]ports.OutboxRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if limit <= 0 {
		limit = 100
	}
	out := make([]ports.OutboxRecord, 0, limit)
	for _, id := range r.order {
		row, ok := r.rows[id]
		if !ok || row.SentAt != nil {
			continue
		}
		out = append(out, row)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *OutboxRepository) MarkSent(_ context.Context, recordID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[recordID]
	if !ok {
		return domain.ErrNotFound
	}
	row.SentAt = &at
	r.rows[recordID] = row
	return nil
}

func cloneAsset(a domain.Asset) domain.Asset {
	if a.HeldBy != nil {
		held := *a.HeldBy
		a.HeldBy = &held
	}
	if a.BurnedAt != nil {
		burned := *a.BurnedAt
		a.BurnedAt = &burned
	}
	return a
}

func cloneAuction(a domain.Auction) domain.Auction {
	if a.EndedAt != nil {
		ended := *a.EndedAt
		a.EndedAt = &ended
	}
	if a.ClaimedAt != nil {
		claimed := *a.ClaimedAt
		a.ClaimedAt = &claimed
	}
	return a
}
