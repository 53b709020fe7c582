package postgres

import (
	"encoding/json"

	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/contracts"
	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/domain"
	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/ports"
)

func toAssetModel(a domain.Asset) assetModel {
	return assetModel{
		AssetID:     a.AssetID,
		Name:        a.Name,
		Description: a.Description,
		ImageRef:    a.ImageRef,
		CreatorID:   a.CreatorID,
		OwnerID:     a.OwnerID,
		HeldBy:      a.HeldBy,
		CreatedAt:   a.CreatedAt,
		BurnedAt:    a.BurnedAt,
	}
}

func toDomainAsset(m assetModel) domain.Asset {
	return domain.Asset{
		AssetID:     m.AssetID,
		Name:        m.Name,
		Description: m.Description,
		ImageRef:    m.ImageRef,
		CreatorID:   m.CreatorID,
		OwnerID:     m.OwnerID,
		HeldBy:      m.HeldBy,
		CreatedAt:   m.CreatedAt,
		BurnedAt:    m.BurnedAt,
	}
}

func toAuctionModel(a domain.Auction) auctionModel {
	return auctionModel{
		AuctionID:       a.AuctionID,
		AssetID:         a.AssetID,
		AssetHeld:       a.AssetHeld,
		SellerID:        a.SellerID,
		HighestBidderID: a.HighestBidderID,
		CurrentBid:      int64(a.CurrentBid),
		MinBid:          int64(a.MinBid),
		EndTime:         int64(a.EndTime),
		EscrowID:        a.EscrowID,
		EscrowBalance:   int64(a.EscrowBalance),
		Ended:           a.Ended,
		CreatedAt:       a.CreatedAt,
		EndedAt:         a.EndedAt,
		ClaimedAt:       a.ClaimedAt,
	}
}

func toDomainAuction(m auctionModel) domain.Auction {
	return domain.Auction{
		AuctionID:       m.AuctionID,
		AssetID:         m.AssetID,
		AssetHeld:       m.AssetHeld,
		SellerID:        m.SellerID,
		HighestBidderID: m.HighestBidderID,
		CurrentBid:      uint64(m.CurrentBid),
		MinBid:          uint64(m.MinBid),
		EndTime:         uint64(m.EndTime),
		EscrowID:        m.EscrowID,
		EscrowBalance:   uint64(m.EscrowBalance),
		Ended:           m.Ended,
		CreatedAt:       m.CreatedAt,
		EndedAt:         m.EndedAt,
		ClaimedAt:       m.ClaimedAt,
	}
}

func toOutboxModel(rec ports.OutboxRecord) outboxModel {
	raw, err := json.Marshal(rec.Envelope)
	if err != nil {
		raw = []byte(`{}`)
	}
	return outboxModel{
		RecordID:     rec.RecordID,
		EventType:    rec.Envelope.EventType,
		EventClass:   rec.EventClass,
		PartitionKey: rec.Envelope.PartitionKey,
		Envelope:     string(raw),
		CreatedAt:    rec.CreatedAt,
		SentAt:       rec.SentAt,
	}
}

func toOutboxRecord(m outboxModel) ports.OutboxRecord {
	var env contracts.EventEnvelope
	_ = json.Unmarshal([]byte(m.Envelope), &env)
	return ports.OutboxRecord{
		RecordID:   m.RecordID,
		EventClass: m.EventClass,
		Envelope:   env,
		CreatedAt:  m.CreatedAt,
		SentAt:     m.SentAt,
	}
}
