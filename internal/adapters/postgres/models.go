package postgres

import (
	"time"

	"github.com/google/uuid"
)

type assetModel struct {
	AssetID     uuid.UUID  `gorm:"column:asset_id;type:uuid;primaryKey"`
	Name        string     `gorm:"column:name"`
	Description string     `gorm:"column:description"`
	ImageRef    string     `gorm:"column:image_ref"`
	CreatorID   uuid.UUID  `gorm:"column:creator_id;type:uuid"`
	OwnerID     uuid.UUID  `gorm:"column:owner_id;type:uuid"`
	HeldBy      *uuid.UUID `gorm:"column:held_by;type:uuid"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	BurnedAt    *time.Time `gorm:"column:burned_at"`
}

func (assetModel) TableName() string { return "assets" }

type auctionModel struct {
	AuctionID       uuid.UUID  `gorm:"column:auction_id;type:uuid;primaryKey"`
	AssetID         uuid.UUID  `gorm:"column:asset_id;type:uuid"`
	AssetHeld       bool       `gorm:"column:asset_held"`
	SellerID        uuid.UUID  `gorm:"column:seller_id;type:uuid"`
	HighestBidderID uuid.UUID  `gorm:"column:highest_bidder_id;type:uuid"`
	CurrentBid      int64      `gorm:"column:current_bid"`
	MinBid          int64      `gorm:"column:min_bid"`
	EndTime         int64      `gorm:"column:end_time_ms"`
	EscrowID        uuid.UUID  `gorm:"column:escrow_id;type:uuid"`
	EscrowBalance   int64      `gorm:"column:escrow_balance"`
	Ended           bool       `gorm:"column:ended"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	EndedAt         *time.Time `gorm:"column:ended_at"`
	ClaimedAt       *time.Time `gorm:"column:claimed_at"`
}

func (auctionModel) TableName() string { return "auctions" }

type outboxModel struct {
	RecordID     string     `gorm:"column:record_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	EventClass   string     `gorm:"column:event_class"`
	PartitionKey string     `gorm:"column:partition_key"`
	Envelope     string     `gorm:"column:envelope;type:jsonb"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	SentAt       *time.Time `gorm:"column:sent_at"`
}

func (outboxModel) TableName() string { return "auction_outbox" }
