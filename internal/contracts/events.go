package contracts

import (
	"encoding/json"
	"time"
)

// EventEnvelope is the canonical event wrapper published by the outbox
// worker. Data carries the event-specific payload as raw JSON.
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventClass    string          `json:"event_class"`
	OccurredAt    time.Time       `json:"occurred_at"`
	PartitionKey  string          `json:"partition_key"`
	SourceService string          `json:"source_service"`
	TraceID       string          `json:"trace_id"`
	SchemaVersion string          `json:"schema_version"`
	Data          json.RawMessage `json:"data"`
}

type AssetMintedPayload struct {
	AssetID  string `json:"asset_id"`
	Name     string `json:"name"`
	ImageRef string `json:"image_ref"`
	OwnerID  string `json:"owner_id"`
	MintedAt string `json:"minted_at"`
}

type AssetTransferredPayload struct {
	AssetID     string `json:"asset_id"`
	FromOwnerID string `json:"from_owner_id"`
	ToOwnerID   string `json:"to_owner_id"`
}

type AssetBurnedPayload struct {
	AssetID     string `json:"asset_id"`
	LastOwnerID string `json:"last_owner_id"`
}

type AuctionCreatedPayload struct {
	AuctionID     string `json:"auction_id"`
	AssetID       string `json:"asset_id"`
	SellerID      string `json:"seller_id"`
	MinBid        uint64 `json:"min_bid"`
	EndTimeMillis uint64 `json:"end_time_ms"`
}

type AuctionBidPlacedPayload struct {
	AuctionID        string `json:"auction_id"`
	BidderID         string `json:"bidder_id"`
	Amount           uint64 `json:"amount"`
	RefundedBidderID string `json:"refunded_bidder_id,omitempty"`
	RefundedAmount   uint64 `json:"refunded_amount,omitempty"`
}

type AuctionEndedNoBidsPayload struct {
	AuctionID string `json:"auction_id"`
	AssetID   string `json:"asset_id"`
	SellerID  string `json:"seller_id"`
}

type AuctionSettledPayload struct {
	AuctionID  string `json:"auction_id"`
	SellerID   string `json:"seller_id"`
	WinnerID   string `json:"winner_id"`
	FinalPrice uint64 `json:"final_price"`
}

type AuctionClaimedPayload struct {
	AuctionID string `json:"auction_id"`
	AssetID   string `json:"asset_id"`
	WinnerID  string `json:"winner_id"`
}
