package domain

import (
	"time"

	"github.com/google/uuid"
)

// Auction is the per-auction state machine record. Created and Active are
// the same stored state, distinguished only by comparing the time oracle
// against EndTime. AssetHeld is the custody slot: populated at creation
// and cleared exactly once, either at no-bid closure or at winner claim.
//
// Monetary amounts are uint64 in the smallest unit; EndTime is uint64
// milliseconds in the time oracle's epoch.
type Auction struct {
	AuctionID       uuid.UUID
	AssetID         uuid.UUID
	AssetHeld       bool
	SellerID        uuid.UUID
	HighestBidderID uuid.UUID
	CurrentBid      uint64
	MinBid          uint64
	EndTime         uint64
	EscrowID        uuid.UUID
	EscrowBalance   uint64
	Ended           bool
	CreatedAt       time.Time
	EndedAt         *time.Time
	ClaimedAt       *time.Time
}

// HasBid reports whether a real bid has displaced the seller sentinel.
func (a Auction) HasBid() bool {
	return a.HighestBidderID != a.SellerID
}

// ExpiredAt reports whether the auction deadline has passed at nowMillis.
func (a Auction) ExpiredAt(nowMillis uint64) bool {
	return nowMillis >= a.EndTime
}
