package domain_test

import (
	"testing"

	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/domain"
)

func TestEveryEmittedEventHasAClass(t *testing.T) {
	t.Parallel()

	for _, eventType := range []string{
		domain.EventAssetMinted,
		domain.EventAssetTransferred,
		domain.EventAssetBurned,
		domain.EventAuctionCreated,
		domain.EventAuctionBidPlaced,
		domain.EventAuctionEndedNoBid,
		domain.EventAuctionSettled,
		domain.EventAuctionClaimed,
	} {
		if !domain.IsCanonicalEmittedEvent(eventType) {
			t.Fatalf("%s should be a canonical event", eventType)
		}
		if domain.CanonicalEventClass(eventType) == "" {
			t.Fatalf("%s has no event class", eventType)
		}
	}

	if domain.IsCanonicalEmittedEvent("auction.unknown") {
		t.Fatalf("unknown event type must not be canonical")
	}
	if domain.CanonicalEventClass("auction.unknown") != "" {
		t.Fatalf("unknown event type must have no class")
	}
}

func TestAuctionStateHelpers(t *testing.T) {
	t.Parallel()

	auction := domain.Auction{EndTime: 5_000}
	auction.SellerID = auction.HighestBidderID
	if auction.HasBid() {
		t.Fatalf("seller sentinel must not count as a bid")
	}
	if auction.ExpiredAt(4_999) {
		t.Fatalf("auction must be live just before the deadline")
	}
	if !auction.ExpiredAt(5_000) {
		t.Fatalf("deadline instant counts as expired")
	}
}
