package domain

const (
	CanonicalEventClassDomain        = "domain"
	CanonicalEventClassAnalyticsOnly = "analytics_only"
)

const (
	EventAssetMinted       = "asset.minted"
	EventAssetTransferred  = "asset.transferred"
	EventAssetBurned       = "asset.burned"
	EventAuctionCreated    = "auction.created"
	EventAuctionBidPlaced  = "auction.bid_placed"
	EventAuctionEndedNoBid = "auction.ended_no_bids"
	EventAuctionSettled    = "auction.settled"
	EventAuctionClaimed    = "auction.claimed"
)

func IsCanonicalEmittedEvent(eventType string) bool {
	switch eventType {
	case EventAssetMinted, EventAssetTransferred, EventAssetBurned,
		EventAuctionCreated, EventAuctionBidPlaced, EventAuctionEndedNoBid,
		EventAuctionSettled, EventAuctionClaimed:
		return true
	default:
		return false
	}
}

func CanonicalEventClass(eventType string) string {
	switch eventType {
	case EventAssetTransferred, EventAssetBurned, EventAuctionBidPlaced,
		EventAuctionSettled, EventAuctionClaimed:
		return CanonicalEventClassDomain
	case EventAssetMinted, EventAuctionCreated, EventAuctionEndedNoBid:
		return CanonicalEventClassAnalyticsOnly
	default:
		return ""
	}
}
