package contracts

type MintAssetRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageRef    string `json:"image_ref"`
}

type TransferAssetRequest struct {
	RecipientID string `json:"recipient_id"`
}

type AssetResponse struct {
	AssetID     string `json:"asset_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageRef    string `json:"image_ref"`
	OwnerID     string `json:"owner_id"`
	HeldBy      string `json:"held_by,omitempty"`
}

type CreateAuctionRequest struct {
	AssetID        string `json:"asset_id"`
	MinBid         uint64 `json:"min_bid"`
	DurationMillis uint64 `json:"duration_ms"`
}

type PlaceBidRequest struct {
	Amount uint64 `json:"amount"`
}

type AuctionResponse struct {
	AuctionID       string `json:"auction_id"`
	AssetID         string `json:"asset_id"`
	AssetHeld       bool   `json:"asset_held"`
	SellerID        string `json:"seller_id"`
	HighestBidderID string `json:"highest_bidder_id"`
	CurrentBid      uint64 `json:"current_bid"`
	MinBid          uint64 `json:"min_bid"`
	EndTimeMillis   uint64 `json:"end_time_ms"`
	EscrowBalance   uint64 `json:"escrow_balance"`
	Ended           bool   `json:"ended"`
}

type BidSnapshotResponse struct {
	AuctionID       string `json:"auction_id"`
	CurrentBid      uint64 `json:"current_bid"`
	HighestBidderID string `json:"highest_bidder_id"`
	Ended           bool   `json:"ended"`
}
