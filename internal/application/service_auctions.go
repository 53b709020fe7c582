package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/contracts"
	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/domain"
	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/ports"
)

// CreateAuction takes custody of the seller's asset, opens a zero-balance
// escrow and records the auction with the seller as sentinel highest
// bidder. The deadline is fixed at creation and never moves.
func (s *Service) CreateAuction(ctx context.Context, seller, assetID uuid.UUID, minBid, durationMillis uint64) (domain.Auction, error) {
	if seller == uuid.Nil {
		return domain.Auction{}, domain.ErrUnauthorized
	}
	if minBid == 0 || durationMillis == 0 {
		return domain.Auction{}, domain.ErrInvalidInput
	}

	unlock := s.lockAsset(assetID)
	defer unlock()

	asset, err := s.assets.GetByID(ctx, assetID)
	if err != nil {
		return domain.Auction{}, err
	}
	if asset.OwnerID != seller {
		return domain.Auction{}, domain.ErrUnauthorized
	}
	if asset.InAuction() {
		return domain.Auction{}, domain.ErrAssetInUse
	}

	now := s.nowFn()
	nowMillis := s.clock.NowMillis()
	auction := domain.Auction{
		AuctionID:       uuid.New(),
		AssetID:         asset.AssetID,
		AssetHeld:       true,
		SellerID:        seller,
		HighestBidderID: seller,
		CurrentBid:      minBid,
		MinBid:          minBid,
		EndTime:         nowMillis + durationMillis,
		EscrowID:        s.escrow.Open(),
		CreatedAt:       now,
	}

	held := auction.AuctionID
	asset.HeldBy = &held

	rec := s.newOutboxRecord(domain.EventAuctionCreated, auction.AuctionID.String(), contracts.AuctionCreatedPayload{
		AuctionID:     auction.AuctionID.String(),
		AssetID:       auction.AssetID.String(),
		SellerID:      auction.SellerID.String(),
		MinBid:        auction.MinBid,
		EndTimeMillis: auction.EndTime,
	}, now)
	if err := s.auctions.CreateWithAssetTx(ctx, auction, asset, rec); err != nil {
		return domain.Auction{}, err
	}

	s.storeSnapshot(ctx, auction)
	return auction, nil
}

// PlaceBid accepts a strictly higher offer before the deadline. A
// displaced real bidder is refunded the full previous bid before the new
// bidder's funds are escrowed, so the escrow never represents two
// bidders' money at once. If the new bidder's wallet cannot cover the
// deposit delta, or the record write fails after the money moved, the
// monetary legs are unwound under the still-held auction lock and the
// operation fails with no observable state change.
func (s *Service) PlaceBid(ctx context.Context, bidder, auctionID uuid.UUID, amount uint64) error {
	if bidder == uuid.Nil {
		return domain.ErrUnauthorized
	}

	unlock := s.lockAuction(auctionID)
	defer unlock()

	auction, err := s.auctions.GetByID(ctx, auctionID)
	if err != nil {
		return err
	}
	if bidder == auction.SellerID {
		return domain.ErrInvalidInput
	}
	if auction.Ended || auction.ExpiredAt(s.clock.NowMillis()) {
		return domain.ErrExpired
	}
	if amount <= auction.CurrentBid {
		return domain.ErrBidTooLow
	}

	prevBidder := auction.HighestBidderID
	prevBid := auction.CurrentBid
	refunded := auction.HasBid()
	if refunded {
		if err := s.escrow.Refund(ctx, auction.EscrowID, prevBid, prevBidder); err != nil {
			return err
		}
	}

	if err := s.escrow.DepositDelta(ctx, auction.EscrowID, amount, bidder); err != nil {
		if refunded {
			s.restoreEscrow(ctx, auction.EscrowID, prevBidder, prevBid, "place_bid_rollback")
		}
		return err
	}

	payload := contracts.AuctionBidPlacedPayload{
		AuctionID: auction.AuctionID.String(),
		BidderID:  bidder.String(),
		Amount:    amount,
	}
	if refunded {
		payload.RefundedBidderID = prevBidder.String()
		payload.RefundedAmount = prevBid
	}
	rec := s.newOutboxRecord(domain.EventAuctionBidPlaced, auction.AuctionID.String(), payload, s.nowFn())

	auction.HighestBidderID = bidder
	auction.CurrentBid = amount
	auction.EscrowBalance = amount
	if err := s.auctions.UpdateWithOutboxTx(ctx, auction, rec); err != nil {
		// Both monetary legs already ran; unwind them so the stored
		// record and the escrow agree again: the new bidder gets the
		// escrowed amount back, then the displaced bid is re-escrowed.
		if refundErr := s.escrow.Refund(ctx, auction.EscrowID, amount, bidder); refundErr != nil {
			logger().Error("bid rollback failed, escrow overstated",
				"operation", "place_bid_rollback",
				"outcome", "failure",
				"escrow_id", auction.EscrowID.String(),
				"error", refundErr,
			)
		} else if refunded {
			s.restoreEscrow(ctx, auction.EscrowID, prevBidder, prevBid, "place_bid_rollback")
		}
		return err
	}

	s.storeSnapshot(ctx, auction)
	return nil
}

// restoreEscrow re-debits a wallet that was just paid out under the
// still-held auction lock, returning the escrow to its prior balance so
// a retry sees the state the stored record describes. The recipient got
// the funds an instant ago, so the debit cannot bounce unless the wallet
// backend itself failed.
func (s *Service) restoreEscrow(ctx context.Context, escrowID, accountID uuid.UUID, amount uint64, operation string) {
	if err := s.escrow.DepositDelta(ctx, escrowID, amount, accountID); err != nil {
		logger().Error("escrow rollback failed, escrow understated",
			"operation", operation,
			"outcome", "failure",
			"escrow_id", escrowID.String(),
			"error", err,
		)
	}
}

// EndAuction closes an expired auction exactly once. With no real bid the
// asset returns to the seller immediately; otherwise the escrow settles
// to the seller and the asset stays in custody pending the winner's
// claim.
func (s *Service) EndAuction(ctx context.Context, auctionID uuid.UUID) error {
	unlock := s.lockAuction(auctionID)
	defer unlock()

	auction, err := s.auctions.GetByID(ctx, auctionID)
	if err != nil {
		return err
	}
	if auction.Ended {
		return domain.ErrAlreadyEnded
	}
	if !auction.ExpiredAt(s.clock.NowMillis()) {
		return domain.ErrNotYetExpired
	}

	now := s.nowFn()
	auction.Ended = true
	auction.EndedAt = &now

	if !auction.HasBid() {
		unlockAsset := s.lockAsset(auction.AssetID)
		defer unlockAsset()

		asset, err := s.assets.GetByID(ctx, auction.AssetID)
		if err != nil {
			return err
		}
		rec := s.newOutboxRecord(domain.EventAuctionEndedNoBid, auction.AuctionID.String(), contracts.AuctionEndedNoBidsPayload{
			AuctionID: auction.AuctionID.String(),
			AssetID:   auction.AssetID.String(),
			SellerID:  auction.SellerID.String(),
		}, now)

		asset.HeldBy = nil
		auction.AssetHeld = false
		if err := s.auctions.UpdateWithAssetTx(ctx, auction, asset, rec); err != nil {
			return err
		}
		s.storeSnapshot(ctx, auction)
		return nil
	}

	if err := s.escrow.Take(ctx, auction.EscrowID, auction.CurrentBid, auction.SellerID); err != nil {
		return err
	}
	rec := s.newOutboxRecord(domain.EventAuctionSettled, auction.AuctionID.String(), contracts.AuctionSettledPayload{
		AuctionID:  auction.AuctionID.String(),
		SellerID:   auction.SellerID.String(),
		WinnerID:   auction.HighestBidderID.String(),
		FinalPrice: auction.CurrentBid,
	}, now)

	auction.EscrowBalance = 0
	if err := s.auctions.UpdateWithOutboxTx(ctx, auction, rec); err != nil {
		// The seller was already paid; claw the payout back so the
		// auction stays live and a later EndAuction can settle again.
		s.restoreEscrow(ctx, auction.EscrowID, auction.SellerID, auction.CurrentBid, "end_auction_rollback")
		return err
	}
	s.storeSnapshot(ctx, auction)
	return nil
}

// ClaimNFT releases the held asset to the recorded winner, exactly once.
func (s *Service) ClaimNFT(ctx context.Context, caller, auctionID uuid.UUID) error {
	unlock := s.lockAuction(auctionID)
	defer unlock()

	auction, err := s.auctions.GetByID(ctx, auctionID)
	if err != nil {
		return err
	}
	if !auction.Ended {
		return domain.ErrNotYetEnded
	}
	if caller != auction.HighestBidderID {
		return domain.ErrUnauthorized
	}
	if !auction.AssetHeld {
		return domain.ErrAlreadyClaimed
	}

	unlockAsset := s.lockAsset(auction.AssetID)
	defer unlockAsset()

	asset, err := s.assets.GetByID(ctx, auction.AssetID)
	if err != nil {
		return err
	}

	now := s.nowFn()
	// Identities for the notification are captured before custody moves.
	rec := s.newOutboxRecord(domain.EventAuctionClaimed, auction.AuctionID.String(), contracts.AuctionClaimedPayload{
		AuctionID: auction.AuctionID.String(),
		AssetID:   asset.AssetID.String(),
		WinnerID:  caller.String(),
	}, now)

	asset.OwnerID = caller
	asset.HeldBy = nil
	auction.AssetHeld = false
	auction.ClaimedAt = &now
	return s.auctions.UpdateWithAssetTx(ctx, auction, asset, rec)
}

// GetAuction is the authoritative read accessor.
func (s *Service) GetAuction(ctx context.Context, auctionID uuid.UUID) (domain.Auction, error) {
	return s.auctions.GetByID(ctx, auctionID)
}

// CurrentBidSnapshot serves bid reads from the cache when possible and
// falls back to the repository, repopulating the cache on a miss.
func (s *Service) CurrentBidSnapshot(ctx context.Context, auctionID uuid.UUID) (ports.BidSnapshot, error) {
	if s.bidCache != nil {
		snap, ok, err := s.bidCache.GetSnapshot(ctx, auctionID)
		if err == nil && ok {
			return snap, nil
		}
	}
	auction, err := s.auctions.GetByID(ctx, auctionID)
	if err != nil {
		return ports.BidSnapshot{}, err
	}
	s.storeSnapshot(ctx, auction)
	return ports.BidSnapshot{
		CurrentBid:      auction.CurrentBid,
		HighestBidderID: auction.HighestBidderID,
		Ended:           auction.Ended,
	}, nil
}

func (s *Service) storeSnapshot(ctx context.Context, auction domain.Auction) {
	if s.bidCache == nil {
		return
	}
	err := s.bidCache.StoreSnapshot(ctx, auction.AuctionID, ports.BidSnapshot{
		CurrentBid:      auction.CurrentBid,
		HighestBidderID: auction.HighestBidderID,
		Ended:           auction.Ended,
	})
	if err != nil {
		logger().Warn("bid snapshot store failed",
			"operation", "store_bid_snapshot",
			"outcome", "failure",
			"auction_id", auction.AuctionID.String(),
			"error", err,
		)
	}
}
