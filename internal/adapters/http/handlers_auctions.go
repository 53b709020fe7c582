package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/contracts"
	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/domain"
)

func toAuctionResponse(auction domain.Auction) contracts.AuctionResponse {
	return contracts.AuctionResponse{
		AuctionID:       auction.AuctionID.String(),
		AssetID:         auction.AssetID.String(),
		AssetHeld:       auction.AssetHeld,
		SellerID:        auction.SellerID.String(),
		HighestBidderID: auction.HighestBidderID.String(),
		CurrentBid:      auction.CurrentBid,
		MinBid:          auction.MinBid,
		EndTimeMillis:   auction.EndTime,
		EscrowBalance:   auction.EscrowBalance,
		Ended:           auction.Ended,
	}
}

func (h *Handler) handleCreateAuction(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing authentication")
		return
	}

	var req contracts.CreateAuctionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "malformed request body")
		return
	}
	assetID, err := uuid.Parse(req.AssetID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "asset_id must be a valid UUID")
		return
	}

	auction, err := h.service.CreateAuction(r.Context(), claims.AccountID, assetID, req.MinBid, req.DurationMillis)
	if err != nil {
		status, code, message := mapDomainError(err)
		writeError(w, status, code, message)
		return
	}
	writeSuccess(w, http.StatusCreated, toAuctionResponse(auction))
}

func (h *Handler) handleGetAuction(w http.ResponseWriter, r *http.Request) {
	auctionID, err := uuid.Parse(chi.URLParam(r, "auction_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "auction_id must be a valid UUID")
		return
	}

	auction, err := h.service.GetAuction(r.Context(), auctionID)
	if err != nil {
		status, code, message := mapDomainError(err)
		writeError(w, status, code, message)
		return
	}
	writeSuccess(w, http.StatusOK, toAuctionResponse(auction))
}

func (h *Handler) handleGetBidSnapshot(w http.ResponseWriter, r *http.Request) {
	auctionID, err := uuid.Parse(chi.URLParam(r, "auction_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "auction_id must be a valid UUID")
		return
	}

	snapshot, err := h.service.CurrentBidSnapshot(r.Context(), auctionID)
	if err != nil {
		status, code, message := mapDomainError(err)
		writeError(w, status, code, message)
		return
	}
	writeSuccess(w, http.StatusOK, contracts.BidSnapshotResponse{
		AuctionID:       auctionID.String(),
		CurrentBid:      snapshot.CurrentBid,
		HighestBidderID: snapshot.HighestBidderID.String(),
		Ended:           snapshot.Ended,
	})
}

func (h *Handler) handlePlaceBid(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing authentication")
		return
	}

	auctionID, err := uuid.Parse(chi.URLParam(r, "auction_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "auction_id must be a valid UUID")
		return
	}

	var req contracts.PlaceBidRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "malformed request body")
		return
	}

	if err := h.service.PlaceBid(r.Context(), claims.AccountID, auctionID, req.Amount); err != nil {
		status, code, message := mapDomainError(err)
		writeError(w, status, code, message)
		return
	}
	writeMessage(w, http.StatusOK, "bid accepted")
}

func (h *Handler) handleEndAuction(w http.ResponseWriter, r *http.Request) {
	if _, ok := claimsFromContext(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing authentication")
		return
	}

	auctionID, err := uuid.Parse(chi.URLParam(r, "auction_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "auction_id must be a valid UUID")
		return
	}

	if err := h.service.EndAuction(r.Context(), auctionID); err != nil {
		status, code, message := mapDomainError(err)
		writeError(w, status, code, message)
		return
	}
	writeMessage(w, http.StatusOK, "auction ended")
}

func (h *Handler) handleClaimNFT(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing authentication")
		return
	}

	auctionID, err := uuid.Parse(chi.URLParam(r, "auction_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "auction_id must be a valid UUID")
		return
	}

	if err := h.service.ClaimNFT(r.Context(), claims.AccountID, auctionID); err != nil {
		status, code, message := mapDomainError(err)
		writeError(w, status, code, message)
		return
	}
	writeMessage(w, http.StatusOK, "asset claimed")
}
