package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/contracts"
	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/domain"
)

func toAssetResponse(asset domain.Asset) contracts.AssetResponse {
	resp := contracts.AssetResponse{
		AssetID:     asset.AssetID.String(),
		Name:        asset.Name,
		Description: asset.Description,
		ImageRef:    asset.ImageRef,
		OwnerID:     asset.OwnerID.String(),
	}
	if asset.HeldBy != nil {
		resp.HeldBy = asset.HeldBy.String()
	}
	return resp
}

func (h *Handler) handleMintAsset(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing authentication")
		return
	}

	var req contracts.MintAssetRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "malformed request body")
		return
	}

	asset, err := h.service.MintAsset(r.Context(), claims.AccountID, req.Name, req.Description, req.ImageRef)
	if err != nil {
		status, code, message := mapDomainError(err)
		writeError(w, status, code, message)
		return
	}
	writeSuccess(w, http.StatusCreated, toAssetResponse(asset))
}

func (h *Handler) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	assetID, err := uuid.Parse(chi.URLParam(r, "asset_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "asset_id must be a valid UUID")
		return
	}

	asset, err := h.service.GetAsset(r.Context(), assetID)
	if err != nil {
		status, code, message := mapDomainError(err)
		writeError(w, status, code, message)
		return
	}
	writeSuccess(w, http.StatusOK, toAssetResponse(asset))
}

func (h *Handler) handleTransferAsset(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing authentication")
		return
	}

	assetID, err := uuid.Parse(chi.URLParam(r, "asset_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "asset_id must be a valid UUID")
		return
	}

	var req contracts.TransferAssetRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "malformed request body")
		return
	}
	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "recipient_id must be a valid UUID")
		return
	}

	if err := h.service.TransferAsset(r.Context(), claims.AccountID, assetID, recipientID); err != nil {
		status, code, message := mapDomainError(err)
		writeError(w, status, code, message)
		return
	}
	writeMessage(w, http.StatusOK, "asset transferred")
}

func (h *Handler) handleBurnAsset(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing authentication")
		return
	}

	assetID, err := uuid.Parse(chi.URLParam(r, "asset_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "asset_id must be a valid UUID")
		return
	}

	if err := h.service.BurnAsset(r.Context(), claims.AccountID, assetID); err != nil {
		status, code, message := mapDomainError(err)
		writeError(w, status, code, message)
		return
	}
	writeMessage(w, http.StatusOK, "asset burned")
}
