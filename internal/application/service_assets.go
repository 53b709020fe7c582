package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/contracts"
	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/domain"
)

// MintAsset creates a new asset in the caller's custody. Descriptive
// fields are immutable afterwards.
func (s *Service) MintAsset(ctx context.Context, caller uuid.UUID, name, description, imageRef string) (domain.Asset, error) {
	if caller == uuid.Nil {
		return domain.Asset{}, domain.ErrUnauthorized
	}
	if err := domain.ValidateMintFields(name, description, imageRef); err != nil {
		return domain.Asset{}, err
	}

	now := s.nowFn()
	asset := domain.Asset{
		AssetID:     uuid.New(),
		Name:        name,
		Description: description,
		ImageRef:    imageRef,
		CreatorID:   caller,
		OwnerID:     caller,
		CreatedAt:   now,
	}

	rec := s.newOutboxRecord(domain.EventAssetMinted, asset.AssetID.String(), contracts.AssetMintedPayload{
		AssetID:  asset.AssetID.String(),
		Name:     asset.Name,
		ImageRef: asset.ImageRef,
		OwnerID:  asset.OwnerID.String(),
		MintedAt: now.Format(timeLayout),
	}, now)
	if err := s.assets.CreateWithOutboxTx(ctx, asset, rec); err != nil {
		return domain.Asset{}, err
	}
	return asset, nil
}

// TransferAsset moves custody to the recipient. Only the current
// custodian may transfer, and never while the asset sits in auction
// custody.
func (s *Service) TransferAsset(ctx context.Context, caller, assetID, recipientID uuid.UUID) error {
	if recipientID == uuid.Nil {
		return domain.ErrInvalidInput
	}
	unlock := s.lockAsset(assetID)
	defer unlock()

	asset, err := s.assets.GetByID(ctx, assetID)
	if err != nil {
		return err
	}
	if asset.OwnerID != caller {
		return domain.ErrUnauthorized
	}
	if asset.InAuction() {
		return domain.ErrAssetInUse
	}

	// Payload identities are captured before the custody hand-off.
	rec := s.newOutboxRecord(domain.EventAssetTransferred, asset.AssetID.String(), contracts.AssetTransferredPayload{
		AssetID:     asset.AssetID.String(),
		FromOwnerID: asset.OwnerID.String(),
		ToOwnerID:   recipientID.String(),
	}, s.nowFn())

	asset.OwnerID = recipientID
	return s.assets.UpdateWithOutboxTx(ctx, asset, rec)
}

// BurnAsset permanently destroys the asset identity. The row is kept as a
// tombstone; the registry reports it as not found from then on.
func (s *Service) BurnAsset(ctx context.Context, caller, assetID uuid.UUID) error {
	unlock := s.lockAsset(assetID)
	defer unlock()

	asset, err := s.assets.GetByID(ctx, assetID)
	if err != nil {
		return err
	}
	if asset.OwnerID != caller {
		return domain.ErrUnauthorized
	}
	if asset.InAuction() {
		return domain.ErrAssetInUse
	}

	now := s.nowFn()
	rec := s.newOutboxRecord(domain.EventAssetBurned, asset.AssetID.String(), contracts.AssetBurnedPayload{
		AssetID:     asset.AssetID.String(),
		LastOwnerID: asset.OwnerID.String(),
	}, now)

	asset.BurnedAt = &now
	return s.assets.UpdateWithOutboxTx(ctx, asset, rec)
}

// GetAsset is the read-only registry accessor.
func (s *Service) GetAsset(ctx context.Context, assetID uuid.UUID) (domain.Asset, error) {
	return s.assets.GetByID(ctx, assetID)
}
