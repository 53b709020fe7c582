package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Asset is a unique, non-fungible item with immutable descriptive fields.
// OwnerID is the exclusive custodian account; HeldBy is set while an
// auction holds the asset in custody. Burned assets keep their row as a
// tombstone and are reported as not found by the registry.
type Asset struct {
	AssetID     uuid.UUID
	Name        string
	Description string
	ImageRef    string
	CreatorID   uuid.UUID
	OwnerID     uuid.UUID
	HeldBy      *uuid.UUID
	CreatedAt   time.Time
	BurnedAt    *time.Time
}

// InAuction reports whether the asset is currently in auction custody.
func (a Asset) InAuction() bool {
	return a.HeldBy != nil
}

// Burned reports whether the asset identity has been destroyed.
func (a Asset) Burned() bool {
	return a.BurnedAt != nil
}

// ValidateMintFields rejects empty descriptive fields at mint time.
func ValidateMintFields(name, description, imageRef string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(description) == "" || strings.TrimSpace(imageRef) == "" {
		return ErrInvalidInput
	}
	return nil
}
