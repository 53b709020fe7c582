package ports

import (
	"time"

	"github.com/google/uuid"
)

// AuthClaims is the verified caller identity extracted from a bearer
// token. AccountID is the opaque account identity used for custody and
// bidding.
type AuthClaims struct {
	AccountID uuid.UUID
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
	KeyID     string
}

type TokenSigner interface {
	Sign(claims AuthClaims) (string, error)
	ParseAndValidate(raw string) (AuthClaims, error)
}
