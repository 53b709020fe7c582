package security_test

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/adapters/security"
	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/ports"
)

func TestSignAndParseRoundTrip(t *testing.T) {
	t.Parallel()

	signer, err := security.NewEphemeralJWTSigner("test-key-1")
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}

	accountID := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)
	token, err := signer.Sign(ports.AuthClaims{
		AccountID: accountID,
		Role:      "CREATOR",
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := signer.ParseAndValidate(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.AccountID != accountID {
		t.Fatalf("account id = %s, want %s", claims.AccountID, accountID)
	}
	if claims.Role != "CREATOR" {
		t.Fatalf("role = %s, want CREATOR", claims.Role)
	}
	if claims.KeyID != "test-key-1" {
		t.Fatalf("kid = %s, want test-key-1", claims.KeyID)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	t.Parallel()

	signer, err := security.NewEphemeralJWTSigner("test-key-1")
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}

	now := time.Now().UTC()
	token, err := signer.Sign(ports.AuthClaims{
		AccountID: uuid.New(),
		Role:      "CREATOR",
		IssuedAt:  now.Add(-2 * time.Hour),
		ExpiresAt: now.Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := signer.ParseAndValidate(token); err == nil {
		t.Fatalf("expired token must be rejected")
	}
}

func TestTokenFromAnotherKeyRejected(t *testing.T) {
	t.Parallel()

	signerA, err := security.NewEphemeralJWTSigner("key-a")
	if err != nil {
		t.Fatalf("new signer a: %v", err)
	}
	signerB, err := security.NewEphemeralJWTSigner("key-b")
	if err != nil {
		t.Fatalf("new signer b: %v", err)
	}

	now := time.Now().UTC()
	token, err := signerA.Sign(ports.AuthClaims{
		AccountID: uuid.New(),
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := signerB.ParseAndValidate(token); err == nil {
		t.Fatalf("token signed by a foreign key must be rejected")
	}
}
