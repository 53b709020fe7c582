package escrow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/adapters/memory"
	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/domain"
	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/escrow"
)

func TestDepositDeltaDebitsOnlyTheDifference(t *testing.T) {
	t.Parallel()

	wallets := memory.NewWalletStore()
	ledger := escrow.NewLedger(wallets)
	ctx := context.Background()

	bidder := uuid.New()
	wallets.Seed(bidder, 1_000)

	escrowID := ledger.Open()
	if err := ledger.DepositDelta(ctx, escrowID, 100, bidder); err != nil {
		t.Fatalf("first deposit failed: %v", err)
	}
	if err := ledger.DepositDelta(ctx, escrowID, 250, bidder); err != nil {
		t.Fatalf("second deposit failed: %v", err)
	}

	if got := wallets.Balance(bidder); got != 750 {
		t.Fatalf("wallet should be debited 250 total, balance = %d", got)
	}
	if got := ledger.Balance(escrowID); got != 250 {
		t.Fatalf("escrow balance = %d, want 250", got)
	}
}

func TestDepositDeltaRejectsRegression(t *testing.T) {
	t.Parallel()

	wallets := memory.NewWalletStore()
	ledger := escrow.NewLedger(wallets)
	ctx := context.Background()

	bidder := uuid.New()
	wallets.Seed(bidder, 500)

	escrowID := ledger.Open()
	if err := ledger.DepositDelta(ctx, escrowID, 200, bidder); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	if err := ledger.DepositDelta(ctx, escrowID, 100, bidder); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput lowering the target, got %v", err)
	}
	if got := wallets.Balance(bidder); got != 300 {
		t.Fatalf("failed deposit must not touch the wallet, balance = %d", got)
	}
}

func TestDepositDeltaInsufficientFundsLeavesEscrowIntact(t *testing.T) {
	t.Parallel()

	wallets := memory.NewWalletStore()
	ledger := escrow.NewLedger(wallets)
	ctx := context.Background()

	bidder := uuid.New()
	wallets.Seed(bidder, 50)

	escrowID := ledger.Open()
	if err := ledger.DepositDelta(ctx, escrowID, 100, bidder); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if got := ledger.Balance(escrowID); got != 0 {
		t.Fatalf("escrow must stay empty after failed deposit, balance = %d", got)
	}
	if got := wallets.Balance(bidder); got != 50 {
		t.Fatalf("wallet must be untouched after failed deposit, balance = %d", got)
	}
}

func TestRefundAndTakeConserveValue(t *testing.T) {
	t.Parallel()

	wallets := memory.NewWalletStore()
	ledger := escrow.NewLedger(wallets)
	ctx := context.Background()

	bidder := uuid.New()
	seller := uuid.New()
	wallets.Seed(bidder, 400)

	escrowID := ledger.Open()
	if err := ledger.DepositDelta(ctx, escrowID, 400, bidder); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	if err := ledger.Refund(ctx, escrowID, 150, bidder); err != nil {
		t.Fatalf("refund failed: %v", err)
	}
	if err := ledger.Take(ctx, escrowID, 250, seller); err != nil {
		t.Fatalf("take failed: %v", err)
	}

	if got := ledger.Balance(escrowID); got != 0 {
		t.Fatalf("escrow should be drained, balance = %d", got)
	}
	if got := wallets.Balance(bidder); got != 150 {
		t.Fatalf("bidder balance = %d, want 150", got)
	}
	if got := wallets.Balance(seller); got != 250 {
		t.Fatalf("seller balance = %d, want 250", got)
	}
}

func TestPayOutBoundedByEscrowBalance(t *testing.T) {
	t.Parallel()

	wallets := memory.NewWalletStore()
	ledger := escrow.NewLedger(wallets)
	ctx := context.Background()

	bidder := uuid.New()
	wallets.Seed(bidder, 100)

	escrowID := ledger.Open()
	if err := ledger.DepositDelta(ctx, escrowID, 100, bidder); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	if err := ledger.Refund(ctx, escrowID, 101, bidder); !errors.Is(err, domain.ErrInsufficientEscrow) {
		t.Fatalf("expected ErrInsufficientEscrow, got %v", err)
	}
	if got := ledger.Balance(escrowID); got != 100 {
		t.Fatalf("failed payout must not move funds, balance = %d", got)
	}
}

func TestUnknownEscrowHandle(t *testing.T) {
	t.Parallel()

	ledger := escrow.NewLedger(memory.NewWalletStore())
	ctx := context.Background()

	if err := ledger.DepositDelta(ctx, uuid.New(), 10, uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown escrow, got %v", err)
	}
	if err := ledger.Refund(ctx, uuid.New(), 10, uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown escrow, got %v", err)
	}
}
