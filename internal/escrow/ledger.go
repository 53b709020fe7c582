// Package escrow implements the per-auction monetary container. Funds
// enter via deposit deltas debited from an external wallet account and
// leave via refunds and settlement takes; the ledger guarantees value
// conservation for every escrow it manages.
package escrow

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/domain"
	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/ports"
)

type Ledger struct {
	wallets ports.WalletLedger

	mu       sync.Mutex
	balances map[uuid.UUID]uint64
}

func NewLedger(wallets ports.WalletLedger) *Ledger {
	return &Ledger{
		wallets:  wallets,
		balances: map[uuid.UUID]uint64{},
	}
}

// Open creates a zero-balance escrow and returns its handle.
func (l *Ledger) Open() uuid.UUID {
	id := uuid.New()
	l.mu.Lock()
	l.balances[id] = 0
	l.mu.Unlock()
	return id
}

// Seed registers an escrow handle at a known balance without moving any
// money. Bootstrap rehydrates the ledger from the persisted balances of
// open auctions so refunds and settlement survive a process restart.
func (l *Ledger) Seed(escrowID uuid.UUID, balance uint64) {
	l.mu.Lock()
	l.balances[escrowID] = balance
	l.mu.Unlock()
}

// DepositDelta raises the escrow balance to newTarget by debiting exactly
// the difference from the source wallet. The incremental-delta contract
// lets one payment source fund successive, ever-larger bids without
// re-supplying the full cumulative amount.
func (l *Ledger) DepositDelta(ctx context.Context, escrowID uuid.UUID, newTarget uint64, sourceID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	balance, ok := l.balances[escrowID]
	if !ok {
		return domain.ErrNotFound
	}
	if newTarget < balance {
		return domain.ErrInvalidInput
	}
	delta := newTarget - balance
	if delta == 0 {
		return nil
	}
	if err := l.wallets.Debit(ctx, sourceID, delta); err != nil {
		return err
	}
	l.balances[escrowID] = newTarget
	return nil
}

// Refund moves exactly amount out of the escrow to the recipient wallet.
func (l *Ledger) Refund(ctx context.Context, escrowID uuid.UUID, amount uint64, recipientID uuid.UUID) error {
	return l.payOut(ctx, escrowID, amount, recipientID)
}

// Take is the settlement payout at closure. Same conservation bounds as
// Refund; kept separate so call sites read as settlements.
func (l *Ledger) Take(ctx context.Context, escrowID uuid.UUID, amount uint64, recipientID uuid.UUID) error {
	return l.payOut(ctx, escrowID, amount, recipientID)
}

func (l *Ledger) payOut(ctx context.Context, escrowID uuid.UUID, amount uint64, recipientID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	balance, ok := l.balances[escrowID]
	if !ok {
		return domain.ErrNotFound
	}
	if amount > balance {
		return domain.ErrInsufficientEscrow
	}
	if err := l.wallets.Credit(ctx, recipientID, amount); err != nil {
		return err
	}
	l.balances[escrowID] = balance - amount
	return nil
}

// Balance returns the current escrowed amount for the handle.
func (l *Ledger) Balance(escrowID uuid.UUID) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[escrowID]
}
