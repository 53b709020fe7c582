package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/domain"
)

// WalletStore is an in-memory account-balance ledger standing in for the
// external wallet service.
type WalletStore struct {
	mu       sync.Mutex
	balances map[uuid.UUID]uint64
}

func NewWalletStore() *WalletStore {
	return &WalletStore{balances: map[uuid.UUID]uint64{}}
}

func (w *WalletStore) Debit(_ context.Context, accountID uuid.UUID, amount uint64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.balances[accountID] < amount {
		return domain.ErrInsufficientFunds
	}
	w.balances[accountID] -= amount
	return nil
}

func (w *WalletStore) Credit(_ context.Context, accountID uuid.UUID, amount uint64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.balances[accountID] += amount
	return nil
}

// Seed sets an account balance directly, for tests and local bootstrap.
func (w *WalletStore) Seed(accountID uuid.UUID, amount uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.balances[accountID] = amount
}

// Balance reads an account balance, for assertions in tests.
func (w *WalletStore) Balance(accountID uuid.UUID) uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.balances[accountID]
}
