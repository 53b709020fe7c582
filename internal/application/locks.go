package application

import (
	"sync"

	"github.com/google/uuid"
)

// keyedMutexes hands out one mutex per entity identity so mutations on
// the same auction or asset are serialized without a global lock.
// Entries are never reclaimed; the population is bounded by live entities
// and each entry is two words.
type keyedMutexes struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func (k *keyedMutexes) get(id uuid.UUID) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.locks == nil {
		k.locks = map[uuid.UUID]*sync.Mutex{}
	}
	m, ok := k.locks[id]
	if !ok {
		m = &sync.Mutex{}
		k.locks[id] = m
	}
	return m
}

// Lock ordering: auction mutex before asset mutex. Auction operations
// that touch custody acquire both in that order; registry operations
// acquire only the asset mutex.
func (s *Service) lockAuction(id uuid.UUID) func() {
	m := s.auctionLocks.get(id)
	m.Lock()
	return m.Unlock
}

func (s *Service) lockAsset(id uuid.UUID) func() {
	m := s.assetLocks.get(id)
	m.Lock()
	return m.Unlock
}
