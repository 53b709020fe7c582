package cache

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/domain"
)

// conditionalDebitScript debits an account only when the balance covers
// the amount, atomically on the Redis server.
var conditionalDebitScript = redis.NewScript(`
local balance = redis.call('GET', KEYS[1])
if not balance then
    balance = 0
else
    balance = tonumber(balance)
end
local amount = tonumber(ARGV[1])
if balance < amount then
    return -1
end
return redis.call('DECRBY', KEYS[1], amount)
`)

// RedisWalletStore is the deployed wallet-ledger adapter. Balances live
// under one key per account; debits are conditional and atomic.
type RedisWalletStore struct {
	client *redis.Client
}

func NewRedisWalletStore(client *redis.Client) *RedisWalletStore {
	return &RedisWalletStore{client: client}
}

func (s *RedisWalletStore) Debit(ctx context.Context, accountID uuid.UUID, amount uint64) error {
	res, err := conditionalDebitScript.Run(ctx, s.client,
		[]string{walletKey(accountID)},
		strconv.FormatUint(amount, 10),
	).Int64()
	if err != nil {
		return err
	}
	if res < 0 {
		return domain.ErrInsufficientFunds
	}
	return nil
}

func (s *RedisWalletStore) Credit(ctx context.Context, accountID uuid.UUID, amount uint64) error {
	return s.client.IncrBy(ctx, walletKey(accountID), int64(amount)).Err()
}

func walletKey(accountID uuid.UUID) string {
	return "wallet:balance:" + accountID.String()
}
