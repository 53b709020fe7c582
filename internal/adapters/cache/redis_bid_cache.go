package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/ports"
)

const bidSnapshotTTL = 24 * time.Hour

// storeSnapshotScript updates the cached snapshot only when the bid does
// not regress, so late writers cannot clobber a newer accepted bid. An
// ended marker always wins.
var storeSnapshotScript = redis.NewScript(`
local current = redis.call('HGET', KEYS[1], 'current_bid')
local new_bid = tonumber(ARGV[1])
if current and tonumber(current) > new_bid and ARGV[3] == '0' then
    return 0
end
redis.call('HSET', KEYS[1], 'current_bid', ARGV[1], 'highest_bidder', ARGV[2], 'ended', ARGV[3])
redis.call('PEXPIRE', KEYS[1], ARGV[4])
return 1
`)

// RedisBidCache serves the fast-path current-bid reads. It is strictly
// best effort; the repository stays authoritative.
type RedisBidCache struct {
	client *redis.Client
}

func NewRedisBidCache(client *redis.Client) *RedisBidCache {
	return &RedisBidCache{client: client}
}

func (c *RedisBidCache) StoreSnapshot(ctx context.Context, auctionID uuid.UUID, snap ports.BidSnapshot) error {
	ended := "0"
	if snap.Ended {
		ended = "1"
	}
	return storeSnapshotScript.Run(ctx, c.client,
		[]string{snapshotKey(auctionID)},
		strconv.FormatUint(snap.CurrentBid, 10),
		snap.HighestBidderID.String(),
		ended,
		strconv.FormatInt(bidSnapshotTTL.Milliseconds(), 10),
	).Err()
}

func (c *RedisBidCache) GetSnapshot(ctx context.Context, auctionID uuid.UUID) (ports.BidSnapshot, bool, error) {
	data, err := c.client.HGetAll(ctx, snapshotKey(auctionID)).Result()
	if err != nil {
		return ports.BidSnapshot{}, false, err
	}
	if len(data) == 0 {
		return ports.BidSnapshot{}, false, nil
	}

	snap := ports.BidSnapshot{}
	if raw, ok := data["current_bid"]; ok {
		if v, convErr := strconv.ParseUint(raw, 10, 64); convErr == nil {
			snap.CurrentBid = v
		}
	}
	if raw, ok := data["highest_bidder"]; ok {
		if id, parseErr := uuid.Parse(raw); parseErr == nil {
			snap.HighestBidderID = id
		}
	}
	snap.Ended = data["ended"] == "1"
	return snap, true, nil
}

func snapshotKey(auctionID uuid.UUID) string {
	return "auction:bid:" + auctionID.String()
}
