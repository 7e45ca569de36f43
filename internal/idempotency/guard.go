package idempotency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Guard fences create requests behind a redis SetNX lock keyed by the
// client-supplied idempotency key, so a retried create cannot commit a
// second row.
type Guard struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewGuard(rdb *redis.Client, ttl time.Duration) *Guard {
	return &Guard{rdb: rdb, ttl: ttl}
}

// AcquireOnce returns true the first time a key is seen within the TTL
// window, false for a duplicate. If redis is unavailable the request is
// let through rather than blocked.
func (g *Guard) AcquireOnce(ctx context.Context, route, key string) bool {
	redisKey := fmt.Sprintf("idem:%s:%s", route, key)

	ok, err := g.rdb.SetNX(ctx, redisKey, 1, g.ttl).Result()
	if err != nil {
		return true
	}
	return ok
}
