package daily

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gokatarajesh/find-the-ai/internal/game"
)

const defaultCacheTTL = 48 * time.Hour

// RedisCache keeps published day sets in Redis so page loads skip the SQL
// store.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ PairCache = (*RedisCache)(nil)

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) key(day string) string {
	return "questionpairs:" + day
}

func (c *RedisCache) Get(ctx context.Context, day string) ([]game.Pair, error) {
	data, err := c.client.Get(ctx, c.key(day)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var pairs []game.Pair
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, err
	}
	return pairs, nil
}

func (c *RedisCache) Set(ctx context.Context, day string, pairs []game.Pair) error {
	data, err := json.Marshal(pairs)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(day), data, c.ttl).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
