package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"khata/internal/port"
)

// Redis is a sliding window limiter shared by every instance. Each key is a
// sorted set of request ids scored by their unix time in milliseconds.
type Redis struct {
	client    *redis.Client
	keyPrefix string
	limit     int
	window    time.Duration
}

// NewRedis creates a Redis backed limiter allowing limit requests per window.
func NewRedis(client *redis.Client, keyPrefix string, limit int, window time.Duration) *Redis {
	if keyPrefix == "" {
		keyPrefix = "ratelimit:"
	}
	return &Redis{client: client, keyPrefix: keyPrefix, limit: limit, window: window}
}

var _ port.RateLimiter = (*Redis)(nil)

// Allow records a request for key and reports whether it fits the window.
func (r *Redis) Allow(ctx context.Context, key string) (port.RateDecision, error) {
	redisKey := r.keyPrefix + key
	now := time.Now()
	nowMs := now.UnixMilli()
	cutoff := nowMs - r.window.Milliseconds()
	member := strconv.FormatInt(nowMs, 10) + ":" + uuid.NewString()

	var card *redis.IntCmd
	var oldest *redis.ZSliceCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, redisKey, "-inf", strconv.FormatInt(cutoff, 10))
		card = pipe.ZCard(ctx, redisKey)
		oldest = pipe.ZRangeWithScores(ctx, redisKey, 0, 0)
		pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(nowMs), Member: member})
		pipe.Expire(ctx, redisKey, r.window)
		return nil
	})
	if err != nil {
		return port.RateDecision{}, fmt.Errorf("ratelimit.Redis.Allow: %w", err)
	}

	count := int(card.Val())
	if count >= r.limit {
		if err := r.client.ZRem(ctx, redisKey, member).Err(); err != nil {
			return port.RateDecision{}, fmt.Errorf("ratelimit.Redis.Allow rollback: %w", err)
		}
		retry := r.window
		if zs := oldest.Val(); len(zs) > 0 {
			retry = time.UnixMilli(int64(zs[0].Score)).Add(r.window).Sub(now)
		}
		return port.RateDecision{Allowed: false, Limit: r.limit, RetryAfter: retry}, nil
	}
	return port.RateDecision{Allowed: true, Limit: r.limit, Remaining: r.limit - count - 1}, nil
}
