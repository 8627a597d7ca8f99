package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const redisKeyPrefix = "healthprice:cache:"

// cachedEnvelope wraps a stored value with its cache metadata.
type cachedEnvelope struct {
	Data      json.RawMessage `json:"data"`
	CachedAt  time.Time       `json:"cached_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Redis is a cache backed by a Redis instance, for deployments where
// multiple API processes should share one cache. Entries carry the same
// explicit expiry deadline the memory backend uses, in addition to the
// Redis-side TTL.
type Redis struct {
	client *redis.Client
	logger *logrus.Logger
}

// NewRedis connects to Redis and verifies the connection.
func NewRedis(redisURL string, logger *logrus.Logger) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Redis{client: client, logger: logger}, nil
}

// Get decodes the entry for key into dest, evicting it if expired.
func (r *Redis) Get(ctx context.Context, key string, dest any) bool {
	val, err := r.client.Get(ctx, redisKeyPrefix+key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		r.logger.WithError(err).WithField("key", key).Warn("Redis get failed")
		return false
	}

	var envelope cachedEnvelope
	if err := json.Unmarshal([]byte(val), &envelope); err != nil {
		// Corrupted entry; remove it.
		r.client.Del(ctx, redisKeyPrefix+key)
		return false
	}

	if !time.Now().Before(envelope.ExpiresAt) {
		r.client.Del(ctx, redisKeyPrefix+key)
		return false
	}

	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		r.client.Del(ctx, redisKeyPrefix+key)
		r.logger.WithError(err).WithField("key", key).Warn("Failed to decode cache entry")
		return false
	}

	return true
}

// Set stores value under key with the given TTL.
func (r *Redis) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.WithError(err).WithField("key", key).Warn("Failed to encode cache value")
		return
	}

	now := time.Now()
	envelope := cachedEnvelope{
		Data:      data,
		CachedAt:  now,
		ExpiresAt: now.Add(ttl),
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		r.logger.WithError(err).WithField("key", key).Warn("Failed to encode cache envelope")
		return
	}

	if err := r.client.Set(ctx, redisKeyPrefix+key, payload, ttl).Err(); err != nil {
		r.logger.WithError(err).WithField("key", key).Warn("Redis set failed")
	}
}

// Delete removes an entry.
func (r *Redis) Delete(ctx context.Context, key string) {
	r.client.Del(ctx, redisKeyPrefix+key)
}

// Clear removes all cached entries under the cache prefix.
func (r *Redis) Clear(ctx context.Context) {
	keys, err := r.client.Keys(ctx, redisKeyPrefix+"*").Result()
	if err != nil {
		r.logger.WithError(err).Warn("Redis keys scan failed")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.WithError(err).Warn("Redis clear failed")
	}
}

// Len returns the number of cached entries under the cache prefix.
func (r *Redis) Len() int {
	keys, err := r.client.Keys(context.Background(), redisKeyPrefix+"*").Result()
	if err != nil {
		return 0
	}
	return len(keys)
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
