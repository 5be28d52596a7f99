// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// response.go provides a Valkey-backed cache of raw AI replies. Identical
// wizard requests against the same provider reuse the stored reply instead
// of paying for another model call. Cache failures only log.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// responseKeyPrefix is the Valkey key prefix for cached AI replies.
	responseKeyPrefix = "ai:"

	// DefaultResponseTTL is how long an AI reply stays cached.
	DefaultResponseTTL = 10 * time.Minute
)

// ResponseCache stores raw AI replies in Valkey.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache creates a new response cache backed by the given Valkey client.
func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	if ttl == 0 {
		ttl = DefaultResponseTTL
	}
	return &ResponseCache{client: client, ttl: ttl}
}

// Key builds the cache key for a reply. The prompt is hashed so keys stay
// short and do not leak user input into key listings.
func Key(provider, operation, prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return responseKeyPrefix + provider + ":" + operation + ":" + hex.EncodeToString(sum[:])
}

// Get retrieves a cached reply. Returns false on miss or error.
func (rc *ResponseCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := rc.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		slog.Warn("ai cache get error", "key", key, "error", err)
		return "", false
	}
	slog.Debug("ai cache hit", "key", key)
	return val, true
}

// Set stores a reply with the configured TTL.
func (rc *ResponseCache) Set(ctx context.Context, key, reply string) {
	if err := rc.client.Set(ctx, key, reply, rc.ttl).Err(); err != nil {
		slog.Warn("ai cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached reply by scanning for the prefix.
// Used when the active provider or its model changes.
func (rc *ResponseCache) InvalidateAll(ctx context.Context) int {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := rc.client.Scan(ctx, cursor, responseKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("ai cache scan error", "error", err)
			return deleted
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("ai cache bulk delete error", "error", err)
			} else {
				deleted += len(keys)
			}
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("ai cache cleared", "deleted", deleted)
	}
	return deleted
}
