// Package cache keeps ranked suggestion lists in Redis. The engine is
// deterministic, so a key derived from the offer fields, the limit and the
// engine fingerprint never needs invalidation; entries only expire.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go-benefit-recommender/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "benefits:v2:"

type suggestionCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSuggestionCache returns a Redis-backed cache, or nil when rdb is nil so
// callers can treat the cache as optional.
func NewSuggestionCache(rdb *redis.Client, ttl time.Duration) domain.SuggestionCache {
	if rdb == nil {
		return nil
	}
	return &suggestionCache{rdb: rdb, ttl: ttl}
}

func (c *suggestionCache) Get(ctx context.Context, key string) ([]domain.Suggestion, bool, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var out []domain.Suggestion
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}
	return out, true, nil
}

func (c *suggestionCache) Set(ctx context.Context, key string, suggestions []domain.Suggestion) error {
	data, err := json.Marshal(suggestions)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Key builds the cache key for offer at the given limit under an engine fingerprint.
func Key(fingerprint string, offer *domain.Offer, limit int) string {
	h := sha256.New()
	for _, part := range []string{
		strconv.FormatInt(offer.ID, 10),
		offer.Title,
		offer.Description,
		offer.ContractType,
		offer.WorkMode,
		strconv.FormatFloat(offer.SalaryMin, 'f', -1, 64),
		strconv.FormatFloat(offer.SalaryMax, 'f', -1, 64),
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return keyPrefix + fingerprint + ":" + hex.EncodeToString(h.Sum(nil)) + ":" + strconv.Itoa(limit)
}
