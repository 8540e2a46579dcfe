package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/joshua-takyi/agenda/internal/cache"
	"github.com/joshua-takyi/agenda/internal/metrics"
	"github.com/joshua-takyi/agenda/internal/models"
)

// DefaultCacheTTL keeps a resolved place for a day.
const DefaultCacheTTL = 24 * time.Hour

const cacheKeyPrefix = "geocode:"

// Store is the key/value surface Cached needs. cache.Redis satisfies it.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, expiration time.Duration) error
}

// Cached answers repeated places from a Store before asking next.
// Store failures degrade to uncached lookups.
type Cached struct {
	next   Geocoder
	store  Store
	ttl    time.Duration
	logger *slog.Logger
}

func NewCached(next Geocoder, store Store, ttl time.Duration, logger *slog.Logger) *Cached {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cached{next: next, store: store, ttl: ttl, logger: logger}
}

func (c *Cached) Geocode(ctx context.Context, place string) (models.Coordinates, error) {
	key := cacheKey(place)

	if key != cacheKeyPrefix {
		raw, err := c.store.Get(ctx, key)
		switch {
		case err == nil:
			var coords models.Coordinates
			if jsonErr := json.Unmarshal([]byte(raw), &coords); jsonErr == nil {
				metrics.GeocodeCacheTotal.WithLabelValues("hit").Inc()
				return coords, nil
			}
			c.logger.Warn("discarding unreadable geocode cache entry", "key", key)
		case !errors.Is(err, cache.ErrMiss):
			c.logger.Warn("geocode cache read failed", "key", key, "error", err)
		}
		metrics.GeocodeCacheTotal.WithLabelValues("miss").Inc()
	}

	coords, err := c.next.Geocode(ctx, place)
	if err != nil {
		return coords, err
	}

	if raw, err := json.Marshal(coords); err == nil {
		if err := c.store.Set(ctx, key, string(raw), c.ttl); err != nil {
			c.logger.Warn("geocode cache write failed", "key", key, "error", err)
		}
	}
	return coords, nil
}

func cacheKey(place string) string {
	return cacheKeyPrefix + strings.ToLower(strings.Join(strings.Fields(place), " "))
}
