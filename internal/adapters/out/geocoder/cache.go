package geocoder

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var _ ports.Geocoder = (*Cache)(nil)

const (
	keyPrefix  = "geocode:"
	unresolved = "-"
)

// Store is the subset of redis commands the cache needs. *redis.Client
// satisfies it.
type Store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// Cache decorates a geocoder with a redis lookup. Resolved addresses are kept
// for ttl, unresolved ones for negativeTTL. Redis failures never fail a lookup.
type Cache struct {
	next        ports.Geocoder
	store       Store
	ttl         time.Duration
	negativeTTL time.Duration
	logger      *zap.Logger
}

func NewCache(next ports.Geocoder, store Store, ttl, negativeTTL time.Duration, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		next:        next,
		store:       store,
		ttl:         ttl,
		negativeTTL: negativeTTL,
		logger:      logger.With(zap.String("component", "geocoder_cache")),
	}
}

func (c *Cache) Geocode(ctx context.Context, address string) (*kernel.Coordinate, error) {
	key := cacheKey(address)

	cached, err := c.store.Get(ctx, key).Result()
	switch {
	case err == nil:
		if coordinate, ok := decode(cached); ok {
			return coordinate, nil
		}
		c.logger.Warn("dropping malformed cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("geocode cache read failed", zap.String("key", key), zap.Error(err))
	}

	coordinate, err := c.next.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}

	value, ttl := unresolved, c.negativeTTL
	if coordinate != nil {
		value, ttl = encode(*coordinate), c.ttl
	}
	if err = c.store.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Warn("geocode cache write failed", zap.String("key", key), zap.Error(err))
	}

	return coordinate, nil
}

func cacheKey(address string) string {
	return keyPrefix + strings.ToLower(strings.Join(strings.Fields(address), " "))
}

func encode(c kernel.Coordinate) string {
	return fmt.Sprintf("%s,%s",
		strconv.FormatFloat(c.Latitude(), 'f', -1, 64),
		strconv.FormatFloat(c.Longitude(), 'f', -1, 64))
}

// decode reports false for values that are neither a coordinate nor the
// unresolved marker.
func decode(value string) (*kernel.Coordinate, bool) {
	if value == unresolved {
		return nil, true
	}

	lat, lon, found := strings.Cut(value, ",")
	if !found {
		return nil, false
	}
	latitude, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return nil, false
	}
	longitude, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return nil, false
	}
	coordinate, err := kernel.NewCoordinate(latitude, longitude)
	if err != nil {
		return nil, false
	}
	return &coordinate, true
}
