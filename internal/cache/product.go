// Package cache puts a Redis read-through cache in front of product reads.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Skotchmaster/flogin/internal/logging"
	"github.com/Skotchmaster/flogin/internal/metrics"
	"github.com/Skotchmaster/flogin/internal/models"
	"github.com/Skotchmaster/flogin/internal/service"
)

const DefaultTTL = 5 * time.Minute

// Connect opens a client and pings it.
func Connect(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("cache: redis ping: %w", err)
	}
	return rdb, nil
}

// ProductStore caches single-product reads. Entries are keyed by a
// per-product version; writes go to the wrapped store first and then bump
// the version, so a read that raced the write caches under a key nobody
// reads again. Redis failures degrade to the wrapped store and are only
// logged.
type ProductStore struct {
	service.ProductStore
	RDB redis.Cmdable
	TTL time.Duration
}

func versionKey(id uint) string {
	return fmt.Sprintf("product:%d:ver", id)
}

func productKey(id uint, version int64) string {
	return fmt.Sprintf("product:%d:v%d", id, version)
}

func (s *ProductStore) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "cache.product")

	version, err := s.RDB.Get(ctx, versionKey(id)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		l.Warn("cache_get_failed", "key", versionKey(id), "error", err)
		metrics.CacheMisses.Inc()
		return s.ProductStore.GetProduct(ctx, id)
	}
	key := productKey(id, version)

	raw, err := s.RDB.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var p models.Product
		if jerr := json.Unmarshal(raw, &p); jerr == nil {
			metrics.CacheHits.Inc()
			return &p, nil
		}
		l.Warn("cache_decode_failed", "key", key)
	case !errors.Is(err, redis.Nil):
		l.Warn("cache_get_failed", "key", key, "error", err)
	}
	metrics.CacheMisses.Inc()

	p, err := s.ProductStore.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(p); err == nil {
		if err := s.RDB.Set(ctx, key, data, s.ttl()).Err(); err != nil {
			l.Warn("cache_set_failed", "key", key, "error", err)
		}
	}
	return p, nil
}

func (s *ProductStore) SaveProduct(ctx context.Context, prod *models.Product) error {
	if err := s.ProductStore.SaveProduct(ctx, prod); err != nil {
		return err
	}
	s.invalidate(ctx, prod.ID)
	return nil
}

func (s *ProductStore) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.ProductStore.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *ProductStore) invalidate(ctx context.Context, id uint) {
	if err := s.RDB.Incr(ctx, versionKey(id)).Err(); err != nil {
		logging.FromContext(ctx).Warn("cache_invalidate_failed", "svc", "cache.product", "id", id, "error", err)
	}
}

func (s *ProductStore) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultTTL
	}
	return s.TTL
}
