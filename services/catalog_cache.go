package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/karlseguin/ccache/v3"
	"github.com/redis/go-redis/v9"

	"basha-backend/logging"
	"basha-backend/models"
)

// CatalogCache holds the full catalog in catalog order.
type CatalogCache interface {
	Get(ctx context.Context) ([]models.Room, bool)
	Set(ctx context.Context, rooms []models.Room)
	Invalidate(ctx context.Context)
}

// TieredCatalogCache keeps a process-local copy in front of an optional Redis copy.
type TieredCatalogCache struct {
	local  *ccache.Cache[[]models.Room]
	remote *redis.Client
	key    string
	ttl    time.Duration
}

// NewCatalogCache builds the cache. remote may be nil for a local-only cache.
func NewCatalogCache(localSize int64, remote *redis.Client, prefix string, ttl time.Duration) *TieredCatalogCache {
	if localSize <= 0 {
		localSize = 1000
	}
	if prefix == "" {
		prefix = "basha"
	}
	return &TieredCatalogCache{
		local:  ccache.New(ccache.Configure[[]models.Room]().MaxSize(localSize)),
		remote: remote,
		key:    fmt.Sprintf("%s:catalog", prefix),
		ttl:    ttl,
	}
}

func (c *TieredCatalogCache) Get(ctx context.Context) ([]models.Room, bool) {
	if item := c.local.Get(c.key); item != nil && !item.Expired() {
		return slices.Clone(item.Value()), true
	}
	if c.remote == nil {
		return nil, false
	}

	data, err := c.remote.Get(ctx, c.key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			l := logging.Ctx(ctx)
			l.Warn().Err(err).Msg("catalog cache: redis get failed")
		}
		return nil, false
	}
	var rooms []models.Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		l := logging.Ctx(ctx)
		l.Warn().Err(err).Msg("catalog cache: corrupt redis entry")
		return nil, false
	}
	c.local.Set(c.key, rooms, c.ttl)
	return slices.Clone(rooms), true
}

func (c *TieredCatalogCache) Set(ctx context.Context, rooms []models.Room) {
	c.local.Set(c.key, slices.Clone(rooms), c.ttl)
	if c.remote == nil {
		return
	}
	data, err := json.Marshal(rooms)
	if err != nil {
		return
	}
	if err := c.remote.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		l := logging.Ctx(ctx)
		l.Warn().Err(err).Msg("catalog cache: redis set failed")
	}
}

func (c *TieredCatalogCache) Invalidate(ctx context.Context) {
	c.local.Delete(c.key)
	if c.remote == nil {
		return
	}
	if err := c.remote.Del(ctx, c.key).Err(); err != nil {
		l := logging.Ctx(ctx)
		l.Warn().Err(err).Msg("catalog cache: redis delete failed")
	}
}

func (c *TieredCatalogCache) Close() {
	c.local.Stop()
}
