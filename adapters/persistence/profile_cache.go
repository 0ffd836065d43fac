package persistence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/devlink/internal/domain/profile"
	"github.com/khoahotran/devlink/pkg/logger"
)

const (
	profileListCacheKey = "profiles:all"
	profileListCacheTTL = 5 * time.Minute
)

// ProfileListCache fronts the public profile listing with redis. Mutating
// use cases invalidate it; a cache failure is logged and treated as a miss.
type ProfileListCache struct {
	rdb    *redis.Client
	logger logger.Logger
}

func NewProfileListCache(rdb *redis.Client, log logger.Logger) *ProfileListCache {
	return &ProfileListCache{rdb: rdb, logger: log}
}

func (c *ProfileListCache) Get(ctx context.Context) ([]*profile.Profile, bool) {
	raw, err := c.rdb.Get(ctx, profileListCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Profile list cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var profiles []*profile.Profile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		c.logger.Warn("Profile list cache entry corrupt, dropping", zap.Error(err))
		c.Invalidate(ctx)
		return nil, false
	}
	return profiles, true
}

func (c *ProfileListCache) Set(ctx context.Context, profiles []*profile.Profile) {
	raw, err := json.Marshal(profiles)
	if err != nil {
		c.logger.Warn("Failed to marshal profile list for cache", zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, profileListCacheKey, raw, profileListCacheTTL).Err(); err != nil {
		c.logger.Warn("Profile list cache write failed", zap.Error(err))
	}
}

func (c *ProfileListCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, profileListCacheKey).Err(); err != nil {
		c.logger.Warn("Profile list cache invalidation failed", zap.Error(err))
	}
}
