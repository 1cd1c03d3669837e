package inits

import (
	"post-board/app/server/cache"
	"post-board/app/server/config"
	"post-board/app/server/constants"

	"go.uber.org/zap"
)

// Cache 配置了 Redis 时使用 Redis ，否则使用进程内 LRU
func Cache(cfg *config.Config, l *zap.Logger) (cache.Store, error) {
	if cfg.System.RedisConnectionString == "" {
		l.Info("REDIS_CONN not set, using in-process response cache", zap.Int("size", cfg.Cache.Size))
		return cache.NewMemory(cfg.Cache.Size, cfg.Cache.TTL), nil
	}

	rdb, err := Redis(cfg.System.RedisConnectionString)
	if err != nil {
		return nil, err
	}

	return cache.NewRedis(rdb, constants.CacheKeyPrefixResponse, cfg.Cache.TTL), nil
}
