package middlewares

import (
	"encoding/json"
	"errors"
	"net/http"

	"post-board/app/server/cache"
	"post-board/app/server/constants"
	"post-board/app/server/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type cachedResponse struct {
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// ResponseCache 以 method + path + query 为键缓存 GET 的 200 响应。写操作不会使缓存失效，过期时间由 store 决定
func ResponseCache(store cache.Store, m *metrics.Metrics, l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		// 未命中时记录响应体
		record := middleware.BodyDumpWithConfig(middleware.BodyDumpConfig{
			Handler: func(c echo.Context, _ []byte, resBody []byte) {
				if c.Response().Status != http.StatusOK {
					return
				}

				cacheBytes, err := json.Marshal(&cachedResponse{
					ContentType: c.Response().Header().Get(echo.HeaderContentType),
					Body:        resBody,
				})
				if err != nil {
					l.Error("failed to marshal response for cache", zap.Error(err))
					return
				}
				if err = store.Set(c.Request().Context(), cacheKey(c), cacheBytes); err != nil {
					l.Error("failed to store response in cache", zap.String("key", cacheKey(c)), zap.Error(err))
				}
			},
		})(next)

		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}

			rctx := c.Request().Context()
			key := cacheKey(c)

			// 查询缓存
			if cacheBytes, err := store.Get(rctx, key); err != nil {
				if !errors.Is(err, cache.ErrMiss) {
					l.Error("failed to query response cache", zap.String("key", key), zap.Error(err))
				}
			} else {
				var cached cachedResponse
				if err = json.Unmarshal(cacheBytes, &cached); err != nil {
					l.Error("failed to unmarshal cached response", zap.String("key", key), zap.Error(err))
				} else {
					// 命中
					m.CacheResultsTotal.WithLabelValues(c.Path(), "hit").Inc()
					c.Response().Header().Set(constants.HeaderCache, "HIT")
					return c.Blob(http.StatusOK, cached.ContentType, cached.Body)
				}
			}

			m.CacheResultsTotal.WithLabelValues(c.Path(), "miss").Inc()
			c.Response().Header().Set(constants.HeaderCache, "MISS")
			return record(c)
		}
	}
}

func cacheKey(c echo.Context) string {
	return c.Request().Method + " " + c.Request().URL.RequestURI()
}
