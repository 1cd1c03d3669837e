// Package router 按路由表组装 echo 实例：认证、权限、缓存、限流都在这里挂到各个接口上。
package router

import (
	"time"

	"post-board/app/server/apidocs"
	"post-board/app/server/auth"
	"post-board/app/server/cache"
	"post-board/app/server/handlers"
	"post-board/app/server/jwt"
	"post-board/app/server/metrics"
	"post-board/app/server/middlewares"
	"post-board/app/server/permission"
	"post-board/app/server/repository"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

type Options struct {
	Logger   *zap.Logger
	DB       *gorm.DB
	JWT      *jwt.JWT
	Cache    cache.Store
	Metrics  *metrics.Metrics
	TokenTTL time.Duration

	LoginRate  float64 // 小于等于 0 时不限流
	LoginBurst int

	APIDocs bool // 挂载 /api/apidocs
}

func New(o Options) *echo.Echo {
	l := o.Logger

	evaluator := permission.NewEvaluator(repository.NewUsers(o.DB))
	verifier := auth.NewVerifier(o.JWT)
	app := handlers.NewApp(l, o.DB, evaluator, o.JWT, o.TokenTTL)

	// 准备 echo 服务
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = app.ErrorHandler

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("URI", v.URI),
				zap.String("method", v.Method),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("requestID", v.RequestID),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			l.Info("request", fields...)

			return nil
		},
	}))
	e.Use(middlewares.Metrics(o.Metrics))
	e.Use(middleware.Recover())

	// 通用接口
	e.GET("/healthz", app.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(o.Metrics.Handler()))

	// 限流器在登录和注册之间共享
	var throttle echo.MiddlewareFunc
	if o.LoginRate > 0 {
		throttle = middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(o.LoginRate),
				Burst:     o.LoginBurst,
				ExpiresIn: 3 * time.Minute,
			}),
			IdentifierExtractor: func(c echo.Context) (string, error) {
				return c.RealIP(), nil
			},
		})
	}
	responseCache := middlewares.ResponseCache(o.Cache, o.Metrics, l)

	// 绑定路由表
	for _, r := range Routes {
		var mws []echo.MiddlewareFunc
		if r.Throttled && throttle != nil {
			mws = append(mws, throttle)
		}
		if !r.Public {
			mws = append(mws, middlewares.Authenticate(verifier))
		}
		if r.Permission != "" {
			mws = append(mws, middlewares.RequirePermission(evaluator, r.Permission))
		}
		if r.Cached {
			mws = append(mws, responseCache)
		}

		e.Add(r.Method, r.Path, bindHandler(app, r.Handler), mws...)
	}

	// 添加 API 文档
	if o.APIDocs {
		if doc, err := apidocs.Load(); err != nil {
			l.Error("error loading openapi document", zap.Error(err))
		} else if docs, err := apidocs.Doc("/api", doc, apidocs.WithTitle("post-board API")); err != nil {
			l.Error("error preparing api docs", zap.Error(err))
		} else {
			e.Pre(docs)
		}
	}

	return e
}

func bindHandler(app *handlers.App, h func(*handlers.App, echo.Context) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		return h(app, c)
	}
}
