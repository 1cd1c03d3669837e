package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"post-board/app/server/inits"
	"post-board/app/server/jwt"
	"post-board/app/server/metrics"
	"post-board/app/server/router"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := inits.Logger(!cfg.System.IsProd, "server")
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}
	defer func() { _ = l.Sync() }()

	// 切换日志系统
	l.Debug("logger initialized")

	// 初始化数据库连接
	db, err := inits.DB(cfg)
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}

	// 初始化响应缓存
	store, err := inits.Cache(cfg, l)
	if err != nil {
		l.Fatal("error initializing response cache", zap.Error(err))
	}

	// 初始化 JWT
	j, err := jwt.New(cfg.Security.SignatureSecretKey)
	if err != nil {
		l.Fatal("error initializing JWT", zap.Error(err))
	}

	// 初始化指标
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// 准备 echo 服务
	e := router.New(router.Options{
		Logger:     l,
		DB:         db,
		JWT:        j,
		Cache:      store,
		Metrics:    metrics.New(registry),
		TokenTTL:   cfg.Security.TokenTTL,
		LoginRate:  cfg.Security.LoginRate,
		LoginBurst: cfg.Security.LoginBurst,
		APIDocs:    !cfg.System.IsProd,
	})

	// 启动 echo 服务
	go func() {
		l.Info("server starting", zap.String("listen", cfg.System.Listen))
		if err := e.Start(cfg.System.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	// 等待退出信号
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		l.Error("failed to shutdown server", zap.Error(err))
	}
}
