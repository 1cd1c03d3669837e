package inits

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"post-board/app/server/config"

	"github.com/joho/godotenv"
)

// Config 从环境变量读取配置，当前目录存在 .env 文件时先加载它（不覆盖已有的环境变量）
func Config() (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &config.Config{}

	// 手动配置映射
	{
		mode, exist := os.LookupEnv("MODE")
		cfg.System.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	cfg.System.Listen = envOr("LISTEN", ":1323")

	cfg.System.DBDriver = strings.ToLower(envOr("DB_DRIVER", "postgres"))
	if cfg.System.DBDriver != "postgres" && cfg.System.DBDriver != "sqlite" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.System.DBDriver)
	}

	if dbconn, exist := os.LookupEnv("DB_CONN"); !exist || dbconn == "" {
		return nil, fmt.Errorf("DB_CONN environment variable not set")
	} else {
		cfg.System.DBConnectionString = dbconn
	}

	// 可选，没有时使用进程内缓存
	cfg.System.RedisConnectionString = os.Getenv("REDIS_CONN")

	if sigsk, exist := os.LookupEnv("SIGNATURE_SECRET_KEY"); !exist || sigsk == "" {
		return nil, fmt.Errorf("SIGNATURE_SECRET_KEY environment variable not set")
	} else {
		cfg.Security.SignatureSecretKey = sigsk
	}

	var err error
	if cfg.Security.TokenTTL, err = envDuration("TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.Cache.TTL, err = envDuration("CACHE_TTL", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.Cache.Size, err = envInt("CACHE_SIZE", 1024); err != nil {
		return nil, err
	}
	if cfg.Security.LoginBurst, err = envInt("LOGIN_BURST", 5); err != nil {
		return nil, err
	}
	if rate, exist := os.LookupEnv("LOGIN_RATE"); !exist {
		cfg.Security.LoginRate = 1
	} else if cfg.Security.LoginRate, err = strconv.ParseFloat(rate, 64); err != nil {
		return nil, fmt.Errorf("invalid LOGIN_RATE %q: %w", rate, err)
	}

	cfg.Seed.AdminUsername = envOr("ADMIN_USERNAME", "admin")
	cfg.Seed.AdminPassword = envOr("ADMIN_PASSWORD", "password")

	return cfg, nil
}

func envOr(key, def string) string {
	if v, exist := os.LookupEnv(key); exist && v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v, exist := os.LookupEnv(key)
	if !exist || v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func envInt(key string, def int) (int, error) {
	v, exist := os.LookupEnv(key)
	if !exist || v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return i, nil
}
