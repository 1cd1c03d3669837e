// Package cache 提供响应缓存的存储后端，过期时间在创建时确定。
package cache

import (
	"context"
	"errors"
)

var ErrMiss = errors.New("cache miss")

type Store interface {
	// Get 在没有记录或已过期时返回 ErrMiss
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
