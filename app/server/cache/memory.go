package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// Memory 是进程内的 LRU 缓存，没有配置 Redis 时使用
type Memory struct {
	lru *lru.LRU[string, []byte]
}

func NewMemory(size int, ttl time.Duration) *Memory {
	if size <= 0 {
		size = 1
	}
	return &Memory{
		lru: lru.NewLRU[string, []byte](size, nil, ttl),
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	b, ok := m.lru.Get(key)
	if !ok {
		return nil, ErrMiss
	}
	return b, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.lru.Add(key, value)
	return nil
}
