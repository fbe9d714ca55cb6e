package cache

import (
	"context"
	"encoding/json"
	"time"

	"feedthread/internal/logger"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// item 包装缓存数据和过期时间
type item struct {
	data      []byte
	expiresAt time.Time
}

// LRU 进程内缓存，容量满时淘汰最久未使用的条目
type LRU struct {
	lru *lru.Cache[string, item]
	now func() time.Time
}

func NewLRU(size int) (*LRU, error) {
	l, err := lru.New[string, item](size)
	if err != nil {
		return nil, err
	}
	return &LRU{lru: l, now: time.Now}, nil
}

func (c *LRU) Set(_ context.Context, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	c.lru.Add(key, item{data: data, expiresAt: c.now().Add(ttl)})
}

// Get 不存在或已过期返回 false
func (c *LRU) Get(_ context.Context, key string, dst any) bool {
	val, ok := c.lru.Get(key)
	if !ok {
		return false
	}
	if c.now().After(val.expiresAt) {
		c.lru.Remove(key)
		return false
	}
	return json.Unmarshal(val.data, dst) == nil
}

func (c *LRU) Delete(_ context.Context, keys ...string) {
	for _, k := range keys {
		c.lru.Remove(k)
	}
}
