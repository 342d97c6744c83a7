package cache

import (
	"context"
	"time"

	json "github.com/goccy/go-json"
)

// Store 短期缓存，Redis 和进程内实现共用
type Store interface {
	// Get 未命中返回 ErrMiss
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

type missErr struct{}

func (missErr) Error() string { return "cache: miss" }

// ErrMiss 缓存未命中
var ErrMiss error = missErr{}

// GetJSON 读取并反序列化，未命中返回 false
func GetJSON(ctx context.Context, s Store, key string, v interface{}) (bool, error) {
	data, err := s.Get(ctx, key)
	if err == ErrMiss {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 序列化后写入缓存
func SetJSON(ctx context.Context, s Store, key string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, data, ttl)
}
