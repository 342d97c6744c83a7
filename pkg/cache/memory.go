package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// memoryStore 进程内缓存，未配置 redis 时使用
// lru 本身并发安全，过期在读取时判断
type memoryStore struct {
	entries *lru.Cache
	now     func() time.Time
}

func NewMemoryStore(size int) Store {
	if size <= 0 {
		size = 1024
	}
	entries, _ := lru.New(size)
	return &memoryStore{entries: entries, now: time.Now}
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := s.entries.Get(key)
	if !ok {
		return nil, ErrMiss
	}
	e := v.(memoryEntry)
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		s.entries.Remove(key)
		return nil, ErrMiss
	}
	return e.value, nil
}

func (s *memoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.entries.Add(key, e)
	return nil
}

func (s *memoryStore) Del(_ context.Context, key string) error {
	s.entries.Remove(key)
	return nil
}
