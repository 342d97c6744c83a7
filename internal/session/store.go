package session

import (
	"builderboard/internal/aggregate"
	"builderboard/utils/uuid"
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// Store 聚合会话，只保存在进程内存里
// 超过容量时淘汰最久未使用的会话
type Store struct {
	mu    sync.Mutex
	cache *lru.Cache
}

func NewStore(size int) (*Store, error) {
	if size <= 0 {
		size = 1000
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Store{cache: c}, nil
}

// Get 会话不存在或已被淘汰时返回 false
func (s *Store) Get(id string) (*aggregate.State, bool) {
	if !uuid.IsSessionID(id) {
		return nil, false
	}
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*aggregate.State), true
}

// GetOrCreate id 无效或会话不存在时创建新会话，返回实际使用的 id
func (s *Store) GetOrCreate(id, window string) (string, *aggregate.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.Get(id); ok {
		return id, st
	}
	if !uuid.IsSessionID(id) {
		id = uuid.GenSessionID()
	}
	st := aggregate.NewState(window)
	s.cache.Add(id, st)
	return id, st
}

// Delete 返回会话是否存在
func (s *Store) Delete(id string) bool {
	if !uuid.IsSessionID(id) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cache.Contains(id) {
		return false
	}
	s.cache.Remove(id)
	return true
}

func (s *Store) Len() int {
	return s.cache.Len()
}
