// Package cache предоставляет потокобезопасное хранилище с ограниченным временем жизни записей.
package cache

import (
	"context"
	"sync"
	"time"
)

// Item представляет закэшированное значение
type Item[V any] struct {
	Value     V
	ExpiresAt time.Time
}

// Store хранит значения по строковому ключу до истечения TTL
type Store[V any] struct {
	items map[string]*Item[V]
	mutex sync.RWMutex
	now   func() time.Time
}

// NewStore создает новое пустое хранилище
func NewStore[V any]() *Store[V] {
	return &Store[V]{
		items: make(map[string]*Item[V]),
		now:   time.Now,
	}
}

// Get возвращает значение, если оно есть и не просрочено
func (s *Store[V]) Get(key string) (V, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	item, exists := s.items[key]
	if !exists || s.now().After(item.ExpiresAt) {
		var zero V
		return zero, false
	}
	return item.Value, true
}

// Put сохраняет значение на время ttl
func (s *Store[V]) Put(key string, value V, ttl time.Duration) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.items[key] = &Item[V]{
		Value:     value,
		ExpiresAt: s.now().Add(ttl),
	}
}

// Len возвращает число записей, включая еще не вычищенные просроченные
func (s *Store[V]) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.items)
}

// CleanupExpired удаляет просроченные записи
func (s *Store[V]) CleanupExpired() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	for key, item := range s.items {
		if now.After(item.ExpiresAt) {
			delete(s.items, key)
		}
	}
}

// StartCleanupTicker периодически вычищает просроченные записи до отмены ctx
func (s *Store[V]) StartCleanupTicker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.CleanupExpired()
			}
		}
	}()
}
