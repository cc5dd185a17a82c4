// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
)

// LRU a typed LRU cache extends golang-lru, counting hits and misses.
type LRU[K comparable, V any] struct {
	cache     *lru.Cache
	hit, miss atomic.Int64
}

// NewLRU create a LRU cache instance.
// maxSize should be > 0, or an error returned.
func NewLRU[K comparable, V any](maxSize int) (*LRU[K, V], error) {
	cache, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &LRU[K, V]{cache: cache}, nil
}

// Get looks up key.
func (l *LRU[K, V]) Get(key K) (V, bool) {
	if v, ok := l.cache.Get(key); ok {
		l.hit.Add(1)
		return v.(V), true
	}
	l.miss.Add(1)
	var zero V
	return zero, false
}

// Add adds a value, evicting the least recently used one when full.
func (l *LRU[K, V]) Add(key K, value V) {
	l.cache.Add(key, value)
}

// Remove drops key.
func (l *LRU[K, V]) Remove(key K) {
	l.cache.Remove(key)
}

// Len returns the number of cached entries.
func (l *LRU[K, V]) Len() int {
	return l.cache.Len()
}

// Purge clears the cache.
func (l *LRU[K, V]) Purge() {
	l.cache.Purge()
}

// GetOrLoad first try to get from cache, do load if missed.
func (l *LRU[K, V]) GetOrLoad(key K, loader func(key K) (V, error)) (V, error) {
	if v, ok := l.Get(key); ok {
		return v, nil
	}
	v, err := loader(key)
	if err != nil {
		var zero V
		return zero, err
	}
	l.cache.Add(key, v)
	return v, nil
}

// Stats returns the number of hits and misses.
func (l *LRU[K, V]) Stats() (hit, miss int64) {
	return l.hit.Load(), l.miss.Load()
}
