// Package assets stores images, atlases, meshes and color materials behind
// typed handles.
package assets

import (
	"sync"
)

// Handle refers to an entry of a Registry[T]. The zero Handle is invalid.
type Handle[T any] struct {
	id uint64
}

func (h Handle[T]) ID() uint64 { return h.id }

func (h Handle[T]) Valid() bool { return h.id != 0 }

// HandleFromID rebuilds a handle from a stored id.
func HandleFromID[T any](id uint64) Handle[T] {
	return Handle[T]{id: id}
}

type Registry[T any] struct {
	mu     sync.RWMutex
	next   uint64
	values map[uint64]T
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{values: make(map[uint64]T)}
}

func (r *Registry[T]) Add(v T) Handle[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.values[r.next] = v
	return Handle[T]{id: r.next}
}

func (r *Registry[T]) Get(h Handle[T]) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[h.id]
	return v, ok
}

// Set replaces the value behind an existing handle.
func (r *Registry[T]) Set(h Handle[T], v T) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.values[h.id]; !ok {
		return false
	}
	r.values[h.id] = v
	return true
}

func (r *Registry[T]) Remove(h Handle[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, h.id)
}

func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.values)
}
