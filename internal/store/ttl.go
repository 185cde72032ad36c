// Package store provides the in-memory TTL-keyed stores shared by every
// stateful feature: AI conversations, quiz and story sessions, the
// generated-response cache and the rendered-page cache.
package store

import (
	"context"
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTL is a generic key-value store with absolute per-entry expiry.
// Expired entries are reclaimed lazily on read; a periodic sweep may run
// in addition to bound memory but is never required for correctness.
type TTL[V any] struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]entry[V]
}

// NewTTL creates a store on the wall clock.
func NewTTL[V any]() *TTL[V] {
	return NewTTLClock[V](time.Now)
}

// NewTTLClock creates a store on a caller-supplied clock.
func NewTTLClock[V any](now func() time.Time) *TTL[V] {
	return &TTL[V]{now: now, entries: make(map[string]entry[V])}
}

// Get returns the live value for key. A present-but-expired entry is
// deleted and reported as absent, indistinguishable from never written.
func (s *TTL[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Put stores value under key, overwriting any previous entry and fixing
// expiry at now + ttl. Subsequent reads never extend it.
func (s *TTL[V]) Put(key string, value V, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry[V]{value: value, expiresAt: s.now().Add(ttl)}
}

// PutUntil stores value with an explicit expiry instant. Used by callers
// that must preserve an absolute deadline across re-saves.
func (s *TTL[V]) PutUntil(key string, value V, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry[V]{value: value, expiresAt: expiresAt}
}

// Expiry reports the expiry instant of a live entry.
func (s *TTL[V]) Expiry(key string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || !s.now().Before(e.expiresAt) {
		return time.Time{}, false
	}
	return e.expiresAt, true
}

// Delete removes key if present.
func (s *TTL[V]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Len counts entries still held, including not-yet-reclaimed expired ones.
func (s *TTL[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep drops every expired entry immediately.
func (s *TTL[V]) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, k)
		}
	}
}

// StartSweeper runs Sweep every interval until ctx is cancelled.
func (s *TTL[V]) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}
