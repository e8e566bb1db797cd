package config

import (
	"sync"
	"time"
)

// SettingsStore is the durable side of the settings table.
type SettingsStore interface {
	All() (map[string]string, error)
}

// Settings is a TTL-cached view over a key/value settings table. Every
// service front-ends its config sheet with one of these so a request never
// pays a table scan more than once per TTL window.
type Settings struct {
	Store SettingsStore
	TTL   time.Duration

	mu       sync.Mutex
	values   map[string]string
	loadedAt time.Time
}

func NewSettings(store SettingsStore, ttl time.Duration) *Settings {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &Settings{Store: store, TTL: ttl}
}

// Get returns the value for key, or fallback when the table is unreachable
// or the key is absent. Load errors are swallowed on purpose: settings always
// degrade to their hardcoded defaults.
func (s *Settings) Get(key, fallback string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.values == nil || time.Since(s.loadedAt) >= s.TTL {
		if m, err := s.Store.All(); err == nil {
			s.values = m
			s.loadedAt = time.Now()
		} else if s.values == nil {
			return fallback
		}
		// on error keep serving the previous snapshot
	}
	if v, ok := s.values[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Invalidate drops the cached snapshot so the next Get reloads.
func (s *Settings) Invalidate() {
	s.mu.Lock()
	s.values = nil
	s.mu.Unlock()
}
