package config

import (
	"errors"
	"testing"
	"time"
)

type fakeStore struct {
	values map[string]string
	err    error
	loads  int
}

func (f *fakeStore) All() (map[string]string, error) {
	f.loads++
	if f.err != nil {
		return nil, f.err
	}
	return f.values, nil
}

func TestSettings_CachesWithinTTL(t *testing.T) {
	store := &fakeStore{values: map[string]string{"livraison_gratuite_des": "80"}}
	s := NewSettings(store, time.Minute)

	for i := 0; i < 10; i++ {
		if got := s.Get("livraison_gratuite_des", "50"); got != "80" {
			t.Fatalf("want 80, got %s", got)
		}
	}
	if store.loads != 1 {
		t.Fatalf("want a single load within TTL, got %d", store.loads)
	}
}

func TestSettings_FallbackWhenAbsentOrUnreachable(t *testing.T) {
	store := &fakeStore{values: map[string]string{}}
	s := NewSettings(store, time.Minute)
	if got := s.Get("cle_inconnue", "defaut"); got != "defaut" {
		t.Fatalf("want fallback, got %s", got)
	}

	broken := &fakeStore{err: errors.New("table absente")}
	s = NewSettings(broken, time.Minute)
	if got := s.Get("quoi", "defaut"); got != "defaut" {
		t.Fatalf("want fallback on load error, got %s", got)
	}
}

func TestSettings_ReloadsAfterInvalidate(t *testing.T) {
	store := &fakeStore{values: map[string]string{"k": "v1"}}
	s := NewSettings(store, time.Hour)

	if got := s.Get("k", ""); got != "v1" {
		t.Fatalf("want v1, got %s", got)
	}
	store.values = map[string]string{"k": "v2"}
	if got := s.Get("k", ""); got != "v1" {
		t.Fatalf("TTL not elapsed, want cached v1, got %s", got)
	}
	s.Invalidate()
	if got := s.Get("k", ""); got != "v2" {
		t.Fatalf("want v2 after invalidate, got %s", got)
	}
}

func TestSettings_KeepsStaleSnapshotOnReloadError(t *testing.T) {
	store := &fakeStore{values: map[string]string{"k": "v1"}}
	s := NewSettings(store, time.Nanosecond)

	if got := s.Get("k", ""); got != "v1" {
		t.Fatalf("want v1, got %s", got)
	}
	store.err = errors.New("indisponible")
	time.Sleep(time.Millisecond)
	if got := s.Get("k", "fallback"); got != "v1" {
		t.Fatalf("want previous snapshot on reload error, got %s", got)
	}
}
