package catalogclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"coursiva/internal/domain"
)

func aggServer(t *testing.T, hits *atomic.Int32, version func() string, products func() []domain.CourseSheet) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/getPublicCatalog":
			hits.Add(1)
			snap := domain.Snapshot{
				Categories:   []domain.Category{{ID: "b", DisplayName: "Bureautique"}},
				Products:     products(),
				CacheVersion: version(),
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": snap, "cacheVersion": snap.CacheVersion})
		case "/getCacheVersion":
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "cacheVersion": version()})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCatalog_FreshReadHitsNetworkOnce(t *testing.T) {
	var hits atomic.Int32
	srv := aggServer(t, &hits,
		func() string { return "1" },
		func() []domain.CourseSheet { return []domain.CourseSheet{{Course: domain.Course{ID: "c1"}}} })

	c := New(srv.URL)
	ctx := context.Background()

	snap, err := c.Catalog(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Products) != 1 || snap.CacheVersion != "1" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	// age 0: repeated reads must not touch the network
	for i := 0; i < 5; i++ {
		if _, err := c.Catalog(ctx); err != nil {
			t.Fatal(err)
		}
	}
	if hits.Load() != 1 {
		t.Fatalf("want exactly 1 fetch, got %d", hits.Load())
	}
}

func TestCatalog_StaleServesOldAndRefreshesOnce(t *testing.T) {
	var hits atomic.Int32
	var version atomic.Value
	version.Store("1")
	srv := aggServer(t, &hits,
		func() string { return version.Load().(string) },
		func() []domain.CourseSheet { return []domain.CourseSheet{{Course: domain.Course{ID: "c-" + version.Load().(string)}}} })

	c := New(srv.URL)
	ctx := context.Background()

	if _, err := c.Catalog(ctx); err != nil {
		t.Fatal(err)
	}
	version.Store("2")

	// force staleness
	c.mu.Lock()
	c.fetchedAt = time.Now().Add(-time.Hour)
	c.mu.Unlock()

	snap, err := c.Catalog(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if snap.CacheVersion != "1" {
		t.Fatalf("stale read must serve the previous snapshot, got version %s", snap.CacheVersion)
	}

	// background refresh lands eventually
	deadline := time.Now().Add(2 * time.Second)
	for {
		snap, _ = c.Catalog(ctx)
		if snap.CacheVersion == "2" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("refresh never landed, still at version %s after %d fetches", snap.CacheVersion, hits.Load())
		}
		time.Sleep(10 * time.Millisecond)
	}
	if hits.Load() != 2 {
		t.Fatalf("want exactly 2 fetches (initial + one refresh), got %d", hits.Load())
	}
}

func TestCatalog_RefreshFailureKeepsServingStale(t *testing.T) {
	var hits atomic.Int32
	var down atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if down.Load() {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		hits.Add(1)
		snap := domain.Snapshot{Products: []domain.CourseSheet{{Course: domain.Course{ID: "c1"}}}, CacheVersion: "1"}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": snap, "cacheVersion": "1"})
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL)
	ctx := context.Background()
	if _, err := c.Catalog(ctx); err != nil {
		t.Fatal(err)
	}

	down.Store(true)
	c.mu.Lock()
	c.fetchedAt = time.Now().Add(-time.Hour)
	c.mu.Unlock()

	snap, err := c.Catalog(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Products) != 1 {
		t.Fatalf("stale snapshot lost on failed refresh: %+v", snap)
	}

	// the failed refresh must clear the guard so a later read retries
	waitForRefreshIdle(t, c)
	snap, err = c.Catalog(ctx)
	if err != nil || len(snap.Products) != 1 {
		t.Fatalf("still want the stale snapshot: %v %+v", err, snap)
	}
}

func TestCatalog_EmptyCacheFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL)
	snap, err := c.Catalog(context.Background())
	if err == nil {
		t.Fatal("want error on empty-cache fetch failure")
	}
	if snap.Products == nil || len(snap.Products) != 0 {
		t.Fatalf("want explicit empty catalog shape, got %#v", snap)
	}
}

func TestVersionPoll(t *testing.T) {
	var hits atomic.Int32
	srv := aggServer(t, &hits,
		func() string { return "42" },
		func() []domain.CourseSheet { return nil })

	c := New(srv.URL)
	v, err := c.Version(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if v != "42" {
		t.Fatalf("want version 42, got %s", v)
	}
	if hits.Load() != 0 {
		t.Fatal("version poll must not fetch the catalog")
	}
}

func TestNotifyInvalidate(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/invalidateCache" {
			http.NotFound(w, r)
			return
		}
		hits.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "cacheVersion": "2"})
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL)
	c.NotifyInvalidate()

	deadline := time.Now().Add(2 * time.Second)
	for hits.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("invalidate call never reached the aggregator")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if hits.Load() != 1 {
		t.Fatalf("want exactly 1 invalidate call, got %d", hits.Load())
	}
}

func waitForRefreshIdle(t *testing.T, c *Client) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		c.mu.Lock()
		idle := !c.refreshing
		c.mu.Unlock()
		if idle {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("refresh guard never cleared")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
