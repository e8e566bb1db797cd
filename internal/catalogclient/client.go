// Package catalogclient is the consumer side of the aggregator: a
// stale-while-revalidate cache over getPublicCatalog plus helpers for the
// cheap version poll and the fire-and-forget invalidation notify.
package catalogclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"coursiva/internal/domain"
	applog "coursiva/internal/log"
)

// DefaultLifetime is how long a snapshot is served without triggering a
// background refresh.
const DefaultLifetime = 5 * time.Minute

type envelope struct {
	Success      bool            `json:"success"`
	Data         json.RawMessage `json:"data"`
	Error        string          `json:"error"`
	CacheVersion string          `json:"cacheVersion"`
}

// Client caches one catalog snapshot per instance.
//
// Read behavior follows the snapshot's age:
//   - empty: blocking fetch; a failure returns a zero snapshot and the error
//   - fresh (age < Lifetime): cached snapshot, no network call
//   - stale: cached snapshot immediately, plus one background refresh; a
//     failed refresh keeps serving stale and retries on a later read
type Client struct {
	BaseURL  string
	HTTP     *http.Client
	Lifetime time.Duration

	mu         sync.Mutex
	snapshot   domain.Snapshot
	fetchedAt  time.Time
	hasData    bool
	refreshing bool
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		HTTP:     &http.Client{Timeout: 15 * time.Second},
		Lifetime: DefaultLifetime,
	}
}

// Catalog returns the cached snapshot per the stale-while-revalidate rules.
func (c *Client) Catalog(ctx context.Context) (domain.Snapshot, error) {
	c.mu.Lock()
	if c.hasData {
		snap := c.snapshot
		stale := time.Since(c.fetchedAt) >= c.lifetime()
		if stale && !c.refreshing {
			c.refreshing = true
			go c.refresh()
		}
		c.mu.Unlock()
		return snap, nil
	}
	c.mu.Unlock()

	// empty cache: block on the network once
	snap, err := c.fetch(ctx)
	if err != nil {
		return domain.Snapshot{Products: []domain.CourseSheet{}}, err
	}
	c.store(snap)
	return snap, nil
}

// Version polls getCacheVersion without fetching the catalog. Callers
// compare tokens for inequality only.
func (c *Client) Version(ctx context.Context) (string, error) {
	env, err := c.get(ctx, "/getCacheVersion")
	if err != nil {
		return "", err
	}
	return env.CacheVersion, nil
}

// NotifyInvalidate tells the aggregator that source data changed. Best
// effort: the error is logged and dropped, the caller never waits on it.
func (c *Client) NotifyInvalidate() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := c.get(ctx, "/invalidateCache"); err != nil {
			applog.Event("catalog.notify.fail", err, nil)
		}
	}()
}

func (c *Client) lifetime() time.Duration {
	if c.Lifetime > 0 {
		return c.Lifetime
	}
	return DefaultLifetime
}

func (c *Client) store(snap domain.Snapshot) {
	c.mu.Lock()
	c.snapshot = snap
	c.fetchedAt = time.Now()
	c.hasData = true
	c.mu.Unlock()
}

func (c *Client) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snap, err := c.fetch(ctx)

	c.mu.Lock()
	c.refreshing = false
	if err == nil {
		c.snapshot = snap
		c.fetchedAt = time.Now()
	}
	c.mu.Unlock()

	if err != nil {
		applog.Event("catalog.refresh.fail", err, nil)
	}
}

func (c *Client) fetch(ctx context.Context) (domain.Snapshot, error) {
	env, err := c.get(ctx, "/getPublicCatalog")
	if err != nil {
		return domain.Snapshot{}, err
	}
	if !env.Success {
		return domain.Snapshot{}, fmt.Errorf("aggregator: %s", env.Error)
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(env.Data, &snap); err != nil {
		return domain.Snapshot{}, err
	}
	if snap.CacheVersion == "" {
		snap.CacheVersion = env.CacheVersion
	}
	return snap, nil
}

func (c *Client) get(ctx context.Context, path string) (envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return envelope{}, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return envelope{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return envelope{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return envelope{}, fmt.Errorf("aggregator: status %d", resp.StatusCode)
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return envelope{}, err
	}
	return env, nil
}
