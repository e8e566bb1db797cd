package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"coursiva/internal/domain"
	"coursiva/internal/fanout"
	applog "coursiva/internal/log"
	"coursiva/internal/repos"
)

// AggregatorService owns the category registry and the cache-version token,
// and builds the merged public catalog by fanning out to every active
// category endpoint.
type AggregatorService struct {
	Registry *repos.RegistryRepo
	State    *repos.StateRepo
	Client   *http.Client
	Timeout  time.Duration // per-category call budget
}

func NewAggregatorService(reg *repos.RegistryRepo, state *repos.StateRepo, timeout time.Duration) *AggregatorService {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &AggregatorService{
		Registry: reg,
		State:    state,
		Client:   &http.Client{Timeout: timeout},
		Timeout:  timeout,
	}
}

// ListCategories returns every registry row, placeholders included. The
// admin UI wants to see unconfigured rows; only aggregation filters them.
func (s *AggregatorService) ListCategories() ([]domain.Category, error) {
	return s.Registry.List()
}

// categoryResponse is the envelope a categoryd instance answers with.
type categoryResponse struct {
	Success bool                 `json:"success"`
	Data    []domain.CourseSheet `json:"data"`
	Error   string               `json:"error"`
}

// PublicCatalog fans out to every active category, merges whatever succeeds
// and tags each sheet with its category's display name. A failing category
// degrades the catalog instead of failing the response; an empty active set
// yields an empty product list, never an error.
func (s *AggregatorService) PublicCatalog(ctx context.Context) (domain.Snapshot, error) {
	cats, err := s.Registry.List()
	if err != nil {
		return domain.Snapshot{}, err
	}
	version, err := s.State.CacheVersion()
	if err != nil {
		return domain.Snapshot{}, err
	}

	snap := domain.Snapshot{Categories: cats, Products: []domain.CourseSheet{}, CacheVersion: version}

	active := make([]domain.Category, 0, len(cats))
	for _, c := range cats {
		if c.Active() {
			active = append(active, c)
		}
	}
	if len(active) == 0 {
		return snap, nil
	}

	results, errs := fanout.Map(ctx, active, s.fetchCategory)
	for i, sheets := range results {
		if errs[i] != nil {
			applog.Event("aggregator.fanout.skip", errs[i], map[string]any{"category": active[i].ID})
			continue
		}
		for _, sheet := range sheets {
			sheet.CategoryName = active[i].DisplayName
			snap.Products = append(snap.Products, sheet)
		}
	}
	return snap, nil
}

func (s *AggregatorService) fetchCategory(ctx context.Context, cat domain.Category) ([]domain.CourseSheet, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	url := strings.TrimRight(cat.EndpointURL, "/") + "/getProducts"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("category %s: status %d", cat.ID, resp.StatusCode)
	}

	var out categoryResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("category %s: %w", cat.ID, err)
	}
	if !out.Success {
		return nil, fmt.Errorf("category %s: %s", cat.ID, out.Error)
	}
	return out.Data, nil
}

// InvalidateCache moves the version token strictly forward and returns the
// new value.
func (s *AggregatorService) InvalidateCache() (string, error) {
	return s.State.BumpCacheVersion()
}

// CacheVersion returns the current token without touching the catalog.
func (s *AggregatorService) CacheVersion() (string, error) {
	return s.State.CacheVersion()
}
