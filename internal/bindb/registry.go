package bindb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/exp/slog"
	"golang.org/x/sync/singleflight"
)

// Registry is the prefix-keyed BIN mapping. It is fetched lazily, at
// most once per process: the first Lookup triggers the fetch, callers
// racing on it are collapsed by singleflight, and a failed fetch leaves
// the registry empty so resolution degrades to the static rules.
type Registry struct {
	url    string
	client *http.Client
	logger *slog.Logger

	group singleflight.Group
	mu    sync.RWMutex
	bins  map[string]BrandProfile
	tried bool
}

func NewRegistry(url string, client *http.Client, logger *slog.Logger) *Registry {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{url: url, client: client, logger: logger}
}

// NewStaticRegistry wraps an already-loaded mapping; used by tests and
// embedded data sets.
func NewStaticRegistry(bins map[string]BrandProfile) *Registry {
	m := make(map[string]BrandProfile, len(bins))
	for prefix, p := range bins {
		m[prefix] = withDefaults(p)
	}
	return &Registry{bins: m, tried: true, logger: slog.Default()}
}

// Lookup returns the profile registered under the exact prefix.
func (r *Registry) Lookup(ctx context.Context, prefix string) (BrandProfile, bool) {
	r.ensureLoaded(ctx)
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.bins[prefix]
	return p, ok
}

func (r *Registry) ensureLoaded(ctx context.Context) {
	r.mu.RLock()
	tried := r.tried
	r.mu.RUnlock()
	if tried {
		return
	}
	r.group.Do("load", func() (any, error) {
		bins, err := r.fetch(ctx)
		r.mu.Lock()
		r.tried = true
		if err == nil {
			r.bins = bins
		}
		r.mu.Unlock()
		if err != nil {
			r.logger.Warn("bin registry load failed; falling back to static rules", "err", err)
		} else {
			r.logger.Info("bin registry loaded", slog.Int("prefixes", len(bins)))
		}
		return nil, nil
	})
}

func (r *Registry) fetch(ctx context.Context) (map[string]BrandProfile, error) {
	if r.url == "" {
		return nil, fmt.Errorf("no registry url configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch registry: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("fetch registry: status=%d", resp.StatusCode)
	}
	var doc registryDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	bins := make(map[string]BrandProfile, len(doc.Bins))
	for prefix, p := range doc.Bins {
		bins[prefix] = withDefaults(p)
	}
	return bins, nil
}
