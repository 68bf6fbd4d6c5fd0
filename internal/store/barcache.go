// internal/store/barcache.go
package store

import (
	"context"
	"encoding/json"
	"path"
	"strings"
	"time"

	"github.com/newthinker/prospect/internal/core"
)

// DefaultBarTTL is how long a cached daily series stays fresh. Daily bars
// change at most once per session, so half a day is plenty.
const DefaultBarTTL = 12 * time.Hour

const barDir = "bars"

// BarPath returns the storage path for a symbol's cached bars.
func BarPath(symbol string) string {
	return path.Join(barDir, strings.ToUpper(symbol)+".json")
}

type barEnvelope struct {
	Symbol   string     `json:"symbol"`
	CachedAt time.Time  `json:"cached_at"`
	Bars     []core.Bar `json:"bars"`
}

// BarCache keeps fetched daily series on a Backend with a freshness TTL.
type BarCache struct {
	backend Backend
	ttl     time.Duration
	now     func() time.Time
}

// NewBarCache wraps a backend. A non-positive ttl uses DefaultBarTTL.
func NewBarCache(b Backend, ttl time.Duration) *BarCache {
	if ttl <= 0 {
		ttl = DefaultBarTTL
	}
	return &BarCache{backend: b, ttl: ttl, now: time.Now}
}

// Get returns the cached series when present and fresh. Stale or unreadable
// entries count as misses.
func (c *BarCache) Get(ctx context.Context, symbol string) ([]core.Bar, bool) {
	data, err := c.backend.Read(ctx, BarPath(symbol))
	if err != nil {
		return nil, false
	}
	var env barEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, false
	}
	if c.now().Sub(env.CachedAt) > c.ttl {
		return nil, false
	}
	return env.Bars, true
}

// Put stores the series with the current time as its freshness mark.
func (c *BarCache) Put(ctx context.Context, symbol string, bars []core.Bar) error {
	env := barEnvelope{
		Symbol:   strings.ToUpper(symbol),
		CachedAt: c.now().UTC(),
		Bars:     bars,
	}
	data, err := json.Marshal(env)
	if err != nil {
		return core.Wrapf(core.ErrStoreFailed, "encode bars %s: %v", symbol, err)
	}
	return c.backend.Write(ctx, BarPath(symbol), data)
}

// Invalidate drops a symbol's cached series.
func (c *BarCache) Invalidate(ctx context.Context, symbol string) error {
	return c.backend.Delete(ctx, BarPath(symbol))
}
