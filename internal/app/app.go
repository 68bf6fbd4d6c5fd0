// Package app wires the engine together: bar loading, discovery runs,
// signal checks and the watch loop.
package app

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/newthinker/prospect/internal/advisor"
	"github.com/newthinker/prospect/internal/catalog"
	"github.com/newthinker/prospect/internal/collector"
	"github.com/newthinker/prospect/internal/collector/yahoo"
	"github.com/newthinker/prospect/internal/config"
	"github.com/newthinker/prospect/internal/core"
	"github.com/newthinker/prospect/internal/discovery"
	"github.com/newthinker/prospect/internal/frame"
	"github.com/newthinker/prospect/internal/indicator"
	"github.com/newthinker/prospect/internal/llm/factory"
	"github.com/newthinker/prospect/internal/metrics"
	"github.com/newthinker/prospect/internal/report"
	"github.com/newthinker/prospect/internal/rules"
	"github.com/newthinker/prospect/internal/store"
)

// App is the engine orchestrator behind every command.
type App struct {
	cfg      *config.Config
	logger   *zap.Logger
	provider collector.Provider
	backend  store.Backend
	cache    *store.BarCache
	metrics  *metrics.Registry
	advisor  *advisor.Advisor

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
}

// New builds an app from a validated configuration. A nil logger disables
// logging.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	backend, err := newBackend(cfg.Store)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:      cfg,
		logger:   logger,
		provider: yahoo.New(),
		backend:  backend,
		cache:    store.NewBarCache(backend, cfg.Data.CacheTTL),
		metrics:  metrics.NewRegistry(),
	}

	if cfg.LLM.Provider != "" {
		llmProvider, err := factory.New(cfg.LLM)
		if err != nil {
			return nil, err
		}
		a.advisor = advisor.New(llmProvider, logger, advisor.Config{})
		logger.Info("advisor enabled", zap.String("provider", llmProvider.Name()))
	}

	return a, nil
}

func newBackend(cfg config.StoreConfig) (store.Backend, error) {
	switch cfg.Type {
	case "memory":
		return store.NewMemory(), nil
	case "localfs":
		base := cfg.Path
		if base == "" {
			base = "./data"
		}
		return store.NewLocalFS(base)
	case "s3":
		return store.NewS3(cfg.S3)
	case "redis":
		return store.NewRedis(cfg.Redis)
	default:
		return nil, core.Wrapf(core.ErrConfigInvalid, "unknown store type %q", cfg.Type)
	}
}

// Backend returns the artifact store.
func (a *App) Backend() store.Backend {
	return a.backend
}

// Metrics returns the Prometheus registry.
func (a *App) Metrics() *metrics.Registry {
	return a.metrics
}

// Close releases the backend when it holds connections.
func (a *App) Close() error {
	if c, ok := a.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// LoadBars returns a symbol's daily history as a frame with the full
// indicator set computed. Fresh cached bars short-circuit the fetch.
func (a *App) LoadBars(ctx context.Context, symbol string) (*frame.Frame, error) {
	bars, hit := a.cache.Get(ctx, symbol)
	if hit {
		a.metrics.RecordCacheLookup("hit")
		a.logger.Debug("bar cache hit", zap.String("symbol", symbol), zap.Int("bars", len(bars)))
	} else {
		a.metrics.RecordCacheLookup("miss")

		end := time.Now().UTC()
		start := end.AddDate(0, 0, -a.cfg.Data.HistoryDays)
		fetchStart := time.Now()
		var err error
		bars, err = a.provider.DailyHistory(ctx, symbol, start, end)
		elapsed := time.Since(fetchStart).Seconds()
		if err != nil {
			a.metrics.RecordFetch(a.provider.Name(), "error", elapsed)
			return nil, err
		}
		a.metrics.RecordFetch(a.provider.Name(), "ok", elapsed)
		a.logger.Info("bars fetched",
			zap.String("symbol", symbol),
			zap.String("provider", a.provider.Name()),
			zap.Int("bars", len(bars)))

		if err := a.cache.Put(ctx, symbol, bars); err != nil {
			a.logger.Warn("bar cache write failed", zap.String("symbol", symbol), zap.Error(err))
		}
	}

	cleaned, rep := frame.Clean(bars)
	if !rep.OK() {
		a.logger.Warn("series cleaned",
			zap.String("symbol", symbol),
			zap.Int("dropped", rep.Dropped),
			zap.Strings("issues", rep.Issues))
	}

	f, err := frame.New(cleaned)
	if err != nil {
		return nil, err
	}
	if err := indicator.Compute(f, a.cfg.Indicators); err != nil {
		return nil, err
	}
	return f, nil
}

// Discover runs the full discovery pipeline for a symbol and saves the
// resulting catalog.
func (a *App) Discover(ctx context.Context, symbol string) (*catalog.Catalog, *discovery.Result, error) {
	f, err := a.LoadBars(ctx, symbol)
	if err != nil {
		return nil, nil, err
	}

	pipe := discovery.NewPipeline(a.cfg.Discovery, a.logger)
	start := time.Now()
	res, err := pipe.Run(ctx, f)
	if err != nil {
		a.metrics.RecordDiscovery("error", time.Since(start).Seconds())
		return nil, nil, err
	}
	a.metrics.RecordDiscovery("ok", time.Since(start).Seconds())

	cat := catalog.Build(symbol, a.cfg.Discovery, res)
	a.metrics.SetValidatedPatterns(symbol, len(cat.Patterns))

	if err := store.SaveCatalog(ctx, a.backend, cat); err != nil {
		return nil, nil, err
	}
	a.logger.Info("catalog saved",
		zap.String("symbol", symbol),
		zap.Int("patterns", len(cat.Patterns)),
		zap.String("path", store.CatalogPath(symbol)))

	return cat, res, nil
}

// CheckSignals scans a symbol's recent bars against its catalog and saves
// the resulting report. Without a stored catalog the built-in pattern set
// is used.
func (a *App) CheckSignals(ctx context.Context, symbol string) (*report.Report, error) {
	f, err := a.LoadBars(ctx, symbol)
	if err != nil {
		return nil, err
	}

	cat, err := a.loadCatalog(ctx, symbol)
	if err != nil {
		return nil, err
	}

	signals := cat.CheckSignals(f, a.cfg.Signals.LookbackDays)
	for _, s := range signals {
		a.metrics.RecordSignal(symbol, s.Pattern)
	}

	var setups []rules.Match
	if a.cfg.Signals.Setups {
		setups = rules.CheckRecent(f, rules.Default(), a.cfg.Signals.LookbackDays)
	}

	rep, err := report.Build(symbol, f, a.cfg.Signals.LookbackDays, signals, setups)
	if err != nil {
		return nil, err
	}

	if a.advisor != nil && len(signals) > 0 {
		advice, err := a.advisor.Review(ctx, symbol, rep.Price, signals, setups)
		if err != nil {
			a.logger.Warn("advisor unavailable", zap.String("symbol", symbol), zap.Error(err))
		} else {
			rep.Advice = advice
		}
	}

	if err := store.SaveReport(ctx, a.backend, rep); err != nil {
		a.logger.Warn("report save failed", zap.String("symbol", symbol), zap.Error(err))
	}
	return rep, nil
}

func (a *App) loadCatalog(ctx context.Context, symbol string) (*catalog.Catalog, error) {
	cat, err := store.LoadCatalog(ctx, a.backend, symbol)
	if err == nil {
		return cat, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}
	a.logger.Info("no stored catalog, using built-in patterns", zap.String("symbol", symbol))
	return catalog.Builtin(), nil
}

// Watch checks every configured symbol on the configured interval until
// the context ends. The first cycle runs immediately.
func (a *App) Watch(ctx context.Context) error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return core.Wrapf(core.ErrInvalidParams, "watch already running")
	}
	a.running = true
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.running = false
		a.mu.Unlock()
	}()

	a.logger.Info("watch starting",
		zap.Strings("symbols", a.cfg.Symbols),
		zap.Duration("interval", a.cfg.Watch.Interval))
	a.metrics.SetWatchSymbols(len(a.cfg.Symbols))

	a.runCycle(ctx)

	ticker := time.NewTicker(a.cfg.Watch.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("watch stopping")
			return ctx.Err()
		case <-ticker.C:
			a.runCycle(ctx)
		}
	}
}

// Stop ends a running watch loop.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		a.cancel()
	}
}

// RunOnce performs a single watch cycle.
func (a *App) RunOnce(ctx context.Context) {
	a.runCycle(ctx)
}

func (a *App) runCycle(ctx context.Context) {
	start := time.Now()
	for _, symbol := range a.cfg.Symbols {
		if ctx.Err() != nil {
			return
		}

		rep, err := a.CheckSignals(ctx, symbol)
		if err != nil {
			a.logger.Error("signal check failed", zap.String("symbol", symbol), zap.Error(err))
			continue
		}

		if len(rep.Signals) == 0 {
			a.logger.Debug("no signals", zap.String("symbol", symbol))
			continue
		}
		a.logger.Info("signals found",
			zap.String("symbol", symbol),
			zap.Int("count", len(rep.Signals)),
			zap.String("freshest", rep.Signals[0].Pattern),
			zap.Int("days_ago", rep.Signals[0].DaysAgo))
	}
	a.metrics.RecordWatchCycle(time.Since(start).Seconds())
}
