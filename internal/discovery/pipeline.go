// internal/discovery/pipeline.go
package discovery

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/newthinker/prospect/internal/core"
	"github.com/newthinker/prospect/internal/frame"
)

// PipelineConfig bundles the knobs of a full discovery run.
type PipelineConfig struct {
	HoldingPeriod  int     `mapstructure:"holding_period"`
	MinReturn      float64 `mapstructure:"min_return"`
	DiscoveryRatio float64 `mapstructure:"discovery_ratio"`

	// FeatureColumns overrides the profiled indicator set; nil means
	// DefaultFeatureColumns.
	FeatureColumns []string `mapstructure:"feature_columns"`

	Frequency     FrequencyConfig     `mapstructure:"frequency"`
	Profitability ProfitabilityConfig `mapstructure:"profitability"`
}

// DefaultPipelineConfig returns the standard run parameters.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		HoldingPeriod:  60,
		MinReturn:      10.0,
		DiscoveryRatio: 0.67,
		Frequency:      DefaultFrequencyConfig(),
		Profitability:  DefaultProfitabilityConfig(),
	}
}

// Validate checks the run parameters.
func (c PipelineConfig) Validate() error {
	if c.HoldingPeriod < 1 {
		return core.Wrapf(core.ErrInvalidParams, "holding period %d", c.HoldingPeriod)
	}
	if c.DiscoveryRatio <= 0 || c.DiscoveryRatio >= 1 {
		return core.Wrapf(core.ErrInvalidParams, "discovery ratio %.2f", c.DiscoveryRatio)
	}
	if c.Profitability.TrainRatio <= 0 || c.Profitability.TrainRatio >= 1 {
		return core.Wrapf(core.ErrInvalidParams, "train ratio %.2f", c.Profitability.TrainRatio)
	}
	return nil
}

// Result carries everything a discovery run produced.
type Result struct {
	RunID            string
	TotalCases       int
	DiscoveryCases   int
	DiscoveryEndDate time.Time
	Generated        []PatternDefinition
	FrequencyStats   []PatternStats
	FrequencyPassed  []PatternDefinition
	Performances     []PatternPerformance
	Validated        []PatternDefinition
	Duration         time.Duration
}

// Performance returns the performance record for a validated pattern name.
func (r *Result) Performance(name string) (PatternPerformance, bool) {
	for _, p := range r.Performances {
		if p.Name == name {
			return p, true
		}
	}
	return PatternPerformance{}, false
}

// Pipeline chains the discovery stages: profit cases, feature profiling,
// pattern generation, frequency validation, profitability validation.
type Pipeline struct {
	cfg    PipelineConfig
	logger *zap.Logger
}

// NewPipeline creates a pipeline. A nil logger disables logging.
func NewPipeline(cfg PipelineConfig, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{cfg: cfg, logger: logger}
}

// Run executes a full discovery pass over the frame. Too little data to
// discover anything ends the run early with an empty result, not an error;
// identical input always reproduces the identical pattern list.
func (p *Pipeline) Run(ctx context.Context, f *frame.Frame) (*Result, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	res := &Result{RunID: uuid.NewString()}

	allCases, err := FindProfitCases(f, p.cfg.HoldingPeriod, p.cfg.MinReturn)
	if err != nil {
		return nil, err
	}
	res.TotalCases = len(allCases)

	splitIdx := int(float64(len(allCases)) * p.cfg.DiscoveryRatio)
	discoveryCases := allCases[:splitIdx]
	res.DiscoveryCases = len(discoveryCases)
	if len(discoveryCases) == 0 {
		p.logger.Warn("no discovery profit cases, returning empty result",
			zap.Int("total_cases", res.TotalCases),
			zap.Int("holding_period", p.cfg.HoldingPeriod),
			zap.Float64("min_return", p.cfg.MinReturn))
		res.Duration = time.Since(start)
		return res, nil
	}

	last := discoveryCases[len(discoveryCases)-1]
	res.DiscoveryEndDate = last.Date
	p.logger.Info("profit cases found",
		zap.Int("total", res.TotalCases),
		zap.Int("discovery", res.DiscoveryCases),
		zap.Time("discovery_end", res.DiscoveryEndDate))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats := ComputeFeatureStats(f, discoveryCases, p.cfg.FeatureColumns)
	res.Generated = GeneratePatterns(stats)
	p.logger.Info("patterns generated",
		zap.Int("profiled_indicators", len(stats)),
		zap.Int("patterns", len(res.Generated)))

	res.FrequencyPassed, res.FrequencyStats = ValidateFrequency(f, res.Generated, last.Index, p.cfg.Frequency)
	p.logger.Info("frequency validation done",
		zap.Int("passed", len(res.FrequencyPassed)),
		zap.Int("checked", len(res.Generated)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res.Validated, res.Performances, err = ValidatePatterns(
		f, res.FrequencyPassed, p.cfg.HoldingPeriod, p.cfg.MinReturn, p.cfg.Profitability)
	if err != nil {
		return nil, err
	}
	res.Duration = time.Since(start)
	p.logger.Info("profitability validation done",
		zap.Int("validated", len(res.Validated)),
		zap.Int("checked", len(res.FrequencyPassed)),
		zap.Duration("elapsed", res.Duration))

	return res, nil
}
