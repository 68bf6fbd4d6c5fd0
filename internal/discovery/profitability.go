// internal/discovery/profitability.go
package discovery

import (
	"github.com/newthinker/prospect/internal/core"
	"github.com/newthinker/prospect/internal/frame"
)

// ProfitabilityConfig holds the second-stage pass thresholds.
type ProfitabilityConfig struct {
	TrainRatio          float64 `mapstructure:"train_ratio"`
	MinTrainOccurrences int     `mapstructure:"min_train_occurrences"`
	MinTestOccurrences  int     `mapstructure:"min_test_occurrences"`
	MinEdge             float64 `mapstructure:"min_edge"`
	MinLift             float64 `mapstructure:"min_lift"`
}

// DefaultProfitabilityConfig returns the standard second-stage thresholds.
func DefaultProfitabilityConfig() ProfitabilityConfig {
	return ProfitabilityConfig{
		TrainRatio:          0.7,
		MinTrainOccurrences: 20,
		MinTestOccurrences:  10,
		MinEdge:             0.05,
		MinLift:             1.2,
	}
}

// PatternPerformance records both segment outcomes for one pattern.
// Win rates, baselines and edges are fractions; returns are percent.
type PatternPerformance struct {
	Name             string  `json:"name"`
	TrainOccurrences int     `json:"train_occurrences"`
	TrainWins        int     `json:"train_wins"`
	TrainWinRate     float64 `json:"train_win_rate"`
	TrainAvgReturn   float64 `json:"train_avg_return"`
	TestOccurrences  int     `json:"test_occurrences"`
	TestWins         int     `json:"test_wins"`
	TestWinRate      float64 `json:"test_win_rate"`
	TestAvgReturn    float64 `json:"test_avg_return"`
	TrainBaseline    float64 `json:"train_baseline"`
	TestBaseline     float64 `json:"test_baseline"`
	TrainLift        float64 `json:"train_lift"`
	TestLift         float64 `json:"test_lift"`
	Validated        bool    `json:"validated"`
}

// ValidatePatterns scores every pattern on a calendar train/test split and
// keeps those that beat the segment baselines. The split puts the first
// trainRatio share of bars in train and the rest in test; each segment is
// scored as a closed series, so entries in its final holdingPeriod rows
// have no forward return and are skipped. Validated patterns come back in
// input order.
func ValidatePatterns(f *frame.Frame, patterns []PatternDefinition, holdingPeriod int, minReturn float64, cfg ProfitabilityConfig) ([]PatternDefinition, []PatternPerformance, error) {
	if holdingPeriod < 1 {
		return nil, nil, core.Wrapf(core.ErrInvalidParams, "holding period %d", holdingPeriod)
	}
	if cfg.TrainRatio <= 0 || cfg.TrainRatio >= 1 {
		return nil, nil, core.Wrapf(core.ErrInvalidParams, "train ratio %.2f", cfg.TrainRatio)
	}

	split := int(float64(f.Len()) * cfg.TrainRatio)
	trainBaseline := baseline(f, 0, split, holdingPeriod, minReturn)
	testBaseline := baseline(f, split, f.Len(), holdingPeriod, minReturn)

	var validated []PatternDefinition
	perfs := make([]PatternPerformance, 0, len(patterns))
	for _, p := range patterns {
		perf := PatternPerformance{
			Name:          p.Name,
			TrainBaseline: trainBaseline,
			TestBaseline:  testBaseline,
		}
		perf.TrainOccurrences, perf.TrainWins, perf.TrainWinRate, perf.TrainAvgReturn =
			scoreSegment(f, p, 0, split, holdingPeriod, minReturn)
		perf.TestOccurrences, perf.TestWins, perf.TestWinRate, perf.TestAvgReturn =
			scoreSegment(f, p, split, f.Len(), holdingPeriod, minReturn)

		if trainBaseline > 0 {
			perf.TrainLift = perf.TrainWinRate / trainBaseline
		}
		if testBaseline > 0 {
			perf.TestLift = perf.TestWinRate / testBaseline
		}

		perf.Validated = perf.TrainOccurrences >= cfg.MinTrainOccurrences &&
			perf.TestOccurrences >= cfg.MinTestOccurrences &&
			perf.TrainWinRate > trainBaseline+cfg.MinEdge &&
			perf.TestWinRate > testBaseline+cfg.MinEdge &&
			perf.TrainLift >= cfg.MinLift &&
			perf.TestLift >= cfg.MinLift

		perfs = append(perfs, perf)
		if perf.Validated {
			validated = append(validated, p)
		}
	}
	return validated, perfs, nil
}

// baseline is the share of horizon-valid days in [from, to) whose forward
// return reaches minReturn. Segments shorter than the horizon have no
// eligible days and a zero baseline.
func baseline(f *frame.Frame, from, to, holdingPeriod int, minReturn float64) float64 {
	profit, total := 0, 0
	for i := from; i+holdingPeriod < to; i++ {
		total++
		if forwardReturn(f, i, holdingPeriod) >= minReturn {
			profit++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(profit) / float64(total)
}

func scoreSegment(f *frame.Frame, p PatternDefinition, from, to, holdingPeriod int, minReturn float64) (occurrences, wins int, winRate, avgReturn float64) {
	sum := 0.0
	for i := from; i+holdingPeriod < to; i++ {
		if !p.Matches(f, i) {
			continue
		}
		occurrences++
		ret := forwardReturn(f, i, holdingPeriod)
		sum += ret
		if ret >= minReturn {
			wins++
		}
	}
	if occurrences > 0 {
		winRate = float64(wins) / float64(occurrences)
		avgReturn = sum / float64(occurrences)
	}
	return occurrences, wins, winRate, avgReturn
}

func forwardReturn(f *frame.Frame, i, holdingPeriod int) float64 {
	return (f.Close(i+holdingPeriod)/f.Close(i) - 1) * 100
}
