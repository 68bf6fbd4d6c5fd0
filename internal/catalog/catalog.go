// internal/catalog/catalog.go
// Package catalog holds the validated pattern records a discovery run
// produces and the signal scan that consumes them.
package catalog

import (
	"sort"
	"time"

	"github.com/newthinker/prospect/internal/discovery"
	"github.com/newthinker/prospect/internal/frame"
)

// ValidatedPattern is one catalog record: the pattern rule together with
// the performance numbers of the run that validated it.
type ValidatedPattern struct {
	Name        string               `json:"name"`
	Category    string               `json:"category"`
	Description string               `json:"description"`
	Conditions  discovery.Conditions `json:"conditions"`

	TrainOccurrences int     `json:"train_occurrences"`
	TrainWins        int     `json:"train_wins,omitempty"`
	TrainWinRate     float64 `json:"train_win_rate"`
	TrainAvgReturn   float64 `json:"train_avg_return"`
	TrainBaseline    float64 `json:"train_baseline,omitempty"`
	TrainLift        float64 `json:"train_lift,omitempty"`
	TestOccurrences  int     `json:"test_occurrences"`
	TestWins         int     `json:"test_wins,omitempty"`
	TestWinRate      float64 `json:"test_win_rate"`
	TestAvgReturn    float64 `json:"test_avg_return"`
	TestBaseline     float64 `json:"test_baseline,omitempty"`
	TestLift         float64 `json:"test_lift"`
}

// Matches reports whether the pattern's rule holds at row i.
func (p ValidatedPattern) Matches(f *frame.Frame, i int) bool {
	return p.Conditions.MatchAt(f, i)
}

// Catalog is the serializable output of a discovery run.
type Catalog struct {
	RunID         string             `json:"run_id,omitempty"`
	Symbol        string             `json:"symbol"`
	CreatedAt     time.Time          `json:"created_at"`
	HoldingPeriod int                `json:"holding_period"`
	MinReturn     float64            `json:"min_return"`
	Patterns      []ValidatedPattern `json:"patterns"`
}

// Build flattens a run's validated patterns and their performance records
// into a catalog, ordered by test lift descending with names breaking ties.
func Build(symbol string, cfg discovery.PipelineConfig, res *discovery.Result) *Catalog {
	c := &Catalog{
		RunID:         res.RunID,
		Symbol:        symbol,
		CreatedAt:     time.Now().UTC(),
		HoldingPeriod: cfg.HoldingPeriod,
		MinReturn:     cfg.MinReturn,
		Patterns:      make([]ValidatedPattern, 0, len(res.Validated)),
	}
	for _, def := range res.Validated {
		perf, ok := res.Performance(def.Name)
		if !ok {
			continue
		}
		c.Patterns = append(c.Patterns, ValidatedPattern{
			Name:             def.Name,
			Category:         def.Category,
			Description:      def.Description,
			Conditions:       def.Conditions,
			TrainOccurrences: perf.TrainOccurrences,
			TrainWins:        perf.TrainWins,
			TrainWinRate:     perf.TrainWinRate,
			TrainAvgReturn:   perf.TrainAvgReturn,
			TrainBaseline:    perf.TrainBaseline,
			TrainLift:        perf.TrainLift,
			TestOccurrences:  perf.TestOccurrences,
			TestWins:         perf.TestWins,
			TestWinRate:      perf.TestWinRate,
			TestAvgReturn:    perf.TestAvgReturn,
			TestBaseline:     perf.TestBaseline,
			TestLift:         perf.TestLift,
		})
	}
	sort.SliceStable(c.Patterns, func(i, j int) bool {
		if c.Patterns[i].TestLift != c.Patterns[j].TestLift {
			return c.Patterns[i].TestLift > c.Patterns[j].TestLift
		}
		return c.Patterns[i].Name < c.Patterns[j].Name
	})
	return c
}

// Pattern returns the record with the given name.
func (c *Catalog) Pattern(name string) (ValidatedPattern, bool) {
	for _, p := range c.Patterns {
		if p.Name == name {
			return p, true
		}
	}
	return ValidatedPattern{}, false
}
