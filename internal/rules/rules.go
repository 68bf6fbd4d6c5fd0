// internal/rules/rules.go
// Package rules holds contextual setup detectors that complement the
// validated catalog. A match carries a confidence score but never enters
// the two-stage validation flow.
package rules

import (
	"math"
	"sort"
	"time"

	"github.com/newthinker/prospect/internal/frame"
)

// Match describes a detector firing on a specific bar.
type Match struct {
	Rule        string             `json:"rule"`
	Description string             `json:"description"`
	Date        time.Time          `json:"date"`
	DaysAgo     int                `json:"days_ago"`
	Confidence  float64            `json:"confidence"`
	Details     map[string]float64 `json:"details,omitempty"`
}

// Rule checks a single bar for a chart setup.
type Rule interface {
	Name() string
	Description() string
	Check(f *frame.Frame, i int) (Match, bool)
}

// Default returns the standard detector set.
func Default() []Rule {
	return []Rule{
		NewRSIOversold(),
		NewBollingerSqueeze(),
		NewGoldenCross(),
		NewVolumeSpike(),
		NewMACDCrossover(),
		NewMomentumReversal(),
	}
}

// CheckRecent runs every rule over the trailing lookbackDays rows.
// Matches are sorted most recent first, ties broken by confidence.
func CheckRecent(f *frame.Frame, rules []Rule, lookbackDays int) []Match {
	if f == nil || f.Len() == 0 || lookbackDays < 1 || len(rules) == 0 {
		return nil
	}
	end := f.Len() - 1
	start := end - lookbackDays + 1
	if start < 0 {
		start = 0
	}

	var matches []Match
	for i := start; i <= end; i++ {
		for _, r := range rules {
			m, ok := r.Check(f, i)
			if !ok {
				continue
			}
			m.DaysAgo = end - i
			matches = append(matches, m)
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		if matches[a].DaysAgo != matches[b].DaysAgo {
			return matches[a].DaysAgo < matches[b].DaysAgo
		}
		return matches[a].Confidence > matches[b].Confidence
	})
	return matches
}

// windowMin returns the smallest defined value of col in rows [lo, hi).
func windowMin(f *frame.Frame, col string, lo, hi int) (float64, bool) {
	min := math.NaN()
	found := false
	for i := lo; i < hi; i++ {
		v, ok := f.Value(col, i)
		if !ok {
			continue
		}
		if !found || v < min {
			min = v
			found = true
		}
	}
	return min, found
}

// windowAll returns the values of col in rows [lo, hi), or false if any
// row is undefined.
func windowAll(f *frame.Frame, col string, lo, hi int) ([]float64, bool) {
	vals := make([]float64, 0, hi-lo)
	for i := lo; i < hi; i++ {
		v, ok := f.Value(col, i)
		if !ok {
			return nil, false
		}
		vals = append(vals, v)
	}
	return vals, true
}

// percentileOf interpolates linearly between the two nearest order
// statistics of the sample.
func percentileOf(vals []float64, p float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
