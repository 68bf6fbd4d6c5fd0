// internal/discovery/stats.go
package discovery

import (
	"math"
	"sort"

	"github.com/newthinker/prospect/internal/frame"
	"github.com/newthinker/prospect/internal/indicator"
)

// minObservations is the sample floor below which an indicator is dropped
// from the stats table.
const minObservations = 10

// FeatureStats summarizes an indicator's distribution at profit-case rows.
type FeatureStats struct {
	Mean  float64
	Std   float64
	Min   float64
	Max   float64
	P10   float64
	P25   float64
	P50   float64
	P75   float64
	P90   float64
	Count int
}

// DefaultFeatureColumns is the indicator set profiled before pattern
// generation.
var DefaultFeatureColumns = []string{
	indicator.ColRSI,
	indicator.ColMACDHist,
	indicator.ColBBPosition,
	indicator.ColMomentum10,
	indicator.ColMomentum20,
	indicator.ColVolumeRatio,
	indicator.ColVolatility,
	indicator.ColReturns,
	indicator.ColRangePosition,
	indicator.ColPriceVsMAShort,
	indicator.ColPriceVsMAMedium,
	indicator.ColPriceVsMALong,
}

// ComputeFeatureStats profiles the given columns at the case rows.
// Case index 0 is skipped, undefined cells are excluded, and columns with
// fewer than minObservations usable samples are left out of the table.
// A nil column list means DefaultFeatureColumns.
func ComputeFeatureStats(f *frame.Frame, cases []ProfitCase, columns []string) map[string]FeatureStats {
	if columns == nil {
		columns = DefaultFeatureColumns
	}
	stats := make(map[string]FeatureStats, len(columns))
	for _, col := range columns {
		var vals []float64
		for _, c := range cases {
			if c.Index < 1 {
				continue
			}
			if v, ok := f.Value(col, c.Index); ok {
				vals = append(vals, v)
			}
		}
		if len(vals) < minObservations {
			continue
		}
		stats[col] = newFeatureStats(vals)
	}
	return stats
}

func newFeatureStats(vals []float64) FeatureStats {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)

	n := float64(len(vals))
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	mean := sum / n

	// population std
	ss := 0.0
	for _, v := range vals {
		d := v - mean
		ss += d * d
	}

	return FeatureStats{
		Mean:  mean,
		Std:   math.Sqrt(ss / n),
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
		P10:   percentile(sorted, 10),
		P25:   percentile(sorted, 25),
		P50:   percentile(sorted, 50),
		P75:   percentile(sorted, 75),
		P90:   percentile(sorted, 90),
		Count: len(vals),
	}
}

// percentile interpolates linearly between the two nearest order
// statistics of an ascending sample.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	w := rank - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
