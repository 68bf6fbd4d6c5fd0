// internal/discovery/profit.go
package discovery

import (
	"math"
	"time"

	"github.com/newthinker/prospect/internal/core"
	"github.com/newthinker/prospect/internal/frame"
)

// ProfitCase marks a bar whose forward return over the holding period
// cleared the target.
type ProfitCase struct {
	Index       int       `json:"index"`
	Date        time.Time `json:"date"`
	EntryPrice  float64   `json:"entry_price"`
	ExitPrice   float64   `json:"exit_price"`
	ReturnPct   float64   `json:"return_pct"`
	HoldingDays int       `json:"holding_days"`
}

// FindProfitCases scans every bar that still has a full holding window
// ahead of it and keeps those whose forward return reaches minReturn
// percent (inclusive). Cases come back ordered by index. A series shorter
// than the horizon yields no cases rather than an error.
func FindProfitCases(f *frame.Frame, holdingPeriod int, minReturn float64) ([]ProfitCase, error) {
	if holdingPeriod < 1 {
		return nil, core.Wrapf(core.ErrInvalidParams, "holding period %d", holdingPeriod)
	}
	var cases []ProfitCase
	for i := 0; i+holdingPeriod < f.Len(); i++ {
		entry := f.Close(i)
		exit := f.Close(i + holdingPeriod)
		ret := (exit/entry - 1) * 100
		if ret >= minReturn {
			cases = append(cases, ProfitCase{
				Index:       i,
				Date:        f.Date(i),
				EntryPrice:  entry,
				ExitPrice:   exit,
				ReturnPct:   ret,
				HoldingDays: holdingPeriod,
			})
		}
	}
	return cases, nil
}

// ForwardReturns lists the forward return pct of every bar with a full
// holding window ahead, in index order. It is the unconditional trade
// profile a pattern's performance is judged against.
func ForwardReturns(f *frame.Frame, holdingPeriod int) ([]float64, error) {
	if holdingPeriod < 1 {
		return nil, core.Wrapf(core.ErrInvalidParams, "holding period %d", holdingPeriod)
	}
	var out []float64
	for i := 0; i+holdingPeriod < f.Len(); i++ {
		out = append(out, (f.Close(i+holdingPeriod)/f.Close(i)-1)*100)
	}
	return out, nil
}

// Grid is the parameter sweep for the combination analysis.
type Grid struct {
	HoldingPeriods []int
	MinReturns     []float64
}

// DefaultGrid covers the horizons and targets the discovery runs explore.
func DefaultGrid() Grid {
	return Grid{
		HoldingPeriods: []int{20, 40, 60, 90},
		MinReturns:     []float64{5, 10, 15, 20},
	}
}

// CaseSummary aggregates the profit cases of one grid combination.
type CaseSummary struct {
	HoldingPeriod int
	MinReturn     float64
	Count         int
	Frequency     float64
	AvgReturn     float64
	MaxReturn     float64
	StdReturn     float64
}

// Sweep runs FindProfitCases for every grid combination, in grid order.
func Sweep(f *frame.Frame, grid Grid) ([]CaseSummary, error) {
	var out []CaseSummary
	for _, hp := range grid.HoldingPeriods {
		for _, mr := range grid.MinReturns {
			cases, err := FindProfitCases(f, hp, mr)
			if err != nil {
				return nil, err
			}
			out = append(out, summarize(f, hp, mr, cases))
		}
	}
	return out, nil
}

func summarize(f *frame.Frame, holding int, minReturn float64, cases []ProfitCase) CaseSummary {
	s := CaseSummary{HoldingPeriod: holding, MinReturn: minReturn, Count: len(cases)}
	if eligible := f.Len() - holding; eligible > 0 {
		s.Frequency = float64(len(cases)) / float64(eligible)
	}
	if len(cases) == 0 {
		return s
	}

	sum := 0.0
	max := math.Inf(-1)
	for _, c := range cases {
		sum += c.ReturnPct
		if c.ReturnPct > max {
			max = c.ReturnPct
		}
	}
	s.AvgReturn = sum / float64(len(cases))
	s.MaxReturn = max

	if len(cases) > 1 {
		ss := 0.0
		for _, c := range cases {
			d := c.ReturnPct - s.AvgReturn
			ss += d * d
		}
		s.StdReturn = math.Sqrt(ss / float64(len(cases)-1))
	}
	return s
}

// BestCombination picks the combination with the highest average return
// among those reaching minCases. When none qualifies it falls back to the
// combination with the most cases and reports qualified=false.
func BestCombination(summaries []CaseSummary, minCases int) (best CaseSummary, qualified bool) {
	if len(summaries) == 0 {
		return CaseSummary{}, false
	}
	for _, s := range summaries {
		if s.Count >= minCases && (!qualified || s.AvgReturn > best.AvgReturn) {
			best = s
			qualified = true
		}
	}
	if qualified {
		return best, true
	}
	best = summaries[0]
	for _, s := range summaries[1:] {
		if s.Count > best.Count {
			best = s
		}
	}
	return best, false
}
