// internal/report/report.go
// Package report assembles one signal check run into a persistable record
// and renders it for the terminal.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/newthinker/prospect/internal/advisor"
	"github.com/newthinker/prospect/internal/catalog"
	"github.com/newthinker/prospect/internal/core"
	"github.com/newthinker/prospect/internal/frame"
	"github.com/newthinker/prospect/internal/indicator"
	"github.com/newthinker/prospect/internal/rules"
)

// Report is the outcome of one signal check on one symbol.
type Report struct {
	ID           string             `json:"id"`
	Symbol       string             `json:"symbol"`
	AsOf         time.Time          `json:"as_of"`
	GeneratedAt  time.Time          `json:"generated_at"`
	Bars         int                `json:"bars"`
	LookbackDays int                `json:"lookback_days"`
	Price        float64            `json:"price"`
	ChangePct    float64            `json:"change_pct"`
	Indicators   map[string]float64 `json:"indicators,omitempty"`
	Signals      []catalog.Signal   `json:"signals"`
	Setups       []rules.Match      `json:"setups,omitempty"`
	Advice       *advisor.Advice    `json:"advice,omitempty"`
}

// snapshotColumns are the indicator values worth carrying on the record.
var snapshotColumns = []string{
	indicator.ColRSI,
	indicator.ColMACDHist,
	indicator.ColBBPosition,
	indicator.ColBBWidth,
	indicator.ColVolumeRatio,
	indicator.ColMomentum10,
	indicator.ColVolatility,
	indicator.ColPriceVsMALong,
}

// Build assembles a report from the computed frame and the scan results.
// The frame's last bar is the as-of bar.
func Build(symbol string, f *frame.Frame, lookbackDays int, signals []catalog.Signal, setups []rules.Match) (*Report, error) {
	if f == nil || f.Len() == 0 {
		return nil, core.Wrapf(core.ErrNoData, "no bars for %s", symbol)
	}
	last := f.Len() - 1

	return &Report{
		ID:           uuid.New().String(),
		Symbol:       symbol,
		AsOf:         f.Date(last),
		GeneratedAt:  time.Now().UTC(),
		Bars:         f.Len(),
		LookbackDays: lookbackDays,
		Price:        f.Close(last),
		ChangePct:    changePct(f, last),
		Indicators:   snapshot(f, last),
		Signals:      signals,
		Setups:       setups,
	}, nil
}

// changePct is the day-over-day close change in percent. It prefers the
// returns column and falls back to raw closes when indicators were not
// computed.
func changePct(f *frame.Frame, i int) float64 {
	if v, ok := f.Value(indicator.ColReturns, i); ok {
		return v * 100
	}
	if i == 0 {
		return 0
	}
	prev := f.Close(i - 1)
	if prev == 0 {
		return 0
	}
	return (f.Close(i)/prev - 1) * 100
}

func snapshot(f *frame.Frame, i int) map[string]float64 {
	snap := make(map[string]float64, len(snapshotColumns))
	for _, col := range snapshotColumns {
		if v, ok := f.Value(col, i); ok {
			snap[col] = v
		}
	}
	if len(snap) == 0 {
		return nil
	}
	return snap
}
