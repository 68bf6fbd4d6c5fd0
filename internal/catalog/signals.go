// internal/catalog/signals.go
package catalog

import (
	"sort"
	"time"

	"github.com/newthinker/prospect/internal/frame"
)

// Signal is one pattern firing on one recent bar.
type Signal struct {
	Pattern       string    `json:"pattern"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	Date          time.Time `json:"date"`
	DaysAgo       int       `json:"days_ago"`
	Price         float64   `json:"price"`
	TestWinRate   float64   `json:"test_win_rate"`
	TestAvgReturn float64   `json:"test_avg_return"`
	Lift          float64   `json:"lift"`
}

// CheckSignals scans the most recent lookbackDays bars, last bar included,
// and emits one signal per pattern match. A bar can emit several signals
// when patterns overlap. Results come most recent first; signals on the
// same day rank by test win rate, then catalog order.
func (c *Catalog) CheckSignals(f *frame.Frame, lookbackDays int) []Signal {
	if f == nil || f.Len() == 0 || lookbackDays < 1 {
		return nil
	}
	end := f.Len() - 1
	start := end - lookbackDays + 1
	if start < 0 {
		start = 0
	}

	var signals []Signal
	for i := start; i <= end; i++ {
		for _, p := range c.Patterns {
			if !p.Matches(f, i) {
				continue
			}
			signals = append(signals, Signal{
				Pattern:       p.Name,
				Category:      p.Category,
				Description:   p.Description,
				Date:          f.Date(i),
				DaysAgo:       end - i,
				Price:         f.Close(i),
				TestWinRate:   p.TestWinRate,
				TestAvgReturn: p.TestAvgReturn,
				Lift:          p.TestLift,
			})
		}
	}
	sort.SliceStable(signals, func(a, b int) bool {
		if signals[a].DaysAgo != signals[b].DaysAgo {
			return signals[a].DaysAgo < signals[b].DaysAgo
		}
		return signals[a].TestWinRate > signals[b].TestWinRate
	})
	return signals
}
