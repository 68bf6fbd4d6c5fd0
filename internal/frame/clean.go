// internal/frame/clean.go
package frame

import (
	"fmt"
	"time"

	"github.com/newthinker/prospect/internal/core"
)

const (
	maxGapDays     = 5
	extremeMovePct = 0.5
)

// Report summarizes what Clean found in a fetched series.
type Report struct {
	Input   int
	Dropped int
	Issues  []string
}

// OK reports whether the series passed without drops or findings.
func (r Report) OK() bool {
	return r.Dropped == 0 && len(r.Issues) == 0
}

// Clean removes rows that fail OHLC sanity (non-positive close, high below
// low, close outside the day's range) and records soft findings: calendar
// gaps longer than maxGapDays and single-day moves beyond ±50%. Soft
// findings never drop rows.
func Clean(bars []core.Bar) ([]core.Bar, Report) {
	rep := Report{Input: len(bars)}
	out := make([]core.Bar, 0, len(bars))

	var prev core.Bar
	havePrev := false
	for _, b := range bars {
		if !b.IsValid() {
			rep.Dropped++
			continue
		}
		if havePrev {
			if gap := b.Date.Sub(prev.Date); gap > maxGapDays*24*time.Hour {
				rep.Issues = append(rep.Issues, fmt.Sprintf("gap of %d days before %s",
					int(gap.Hours()/24), b.Date.Format("2006-01-02")))
			}
			if move := b.Close/prev.Close - 1; move > extremeMovePct || move < -extremeMovePct {
				rep.Issues = append(rep.Issues, fmt.Sprintf("move of %+.1f%% on %s",
					move*100, b.Date.Format("2006-01-02")))
			}
		}
		prev = b
		havePrev = true
		out = append(out, b)
	}
	return out, rep
}
