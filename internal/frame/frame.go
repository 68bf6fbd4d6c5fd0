// internal/frame/frame.go
package frame

import (
	"math"
	"sort"
	"time"

	"github.com/newthinker/prospect/internal/core"
)

// Frame is a daily bar series with named indicator columns aligned to it.
// Cells that carry no value (warm-up rows, failed computations) hold NaN;
// Value reports them as undefined instead of handing out a sentinel number.
type Frame struct {
	bars    []core.Bar
	columns map[string][]float64
}

// New validates the series and wraps it. The bars must be non-empty,
// strictly increasing by date (which also rules out duplicates) and carry
// positive closes. The input slice is copied.
func New(bars []core.Bar) (*Frame, error) {
	if len(bars) == 0 {
		return nil, core.ErrNoData
	}
	for i, b := range bars {
		if b.Close <= 0 {
			return nil, core.Wrapf(core.ErrMalformedSeries, "non-positive close %.4f at row %d", b.Close, i)
		}
		if i > 0 && !bars[i-1].Date.Before(b.Date) {
			return nil, core.Wrapf(core.ErrMalformedSeries, "dates not strictly increasing at row %d (%s then %s)",
				i, bars[i-1].Date.Format("2006-01-02"), b.Date.Format("2006-01-02"))
		}
	}
	cp := make([]core.Bar, len(bars))
	copy(cp, bars)
	return &Frame{bars: cp, columns: make(map[string][]float64)}, nil
}

// IsDefined reports whether v is a usable number. NaN and ±Inf cells count
// as undefined everywhere in the engine.
func IsDefined(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Len returns the number of bars.
func (f *Frame) Len() int {
	return len(f.bars)
}

// Bar returns the bar at index i.
func (f *Frame) Bar(i int) core.Bar {
	return f.bars[i]
}

// Date returns the date of the bar at index i.
func (f *Frame) Date(i int) time.Time {
	return f.bars[i].Date
}

// Close returns the closing price at index i.
func (f *Frame) Close(i int) float64 {
	return f.bars[i].Close
}

// Bars returns a copy of the underlying series.
func (f *Frame) Bars() []core.Bar {
	cp := make([]core.Bar, len(f.bars))
	copy(cp, f.bars)
	return cp
}

// SetColumn attaches an indicator column. The slice must be exactly as
// long as the bar series; it is stored as-is.
func (f *Frame) SetColumn(name string, values []float64) error {
	if len(values) != len(f.bars) {
		return core.Wrapf(core.ErrMalformedSeries, "column %q has %d values for %d bars", name, len(values), len(f.bars))
	}
	f.columns[name] = values
	return nil
}

// Column returns the raw column slice. Callers must not mutate it.
func (f *Frame) Column(name string) ([]float64, bool) {
	vals, ok := f.columns[name]
	return vals, ok
}

// HasColumn reports whether a column is attached.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.columns[name]
	return ok
}

// Columns lists attached column names in sorted order.
func (f *Frame) Columns() []string {
	names := make([]string, 0, len(f.columns))
	for name := range f.columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Value returns the column value at index i. ok is false for a missing
// column, an out-of-range index, or an undefined cell.
func (f *Frame) Value(name string, i int) (float64, bool) {
	vals, ok := f.columns[name]
	if !ok || i < 0 || i >= len(vals) {
		return 0, false
	}
	v := vals[i]
	if !IsDefined(v) {
		return 0, false
	}
	return v, true
}
