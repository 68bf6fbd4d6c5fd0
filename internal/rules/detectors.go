// internal/rules/detectors.go
package rules

import (
	"math"

	"github.com/newthinker/prospect/internal/frame"
	"github.com/newthinker/prospect/internal/indicator"
)

// RSIOversold fires when RSI dipped below the oversold threshold within
// the last five sessions and is now turning up.
type RSIOversold struct {
	Oversold float64
	Recovery float64
}

func NewRSIOversold() *RSIOversold {
	return &RSIOversold{Oversold: 30, Recovery: 35}
}

func (r *RSIOversold) Name() string        { return "RSI_Oversold" }
func (r *RSIOversold) Description() string { return "RSI rebounding from the oversold zone" }

func (r *RSIOversold) Check(f *frame.Frame, i int) (Match, bool) {
	if i < 5 {
		return Match{}, false
	}
	cur, ok := f.Value(indicator.ColRSI, i)
	if !ok {
		return Match{}, false
	}
	prev, ok := f.Value(indicator.ColRSI, i-1)
	if !ok {
		return Match{}, false
	}
	low, ok := windowMin(f, indicator.ColRSI, i-5, i)
	if !ok {
		return Match{}, false
	}
	if low >= r.Oversold || prev >= r.Recovery || cur <= prev {
		return Match{}, false
	}
	return Match{
		Rule:        r.Name(),
		Description: r.Description(),
		Date:        f.Date(i),
		Confidence:  math.Min(1, (r.Oversold-low)/10),
		Details: map[string]float64{
			"rsi":        cur,
			"rsi_min_5d": low,
		},
	}, true
}

// BollingerSqueeze fires when the band width sits in the bottom tail of
// its recent range while price pushes toward the upper band.
type BollingerSqueeze struct {
	SqueezePercentile float64
	Lookback          int
}

func NewBollingerSqueeze() *BollingerSqueeze {
	return &BollingerSqueeze{SqueezePercentile: 20, Lookback: 20}
}

func (b *BollingerSqueeze) Name() string { return "BB_Squeeze_Breakout" }
func (b *BollingerSqueeze) Description() string {
	return "Band squeeze resolving with a push toward the upper band"
}

func (b *BollingerSqueeze) Check(f *frame.Frame, i int) (Match, bool) {
	if i < b.Lookback {
		return Match{}, false
	}
	width, ok := f.Value(indicator.ColBBWidth, i)
	if !ok {
		return Match{}, false
	}
	history, ok := windowAll(f, indicator.ColBBWidth, i-b.Lookback, i)
	if !ok {
		return Match{}, false
	}
	threshold := percentileOf(history, b.SqueezePercentile)

	pos, ok := f.Value(indicator.ColBBPosition, i)
	if !ok {
		return Match{}, false
	}
	prevPos, ok := f.Value(indicator.ColBBPosition, i-1)
	if !ok {
		return Match{}, false
	}
	if width >= threshold || pos <= 0.8 || pos <= prevPos {
		return Match{}, false
	}
	return Match{
		Rule:        b.Name(),
		Description: b.Description(),
		Date:        f.Date(i),
		Confidence:  math.Min(1, pos-0.5),
		Details: map[string]float64{
			"bb_width":          width,
			"bb_position":       pos,
			"squeeze_threshold": threshold,
		},
	}, true
}

// GoldenCross fires when the short moving average crosses above the
// medium one.
type GoldenCross struct{}

func NewGoldenCross() *GoldenCross { return &GoldenCross{} }

func (g *GoldenCross) Name() string { return "Golden_Cross" }
func (g *GoldenCross) Description() string {
	return "Short moving average crossing above the medium one"
}

func (g *GoldenCross) Check(f *frame.Frame, i int) (Match, bool) {
	if i < 1 {
		return Match{}, false
	}
	short, ok := f.Value(indicator.ColMAShort, i)
	if !ok {
		return Match{}, false
	}
	long, ok := f.Value(indicator.ColMAMedium, i)
	if !ok {
		return Match{}, false
	}
	prevShort, ok := f.Value(indicator.ColMAShort, i-1)
	if !ok {
		return Match{}, false
	}
	prevLong, ok := f.Value(indicator.ColMAMedium, i-1)
	if !ok {
		return Match{}, false
	}
	if prevShort > prevLong || short <= long {
		return Match{}, false
	}
	strength := (short - long) / long * 100
	return Match{
		Rule:        g.Name(),
		Description: g.Description(),
		Date:        f.Date(i),
		Confidence:  math.Min(1, strength),
		Details: map[string]float64{
			"ma_short":           short,
			"ma_medium":          long,
			"cross_strength_pct": strength,
		},
	}, true
}

// VolumeSpike fires when volume runs well above its average while the
// bar closes higher.
type VolumeSpike struct {
	Multiplier   float64
	MinChangePct float64
}

func NewVolumeSpike() *VolumeSpike {
	return &VolumeSpike{Multiplier: 2.0, MinChangePct: 0.5}
}

func (v *VolumeSpike) Name() string        { return "Volume_Spike_Up" }
func (v *VolumeSpike) Description() string { return "Volume spike with the price closing higher" }

func (v *VolumeSpike) Check(f *frame.Frame, i int) (Match, bool) {
	if i < 1 {
		return Match{}, false
	}
	ratio, ok := f.Value(indicator.ColVolumeRatio, i)
	if !ok {
		return Match{}, false
	}
	ret, ok := f.Value(indicator.ColReturns, i)
	if !ok {
		return Match{}, false
	}
	changePct := ret * 100
	if ratio < v.Multiplier || changePct < v.MinChangePct {
		return Match{}, false
	}
	return Match{
		Rule:        v.Name(),
		Description: v.Description(),
		Date:        f.Date(i),
		Confidence:  math.Min(1, ratio/3),
		Details: map[string]float64{
			"volume_ratio": ratio,
			"change_pct":   changePct,
		},
	}, true
}

// MACDCrossover fires when MACD crosses above its signal line.
type MACDCrossover struct{}

func NewMACDCrossover() *MACDCrossover { return &MACDCrossover{} }

func (m *MACDCrossover) Name() string        { return "MACD_Crossover" }
func (m *MACDCrossover) Description() string { return "MACD crossing above its signal line" }

func (m *MACDCrossover) Check(f *frame.Frame, i int) (Match, bool) {
	if i < 1 {
		return Match{}, false
	}
	macd, ok := f.Value(indicator.ColMACD, i)
	if !ok {
		return Match{}, false
	}
	signal, ok := f.Value(indicator.ColMACDSignal, i)
	if !ok {
		return Match{}, false
	}
	prevMACD, ok := f.Value(indicator.ColMACD, i-1)
	if !ok {
		return Match{}, false
	}
	prevSignal, ok := f.Value(indicator.ColMACDSignal, i-1)
	if !ok {
		return Match{}, false
	}
	hist, ok := f.Value(indicator.ColMACDHist, i)
	if !ok {
		return Match{}, false
	}
	if prevMACD > prevSignal || macd <= signal {
		return Match{}, false
	}
	return Match{
		Rule:        m.Name(),
		Description: m.Description(),
		Date:        f.Date(i),
		Confidence:  math.Min(1, math.Abs(hist)*10),
		Details: map[string]float64{
			"macd":        macd,
			"macd_signal": signal,
			"macd_hist":   hist,
		},
	}, true
}

// MomentumReversal fires when 10-day momentum was clearly negative a
// week ago and is now curling up.
type MomentumReversal struct{}

func NewMomentumReversal() *MomentumReversal { return &MomentumReversal{} }

func (m *MomentumReversal) Name() string        { return "Momentum_Reversal" }
func (m *MomentumReversal) Description() string { return "Downside momentum turning up" }

func (m *MomentumReversal) Check(f *frame.Frame, i int) (Match, bool) {
	if i < 5 {
		return Match{}, false
	}
	cur, ok := f.Value(indicator.ColMomentum10, i)
	if !ok {
		return Match{}, false
	}
	prev, ok := f.Value(indicator.ColMomentum10, i-1)
	if !ok {
		return Match{}, false
	}
	old, ok := f.Value(indicator.ColMomentum10, i-5)
	if !ok {
		return Match{}, false
	}
	if old >= -3 || prev >= 0 || cur <= prev {
		return Match{}, false
	}
	return Match{
		Rule:        m.Name(),
		Description: m.Description(),
		Date:        f.Date(i),
		Confidence:  math.Min(1, math.Abs(old)/10),
		Details: map[string]float64{
			"momentum_10":        cur,
			"momentum_10_5d_ago": old,
		},
	}, true
}
