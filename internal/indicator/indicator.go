// internal/indicator/indicator.go
package indicator

import (
	"math"

	talib "github.com/markcheno/go-talib"

	"github.com/newthinker/prospect/internal/core"
	"github.com/newthinker/prospect/internal/frame"
)

// Column names attached by Compute. Downstream packages refer to columns
// by these names only; the engine itself never assumes a parameterization
// beyond them.
const (
	ColReturns         = "returns"
	ColLogReturns      = "log_returns"
	ColMAShort         = "ma_short"
	ColMAMedium        = "ma_medium"
	ColMALong          = "ma_long"
	ColPriceVsMAShort  = "price_vs_ma_short"
	ColPriceVsMAMedium = "price_vs_ma_medium"
	ColPriceVsMALong   = "price_vs_ma_long"
	ColRSI             = "rsi"
	ColMACD            = "macd"
	ColMACDSignal      = "macd_signal"
	ColMACDHist        = "macd_hist"
	ColBBUpper         = "bb_upper"
	ColBBMiddle        = "bb_middle"
	ColBBLower         = "bb_lower"
	ColBBWidth         = "bb_width"
	ColBBPosition      = "bb_position"
	ColATR             = "atr"
	ColATRPct          = "atr_pct"
	ColVolumeMA        = "volume_ma"
	ColVolumeRatio     = "volume_ratio"
	ColVolatility      = "volatility_20"
	ColMomentum10      = "momentum_10"
	ColMomentum20      = "momentum_20"
	ColHigh20          = "high_20"
	ColLow20           = "low_20"
	ColRangePosition   = "range_position"
)

// Windows that are part of the column names stay fixed.
const (
	volumePeriod     = 20
	volatilityPeriod = 20
	momentumShort    = 10
	momentumLong     = 20
	rangePeriod      = 20
)

// Config holds the tunable indicator periods.
type Config struct {
	RSIPeriod  int     `mapstructure:"rsi_period"`
	MACDFast   int     `mapstructure:"macd_fast"`
	MACDSlow   int     `mapstructure:"macd_slow"`
	MACDSignal int     `mapstructure:"macd_signal"`
	BBPeriod   int     `mapstructure:"bb_period"`
	BBStdDev   float64 `mapstructure:"bb_std_dev"`
	MAShort    int     `mapstructure:"ma_short"`
	MAMedium   int     `mapstructure:"ma_medium"`
	MALong     int     `mapstructure:"ma_long"`
	ATRPeriod  int     `mapstructure:"atr_period"`
}

// DefaultConfig returns the standard daily parameterization.
func DefaultConfig() Config {
	return Config{
		RSIPeriod:  14,
		MACDFast:   12,
		MACDSlow:   26,
		MACDSignal: 9,
		BBPeriod:   20,
		BBStdDev:   2.0,
		MAShort:    20,
		MAMedium:   50,
		MALong:     200,
		ATRPeriod:  14,
	}
}

// Validate checks the configured periods.
func (c Config) Validate() error {
	periods := []int{c.RSIPeriod, c.MACDFast, c.MACDSlow, c.MACDSignal, c.BBPeriod, c.MAShort, c.MAMedium, c.MALong, c.ATRPeriod}
	for _, p := range periods {
		if p < 1 {
			return core.Wrapf(core.ErrConfigInvalid, "indicator period %d", p)
		}
	}
	if c.MACDFast >= c.MACDSlow {
		return core.Wrapf(core.ErrConfigInvalid, "macd fast %d not below slow %d", c.MACDFast, c.MACDSlow)
	}
	if c.BBStdDev <= 0 {
		return core.Wrapf(core.ErrConfigInvalid, "bollinger std dev %.2f", c.BBStdDev)
	}
	return nil
}

// Compute attaches the full indicator column set to the frame. Rows inside
// a window's warm-up stay undefined; talib zero-fills them and would
// otherwise alias a real value, so they are re-masked here. Series shorter
// than a window get a fully undefined column for it, never an error.
func Compute(f *frame.Frame, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	n := f.Len()
	closes := make([]float64, n)
	highs := make([]float64, n)
	lows := make([]float64, n)
	volumes := make([]float64, n)
	for i := 0; i < n; i++ {
		b := f.Bar(i)
		closes[i], highs[i], lows[i], volumes[i] = b.Close, b.High, b.Low, b.Volume
	}

	returns := undefined(n)
	logReturns := undefined(n)
	for i := 1; i < n; i++ {
		returns[i] = closes[i]/closes[i-1] - 1
		logReturns[i] = math.Log(closes[i] / closes[i-1])
	}

	maShort := guarded(closes, cfg.MAShort-1, func() []float64 { return talib.Sma(closes, cfg.MAShort) })
	maMedium := guarded(closes, cfg.MAMedium-1, func() []float64 { return talib.Sma(closes, cfg.MAMedium) })
	maLong := guarded(closes, cfg.MALong-1, func() []float64 { return talib.Sma(closes, cfg.MALong) })

	rsi := guarded(closes, cfg.RSIPeriod, func() []float64 { return talib.Rsi(closes, cfg.RSIPeriod) })

	macdLine, macdSignal, macdHist := undefined(n), undefined(n), undefined(n)
	if lb := cfg.MACDSlow + cfg.MACDSignal - 2; n > lb {
		macdLine, macdSignal, macdHist = talib.Macd(closes, cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal)
		maskWarmup(macdLine, lb)
		maskWarmup(macdSignal, lb)
		maskWarmup(macdHist, lb)
	}

	bbUpper, bbMiddle, bbLower := undefined(n), undefined(n), undefined(n)
	if lb := cfg.BBPeriod - 1; n > lb {
		bbUpper, bbMiddle, bbLower = talib.BBands(closes, cfg.BBPeriod, cfg.BBStdDev, cfg.BBStdDev, talib.SMA)
		maskWarmup(bbUpper, lb)
		maskWarmup(bbMiddle, lb)
		maskWarmup(bbLower, lb)
	}
	bbWidth := undefined(n)
	bbPosition := undefined(n)
	for i := 0; i < n; i++ {
		bbWidth[i] = (bbUpper[i] - bbLower[i]) / bbMiddle[i] * 100
		bbPosition[i] = (closes[i] - bbLower[i]) / (bbUpper[i] - bbLower[i])
	}

	atr := undefined(n)
	if n > cfg.ATRPeriod {
		atr = maskWarmup(talib.Atr(highs, lows, closes, cfg.ATRPeriod), cfg.ATRPeriod)
	}
	atrPct := undefined(n)
	for i := 0; i < n; i++ {
		atrPct[i] = atr[i] / closes[i] * 100
	}

	volumeMA := guarded(volumes, volumePeriod-1, func() []float64 { return talib.Sma(volumes, volumePeriod) })
	volumeRatio := undefined(n)
	for i := 0; i < n; i++ {
		volumeRatio[i] = volumes[i] / volumeMA[i]
	}

	volatility := rollingStd(returns, volatilityPeriod)
	annualize := math.Sqrt(252) * 100
	for i := range volatility {
		volatility[i] *= annualize
	}

	momentum10 := guarded(closes, momentumShort, func() []float64 { return talib.Roc(closes, momentumShort) })
	momentum20 := guarded(closes, momentumLong, func() []float64 { return talib.Roc(closes, momentumLong) })

	high20 := guarded(highs, rangePeriod-1, func() []float64 { return talib.Max(highs, rangePeriod) })
	low20 := guarded(lows, rangePeriod-1, func() []float64 { return talib.Min(lows, rangePeriod) })
	rangePosition := undefined(n)
	for i := 0; i < n; i++ {
		rangePosition[i] = (closes[i] - low20[i]) / (high20[i] - low20[i])
	}

	priceVs := func(ma []float64) []float64 {
		out := undefined(n)
		for i := 0; i < n; i++ {
			out[i] = (closes[i]/ma[i] - 1) * 100
		}
		return out
	}

	columns := []struct {
		name string
		vals []float64
	}{
		{ColReturns, returns},
		{ColLogReturns, logReturns},
		{ColMAShort, maShort},
		{ColMAMedium, maMedium},
		{ColMALong, maLong},
		{ColPriceVsMAShort, priceVs(maShort)},
		{ColPriceVsMAMedium, priceVs(maMedium)},
		{ColPriceVsMALong, priceVs(maLong)},
		{ColRSI, rsi},
		{ColMACD, macdLine},
		{ColMACDSignal, macdSignal},
		{ColMACDHist, macdHist},
		{ColBBUpper, bbUpper},
		{ColBBMiddle, bbMiddle},
		{ColBBLower, bbLower},
		{ColBBWidth, bbWidth},
		{ColBBPosition, bbPosition},
		{ColATR, atr},
		{ColATRPct, atrPct},
		{ColVolumeMA, volumeMA},
		{ColVolumeRatio, volumeRatio},
		{ColVolatility, volatility},
		{ColMomentum10, momentum10},
		{ColMomentum20, momentum20},
		{ColHigh20, high20},
		{ColLow20, low20},
		{ColRangePosition, rangePosition},
	}
	for _, c := range columns {
		if err := f.SetColumn(c.name, c.vals); err != nil {
			return err
		}
	}
	return nil
}

// undefined returns an all-NaN series of length n.
func undefined(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// maskWarmup overwrites the first lookback cells with NaN in place.
func maskWarmup(vals []float64, lookback int) []float64 {
	if lookback > len(vals) {
		lookback = len(vals)
	}
	for i := 0; i < lookback; i++ {
		vals[i] = math.NaN()
	}
	return vals
}

// guarded runs a talib transform only when the input is long enough for
// its lookback; talib panics on shorter inputs.
func guarded(src []float64, lookback int, fn func() []float64) []float64 {
	if len(src) <= lookback {
		return undefined(len(src))
	}
	return maskWarmup(fn(), lookback)
}

// rollingStd is the sample standard deviation over a trailing window,
// undefined until the window is full or while it contains undefined cells.
func rollingStd(vals []float64, window int) []float64 {
	out := undefined(len(vals))
	for i := window - 1; i < len(vals); i++ {
		sum := 0.0
		for j := i - window + 1; j <= i; j++ {
			sum += vals[j]
		}
		mean := sum / float64(window)
		ss := 0.0
		for j := i - window + 1; j <= i; j++ {
			d := vals[j] - mean
			ss += d * d
		}
		out[i] = math.Sqrt(ss / float64(window-1))
	}
	return out
}
