// internal/discovery/patterns.go
package discovery

import (
	"github.com/newthinker/prospect/internal/frame"
	"github.com/newthinker/prospect/internal/indicator"
)

// Pattern categories.
const (
	CategoryMomentum   = "momentum"
	CategoryVolatility = "volatility"
	CategoryTrend      = "trend"
	CategoryVolume     = "volume"
	CategoryComposite  = "composite"
)

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies inside the interval, ends included.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Conditions maps indicator columns to the interval each must fall in.
type Conditions map[string]Range

// MatchAt reports whether every condition holds at row i. A missing or
// undefined indicator value fails the match, never errors.
func (c Conditions) MatchAt(f *frame.Frame, i int) bool {
	for col, r := range c {
		v, ok := f.Value(col, i)
		if !ok || !r.Contains(v) {
			return false
		}
	}
	return true
}

// PatternDefinition is a named conjunction of indicator range conditions.
type PatternDefinition struct {
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Conditions  Conditions `json:"conditions"`
}

// Matches reports whether the pattern holds at row i.
func (p PatternDefinition) Matches(f *frame.Frame, i int) bool {
	return p.Conditions.MatchAt(f, i)
}

// GeneratePatterns builds the candidate taxonomy from the feature stats of
// the discovery profit cases. Emission order is fixed. Patterns referencing
// an indicator absent from the stats table are skipped, including the
// composites, so every emitted pattern can be evaluated on the data that
// produced the stats.
func GeneratePatterns(stats map[string]FeatureStats) []PatternDefinition {
	has := func(cols ...string) bool {
		for _, c := range cols {
			if _, ok := stats[c]; !ok {
				return false
			}
		}
		return true
	}

	var patterns []PatternDefinition
	add := func(name, category, description string, conds Conditions) {
		patterns = append(patterns, PatternDefinition{
			Name:        name,
			Category:    category,
			Description: description,
			Conditions:  conds,
		})
	}

	if has(indicator.ColRSI) {
		add("RSI_Oversold_30", CategoryMomentum, "RSI at or below 30",
			Conditions{indicator.ColRSI: {0, 30}})
		add("RSI_Oversold_35", CategoryMomentum, "RSI at or below 35",
			Conditions{indicator.ColRSI: {0, 35}})
		add("RSI_Oversold_40", CategoryMomentum, "RSI at or below 40",
			Conditions{indicator.ColRSI: {0, 40}})
		add("RSI_Neutral_Low", CategoryMomentum, "RSI between 40 and 50",
			Conditions{indicator.ColRSI: {40, 50}})
		add("RSI_Neutral_High", CategoryMomentum, "RSI between 50 and 60",
			Conditions{indicator.ColRSI: {50, 60}})
	}

	if has(indicator.ColMomentum10) {
		add("Momentum10_VeryNegative", CategoryMomentum, "10-day momentum below -10%",
			Conditions{indicator.ColMomentum10: {-100, -10}})
		add("Momentum10_Negative", CategoryMomentum, "10-day momentum -10% to -5%",
			Conditions{indicator.ColMomentum10: {-10, -5}})
		add("Momentum10_SlightNegative", CategoryMomentum, "10-day momentum -5% to 0%",
			Conditions{indicator.ColMomentum10: {-5, 0}})
	}

	if has(indicator.ColMomentum20) {
		add("Momentum20_VeryNegative", CategoryMomentum, "20-day momentum below -15%",
			Conditions{indicator.ColMomentum20: {-100, -15}})
		add("Momentum20_Negative", CategoryMomentum, "20-day momentum -15% to -10%",
			Conditions{indicator.ColMomentum20: {-15, -10}})
		add("Momentum20_SlightNegative", CategoryMomentum, "20-day momentum -10% to 0%",
			Conditions{indicator.ColMomentum20: {-10, 0}})
	}

	if has(indicator.ColBBPosition) {
		add("BB_BelowLower", CategoryVolatility, "below the lower Bollinger band",
			Conditions{indicator.ColBBPosition: {-10, 0}})
		add("BB_NearLower", CategoryVolatility, "near the lower Bollinger band (0-0.2)",
			Conditions{indicator.ColBBPosition: {0, 0.2}})
		add("BB_LowerHalf", CategoryVolatility, "lower half of the Bollinger band (0.2-0.5)",
			Conditions{indicator.ColBBPosition: {0.2, 0.5}})
		add("BB_Middle", CategoryVolatility, "middle of the Bollinger band (0.4-0.6)",
			Conditions{indicator.ColBBPosition: {0.4, 0.6}})
	}

	if has(indicator.ColPriceVsMAShort) {
		add("Price_Below_MA20_5pct", CategoryTrend, "5%+ below the 20-day MA",
			Conditions{indicator.ColPriceVsMAShort: {-100, -5}})
		add("Price_Below_MA20_2pct", CategoryTrend, "2-5% below the 20-day MA",
			Conditions{indicator.ColPriceVsMAShort: {-5, -2}})
		add("Price_Near_MA20", CategoryTrend, "within 2% of the 20-day MA",
			Conditions{indicator.ColPriceVsMAShort: {-2, 2}})
	}

	if has(indicator.ColPriceVsMAMedium) {
		add("Price_Below_MA50_10pct", CategoryTrend, "10%+ below the 50-day MA",
			Conditions{indicator.ColPriceVsMAMedium: {-100, -10}})
		add("Price_Below_MA50_5pct", CategoryTrend, "5-10% below the 50-day MA",
			Conditions{indicator.ColPriceVsMAMedium: {-10, -5}})
		add("Price_Near_MA50", CategoryTrend, "-5% to +2% around the 50-day MA",
			Conditions{indicator.ColPriceVsMAMedium: {-5, 2}})
	}

	if has(indicator.ColVolumeRatio) {
		add("Volume_Spike", CategoryVolume, "volume at least twice its average",
			Conditions{indicator.ColVolumeRatio: {2, 100}})
		add("Volume_High", CategoryVolume, "volume 1.5-2x its average",
			Conditions{indicator.ColVolumeRatio: {1.5, 2}})
		add("Volume_Normal", CategoryVolume, "volume 0.8-1.2x its average",
			Conditions{indicator.ColVolumeRatio: {0.8, 1.2}})
	}

	if has(indicator.ColVolatility) {
		s := stats[indicator.ColVolatility]
		add("Volatility_High", CategoryVolatility, "annualized volatility in the top quartile of profit cases",
			Conditions{indicator.ColVolatility: {s.P75, s.Max * 2}})
		add("Volatility_Medium", CategoryVolatility, "annualized volatility in the middle quartiles of profit cases",
			Conditions{indicator.ColVolatility: {s.P25, s.P75}})
		add("Volatility_Low", CategoryVolatility, "annualized volatility in the bottom quartile of profit cases",
			Conditions{indicator.ColVolatility: {0, s.P25}})
	}

	if has(indicator.ColRSI, indicator.ColMomentum10) {
		add("Combo_Oversold_Momentum", CategoryComposite, "RSI below 40 with 10-day momentum below -5%",
			Conditions{
				indicator.ColRSI:        {0, 40},
				indicator.ColMomentum10: {-100, -5},
			})
	}
	if has(indicator.ColBBPosition, indicator.ColRSI) {
		add("Combo_BB_RSI_Oversold", CategoryComposite, "near the lower band with RSI below 40",
			Conditions{
				indicator.ColBBPosition: {-10, 0.3},
				indicator.ColRSI:        {0, 40},
			})
	}
	if has(indicator.ColPriceVsMAShort, indicator.ColVolumeRatio) {
		add("Combo_Below_MA_Volume", CategoryComposite, "3%+ below the 20-day MA on 1.3x+ volume",
			Conditions{
				indicator.ColPriceVsMAShort: {-100, -3},
				indicator.ColVolumeRatio:    {1.3, 100},
			})
	}
	if has(indicator.ColMomentum20, indicator.ColBBPosition) {
		add("Combo_Strong_Dip", CategoryComposite, "20-day momentum below -10% near the lower band",
			Conditions{
				indicator.ColMomentum20: {-100, -10},
				indicator.ColBBPosition: {-10, 0.3},
			})
	}
	if has(indicator.ColMomentum10, indicator.ColRSI) {
		add("Combo_Mild_Pullback", CategoryComposite, "10-day momentum -3% to 0% with RSI 40-55",
			Conditions{
				indicator.ColMomentum10: {-3, 0},
				indicator.ColRSI:        {40, 55},
			})
	}
	if has(indicator.ColMomentum20, indicator.ColVolatility) {
		s := stats[indicator.ColVolatility]
		add("Combo_Deep_Dip_HighVol", CategoryComposite, "20-day momentum below -15% in elevated volatility",
			Conditions{
				indicator.ColMomentum20: {-100, -15},
				indicator.ColVolatility: {s.P50, s.Max * 2},
			})
	}

	return patterns
}
