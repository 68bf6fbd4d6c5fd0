// internal/catalog/builtin.go
package catalog

import (
	"github.com/newthinker/prospect/internal/discovery"
	"github.com/newthinker/prospect/internal/indicator"
)

// Builtin returns the frozen catalog of 14 patterns from the reference QQQ
// run (60-day horizon, 10% target). The snapshot recorded only the test
// side lift, so wins, baselines and the train lift are absent. Each call
// returns a fresh copy.
func Builtin() *Catalog {
	return &Catalog{
		Symbol:        "QQQ",
		HoldingPeriod: 60,
		MinReturn:     10.0,
		Patterns: []ValidatedPattern{
			{
				Name:        "Combo_Strong_Dip",
				Category:    discovery.CategoryComposite,
				Description: "20-day momentum below -10% near the lower band",
				Conditions: discovery.Conditions{
					indicator.ColMomentum20: {Min: -100, Max: -10},
					indicator.ColBBPosition: {Min: -10, Max: 0.3},
				},
				TrainOccurrences: 46, TrainWinRate: 0.370, TrainAvgReturn: 9.5,
				TestOccurrences: 11, TestWinRate: 1.000, TestAvgReturn: 17.6,
				TestLift: 2.84,
			},
			{
				Name:        "Momentum20_Negative",
				Category:    discovery.CategoryMomentum,
				Description: "20-day momentum -15% to -10%",
				Conditions: discovery.Conditions{
					indicator.ColMomentum20: {Min: -15, Max: -10},
				},
				TrainOccurrences: 41, TrainWinRate: 0.268, TrainAvgReturn: 5.7,
				TestOccurrences: 13, TestWinRate: 0.923, TestAvgReturn: 16.6,
				TestLift: 2.62,
			},
			{
				Name:        "RSI_Oversold_35",
				Category:    discovery.CategoryMomentum,
				Description: "RSI at or below 35",
				Conditions: discovery.Conditions{
					indicator.ColRSI: {Min: 0, Max: 35},
				},
				TrainOccurrences: 68, TrainWinRate: 0.368, TrainAvgReturn: 7.3,
				TestOccurrences: 23, TestWinRate: 0.739, TestAvgReturn: 15.2,
				TestLift: 2.10,
			},
			{
				Name:        "BB_BelowLower",
				Category:    discovery.CategoryVolatility,
				Description: "below the lower Bollinger band",
				Conditions: discovery.Conditions{
					indicator.ColBBPosition: {Min: -10, Max: 0},
				},
				TrainOccurrences: 71, TrainWinRate: 0.352, TrainAvgReturn: 7.7,
				TestOccurrences: 23, TestWinRate: 0.739, TestAvgReturn: 14.7,
				TestLift: 2.10,
			},
			{
				Name:        "Price_Below_MA20_5pct",
				Category:    discovery.CategoryTrend,
				Description: "5%+ below the 20-day MA",
				Conditions: discovery.Conditions{
					indicator.ColPriceVsMAShort: {Min: -100, Max: -5},
				},
				TrainOccurrences: 93, TrainWinRate: 0.430, TrainAvgReturn: 8.9,
				TestOccurrences: 23, TestWinRate: 0.739, TestAvgReturn: 15.3,
				TestLift: 2.10,
			},
			{
				Name:        "RSI_Oversold_40",
				Category:    discovery.CategoryMomentum,
				Description: "RSI at or below 40",
				Conditions: discovery.Conditions{
					indicator.ColRSI: {Min: 0, Max: 40},
				},
				TrainOccurrences: 177, TrainWinRate: 0.305, TrainAvgReturn: 6.3,
				TestOccurrences: 60, TestWinRate: 0.733, TestAvgReturn: 13.8,
				TestLift: 2.08,
			},
			{
				Name:        "Combo_BB_RSI_Oversold",
				Category:    discovery.CategoryComposite,
				Description: "near the lower band with RSI below 40",
				Conditions: discovery.Conditions{
					indicator.ColBBPosition: {Min: -10, Max: 0.3},
					indicator.ColRSI:        {Min: 0, Max: 40},
				},
				TrainOccurrences: 171, TrainWinRate: 0.304, TrainAvgReturn: 6.3,
				TestOccurrences: 59, TestWinRate: 0.729, TestAvgReturn: 13.9,
				TestLift: 2.07,
			},
			{
				Name:        "Momentum10_Negative",
				Category:    discovery.CategoryMomentum,
				Description: "10-day momentum -10% to -5%",
				Conditions: discovery.Conditions{
					indicator.ColMomentum10: {Min: -10, Max: -5},
				},
				TrainOccurrences: 134, TrainWinRate: 0.313, TrainAvgReturn: 5.0,
				TestOccurrences: 41, TestWinRate: 0.683, TestAvgReturn: 13.1,
				TestLift: 1.94,
			},
			{
				Name:        "Combo_Oversold_Momentum",
				Category:    discovery.CategoryComposite,
				Description: "RSI below 40 with 10-day momentum below -5%",
				Conditions: discovery.Conditions{
					indicator.ColRSI:        {Min: 0, Max: 40},
					indicator.ColMomentum10: {Min: -100, Max: -5},
				},
				TrainOccurrences: 115, TrainWinRate: 0.374, TrainAvgReturn: 8.0,
				TestOccurrences: 35, TestWinRate: 0.657, TestAvgReturn: 13.8,
				TestLift: 1.86,
			},
			{
				Name:        "Price_Below_MA20_2pct",
				Category:    discovery.CategoryTrend,
				Description: "2-5% below the 20-day MA",
				Conditions: discovery.Conditions{
					indicator.ColPriceVsMAShort: {Min: -5, Max: -2},
				},
				TrainOccurrences: 194, TrainWinRate: 0.268, TrainAvgReturn: 4.0,
				TestOccurrences: 87, TestWinRate: 0.644, TestAvgReturn: 11.6,
				TestLift: 1.83,
			},
			{
				Name:        "Combo_Below_MA_Volume",
				Category:    discovery.CategoryComposite,
				Description: "3%+ below the 20-day MA on 1.3x+ volume",
				Conditions: discovery.Conditions{
					indicator.ColPriceVsMAShort: {Min: -100, Max: -3},
					indicator.ColVolumeRatio:    {Min: 1.3, Max: 100},
				},
				TrainOccurrences: 96, TrainWinRate: 0.365, TrainAvgReturn: 6.0,
				TestOccurrences: 25, TestWinRate: 0.600, TestAvgReturn: 13.6,
				TestLift: 1.70,
			},
			{
				Name:        "BB_NearLower",
				Category:    discovery.CategoryVolatility,
				Description: "near the lower Bollinger band (0-0.2)",
				Conditions: discovery.Conditions{
					indicator.ColBBPosition: {Min: 0, Max: 0.2},
				},
				TrainOccurrences: 160, TrainWinRate: 0.300, TrainAvgReturn: 5.5,
				TestOccurrences: 60, TestWinRate: 0.567, TestAvgReturn: 9.6,
				TestLift: 1.61,
			},
			{
				Name:        "Momentum20_SlightNegative",
				Category:    discovery.CategoryMomentum,
				Description: "20-day momentum -10% to 0%",
				Conditions: discovery.Conditions{
					indicator.ColMomentum20: {Min: -10, Max: 0},
				},
				TrainOccurrences: 487, TrainWinRate: 0.269, TrainAvgReturn: 4.6,
				TestOccurrences: 178, TestWinRate: 0.556, TestAvgReturn: 10.5,
				TestLift: 1.58,
			},
			{
				Name:        "RSI_Neutral_Low",
				Category:    discovery.CategoryMomentum,
				Description: "RSI between 40 and 50",
				Conditions: discovery.Conditions{
					indicator.ColRSI: {Min: 40, Max: 50},
				},
				TrainOccurrences: 331, TrainWinRate: 0.293, TrainAvgReturn: 4.6,
				TestOccurrences: 116, TestWinRate: 0.509, TestAvgReturn: 9.2,
				TestLift: 1.44,
			},
		},
	}
}
