// Package perf computes trade-level statistics over a series of percent
// returns, one entry per pattern occurrence.
package perf

import (
	"math"
)

// Summary holds performance statistics for a return series.
type Summary struct {
	Count        int     // Number of returns in the series
	Wins         int     // Returns greater than zero
	Losses       int     // Returns at or below zero
	WinRate      float64 // Fraction of wins
	AvgWin       float64 // Mean winning return, percent
	AvgLoss      float64 // Mean losing return, percent (negative)
	Expectancy   float64 // WinRate*AvgWin + (1-WinRate)*AvgLoss, percent per trade
	TotalReturn  float64 // Compounded return across the series, percent
	MaxDrawdown  float64 // Largest peak-to-trough equity decline, percent
	Sharpe       float64 // Mean over sample standard deviation
	Sortino      float64 // Mean over downside deviation
	ProfitFactor float64 // Gross profit over gross loss, 0 when there are no losses
}

// Summarize computes statistics from percent returns. Sharpe and Sortino
// are per-trade ratios, not annualized: occurrences are spaced by the
// holding period, not by calendar days.
func Summarize(returns []float64) Summary {
	if len(returns) == 0 {
		return Summary{}
	}

	var wins, losses int
	var grossProfit, grossLoss float64
	for _, r := range returns {
		if r > 0 {
			wins++
			grossProfit += r
		} else {
			losses++
			grossLoss += -r
		}
	}

	s := Summary{
		Count:   len(returns),
		Wins:    wins,
		Losses:  losses,
		WinRate: float64(wins) / float64(len(returns)),
	}
	if wins > 0 {
		s.AvgWin = grossProfit / float64(wins)
	}
	if losses > 0 {
		s.AvgLoss = -grossLoss / float64(losses)
	}
	s.Expectancy = s.WinRate*s.AvgWin + (1-s.WinRate)*s.AvgLoss
	if grossLoss > 0 {
		s.ProfitFactor = grossProfit / grossLoss
	}

	s.TotalReturn = compoundReturn(returns)
	s.MaxDrawdown = maxDrawdown(returns)
	s.Sharpe = sharpeRatio(returns)
	s.Sortino = sortinoRatio(returns)
	return s
}

// compoundReturn chains the series into a single percent return.
func compoundReturn(returns []float64) float64 {
	cumulative := 1.0
	for _, r := range returns {
		cumulative *= 1 + r/100
	}
	return (cumulative - 1) * 100
}

// maxDrawdown finds the largest peak-to-trough decline of the compounded
// equity curve. The peak starts at the pre-trade equity of 1, so a loss
// on the first trade already counts as a drawdown.
func maxDrawdown(returns []float64) float64 {
	var maxDD float64
	peak := 1.0
	cumulative := 1.0

	for _, r := range returns {
		cumulative *= 1 + r/100
		if cumulative > peak {
			peak = cumulative
		}
		dd := (peak - cumulative) / peak
		if dd > maxDD {
			maxDD = dd
		}
	}

	return maxDD * 100
}

// sharpeRatio computes mean return over sample standard deviation.
// Assumes a risk-free rate of 0.
func sharpeRatio(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}

	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / float64(len(returns))

	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	stdDev := math.Sqrt(variance / float64(len(returns)-1))
	if stdDev == 0 {
		return 0
	}

	return mean / stdDev
}

// sortinoRatio computes mean return over downside deviation. Downside
// deviation squares only the negative returns but divides by the full
// sample count.
func sortinoRatio(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}

	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / float64(len(returns))

	var downside float64
	for _, r := range returns {
		if r < 0 {
			downside += r * r
		}
	}
	downDev := math.Sqrt(downside / float64(len(returns)))
	if downDev == 0 {
		return 0
	}

	return mean / downDev
}
