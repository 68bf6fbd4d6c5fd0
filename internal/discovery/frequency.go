// internal/discovery/frequency.go
package discovery

import (
	"github.com/newthinker/prospect/internal/frame"
)

// FrequencyConfig holds the first-stage pass thresholds.
type FrequencyConfig struct {
	MinDiscoveryCount  int     `mapstructure:"min_discovery_count"`
	MinValidationCount int     `mapstructure:"min_validation_count"`
	MinFrequencyRatio  float64 `mapstructure:"min_frequency_ratio"`
}

// DefaultFrequencyConfig returns the standard first-stage thresholds.
func DefaultFrequencyConfig() FrequencyConfig {
	return FrequencyConfig{
		MinDiscoveryCount:  10,
		MinValidationCount: 5,
		MinFrequencyRatio:  0.3,
	}
}

// PatternStats records how often one pattern fired in each segment.
// Rates are fractions of the segment's bar count.
type PatternStats struct {
	Name            string  `json:"name"`
	DiscoveryCount  int     `json:"discovery_count"`
	DiscoveryDays   int     `json:"discovery_days"`
	DiscoveryRate   float64 `json:"discovery_rate"`
	ValidationCount int     `json:"validation_count"`
	ValidationDays  int     `json:"validation_days"`
	ValidationRate  float64 `json:"validation_rate"`
	FrequencyRatio  float64 `json:"frequency_ratio"`
	Passed          bool    `json:"passed"`
}

// ValidateFrequency counts every pattern's occurrences in the discovery
// segment [0, discoveryEnd] and the validation segment after it. Every bar
// of a segment is eligible; rows with undefined indicators simply never
// match. A pattern passes when both raw counts reach their floors and the
// validation rate holds at least MinFrequencyRatio of the discovery rate.
// Passing patterns come back in input order.
func ValidateFrequency(f *frame.Frame, patterns []PatternDefinition, discoveryEnd int, cfg FrequencyConfig) ([]PatternDefinition, []PatternStats) {
	discDays := discoveryEnd + 1
	if discDays < 0 {
		discDays = 0
	}
	if discDays > f.Len() {
		discDays = f.Len()
	}
	valDays := f.Len() - discDays

	var passed []PatternDefinition
	stats := make([]PatternStats, 0, len(patterns))
	for _, p := range patterns {
		s := PatternStats{
			Name:           p.Name,
			DiscoveryDays:  discDays,
			ValidationDays: valDays,
		}
		s.DiscoveryCount = countMatches(f, p, 0, discDays)
		s.ValidationCount = countMatches(f, p, discDays, f.Len())
		if discDays > 0 {
			s.DiscoveryRate = float64(s.DiscoveryCount) / float64(discDays)
		}
		if valDays > 0 {
			s.ValidationRate = float64(s.ValidationCount) / float64(valDays)
		}
		if s.DiscoveryRate > 0 {
			s.FrequencyRatio = s.ValidationRate / s.DiscoveryRate
		}
		s.Passed = s.DiscoveryCount >= cfg.MinDiscoveryCount &&
			s.ValidationCount >= cfg.MinValidationCount &&
			s.FrequencyRatio >= cfg.MinFrequencyRatio

		stats = append(stats, s)
		if s.Passed {
			passed = append(passed, p)
		}
	}
	return passed, stats
}

func countMatches(f *frame.Frame, p PatternDefinition, from, to int) int {
	count := 0
	for i := from; i < to; i++ {
		if p.Matches(f, i) {
			count++
		}
	}
	return count
}
