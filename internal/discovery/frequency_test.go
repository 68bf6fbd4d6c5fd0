package discovery

import (
	"math"
	"testing"

	"github.com/newthinker/prospect/internal/frame"
	"github.com/newthinker/prospect/internal/indicator"
)

// dipSeries builds 1000 bars where every 25th day starting at index 10 dips
// to 90 and recovers to 100 the next day, an 11.1% return over any horizon
// that lands off the dip. The rsi column reads 25 on those dips and on ten
// loser days (17, 117, ..., 917) that never recover, 55 everywhere else.
func dipSeries(t *testing.T) *frame.Frame {
	t.Helper()
	f := syntheticFrame(t, 1000, func(i int) float64 {
		if i%25 == 10 {
			return 90
		}
		return 100
	})
	overrides := make(map[int]float64)
	for i := 10; i < 1000; i += 25 {
		overrides[i] = 25
	}
	for i := 17; i < 1000; i += 100 {
		overrides[i] = 25
	}
	setColumn(t, f, indicator.ColRSI, 55, overrides)
	return f
}

func oversoldPattern() PatternDefinition {
	return PatternDefinition{
		Name:       "RSI_Oversold_30",
		Category:   CategoryMomentum,
		Conditions: Conditions{indicator.ColRSI: {0, 30}},
	}
}

func TestValidateFrequency_DipSeries(t *testing.T) {
	f := dipSeries(t)

	passed, stats := ValidateFrequency(f, []PatternDefinition{oversoldPattern()}, 699, DefaultFrequencyConfig())

	if len(passed) != 1 || passed[0].Name != "RSI_Oversold_30" {
		t.Fatalf("passed = %v, want the oversold pattern", passed)
	}
	if len(stats) != 1 {
		t.Fatalf("expected 1 stats entry, got %d", len(stats))
	}

	s := stats[0]
	if s.DiscoveryDays != 700 || s.ValidationDays != 300 {
		t.Errorf("segment days = %d/%d, want 700/300", s.DiscoveryDays, s.ValidationDays)
	}
	// 28 dips and 7 losers before the boundary, 12 dips and 3 losers after
	if s.DiscoveryCount != 35 {
		t.Errorf("DiscoveryCount = %d, want 35", s.DiscoveryCount)
	}
	if s.ValidationCount != 15 {
		t.Errorf("ValidationCount = %d, want 15", s.ValidationCount)
	}
	if s.DiscoveryRate != 35.0/700.0 {
		t.Errorf("DiscoveryRate = %v, want 0.05", s.DiscoveryRate)
	}
	if s.ValidationRate != 15.0/300.0 {
		t.Errorf("ValidationRate = %v, want 0.05", s.ValidationRate)
	}
	if s.FrequencyRatio != 1.0 {
		t.Errorf("FrequencyRatio = %v, want 1.0", s.FrequencyRatio)
	}
	if !s.Passed {
		t.Error("pattern should pass the frequency stage")
	}
}

func TestValidateFrequency_RarePatternFails(t *testing.T) {
	f := dipSeries(t)
	setColumn(t, f, indicator.ColBBPosition, 0.9, map[int]float64{5: 0.1, 800: 0.1})

	rare := PatternDefinition{
		Name:       "BB_NearLower",
		Conditions: Conditions{indicator.ColBBPosition: {0, 0.2}},
	}

	passed, stats := ValidateFrequency(f, []PatternDefinition{oversoldPattern(), rare}, 699, DefaultFrequencyConfig())

	if len(passed) != 1 || passed[0].Name != "RSI_Oversold_30" {
		t.Fatalf("passed = %v, want only the oversold pattern", passed)
	}
	if len(stats) != 2 {
		t.Fatalf("expected stats for both patterns, got %d", len(stats))
	}

	s := stats[1]
	if s.Name != "BB_NearLower" {
		t.Fatalf("stats order must follow input order, got %s", s.Name)
	}
	if s.DiscoveryCount != 1 || s.ValidationCount != 1 {
		t.Errorf("counts = %d/%d, want 1/1", s.DiscoveryCount, s.ValidationCount)
	}
	if s.Passed {
		t.Error("a pattern firing once per segment must not pass")
	}
}

func TestValidateFrequency_RatioBoundary(t *testing.T) {
	cfg := FrequencyConfig{MinDiscoveryCount: 10, MinValidationCount: 3, MinFrequencyRatio: 0.3}
	p := PatternDefinition{Name: "x", Conditions: Conditions{"x": {0.5, 1.5}}}

	// discovery fires every day, validation on 3 of 10: ratio exactly 0.3
	f := syntheticFrame(t, 20, func(i int) float64 { return 100 })
	overrides := make(map[int]float64)
	for i := 13; i < 20; i++ {
		overrides[i] = 0
	}
	setColumn(t, f, "x", 1, overrides)

	passed, stats := ValidateFrequency(f, []PatternDefinition{p}, 9, cfg)
	if len(passed) != 1 {
		t.Errorf("ratio at the floor must pass, stats = %+v", stats[0])
	}
	if stats[0].FrequencyRatio != 0.3 {
		t.Errorf("FrequencyRatio = %v, want 0.3", stats[0].FrequencyRatio)
	}

	// same 3 validation hits over 15 days: ratio 0.2
	f = syntheticFrame(t, 25, func(i int) float64 { return 100 })
	overrides = make(map[int]float64)
	for i := 13; i < 25; i++ {
		overrides[i] = 0
	}
	setColumn(t, f, "x", 1, overrides)

	passed, stats = ValidateFrequency(f, []PatternDefinition{p}, 9, cfg)
	if len(passed) != 0 {
		t.Errorf("ratio below the floor must fail, stats = %+v", stats[0])
	}
	if s := stats[0]; s.ValidationCount != 3 || s.FrequencyRatio >= 0.3 {
		t.Errorf("stats = %+v, want 3 validation hits at ratio 0.2", s)
	}
}

func TestValidateFrequency_ZeroDiscoveryRate(t *testing.T) {
	f := syntheticFrame(t, 20, func(i int) float64 { return 100 })
	overrides := make(map[int]float64)
	for i := 10; i < 20; i++ {
		overrides[i] = 1
	}
	setColumn(t, f, "x", math.NaN(), overrides)

	p := PatternDefinition{Name: "x", Conditions: Conditions{"x": {0.5, 1.5}}}
	cfg := FrequencyConfig{MinDiscoveryCount: 0, MinValidationCount: 0, MinFrequencyRatio: 0.3}

	passed, stats := ValidateFrequency(f, []PatternDefinition{p}, 9, cfg)
	if len(passed) != 0 {
		t.Error("a pattern never seen in discovery must not pass")
	}
	s := stats[0]
	if s.DiscoveryCount != 0 || s.ValidationCount != 10 {
		t.Errorf("counts = %d/%d, want 0/10", s.DiscoveryCount, s.ValidationCount)
	}
	if s.FrequencyRatio != 0 {
		t.Errorf("FrequencyRatio = %v, want 0 when the discovery rate is 0", s.FrequencyRatio)
	}
}

func TestValidateFrequency_ClampsBoundary(t *testing.T) {
	f := syntheticFrame(t, 30, func(i int) float64 { return 100 })
	setColumn(t, f, "x", 1, nil)
	p := PatternDefinition{Name: "x", Conditions: Conditions{"x": {0.5, 1.5}}}
	cfg := FrequencyConfig{MinDiscoveryCount: 1, MinValidationCount: 0, MinFrequencyRatio: 0}

	_, stats := ValidateFrequency(f, []PatternDefinition{p}, 5000, cfg)
	s := stats[0]
	if s.DiscoveryDays != 30 || s.ValidationDays != 0 {
		t.Errorf("segment days = %d/%d, want 30/0 when the boundary overruns", s.DiscoveryDays, s.ValidationDays)
	}
	if s.ValidationRate != 0 {
		t.Errorf("ValidationRate = %v, want 0 for an empty segment", s.ValidationRate)
	}

	_, stats = ValidateFrequency(f, []PatternDefinition{p}, -1, cfg)
	s = stats[0]
	if s.DiscoveryDays != 0 || s.ValidationDays != 30 {
		t.Errorf("segment days = %d/%d, want 0/30 for a negative boundary", s.DiscoveryDays, s.ValidationDays)
	}
	if s.Passed {
		t.Error("an empty discovery segment must not pass")
	}
}

func TestValidateFrequency_TighterConfigShrinksPassSet(t *testing.T) {
	f := dipSeries(t)
	patterns := []PatternDefinition{oversoldPattern()}

	loose, _ := ValidateFrequency(f, patterns, 699, DefaultFrequencyConfig())
	tight, _ := ValidateFrequency(f, patterns, 699, FrequencyConfig{
		MinDiscoveryCount:  36,
		MinValidationCount: 5,
		MinFrequencyRatio:  0.3,
	})

	if len(loose) != 1 {
		t.Fatalf("defaults should pass the oversold pattern, got %d", len(loose))
	}
	if len(tight) != 0 {
		t.Errorf("raising the discovery floor above 35 must reject it, got %d", len(tight))
	}
}
