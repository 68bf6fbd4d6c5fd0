package discovery

import (
	"errors"
	"math"
	"testing"

	"github.com/newthinker/prospect/internal/core"
)

func TestValidatePatterns_DipSeries(t *testing.T) {
	f := dipSeries(t)

	validated, perfs, err := ValidatePatterns(f, []PatternDefinition{oversoldPattern()}, 60, 10.0, DefaultProfitabilityConfig())
	if err != nil {
		t.Fatalf("ValidatePatterns: %v", err)
	}
	if len(validated) != 1 || validated[0].Name != "RSI_Oversold_30" {
		t.Fatalf("validated = %v, want the oversold pattern", validated)
	}
	if len(perfs) != 1 {
		t.Fatalf("expected 1 performance entry, got %d", len(perfs))
	}

	p := perfs[0]
	// train [0, 700): 26 winning dips and 7 losers are horizon-eligible
	if p.TrainOccurrences != 33 || p.TrainWins != 26 {
		t.Errorf("train = %d/%d, want 33 occurrences with 26 wins", p.TrainOccurrences, p.TrainWins)
	}
	if want := 26.0 / 33.0; p.TrainWinRate != want {
		t.Errorf("TrainWinRate = %v, want %v", p.TrainWinRate, want)
	}
	if want := 26.0 / 640.0; p.TrainBaseline != want {
		t.Errorf("TrainBaseline = %v, want %v", p.TrainBaseline, want)
	}
	if want := 640.0 / 33.0; math.Abs(p.TrainLift-want) > 1e-9 {
		t.Errorf("TrainLift = %v, want %v", p.TrainLift, want)
	}

	// test [700, 1000): 10 dips and 3 losers before the horizon cutoff at 940
	if p.TestOccurrences != 13 || p.TestWins != 10 {
		t.Errorf("test = %d/%d, want 13 occurrences with 10 wins", p.TestOccurrences, p.TestWins)
	}
	if want := 10.0 / 13.0; p.TestWinRate != want {
		t.Errorf("TestWinRate = %v, want %v", p.TestWinRate, want)
	}
	if want := 10.0 / 240.0; p.TestBaseline != want {
		t.Errorf("TestBaseline = %v, want %v", p.TestBaseline, want)
	}
	if want := 240.0 / 13.0; math.Abs(p.TestLift-want) > 1e-9 {
		t.Errorf("TestLift = %v, want %v", p.TestLift, want)
	}

	if !p.Validated {
		t.Error("pattern should validate: both win rates clear baseline+edge and both lifts exceed 1.2")
	}
	dipReturn := (100.0/90.0 - 1) * 100
	if want := 26 * dipReturn / 33; math.Abs(p.TrainAvgReturn-want) > 1e-9 {
		t.Errorf("TrainAvgReturn = %v, want %v", p.TrainAvgReturn, want)
	}
}

func TestValidatePatterns_LiftIsWinRateOverBaseline(t *testing.T) {
	f := dipSeries(t)

	_, perfs, err := ValidatePatterns(f, []PatternDefinition{oversoldPattern()}, 60, 10.0, DefaultProfitabilityConfig())
	if err != nil {
		t.Fatalf("ValidatePatterns: %v", err)
	}

	p := perfs[0]
	if math.Abs(p.TrainLift-p.TrainWinRate/p.TrainBaseline) > 1e-9 {
		t.Errorf("TrainLift %v != TrainWinRate/TrainBaseline %v", p.TrainLift, p.TrainWinRate/p.TrainBaseline)
	}
	if math.Abs(p.TestLift-p.TestWinRate/p.TestBaseline) > 1e-9 {
		t.Errorf("TestLift %v != TestWinRate/TestBaseline %v", p.TestLift, p.TestWinRate/p.TestBaseline)
	}
}

func TestValidatePatterns_BaselinePerformerRejected(t *testing.T) {
	f := dipSeries(t)

	// fires like the oversold pattern in train, but in test it fires on 24
	// consecutive days catching a single win, exactly the segment baseline
	overrides := make(map[int]float64)
	for i := 10; i < 700; i += 25 {
		overrides[i] = 25
	}
	for i := 17; i < 700; i += 100 {
		overrides[i] = 25
	}
	for i := 701; i <= 724; i++ {
		overrides[i] = 25
	}
	setColumn(t, f, "sig", 55, overrides)
	p := PatternDefinition{Name: "sig", Conditions: Conditions{"sig": {0, 30}}}

	validated, perfs, err := ValidatePatterns(f, []PatternDefinition{p}, 60, 10.0, DefaultProfitabilityConfig())
	if err != nil {
		t.Fatalf("ValidatePatterns: %v", err)
	}
	if len(validated) != 0 {
		t.Fatal("a test segment at baseline must not validate")
	}

	perf := perfs[0]
	if perf.TrainOccurrences != 33 || perf.TrainWins != 26 {
		t.Errorf("train = %d/%d, want 33/26", perf.TrainOccurrences, perf.TrainWins)
	}
	if perf.TestOccurrences != 24 || perf.TestWins != 1 {
		t.Errorf("test = %d/%d, want 24/1", perf.TestOccurrences, perf.TestWins)
	}
	if perf.TestLift != 1.0 {
		t.Errorf("TestLift = %v, want exactly 1.0 when the win rate equals the baseline", perf.TestLift)
	}
	if perf.Validated {
		t.Error("Validated must be false at lift 1.0")
	}
}

func TestValidatePatterns_EmptySegments(t *testing.T) {
	f := syntheticFrame(t, 50, func(i int) float64 { return 100 })
	setColumn(t, f, "sig", 25, nil)
	p := PatternDefinition{Name: "sig", Conditions: Conditions{"sig": {0, 30}}}

	validated, perfs, err := ValidatePatterns(f, []PatternDefinition{p}, 60, 10.0, DefaultProfitabilityConfig())
	if err != nil {
		t.Fatalf("segments shorter than the horizon are not an error: %v", err)
	}
	if len(validated) != 0 {
		t.Error("nothing can validate without horizon-eligible days")
	}

	perf := perfs[0]
	if perf.TrainOccurrences != 0 || perf.TestOccurrences != 0 {
		t.Errorf("occurrences = %d/%d, want 0/0", perf.TrainOccurrences, perf.TestOccurrences)
	}
	if perf.TrainBaseline != 0 || perf.TestBaseline != 0 {
		t.Errorf("baselines = %v/%v, want 0/0", perf.TrainBaseline, perf.TestBaseline)
	}
	if perf.TrainLift != 0 || perf.TestLift != 0 {
		t.Errorf("lifts = %v/%v, want 0/0 when the baseline is empty", perf.TrainLift, perf.TestLift)
	}
}

func TestValidatePatterns_BadParams(t *testing.T) {
	f := syntheticFrame(t, 100, func(i int) float64 { return 100 })

	_, _, err := ValidatePatterns(f, nil, 0, 10.0, DefaultProfitabilityConfig())
	if !errors.Is(err, core.ErrInvalidParams) {
		t.Errorf("holding period 0: err = %v, want ErrInvalidParams", err)
	}

	cfg := DefaultProfitabilityConfig()
	cfg.TrainRatio = 1.0
	_, _, err = ValidatePatterns(f, nil, 60, 10.0, cfg)
	if !errors.Is(err, core.ErrInvalidParams) {
		t.Errorf("train ratio 1.0: err = %v, want ErrInvalidParams", err)
	}

	cfg.TrainRatio = 0
	_, _, err = ValidatePatterns(f, nil, 60, 10.0, cfg)
	if !errors.Is(err, core.ErrInvalidParams) {
		t.Errorf("train ratio 0: err = %v, want ErrInvalidParams", err)
	}
}

func TestValidatePatterns_TighterConfigShrinksSet(t *testing.T) {
	f := dipSeries(t)
	patterns := []PatternDefinition{oversoldPattern()}

	loose, _, err := ValidatePatterns(f, patterns, 60, 10.0, DefaultProfitabilityConfig())
	if err != nil {
		t.Fatalf("ValidatePatterns: %v", err)
	}
	tightCfg := DefaultProfitabilityConfig()
	tightCfg.MinTrainOccurrences = 34
	tight, _, err := ValidatePatterns(f, patterns, 60, 10.0, tightCfg)
	if err != nil {
		t.Fatalf("ValidatePatterns: %v", err)
	}

	if len(loose) != 1 {
		t.Fatalf("defaults should validate the oversold pattern, got %d", len(loose))
	}
	if len(tight) != 0 {
		t.Errorf("raising the train floor above 33 must reject it, got %d", len(tight))
	}
}
