package catalog

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/newthinker/prospect/internal/discovery"
)

func TestBuild_SortsByTestLift(t *testing.T) {
	res := &discovery.Result{
		RunID: "run-1",
		Validated: []discovery.PatternDefinition{
			{Name: "Alpha", Category: discovery.CategoryMomentum, Description: "a",
				Conditions: discovery.Conditions{"rsi": {Min: 0, Max: 30}}},
			{Name: "Bravo", Category: discovery.CategoryTrend, Description: "b",
				Conditions: discovery.Conditions{"momentum_10": {Min: -10, Max: -5}}},
			{Name: "Charlie", Category: discovery.CategoryVolume, Description: "c",
				Conditions: discovery.Conditions{"volume_ratio": {Min: 2, Max: 100}}},
		},
		Performances: []discovery.PatternPerformance{
			{Name: "Alpha", TestLift: 1.5, TrainOccurrences: 30, TestOccurrences: 12},
			{Name: "Bravo", TestLift: 2.0, TrainOccurrences: 25, TestOccurrences: 11},
			{Name: "Charlie", TestLift: 1.5, TrainOccurrences: 40, TestOccurrences: 15},
			{Name: "Rejected", TestLift: 9.9},
		},
	}

	c := Build("QQQ", discovery.DefaultPipelineConfig(), res)

	if c.RunID != "run-1" || c.Symbol != "QQQ" {
		t.Errorf("meta = %s/%s, want run-1/QQQ", c.RunID, c.Symbol)
	}
	if c.HoldingPeriod != 60 || c.MinReturn != 10.0 {
		t.Errorf("params = %d/%v, want 60/10", c.HoldingPeriod, c.MinReturn)
	}
	if c.CreatedAt.IsZero() {
		t.Error("CreatedAt must be stamped")
	}

	want := []string{"Bravo", "Alpha", "Charlie"}
	if len(c.Patterns) != len(want) {
		t.Fatalf("got %d patterns, want %d", len(c.Patterns), len(want))
	}
	for i, name := range want {
		if c.Patterns[i].Name != name {
			t.Errorf("Patterns[%d] = %s, want %s", i, c.Patterns[i].Name, name)
		}
	}
	if _, ok := c.Pattern("Rejected"); ok {
		t.Error("a performance record without a validated definition must not enter the catalog")
	}
}

func TestBuild_FlattensPerformance(t *testing.T) {
	res := &discovery.Result{
		RunID: "run-2",
		Validated: []discovery.PatternDefinition{
			{Name: "Alpha", Category: discovery.CategoryMomentum, Description: "a",
				Conditions: discovery.Conditions{"rsi": {Min: 0, Max: 30}}},
		},
		Performances: []discovery.PatternPerformance{{
			Name:             "Alpha",
			TrainOccurrences: 33, TrainWins: 26, TrainWinRate: 26.0 / 33.0,
			TrainAvgReturn: 8.7, TrainBaseline: 0.040625, TrainLift: 19.39,
			TestOccurrences: 13, TestWins: 10, TestWinRate: 10.0 / 13.0,
			TestAvgReturn: 8.5, TestBaseline: 10.0 / 240.0, TestLift: 18.46,
			Validated: true,
		}},
	}

	c := Build("QQQ", discovery.DefaultPipelineConfig(), res)
	p, ok := c.Pattern("Alpha")
	if !ok {
		t.Fatal("Alpha missing from the catalog")
	}
	if p.TrainWins != 26 || p.TestWins != 10 {
		t.Errorf("wins = %d/%d, want 26/10", p.TrainWins, p.TestWins)
	}
	if p.TrainBaseline != 0.040625 || p.TestBaseline != 10.0/240.0 {
		t.Errorf("baselines = %v/%v", p.TrainBaseline, p.TestBaseline)
	}
	if p.TrainLift != 19.39 || p.TestLift != 18.46 {
		t.Errorf("lifts = %v/%v", p.TrainLift, p.TestLift)
	}
}

func TestCatalog_RoundTrip(t *testing.T) {
	c := &Catalog{
		RunID:         "run-3",
		Symbol:        "SPY",
		CreatedAt:     time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC),
		HoldingPeriod: 60,
		MinReturn:     10.0,
		Patterns: []ValidatedPattern{{
			Name:        "Alpha",
			Category:    discovery.CategoryMomentum,
			Description: "a",
			Conditions: discovery.Conditions{
				"rsi":         {Min: 0, Max: 30},
				"momentum_10": {Min: -100, Max: -5},
			},
			TrainOccurrences: 33, TrainWins: 26, TrainWinRate: 26.0 / 33.0,
			TrainAvgReturn: 8.7, TrainBaseline: 0.040625, TrainLift: 19.39,
			TestOccurrences: 13, TestWins: 10, TestWinRate: 10.0 / 13.0,
			TestAvgReturn: 8.5, TestBaseline: 10.0 / 240.0, TestLift: 18.46,
		}},
	}

	raw, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Catalog
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !reflect.DeepEqual(c.Patterns, back.Patterns) {
		t.Errorf("patterns did not round-trip:\n got %+v\nwant %+v", back.Patterns, c.Patterns)
	}
	if !back.CreatedAt.Equal(c.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", back.CreatedAt, c.CreatedAt)
	}
	if back.RunID != c.RunID || back.Symbol != c.Symbol ||
		back.HoldingPeriod != c.HoldingPeriod || back.MinReturn != c.MinReturn {
		t.Error("catalog metadata did not round-trip")
	}

	again, err := json.Marshal(&back)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != string(again) {
		t.Error("second marshal differs from the first")
	}
}
