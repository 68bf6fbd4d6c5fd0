package catalog

import (
	"testing"

	"github.com/newthinker/prospect/internal/discovery"
	"github.com/newthinker/prospect/internal/indicator"
)

func TestBuiltin_Shape(t *testing.T) {
	c := Builtin()

	if c.Symbol != "QQQ" || c.HoldingPeriod != 60 || c.MinReturn != 10.0 {
		t.Errorf("meta = %s/%d/%v, want QQQ/60/10", c.Symbol, c.HoldingPeriod, c.MinReturn)
	}
	if len(c.Patterns) != 14 {
		t.Fatalf("got %d patterns, want 14", len(c.Patterns))
	}

	first := c.Patterns[0]
	if first.Name != "Combo_Strong_Dip" || first.TestLift != 2.84 || first.TestWinRate != 1.0 {
		t.Errorf("head = %s lift %v win %v, want Combo_Strong_Dip 2.84 1.0", first.Name, first.TestLift, first.TestWinRate)
	}
	last := c.Patterns[len(c.Patterns)-1]
	if last.Name != "RSI_Neutral_Low" || last.TestLift != 1.44 {
		t.Errorf("tail = %s lift %v, want RSI_Neutral_Low 1.44", last.Name, last.TestLift)
	}
}

func TestBuiltin_RecordsHoldValidationFloors(t *testing.T) {
	known := map[string]bool{
		indicator.ColRSI:            true,
		indicator.ColMomentum10:     true,
		indicator.ColMomentum20:     true,
		indicator.ColBBPosition:     true,
		indicator.ColPriceVsMAShort: true,
		indicator.ColVolumeRatio:    true,
	}

	seen := make(map[string]bool)
	for _, p := range Builtin().Patterns {
		if seen[p.Name] {
			t.Errorf("duplicate pattern %s", p.Name)
		}
		seen[p.Name] = true

		if p.Category == "" || p.Description == "" || len(p.Conditions) == 0 {
			t.Errorf("%s: incomplete record", p.Name)
		}
		for col := range p.Conditions {
			if !known[col] {
				t.Errorf("%s: unknown indicator column %s", p.Name, col)
			}
		}
		if p.TrainOccurrences < 20 || p.TestOccurrences < 10 {
			t.Errorf("%s: occurrences %d/%d below the validation floors", p.Name, p.TrainOccurrences, p.TestOccurrences)
		}
		if p.TestLift < 1.2 {
			t.Errorf("%s: test lift %v below 1.2", p.Name, p.TestLift)
		}
		if p.TrainWinRate <= 0 || p.TestWinRate <= 0 {
			t.Errorf("%s: win rates %v/%v must be positive", p.Name, p.TrainWinRate, p.TestWinRate)
		}
	}
}

func TestBuiltin_ReturnsFreshCopies(t *testing.T) {
	a := Builtin()
	a.Patterns[0].Name = "mutated"
	a.Patterns[0].Conditions[indicator.ColRSI] = discovery.Range{Min: 0, Max: 1}

	b := Builtin()
	if b.Patterns[0].Name != "Combo_Strong_Dip" {
		t.Error("mutating one catalog must not leak into the next")
	}
	if _, ok := b.Patterns[0].Conditions[indicator.ColRSI]; ok {
		t.Error("condition maps must not be shared between copies")
	}
}

func TestBuiltin_PatternLookup(t *testing.T) {
	c := Builtin()
	p, ok := c.Pattern("RSI_Oversold_40")
	if !ok {
		t.Fatal("RSI_Oversold_40 missing")
	}
	if p.TestOccurrences != 60 || p.TestWinRate != 0.733 {
		t.Errorf("record = %d/%v, want 60/0.733", p.TestOccurrences, p.TestWinRate)
	}
	if _, ok := c.Pattern("No_Such_Pattern"); ok {
		t.Error("unknown names must report absence")
	}
}
