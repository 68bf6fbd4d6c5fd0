package discovery

import (
	"math"
	"testing"

	"github.com/newthinker/prospect/internal/indicator"
)

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{25, 3.25},
		{50, 5.5},
		{75, 7.75},
		{90, 9.1},
		{100, 10},
	}
	for _, tc := range tests {
		got := percentile(sorted, tc.p)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("percentile(%v) = %f, want %f", tc.p, got, tc.want)
		}
	}

	if got := percentile([]float64{7}, 50); got != 7 {
		t.Errorf("single sample percentile = %f, want 7", got)
	}
	if got := percentile(nil, 50); !math.IsNaN(got) {
		t.Errorf("empty sample percentile = %f, want NaN", got)
	}
}

func TestComputeFeatureStats(t *testing.T) {
	f := syntheticFrame(t, 50, func(i int) float64 { return 100 })
	vals := make([]float64, 50)
	for i := range vals {
		vals[i] = float64(i)
	}
	if err := f.SetColumn(indicator.ColRSI, vals); err != nil {
		t.Fatal(err)
	}

	cases := make([]ProfitCase, 13)
	for i := range cases {
		cases[i] = ProfitCase{Index: i} // index 0 must be skipped
	}

	stats := ComputeFeatureStats(f, cases, []string{indicator.ColRSI})
	s, ok := stats[indicator.ColRSI]
	if !ok {
		t.Fatal("expected rsi stats")
	}
	if s.Count != 12 {
		t.Errorf("count = %d, want 12 (case at index 0 skipped)", s.Count)
	}
	if math.Abs(s.Mean-6.5) > 1e-9 {
		t.Errorf("mean = %f, want 6.5", s.Mean)
	}
	if s.Min != 1 || s.Max != 12 {
		t.Errorf("min/max = %f/%f, want 1/12", s.Min, s.Max)
	}
	if math.Abs(s.P50-6.5) > 1e-9 {
		t.Errorf("p50 = %f, want 6.5", s.P50)
	}

	// population std over 1..12
	wantStd := math.Sqrt(143.0 / 12.0)
	if math.Abs(s.Std-wantStd) > 1e-9 {
		t.Errorf("std = %f, want %f", s.Std, wantStd)
	}
}

func TestComputeFeatureStats_SampleFloor(t *testing.T) {
	f := syntheticFrame(t, 30, func(i int) float64 { return 100 })
	setColumn(t, f, indicator.ColRSI, 50, nil)

	cases := make([]ProfitCase, 9)
	for i := range cases {
		cases[i] = ProfitCase{Index: i + 1}
	}

	stats := ComputeFeatureStats(f, cases, []string{indicator.ColRSI})
	if _, ok := stats[indicator.ColRSI]; ok {
		t.Error("9 observations should fall under the sample floor")
	}
}

func TestComputeFeatureStats_UndefinedExcluded(t *testing.T) {
	f := syntheticFrame(t, 40, func(i int) float64 { return 100 })
	overrides := map[int]float64{}
	for i := 1; i <= 6; i++ {
		overrides[i] = math.NaN()
	}
	setColumn(t, f, indicator.ColRSI, 42, overrides)

	cases := make([]ProfitCase, 15)
	for i := range cases {
		cases[i] = ProfitCase{Index: i + 1}
	}

	stats := ComputeFeatureStats(f, cases, []string{indicator.ColRSI})
	s, ok := stats[indicator.ColRSI]
	if !ok {
		t.Fatal("expected stats despite some undefined rows")
	}
	// 15 cases minus 6 undefined rows
	if s.Count != 9 {
		t.Errorf("count = %d, want 9", s.Count)
	}
}

func TestComputeFeatureStats_MissingColumn(t *testing.T) {
	f := syntheticFrame(t, 40, func(i int) float64 { return 100 })
	cases := []ProfitCase{{Index: 5}, {Index: 10}}

	stats := ComputeFeatureStats(f, cases, nil)
	if len(stats) != 0 {
		t.Errorf("no columns attached, stats should be empty, got %v", stats)
	}
}
