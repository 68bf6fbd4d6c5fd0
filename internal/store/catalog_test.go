package store

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/newthinker/prospect/internal/catalog"
	"github.com/newthinker/prospect/internal/core"
	"github.com/newthinker/prospect/internal/discovery"
)

func sampleCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		RunID:         "run-7",
		Symbol:        "QQQ",
		CreatedAt:     time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
		HoldingPeriod: 60,
		MinReturn:     10.0,
		Patterns: []catalog.ValidatedPattern{{
			Name:        "RSI_Oversold_30",
			Category:    discovery.CategoryMomentum,
			Description: "RSI at or below 30",
			Conditions:  discovery.Conditions{"rsi": {Min: 0, Max: 30}},
			TrainOccurrences: 33, TrainWins: 26, TrainWinRate: 26.0 / 33.0,
			TrainAvgReturn: 8.7, TrainBaseline: 0.040625, TrainLift: 19.39,
			TestOccurrences: 13, TestWins: 10, TestWinRate: 10.0 / 13.0,
			TestAvgReturn: 8.5, TestBaseline: 10.0 / 240.0, TestLift: 18.46,
		}},
	}
}

func TestCatalogPath(t *testing.T) {
	if got := CatalogPath("qqq"); got != "catalogs/QQQ.json" {
		t.Errorf("CatalogPath = %q, want catalogs/QQQ.json", got)
	}
}

func TestSaveLoadCatalog(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	c := sampleCatalog()

	if err := SaveCatalog(ctx, m, c); err != nil {
		t.Fatalf("SaveCatalog: %v", err)
	}

	got, err := LoadCatalog(ctx, m, "qqq")
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if !reflect.DeepEqual(got.Patterns, c.Patterns) {
		t.Errorf("patterns did not round-trip:\n got %+v\nwant %+v", got.Patterns, c.Patterns)
	}
	if !got.CreatedAt.Equal(c.CreatedAt) || got.RunID != c.RunID {
		t.Errorf("metadata did not round-trip: %+v", got)
	}
}

func TestSaveCatalog_NeedsSymbol(t *testing.T) {
	m := NewMemory()
	err := SaveCatalog(context.Background(), m, &catalog.Catalog{})
	if !errors.Is(err, core.ErrInvalidParams) {
		t.Errorf("err = %v, want ErrInvalidParams", err)
	}
}

func TestLoadCatalog_Missing(t *testing.T) {
	m := NewMemory()
	_, err := LoadCatalog(context.Background(), m, "QQQ")
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLoadCatalog_Corrupt(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	m.Write(ctx, CatalogPath("QQQ"), []byte("{not json"))

	_, err := LoadCatalog(ctx, m, "QQQ")
	if !errors.Is(err, core.ErrStoreFailed) {
		t.Errorf("err = %v, want ErrStoreFailed", err)
	}
}

func TestListCatalogSymbols(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	for _, sym := range []string{"QQQ", "SPY"} {
		c := sampleCatalog()
		c.Symbol = sym
		if err := SaveCatalog(ctx, m, c); err != nil {
			t.Fatalf("SaveCatalog(%s): %v", sym, err)
		}
	}
	m.Write(ctx, "catalogs/notes.txt", []byte("ignore me"))

	symbols, err := ListCatalogSymbols(ctx, m)
	if err != nil {
		t.Fatalf("ListCatalogSymbols: %v", err)
	}
	want := []string{"QQQ", "SPY"}
	if !reflect.DeepEqual(symbols, want) {
		t.Errorf("symbols = %v, want %v", symbols, want)
	}
}
