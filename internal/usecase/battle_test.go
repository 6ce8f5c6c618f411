package usecase

import (
	"context"
	"math"
	"math/rand"
	"testing"
	"time"

	"StockPilot/internal/domain/models"
	"StockPilot/internal/domain/universe"
)

// allRising builds a history map where every universe ticker gained the
// given percent over the window.
func allRising(pct float64) map[string][]models.PriceBar {
	start := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	out := make(map[string][]models.PriceBar)
	for _, stock := range universe.All() {
		out[stock.Ticker] = bars(start, 100, 100*(1+pct/100))
	}
	return out
}

func TestBattleRunRanksAllPersonas(t *testing.T) {
	data := &fakeMarketData{histories: allRising(5)}
	sim := NewBattleSimulator(data, rand.New(rand.NewSource(1)))

	results := sim.Run(context.Background())
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, res := range results {
		if res.Rank != i+1 {
			t.Errorf("position %d rank = %d", i, res.Rank)
		}
		if len(res.Portfolio) != 3 {
			t.Errorf("%s picked %d stocks, want 3", res.ID, len(res.Portfolio))
		}
		if math.Abs(res.Return-5) > 1e-9 {
			t.Errorf("%s return = %v, want 5", res.ID, res.Return)
		}
	}
	// Equal returns keep roster order: warren, elon, quant.
	if results[0].ID != "warren" || results[1].ID != "elon" || results[2].ID != "quant" {
		t.Errorf("tie order = %s, %s, %s", results[0].ID, results[1].ID, results[2].ID)
	}
}

func TestBattleDeterministicWithFixedSeed(t *testing.T) {
	data := &fakeMarketData{histories: allRising(2)}

	first := NewBattleSimulator(data, rand.New(rand.NewSource(42))).Run(context.Background())
	second := NewBattleSimulator(data, rand.New(rand.NewSource(42))).Run(context.Background())

	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("persona order differs at %d", i)
		}
		for j := range first[i].Portfolio {
			if first[i].Portfolio[j].Ticker != second[i].Portfolio[j].Ticker {
				t.Fatalf("%s pick %d differs", first[i].ID, j)
			}
		}
	}
}

func TestBattleSkipsFailedFetches(t *testing.T) {
	// No histories at all: every pick fails, every persona scores 0.
	sim := NewBattleSimulator(&fakeMarketData{}, rand.New(rand.NewSource(7)))

	results := sim.Run(context.Background())
	for _, res := range results {
		if res.Return != 0 {
			t.Errorf("%s return = %v, want 0", res.ID, res.Return)
		}
		if len(res.Portfolio) != 0 {
			t.Errorf("%s portfolio = %v, want empty", res.ID, res.Portfolio)
		}
		if res.Rank == 0 {
			t.Errorf("%s has no rank", res.ID)
		}
	}
}

func TestBattlePicksrespectSectorAllowList(t *testing.T) {
	data := &fakeMarketData{histories: allRising(1)}
	sim := NewBattleSimulator(data, rand.New(rand.NewSource(3)))

	results := sim.Run(context.Background())
	elonSectors := map[string]bool{
		universe.SectorTechnology:    true,
		universe.SectorCommunication: true,
		universe.SectorConsumerCycl:  true,
	}
	for _, res := range results {
		if res.ID != "elon" {
			continue
		}
		for _, h := range res.Portfolio {
			stock, ok := universe.Find(h.Ticker)
			if !ok {
				t.Fatalf("pick %s not in universe", h.Ticker)
			}
			if !elonSectors[stock.Sector] {
				t.Errorf("elon picked %s from sector %s", h.Ticker, stock.Sector)
			}
		}
	}
}
