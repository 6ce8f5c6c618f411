package usecase

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"StockPilot/internal/domain/models"
	"StockPilot/internal/domain/universe"
)

func TestMoversOrdering(t *testing.T) {
	// Every ticker gets a distinct change so ordering is unambiguous.
	start := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	histories := make(map[string][]models.PriceBar)
	for i, stock := range universe.All() {
		// Changes spread from about -10% upward, 0.5% apart.
		end := 100 * (1 + (float64(i)*0.5-10)/100)
		histories[stock.Ticker] = bars(start, 100, 100, end)
	}
	data := &fakeMarketData{histories: histories}
	s := NewScanner(data, NewConsultant(), rand.New(rand.NewSource(11)))

	report := s.Movers(context.Background())
	if len(report.Gainers) != 5 || len(report.Losers) != 5 {
		t.Fatalf("gainers=%d losers=%d, want 5/5", len(report.Gainers), len(report.Losers))
	}
	for i := 1; i < len(report.Gainers); i++ {
		if report.Gainers[i].ChangePercent > report.Gainers[i-1].ChangePercent {
			t.Error("gainers not sorted descending")
		}
	}
	// Losers come worst first.
	for i := 1; i < len(report.Losers); i++ {
		if report.Losers[i].ChangePercent < report.Losers[i-1].ChangePercent {
			t.Error("losers not sorted ascending from worst")
		}
	}
	if report.Losers[0].ChangePercent > report.Gainers[0].ChangePercent {
		t.Error("worst loser beats best gainer")
	}
}

func TestMoversSkipsShortSeries(t *testing.T) {
	start := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	histories := map[string][]models.PriceBar{
		"AAPL": bars(start, 100), // single bar, no change computable
	}
	s := NewScanner(&fakeMarketData{histories: histories}, NewConsultant(), rand.New(rand.NewSource(1)))

	report := s.Movers(context.Background())
	for _, m := range append(report.Gainers, report.Losers...) {
		if m.Ticker == "AAPL" {
			t.Error("single-bar ticker reported as mover")
		}
	}
}

func TestRecommendationsPositiveOnly(t *testing.T) {
	// Undervalued profiles everywhere: every candidate scores +2.
	pe := 8.0
	profiles := make(map[string]models.CompanyProfile)
	for _, stock := range universe.All() {
		p := pe
		profiles[stock.Ticker] = models.CompanyProfile{Ticker: stock.Ticker, TrailingPE: &p}
	}
	data := &fakeMarketData{profiles: profiles}
	s := NewScanner(data, NewConsultant(), rand.New(rand.NewSource(5)))

	recs := s.Recommendations(context.Background())
	if len(recs) != 3 {
		t.Fatalf("got %d recommendations, want 3", len(recs))
	}
	for _, r := range recs {
		if r.Score <= 0 {
			t.Errorf("%s score = %d, want > 0", r.Ticker, r.Score)
		}
		if len(r.Reasons) == 0 {
			t.Errorf("%s has no reasons", r.Ticker)
		}
	}
}

func TestRecommendationsEmptyWhenNothingScores(t *testing.T) {
	// No data at all: every candidate scores 0 and is filtered out.
	s := NewScanner(&fakeMarketData{}, NewConsultant(), rand.New(rand.NewSource(5)))
	if recs := s.Recommendations(context.Background()); len(recs) != 0 {
		t.Fatalf("got %d recommendations, want 0", len(recs))
	}
}

func TestCompetitors(t *testing.T) {
	pe := 25.0
	data := &fakeMarketData{
		profiles: map[string]models.CompanyProfile{
			"MSFT": {Ticker: "MSFT", MarketCap: 3_000_000_000_000, TrailingPE: &pe},
		},
		prices: map[string]float64{"MSFT": 420},
	}
	s := NewScanner(data, NewConsultant(), nil)

	peers := s.Competitors(context.Background(), "AAPL")
	if len(peers) == 0 {
		t.Fatal("no competitors for AAPL")
	}
	var msft *Competitor
	for i := range peers {
		if peers[i].Ticker == "AAPL" {
			t.Error("ticker listed as its own competitor")
		}
		stock, _ := universe.Find(peers[i].Ticker)
		if stock.Sector != universe.SectorTechnology {
			t.Errorf("%s is not a Technology peer", peers[i].Ticker)
		}
		if peers[i].Ticker == "MSFT" {
			msft = &peers[i]
		}
	}
	if msft == nil {
		t.Fatal("MSFT missing from AAPL competitors")
	}
	if msft.Price != 420 || msft.MarketCap != 3_000_000_000_000 {
		t.Errorf("MSFT = %+v", *msft)
	}
	if msft.PERatio == nil || *msft.PERatio != 25.0 {
		t.Errorf("MSFT pe = %v", msft.PERatio)
	}
}

func TestCompetitorsUnknownTicker(t *testing.T) {
	s := NewScanner(&fakeMarketData{}, NewConsultant(), nil)
	if peers := s.Competitors(context.Background(), "ZZZZ"); peers != nil {
		t.Fatalf("got %v, want nil", peers)
	}
}
