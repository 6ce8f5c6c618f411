package repository

import (
	"context"
	"path/filepath"
	"testing"

	"StockPilot/internal/domain/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestWatchlistRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.AddToWatchlist(ctx, "AAPL", "애플"); err != nil {
		t.Fatal(err)
	}
	if err := store.AddToWatchlist(ctx, "TSLA", "테슬라"); err != nil {
		t.Fatal(err)
	}
	// Re-adding updates the name instead of erroring.
	if err := store.AddToWatchlist(ctx, "AAPL", "Apple"); err != nil {
		t.Fatal(err)
	}

	list, err := store.ListWatchlist(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d entries, want 2", len(list))
	}
	if list[0].Ticker != "AAPL" || list[0].Name != "Apple" {
		t.Errorf("first entry = %+v", list[0])
	}

	if err := store.RemoveFromWatchlist(ctx, "AAPL"); err != nil {
		t.Fatal(err)
	}
	list, err = store.ListWatchlist(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Ticker != "TSLA" {
		t.Fatalf("after remove: %+v", list)
	}
}

func TestHoldingsUpsertReplaces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.UpsertHolding(ctx, models.Holding{Ticker: "MSFT", Shares: 10, AvgPrice: 300}); err != nil {
		t.Fatal(err)
	}
	if err := store.UpsertHolding(ctx, models.Holding{Ticker: "MSFT", Shares: 5, AvgPrice: 310}); err != nil {
		t.Fatal(err)
	}

	holdings, err := store.ListHoldings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(holdings) != 1 {
		t.Fatalf("got %d holdings, want 1", len(holdings))
	}
	if holdings[0].Shares != 5 || holdings[0].AvgPrice != 310 {
		t.Errorf("holding = %+v, want replaced values", holdings[0])
	}

	if err := store.RemoveHolding(ctx, "MSFT"); err != nil {
		t.Fatal(err)
	}
	holdings, err = store.ListHoldings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(holdings) != 0 {
		t.Fatalf("after remove: %+v", holdings)
	}
}

func TestCompanyCacheRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, ok, err := store.GetCompany(ctx, "AAPL"); err != nil || ok {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}

	pe := 29.5
	profile := models.CompanyProfile{
		Ticker:     "AAPL",
		Name:       "Apple Inc.",
		Sector:     "Technology",
		Summary:    "아이폰을 만드는 회사입니다.",
		TrailingPE: &pe,
		MarketCap:  2_900_000_000_000,
	}
	if err := store.PutCompany(ctx, profile); err != nil {
		t.Fatal(err)
	}

	got, ok, err := store.GetCompany(ctx, "AAPL")
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if got.Name != profile.Name || got.Summary != profile.Summary || got.MarketCap != profile.MarketCap {
		t.Errorf("profile = %+v", got)
	}
	if got.TrailingPE == nil || *got.TrailingPE != pe {
		t.Errorf("trailing pe = %v", got.TrailingPE)
	}
}
