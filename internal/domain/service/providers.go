package service

import (
	"context"
	"time"

	"StockPilot/internal/domain/models"
	"StockPilot/internal/domain/repository"
)

// PriceProvider serves raw price data from an upstream market-data source.
// History may return an empty series; LastPrice returns 0.0 on failure.
type PriceProvider interface {
	History(ctx context.Context, ticker string, period repository.Period) ([]models.PriceBar, error)
	HistoryRange(ctx context.Context, ticker string, from, to time.Time) ([]models.PriceBar, error)
	LastPrice(ctx context.Context, ticker string) float64
	Quote(ctx context.Context, symbol string) (models.IndexQuote, error)
}

// ProfileProvider serves company fundamentals. Returns an empty profile on
// failure, never an error the caller must branch on.
type ProfileProvider interface {
	Profile(ctx context.Context, ticker string) models.CompanyProfile
}

// NewsProvider serves recent headlines for a query. Empty on failure.
type NewsProvider interface {
	News(ctx context.Context, query string) []models.NewsItem
}

// Translator translates text to a target locale, falling back to the
// original text on any failure.
type Translator interface {
	Translate(ctx context.Context, text, targetLocale string) string
}

// MacroFeed serves broad market gauges.
type MacroFeed interface {
	FearGreedIndex(ctx context.Context) (float64, error)
}
