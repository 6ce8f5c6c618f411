package usecase

import (
	"context"
	"time"

	"StockPilot/internal/domain/models"
	"StockPilot/internal/domain/repository"
)

// MarketData is the narrow data-access surface the usecases need. The
// production implementation sits in internal/service/marketdata and caches
// every call; tests substitute plain fakes.
type MarketData interface {
	History(ctx context.Context, ticker string, period repository.Period) []models.PriceBar
	HistoryRange(ctx context.Context, ticker string, from, to time.Time) []models.PriceBar
	LastPrice(ctx context.Context, ticker string) float64
	Profile(ctx context.Context, ticker string) models.CompanyProfile
	TranslatedProfile(ctx context.Context, ticker string) models.CompanyProfile
	News(ctx context.Context, ticker string) []models.NewsItem
	Summary(ctx context.Context) models.MarketSummary
}
