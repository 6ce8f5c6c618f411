package repository

import (
	"context"
	"time"

	"StockPilot/internal/domain/models"
)

// Period represents a price-history lookback window.
type Period string

const (
	P5D  Period = "5d"
	P1Mo Period = "1mo"
	P6Mo Period = "6mo"
	P1Y  Period = "1y"
	P2Y  Period = "2y"
	P5Y  Period = "5y"
)

// WatchlistStore persists saved tickers.
type WatchlistStore interface {
	ListWatchlist(ctx context.Context) ([]models.WatchlistEntry, error)
	AddToWatchlist(ctx context.Context, ticker, name string) error
	RemoveFromWatchlist(ctx context.Context, ticker string) error
}

// HoldingStore persists portfolio positions.
type HoldingStore interface {
	ListHoldings(ctx context.Context) ([]models.Holding, error)
	UpsertHolding(ctx context.Context, h models.Holding) error
	RemoveHolding(ctx context.Context, ticker string) error
}

// CompanyCacheStore persists translated company profiles so a profile is
// translated at most once per ticker.
type CompanyCacheStore interface {
	GetCompany(ctx context.Context, ticker string) (models.CompanyProfile, bool, error)
	PutCompany(ctx context.Context, p models.CompanyProfile) error
}

// AdviceStore persists advice snapshots for later inspection.
type AdviceStore interface {
	SaveAdvice(ctx context.Context, s models.AdviceSnapshot) error
	RecentAdvice(ctx context.Context, ticker string, limit int) ([]models.AdviceSnapshot, error)
	Health(ctx context.Context) error
	Close() error
}

// AdvicePublisher streams produced advice results to downstream consumers.
type AdvicePublisher interface {
	PublishAdvice(ctx context.Context, advice models.AdviceResult) error
	Close() error
}

// Metrics records operational measurements.
type Metrics interface {
	RecordFetch(provider, ticker string)
	RecordError(kind string)
	RecordCacheHit()
	RecordCacheMiss()
	RecordLastPrice(ticker string, price float64)
	RecordAdvice(action string)
	RecordLatency(op string, seconds float64)
}

// IsValidPeriod returns true if p is a supported lookback period.
func IsValidPeriod(p Period) bool {
	switch p {
	case P5D, P1Mo, P6Mo, P1Y, P2Y, P5Y:
		return true
	default:
		return false
	}
}

// DefaultPeriod returns the default lookback period.
func DefaultPeriod() Period { return P6Mo }

// NormalizePeriod converts a raw string to a valid period (or default).
func NormalizePeriod(s string) Period {
	if s == "" {
		return DefaultPeriod()
	}
	p := Period(s)
	if IsValidPeriod(p) {
		return p
	}
	return DefaultPeriod()
}

// Days returns the calendar-day span covered by a period, padded so the
// window always includes enough trading days.
func (p Period) Days() int {
	switch p {
	case P5D:
		return 7
	case P1Mo:
		return 31
	case P6Mo:
		return 183
	case P1Y:
		return 366
	case P2Y:
		return 731
	case P5Y:
		return 1827
	default:
		return 183
	}
}

// Window converts a period to a concrete [from, to] range ending now.
func (p Period) Window(now time.Time) (time.Time, time.Time) {
	return now.AddDate(0, 0, -p.Days()), now
}
