package models

import "time"

// PriceBar is a single trading day of OHLCV data.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// CompanyProfile holds fundamental fields for a ticker. Fields may be
// partially populated; nil pointers mean "unknown", never zero.
type CompanyProfile struct {
	Ticker        string   `json:"ticker"`
	Name          string   `json:"name,omitempty"`
	Sector        string   `json:"sector,omitempty"`
	Summary       string   `json:"summary,omitempty"`
	TrailingPE    *float64 `json:"trailing_pe,omitempty"`
	ForwardPE     *float64 `json:"forward_pe,omitempty"`
	PEG           *float64 `json:"peg,omitempty"`
	PriceToBook   *float64 `json:"price_to_book,omitempty"`
	Beta          *float64 `json:"beta,omitempty"`
	MarketCap     int64    `json:"market_cap,omitempty"`
	DividendYield *float64 `json:"dividend_yield,omitempty"`
	EPS           *float64 `json:"eps,omitempty"`
}

// IsEmpty reports whether no fundamental field was resolved.
func (p CompanyProfile) IsEmpty() bool {
	return p.Name == "" && p.Sector == "" && p.TrailingPE == nil &&
		p.ForwardPE == nil && p.PriceToBook == nil && p.MarketCap == 0
}

// NewsItem is one headline from a news feed, in recency order.
type NewsItem struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Link      string `json:"link"`
	Published string `json:"published"`
}

// IndexQuote is a snapshot for one market index or macro instrument.
type IndexQuote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
}

// FearGreed is the market sentiment gauge in [0,100].
type FearGreed struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

// MarketSummary aggregates the fixed index set plus the fear & greed gauge.
type MarketSummary struct {
	Indices   []IndexQuote `json:"indices"`
	FearGreed FearGreed    `json:"fear_greed"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Index returns the quote for a symbol, if present.
func (s MarketSummary) Index(symbol string) (IndexQuote, bool) {
	for _, q := range s.Indices {
		if q.Symbol == symbol {
			return q, true
		}
	}
	return IndexQuote{}, false
}

// RegimeIndicators carries the two inputs the regime classifier reads.
type RegimeIndicators struct {
	USDKRW      float64 `json:"usd_krw"`
	KospiChange float64 `json:"kospi_change"`
}

// MarketRegime is the coarse market-condition classification.
type MarketRegime struct {
	Regime     string           `json:"regime"`
	Advice     string           `json:"advice"`
	Indicators RegimeIndicators `json:"indicators"`
}

// Mover is one entry in the gainers/losers scan.
type Mover struct {
	Ticker        string  `json:"ticker"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"change_percent"`
}

// MoversReport holds the top gainers and losers. Losers are ordered
// worst-first.
type MoversReport struct {
	Gainers []Mover `json:"gainers"`
	Losers  []Mover `json:"losers"`
}

// VolatilityCause attributes a daily move to a news category.
type VolatilityCause struct {
	Ticker        string     `json:"ticker"`
	ChangePercent float64    `json:"change_percent"`
	MoveType      string     `json:"move_type"`
	Cause         string     `json:"cause"`
	RelatedNews   []NewsItem `json:"related_news"`
}

// WeekdayStat is the per-weekday aggregate of daily returns.
type WeekdayStat struct {
	Day          string  `json:"day"`
	AvgReturnPct float64 `json:"avg_return_pct"`
	WinRatePct   float64 `json:"win_rate_pct"`
	Count        int     `json:"count"`
}

// SeasonalityReport groups daily returns by weekday, Monday through Friday,
// restricted to weekdays present in the source series.
type SeasonalityReport struct {
	Seasonality []WeekdayStat `json:"seasonality"`
	BestDay     string        `json:"best_day,omitempty"`
	WorstDay    string        `json:"worst_day,omitempty"`
	Summary     string        `json:"summary"`
}
