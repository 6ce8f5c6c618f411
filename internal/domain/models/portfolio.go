package models

import "time"

// WatchlistEntry is one saved ticker.
type WatchlistEntry struct {
	Ticker  string    `json:"ticker"`
	Name    string    `json:"name,omitempty"`
	AddedAt time.Time `json:"added_at"`
}

// Holding is one stored portfolio position.
type Holding struct {
	Ticker   string  `json:"ticker"`
	Shares   float64 `json:"shares"`
	AvgPrice float64 `json:"avg_price"`
}

// EnrichedHolding is a Holding joined with a live price.
// CurrentValue = Shares * CurrentPrice; ProfitLoss = CurrentValue - CostBasis.
type EnrichedHolding struct {
	Ticker       string  `json:"ticker"`
	Shares       float64 `json:"shares"`
	AvgPrice     float64 `json:"avg_price"`
	CurrentPrice float64 `json:"current_price"`
	CurrentValue float64 `json:"current_value"`
	CostBasis    float64 `json:"cost_basis"`
	ProfitLoss   float64 `json:"profit_loss"`
}

// PortfolioAnalysis is the aggregate health assessment.
type PortfolioAnalysis struct {
	Score     int      `json:"score"`
	Summary   string   `json:"summary"`
	Advice    []string `json:"advice"`
	RiskLevel string   `json:"risk_level"`
}

// CorrelationMatrix is a square matrix over portfolio tickers plus the fixed
// macro asset set. Diagonal entries are always 1.0; off-diagonal values are
// deterministic placeholder estimates, not statistical correlation.
type CorrelationMatrix struct {
	Assets []string    `json:"assets"`
	Matrix [][]float64 `json:"matrix"`
}

// BattleHolding is one persona pick with its realized 1-month return.
type BattleHolding struct {
	Ticker string  `json:"ticker"`
	Name   string  `json:"name"`
	Return float64 `json:"return"`
	Price  float64 `json:"price"`
}

// BattleResult ranks one persona's mock portfolio by realized return.
type BattleResult struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Style     string          `json:"style"`
	Desc      string          `json:"desc"`
	Avatar    string          `json:"avatar"`
	Return    float64         `json:"return"`
	Portfolio []BattleHolding `json:"portfolio"`
	Rank      int             `json:"rank"`
}

// TimeMachineResult answers "what if I had invested amount on date".
type TimeMachineResult struct {
	Ticker       string  `json:"ticker"`
	PastDate     string  `json:"past_date"`
	PastPrice    float64 `json:"past_price"`
	CurrentPrice float64 `json:"current_price"`
	Shares       float64 `json:"shares"`
	Invested     float64 `json:"initial_investment"`
	CurrentValue float64 `json:"current_value"`
	Profit       float64 `json:"profit"`
	ROI          float64 `json:"roi"`
}
