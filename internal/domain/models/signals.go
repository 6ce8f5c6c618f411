package models

// Trend labels emitted by the technical analyzer.
const (
	TrendBullish = "bullish"
	TrendBearish = "bearish"
	TrendNeutral = "neutral"
)

// Valuation labels emitted by the fundamental analyzer.
const (
	ValuationUndervalued = "undervalued"
	ValuationOvervalued  = "overvalued"
	ValuationFair        = "fair"
)

// Sentiment labels emitted by the sentiment analyzer.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Advice actions emitted by the consultant.
const (
	ActionBuy  = "BUY"
	ActionHold = "HOLD"
	ActionSell = "SELL"
)

// TechnicalSignal summarizes price action. Numeric fields are the most
// recent value of each rolling series; nil means the series was too short
// to produce one.
type TechnicalSignal struct {
	RSI        *float64 `json:"rsi,omitempty"`
	MACD       *float64 `json:"macd,omitempty"`
	MACDSignal *float64 `json:"macd_signal,omitempty"`
	SMA50      *float64 `json:"sma50,omitempty"`
	SMA200     *float64 `json:"sma200,omitempty"`
	Trend      string   `json:"trend"`
}

// FundamentalSignal summarizes valuation. Ratio fields are passthrough for
// display; only trailing P/E feeds the label.
type FundamentalSignal struct {
	Valuation   string   `json:"valuation"`
	TrailingPE  *float64 `json:"trailing_pe,omitempty"`
	ForwardPE   *float64 `json:"forward_pe,omitempty"`
	PEG         *float64 `json:"peg,omitempty"`
	PriceToBook *float64 `json:"price_to_book,omitempty"`
	Beta        *float64 `json:"beta,omitempty"`
}

// SentimentSignal summarizes news polarity over a headline batch.
type SentimentSignal struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
	Count int     `json:"count"`
}

// SignalSet bundles the three analyzer outputs for one ticker.
type SignalSet struct {
	Technical   TechnicalSignal   `json:"technical"`
	Fundamental FundamentalSignal `json:"fundamental"`
	Sentiment   SentimentSignal   `json:"sentiment"`
}

// AdviceResult is the combined recommendation. Action is a pure function of
// Score; Reasons preserve rule evaluation order.
type AdviceResult struct {
	Ticker  string    `json:"ticker"`
	Action  string    `json:"action"`
	Score   int       `json:"score"`
	Reasons []string  `json:"reasons"`
	Signals SignalSet `json:"signals"`
}
