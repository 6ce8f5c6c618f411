package models

import "time"

// StockEvent is one timeline entry derived from a news item.
type StockEvent struct {
	Date        string `json:"date"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// CalendarEvent is one smart-calendar entry: a macro release, an option
// expiry, or a simulated per-ticker event.
type CalendarEvent struct {
	Date     string `json:"date"`
	Time     string `json:"time,omitempty"`
	Country  string `json:"country"`
	Event    string `json:"event"`
	Impact   string `json:"impact"`
	Type     string `json:"type,omitempty"`
	Forecast string `json:"forecast,omitempty"`
	Previous string `json:"previous,omitempty"`
	Ticker   string `json:"ticker,omitempty"`
}

// SearchResult is one lookup hit against the stock universe.
type SearchResult struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
	NameKR string `json:"name_kr,omitempty"`
	Sector string `json:"sector"`
}

// ChatReply is a canned guide response routed by keyword.
type ChatReply struct {
	Response string `json:"response"`
}

// NewsBriefing is a translated, sentiment-scored digest of top headlines.
type NewsBriefing struct {
	Items     []BriefingItem `json:"items"`
	Sentiment SentimentSignal `json:"sentiment"`
}

// BriefingItem is one translated headline in a briefing.
type BriefingItem struct {
	Title      string `json:"title"`
	Translated string `json:"translated"`
	Link       string `json:"link"`
	Published  string `json:"published"`
}

// StockDetail is the full per-ticker view: live quote, translated profile,
// recent history, and long-horizon seasonality.
type StockDetail struct {
	Ticker      string            `json:"ticker"`
	Price       float64           `json:"price"`
	Profile     CompanyProfile    `json:"profile"`
	History     []PriceBar        `json:"history"`
	Seasonality SeasonalityReport `json:"seasonality"`
}

// AdviceSnapshot is a persisted advice result row.
type AdviceSnapshot struct {
	Ticker    string    `json:"ticker"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Score     int       `json:"score"`
	RSI       float64   `json:"rsi"`
	Trend     string    `json:"trend"`
	Sentiment float64   `json:"sentiment"`
}
