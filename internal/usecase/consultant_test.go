package usecase

import (
	"reflect"
	"testing"
	"time"

	"StockPilot/internal/domain/models"
)

func TestActionForScore(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{-6, models.ActionSell},
		{-3, models.ActionSell},
		{-2, models.ActionSell},
		{-1, models.ActionHold},
		{0, models.ActionHold},
		{1, models.ActionHold},
		{2, models.ActionHold},
		{3, models.ActionBuy},
		{6, models.ActionBuy},
	}
	for _, tt := range tests {
		if got := ActionForScore(tt.score); got != tt.want {
			t.Errorf("score %d: got %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestAdviseNeutralInputsHold(t *testing.T) {
	// Too few bars for any indicator, no profile, no news.
	start := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	series := bars(start, 100, 100, 100, 100, 100)

	c := NewConsultant()
	advice := c.Advise("AAPL", series, models.CompanyProfile{}, nil)

	if advice.Score != 0 {
		t.Fatalf("score = %d, want 0", advice.Score)
	}
	if advice.Action != models.ActionHold {
		t.Fatalf("action = %s, want HOLD", advice.Action)
	}
	if len(advice.Reasons) != 0 {
		t.Fatalf("reasons = %v, want none", advice.Reasons)
	}
	if advice.Ticker != "AAPL" {
		t.Fatalf("ticker = %s", advice.Ticker)
	}
}

func TestAdviseUndervaluedScoresBuySide(t *testing.T) {
	pe := 8.0
	profile := models.CompanyProfile{Ticker: "KO", TrailingPE: &pe}

	c := NewConsultant()
	advice := c.Advise("KO", nil, profile, nil)

	if advice.Score != 2 {
		t.Fatalf("score = %d, want 2", advice.Score)
	}
	want := []string{"펀더멘털 분석상 저평가 상태입니다."}
	if !reflect.DeepEqual(advice.Reasons, want) {
		t.Fatalf("reasons = %v, want %v", advice.Reasons, want)
	}
	if advice.Action != models.ActionHold {
		t.Fatalf("action = %s, want HOLD", advice.Action)
	}
}

func TestAdviseBullishTrendPlusValuationBuys(t *testing.T) {
	// 250 strictly rising closes: close > SMA50 > SMA200, RSI pegged high.
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	closes := make([]float64, 250)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	series := bars(start, closes...)

	pe := 10.0
	profile := models.CompanyProfile{Ticker: "MSFT", TrailingPE: &pe}

	c := NewConsultant()
	advice := c.Advise("MSFT", series, profile, nil)

	// trend +2, RSI overbought -1, undervalued +2.
	if advice.Score != 3 {
		t.Fatalf("score = %d, want 3", advice.Score)
	}
	if advice.Action != models.ActionBuy {
		t.Fatalf("action = %s, want BUY", advice.Action)
	}
	want := []string{
		"기술적 분석상 상승 추세입니다.",
		"RSI 지표가 과매수 구간입니다. 조정 가능성이 있습니다.",
		"펀더멘털 분석상 저평가 상태입니다.",
	}
	if !reflect.DeepEqual(advice.Reasons, want) {
		t.Fatalf("reasons = %v, want %v", advice.Reasons, want)
	}
}

func TestAdviseBearishTrendSells(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	closes := make([]float64, 250)
	for i := range closes {
		closes[i] = 500 - float64(i)
	}
	series := bars(start, closes...)

	c := NewConsultant()
	advice := c.Advise("INTC", series, models.CompanyProfile{}, nil)

	// trend -2, RSI oversold +1.
	if advice.Score != -1 {
		t.Fatalf("score = %d, want -1", advice.Score)
	}
	if advice.Action != models.ActionHold {
		t.Fatalf("action = %s, want HOLD", advice.Action)
	}
}

func TestAdviseDeterministic(t *testing.T) {
	start := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	closes := make([]float64, 100)
	for i := range closes {
		closes[i] = 50 + float64(i%7)
	}
	series := bars(start, closes...)
	news := []models.NewsItem{{Title: "Record earnings, great quarter", Summary: "profit beats"}}

	c := NewConsultant()
	first := c.Advise("NVDA", series, models.CompanyProfile{}, news)
	second := c.Advise("NVDA", series, models.CompanyProfile{}, news)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs produced different advice")
	}
}
