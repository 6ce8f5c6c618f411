package analytics

import (
	"math/rand"
	"testing"
	"time"

	"StockPilot/internal/domain/models"
)

func seriesFromCloses(closes []float64) []models.PriceBar {
	bars := make([]models.PriceBar, len(closes))
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		bars[i] = models.PriceBar{Date: day.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1000}
	}
	return bars
}

func TestAnalyzeEmptySeries(t *testing.T) {
	sig := NewTechnicalAnalyzer().Analyze(nil)
	if sig.Trend != models.TrendNeutral {
		t.Fatalf("trend = %q, want neutral", sig.Trend)
	}
	if sig.RSI != nil || sig.MACD != nil || sig.SMA50 != nil || sig.SMA200 != nil {
		t.Fatal("expected all numeric fields absent for empty series")
	}
}

func TestRSIBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	a := NewTechnicalAnalyzer()
	for trial := 0; trial < 50; trial++ {
		closes := make([]float64, 60)
		closes[0] = 100
		for i := 1; i < len(closes); i++ {
			closes[i] = closes[i-1] * (1 + (rng.Float64()-0.5)*0.06)
		}
		sig := a.Analyze(seriesFromCloses(closes))
		if sig.RSI == nil {
			t.Fatalf("trial %d: RSI absent for %d bars", trial, len(closes))
		}
		if *sig.RSI < 0 || *sig.RSI > 100 {
			t.Fatalf("trial %d: RSI = %v out of [0,100]", trial, *sig.RSI)
		}
	}
}

func TestRSIExtremes(t *testing.T) {
	a := NewTechnicalAnalyzer()

	up := make([]float64, 30)
	for i := range up {
		up[i] = 100 + float64(i)
	}
	sig := a.Analyze(seriesFromCloses(up))
	if sig.RSI == nil || *sig.RSI != 100 {
		t.Fatalf("monotone rising series: RSI = %v, want 100", sig.RSI)
	}

	flat := make([]float64, 30)
	for i := range flat {
		flat[i] = 100
	}
	sig = a.Analyze(seriesFromCloses(flat))
	if sig.RSI != nil {
		t.Fatalf("flat series: RSI = %v, want absent", *sig.RSI)
	}
}

func TestTrendLabels(t *testing.T) {
	a := NewTechnicalAnalyzer()

	rising := make([]float64, 250)
	for i := range rising {
		rising[i] = 100 + float64(i)
	}
	if sig := a.Analyze(seriesFromCloses(rising)); sig.Trend != models.TrendBullish {
		t.Fatalf("rising series trend = %q, want bullish", sig.Trend)
	}

	falling := make([]float64, 250)
	for i := range falling {
		falling[i] = 400 - float64(i)
	}
	if sig := a.Analyze(seriesFromCloses(falling)); sig.Trend != models.TrendBearish {
		t.Fatalf("falling series trend = %q, want bearish", sig.Trend)
	}

	short := make([]float64, 100)
	for i := range short {
		short[i] = 100 + float64(i)
	}
	if sig := a.Analyze(seriesFromCloses(short)); sig.Trend != models.TrendNeutral {
		t.Fatalf("100-bar series trend = %q, want neutral (no SMA200)", sig.Trend)
	}
}

func TestMACDCrossesZeroOnReversal(t *testing.T) {
	closes := make([]float64, 0, 80)
	for i := 0; i < 40; i++ {
		closes = append(closes, 100-float64(i))
	}
	for i := 0; i < 40; i++ {
		closes = append(closes, 60+float64(i)*2)
	}
	sig := NewTechnicalAnalyzer().Analyze(seriesFromCloses(closes))
	if sig.MACD == nil || sig.MACDSignal == nil {
		t.Fatal("MACD absent")
	}
	if *sig.MACD <= 0 {
		t.Fatalf("MACD = %v after strong reversal up, want > 0", *sig.MACD)
	}
}

func TestEMASeededAtFirstValue(t *testing.T) {
	out := ema([]float64{10, 20}, 9)
	if out[0] != 10 {
		t.Fatalf("ema[0] = %v, want first value 10", out[0])
	}
	alpha := 2.0 / 10.0
	want := alpha*20 + (1-alpha)*10
	if out[1] != want {
		t.Fatalf("ema[1] = %v, want %v", out[1], want)
	}
}
