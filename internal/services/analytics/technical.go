package analytics

import (
	"StockPilot/internal/domain/models"
)

const (
	rsiWindow    = 14
	macdFast     = 12
	macdSlow     = 26
	macdSignal   = 9
	smaShortSpan = 50
	smaLongSpan  = 200
)

// TechnicalAnalyzer derives RSI, MACD and moving-average trend from a daily
// price series. An empty series yields the neutral signal, never an error.
type TechnicalAnalyzer struct{}

func NewTechnicalAnalyzer() *TechnicalAnalyzer {
	return &TechnicalAnalyzer{}
}

// Analyze computes the latest value of each rolling indicator. Fields whose
// window exceeds the series length stay nil.
func (a *TechnicalAnalyzer) Analyze(series []models.PriceBar) models.TechnicalSignal {
	sig := models.TechnicalSignal{Trend: models.TrendNeutral}
	if len(series) == 0 {
		return sig
	}

	closes := make([]float64, len(series))
	for i, bar := range series {
		closes[i] = bar.Close
	}

	sig.RSI = lastRSI(closes, rsiWindow)

	macdLine := subSeries(ema(closes, macdFast), ema(closes, macdSlow))
	sig.MACD = lastOf(macdLine)
	sig.MACDSignal = lastOf(ema(macdLine, macdSignal))

	sig.SMA50 = lastSMA(closes, smaShortSpan)
	sig.SMA200 = lastSMA(closes, smaLongSpan)

	last := closes[len(closes)-1]
	switch {
	case sig.SMA50 != nil && sig.SMA200 != nil && last > *sig.SMA50 && *sig.SMA50 > *sig.SMA200:
		sig.Trend = models.TrendBullish
	case sig.SMA50 != nil && sig.SMA200 != nil && last < *sig.SMA50 && *sig.SMA50 < *sig.SMA200:
		sig.Trend = models.TrendBearish
	}
	return sig
}

// lastRSI computes the most recent RSI reading using a simple rolling mean
// of gains and losses. Returns nil when the series is too short or the
// window is completely flat (0/0 relative strength is undefined).
func lastRSI(closes []float64, window int) *float64 {
	if len(closes) <= window {
		return nil
	}
	var gain, loss float64
	for i := len(closes) - window; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	avgGain := gain / float64(window)
	avgLoss := loss / float64(window)
	if avgLoss == 0 {
		if avgGain == 0 {
			return nil
		}
		return ptr(100.0)
	}
	rs := avgGain / avgLoss
	return ptr(100.0 - 100.0/(1.0+rs))
}

// ema returns the exponential moving average with alpha = 2/(span+1),
// seeded at the first value.
func ema(values []float64, span int) []float64 {
	if len(values) == 0 {
		return nil
	}
	alpha := 2.0 / float64(span+1)
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

func subSeries(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

func lastSMA(values []float64, window int) *float64 {
	if len(values) < window {
		return nil
	}
	var sum float64
	for _, v := range values[len(values)-window:] {
		sum += v
	}
	return ptr(sum / float64(window))
}

func lastOf(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	return ptr(values[len(values)-1])
}

func ptr(v float64) *float64 { return &v }
