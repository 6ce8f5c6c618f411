package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"StockPilot/internal/domain/models"
)

// ErrPriceNotFound signals that no trading day with a usable close exists in
// the lookback window. This is the one upstream failure surfaced to the
// caller instead of degrading to a default value.
var ErrPriceNotFound = errors.New("historical price not found")

// Lookback window when the requested date falls on a non-trading day.
const timeMachineLookbackDays = 5

// TimeMachine answers "what would an investment made on a past date be
// worth today".
type TimeMachine struct {
	data MarketData
}

func NewTimeMachine(data MarketData) *TimeMachine {
	return &TimeMachine{data: data}
}

// Compute resolves the close of the requested date (or the nearest earlier
// trading day within the lookback window) and projects the investment to
// the current price.
func (t *TimeMachine) Compute(ctx context.Context, req models.TimeMachineRequest) (models.TimeMachineResult, error) {
	target, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return models.TimeMachineResult{}, fmt.Errorf("parse date: %w", err)
	}

	from := target.AddDate(0, 0, -timeMachineLookbackDays)
	to := target.AddDate(0, 0, 1)
	series := t.data.HistoryRange(ctx, req.Ticker, from, to)

	pastPrice := 0.0
	if len(series) > 0 {
		pastPrice = series[len(series)-1].Close
	}
	if pastPrice == 0 {
		return models.TimeMachineResult{}, ErrPriceNotFound
	}

	currentPrice := t.data.LastPrice(ctx, req.Ticker)

	shares := req.Amount / pastPrice
	currentValue := shares * currentPrice
	profit := currentValue - req.Amount
	roi := 0.0
	if req.Amount > 0 {
		roi = profit / req.Amount * 100
	}

	return models.TimeMachineResult{
		Ticker:       req.Ticker,
		PastDate:     req.Date,
		PastPrice:    pastPrice,
		CurrentPrice: currentPrice,
		Shares:       shares,
		Invested:     req.Amount,
		CurrentValue: currentValue,
		Profit:       profit,
		ROI:          roi,
	}, nil
}
