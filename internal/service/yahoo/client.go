package yahoo

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/equity"
	"github.com/piquette/finance-go/quote"

	"StockPilot/internal/domain/models"
	"StockPilot/internal/domain/repository"
	applogger "StockPilot/pkg/logger"
)

const (
	quoteSummaryURL = "https://query1.finance.yahoo.com/v10/finance/quoteSummary/%s"
	browserUA       = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

// Client serves quotes, charts and fundamentals from Yahoo Finance. Chart
// and quote endpoints go through finance-go; the profile endpoint is a raw
// quoteSummary call because finance-go does not expose sector or business
// summary.
type Client struct {
	rest *resty.Client
	log  *applogger.Logger
}

func NewClient(timeout time.Duration, log *applogger.Logger) *Client {
	rest := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", browserUA)
	return &Client{rest: rest, log: log}
}

// History returns daily bars for the period ending now. An empty series is
// a valid answer for unknown or delisted tickers.
func (c *Client) History(ctx context.Context, ticker string, period repository.Period) ([]models.PriceBar, error) {
	from, to := period.Window(time.Now())
	return c.HistoryRange(ctx, ticker, from, to)
}

func (c *Client) HistoryRange(_ context.Context, ticker string, from, to time.Time) ([]models.PriceBar, error) {
	params := &chart.Params{
		Symbol:   ticker,
		Start:    datetime.New(&from),
		End:      datetime.New(&to),
		Interval: datetime.OneDay,
	}

	iter := chart.Get(params)
	var series []models.PriceBar
	for iter.Next() {
		bar := iter.Bar()
		series = append(series, models.PriceBar{
			Date:   time.Unix(int64(bar.Timestamp), 0).UTC(),
			Open:   bar.Open.InexactFloat64(),
			High:   bar.High.InexactFloat64(),
			Low:    bar.Low.InexactFloat64(),
			Close:  bar.Close.InexactFloat64(),
			Volume: int64(bar.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("chart %s: %w", ticker, err)
	}
	return series, nil
}

// LastPrice returns the regular-market price, 0 when the quote fails.
func (c *Client) LastPrice(_ context.Context, ticker string) float64 {
	q, err := quote.Get(ticker)
	if err != nil || q == nil {
		c.log.Debug("quote failed", applogger.String("ticker", ticker), applogger.Error(err))
		return 0
	}
	return q.RegularMarketPrice
}

// Quote returns a single index/asset quote for the market summary.
func (c *Client) Quote(_ context.Context, symbol string) (models.IndexQuote, error) {
	q, err := quote.Get(symbol)
	if err != nil {
		return models.IndexQuote{}, fmt.Errorf("quote %s: %w", symbol, err)
	}
	if q == nil {
		return models.IndexQuote{}, fmt.Errorf("quote %s: empty response", symbol)
	}
	return models.IndexQuote{
		Symbol:        q.Symbol,
		Name:          q.ShortName,
		Price:         q.RegularMarketPrice,
		Change:        q.RegularMarketChange,
		ChangePercent: q.RegularMarketChangePercent,
	}, nil
}

// Profile joins equity fundamentals with the quoteSummary asset profile.
// Either source may fail independently; the result carries whatever was
// retrievable.
func (c *Client) Profile(ctx context.Context, ticker string) models.CompanyProfile {
	profile := models.CompanyProfile{Ticker: ticker}

	eq, err := equity.Get(ticker)
	if err != nil || eq == nil {
		c.log.Debug("equity fetch failed", applogger.String("ticker", ticker), applogger.Error(err))
	} else {
		profile.Name = eq.LongName
		if profile.Name == "" {
			profile.Name = eq.ShortName
		}
		profile.MarketCap = eq.MarketCap
		profile.TrailingPE = nonZeroPtr(eq.TrailingPE)
		profile.ForwardPE = nonZeroPtr(eq.ForwardPE)
		profile.PriceToBook = nonZeroPtr(eq.PriceToBook)
		profile.EPS = nonZeroPtr(eq.EpsTrailingTwelveMonths)
	}

	if err := c.fillSummary(ctx, ticker, &profile); err != nil {
		c.log.Debug("asset profile fetch failed", applogger.String("ticker", ticker), applogger.Error(err))
	}
	return profile
}

// Yahoo wraps every numeric statistic in a {raw, fmt} envelope.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile struct {
				Sector              string `json:"sector"`
				LongBusinessSummary string `json:"longBusinessSummary"`
			} `json:"assetProfile"`
			DefaultKeyStatistics struct {
				PegRatio rawValue `json:"pegRatio"`
			} `json:"defaultKeyStatistics"`
			SummaryDetail struct {
				Beta          rawValue `json:"beta"`
				DividendYield rawValue `json:"dividendYield"`
			} `json:"summaryDetail"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

func (c *Client) fillSummary(ctx context.Context, ticker string, profile *models.CompanyProfile) error {
	var body quoteSummaryResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParam("modules", "assetProfile,defaultKeyStatistics,summaryDetail").
		SetResult(&body).
		Get(fmt.Sprintf(quoteSummaryURL, ticker))
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("quoteSummary %s: status %d", ticker, resp.StatusCode())
	}
	if len(body.QuoteSummary.Result) == 0 {
		return fmt.Errorf("quoteSummary %s: no result", ticker)
	}

	r := body.QuoteSummary.Result[0]
	profile.Sector = r.AssetProfile.Sector
	profile.Summary = r.AssetProfile.LongBusinessSummary
	if v := r.DefaultKeyStatistics.PegRatio.Raw; v != nil {
		profile.PEG = v
	}
	if v := r.SummaryDetail.Beta.Raw; v != nil {
		profile.Beta = v
	}
	if v := r.SummaryDetail.DividendYield.Raw; v != nil {
		profile.DividendYield = v
	}
	return nil
}

func nonZeroPtr(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}
