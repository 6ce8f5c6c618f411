package usecase

import (
	"context"
	"math/rand"
	"sort"
	"sync"

	"StockPilot/internal/domain/models"
	"StockPilot/internal/domain/repository"
	"StockPilot/internal/domain/universe"
)

const (
	moversSampleSize  = 15
	moversTopCount    = 5
	recsSampleSize    = 8
	recsTopCount      = 3
)

// Recommendation is one positive-score pick from the recommendation scan.
type Recommendation struct {
	Ticker  string   `json:"ticker"`
	Name    string   `json:"name"`
	Action  string   `json:"action"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
	Price   float64  `json:"price"`
}

// Competitor is one same-sector peer with basic valuation data.
type Competitor struct {
	Ticker    string   `json:"ticker"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	MarketCap int64    `json:"market_cap"`
	PERatio   *float64 `json:"pe_ratio,omitempty"`
}

// Scanner runs batch scans over the stock universe. Candidates fan out in
// parallel; a failing candidate is dropped without failing the batch, and
// final ordering is determined only by the sort key.
type Scanner struct {
	data       MarketData
	consultant *Consultant

	mu  sync.Mutex
	rng *rand.Rand
}

// NewScanner creates a scanner with an injectable random source for
// deterministic candidate sampling in tests.
func NewScanner(data MarketData, consultant *Consultant, rng *rand.Rand) *Scanner {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Scanner{data: data, consultant: consultant, rng: rng}
}

// Movers samples candidates, computes each one's latest day-over-day change
// from a 5-day window, and reports the top gainers plus the bottom losers.
// Losers are reversed so the worst comes first.
func (s *Scanner) Movers(ctx context.Context) models.MoversReport {
	candidates := s.sample(universe.All(), moversSampleSize)

	movers := make([]models.Mover, 0, len(candidates))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, stock := range candidates {
		wg.Add(1)
		go func(stock universe.Stock) {
			defer wg.Done()
			series := s.data.History(ctx, stock.Ticker, repository.P5D)
			if len(series) < 2 {
				return
			}
			prev := series[len(series)-2].Close
			curr := series[len(series)-1].Close
			if prev == 0 {
				return
			}
			mu.Lock()
			movers = append(movers, models.Mover{
				Ticker:        stock.Ticker,
				Name:          stock.NameKR,
				Price:         curr,
				ChangePercent: (curr - prev) / prev * 100,
			})
			mu.Unlock()
		}(stock)
	}
	wg.Wait()

	sort.Slice(movers, func(i, j int) bool {
		return movers[i].ChangePercent > movers[j].ChangePercent
	})

	report := models.MoversReport{}
	if len(movers) > moversTopCount {
		report.Gainers = movers[:moversTopCount]
	} else {
		report.Gainers = movers
	}

	loserCount := moversTopCount
	if loserCount > len(movers) {
		loserCount = len(movers)
	}
	for i := 0; i < loserCount; i++ {
		report.Losers = append(report.Losers, movers[len(movers)-1-i])
	}
	return report
}

// Recommendations samples candidates, runs the full consultation on each,
// and keeps only positive scorers, best first, at most three.
func (s *Scanner) Recommendations(ctx context.Context) []Recommendation {
	candidates := s.sample(universe.All(), recsSampleSize)

	recs := make([]Recommendation, 0, len(candidates))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, stock := range candidates {
		wg.Add(1)
		go func(stock universe.Stock) {
			defer wg.Done()
			series := s.data.History(ctx, stock.Ticker, repository.P6Mo)
			profile := s.data.Profile(ctx, stock.Ticker)
			news := s.data.News(ctx, stock.Ticker)

			advice := s.consultant.Advise(stock.Ticker, series, profile, news)
			if advice.Score <= 0 {
				return
			}
			price := s.data.LastPrice(ctx, stock.Ticker)
			mu.Lock()
			recs = append(recs, Recommendation{
				Ticker:  stock.Ticker,
				Name:    stock.NameKR,
				Action:  advice.Action,
				Score:   advice.Score,
				Reasons: advice.Reasons,
				Price:   price,
			})
			mu.Unlock()
		}(stock)
	}
	wg.Wait()

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
	if len(recs) > recsTopCount {
		recs = recs[:recsTopCount]
	}
	return recs
}

// Competitors lists every same-sector peer of ticker from the universe with
// its live price and valuation basics.
func (s *Scanner) Competitors(ctx context.Context, ticker string) []Competitor {
	current, ok := universe.Find(ticker)
	if !ok || current.Sector == "" {
		return nil
	}

	var peers []universe.Stock
	for _, stock := range universe.BySector(current.Sector) {
		if stock.Ticker != current.Ticker {
			peers = append(peers, stock)
		}
	}

	out := make([]Competitor, len(peers))
	var wg sync.WaitGroup
	for i, stock := range peers {
		wg.Add(1)
		go func(i int, stock universe.Stock) {
			defer wg.Done()
			profile := s.data.Profile(ctx, stock.Ticker)
			out[i] = Competitor{
				Ticker:    stock.Ticker,
				Name:      stock.NameKR,
				Price:     s.data.LastPrice(ctx, stock.Ticker),
				MarketCap: profile.MarketCap,
				PERatio:   profile.TrailingPE,
			}
		}(i, stock)
	}
	wg.Wait()
	return out
}

func (s *Scanner) sample(stocks []universe.Stock, n int) []universe.Stock {
	if n > len(stocks) {
		n = len(stocks)
	}
	s.mu.Lock()
	idx := s.rng.Perm(len(stocks))
	s.mu.Unlock()

	out := make([]universe.Stock, 0, n)
	for _, i := range idx[:n] {
		out = append(out, stocks[i])
	}
	return out
}
