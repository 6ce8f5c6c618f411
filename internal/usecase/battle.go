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

const battlePickCount = 3

// Persona is a fixed investment-style policy. Sectors is the allow-list the
// persona samples from; empty means the whole universe.
type Persona struct {
	ID      string
	Name    string
	Style   string
	Desc    string
	Avatar  string
	Sectors []string
}

// The roster is static. Order matters: it is the tie-break order when two
// personas realize the same return.
var battlePersonas = []Persona{
	{
		ID:     "warren",
		Name:   "워렌 (Warren)",
		Style:  "가치 투자 (Value)",
		Desc:   "저평가된 우량주와 배당주를 선호합니다.",
		Avatar: "🐢",
		Sectors: []string{
			universe.SectorFinancial, universe.SectorConsumerDef,
			universe.SectorHealthcare, universe.SectorEnergy,
		},
	},
	{
		ID:     "elon",
		Name:   "일론 (Elon)",
		Style:  "성장 투자 (Growth)",
		Desc:   "높은 변동성과 미래 기술(Tech)에 베팅합니다.",
		Avatar: "🚀",
		Sectors: []string{
			universe.SectorTechnology, universe.SectorCommunication,
			universe.SectorConsumerCycl,
		},
	},
	{
		ID:     "quant",
		Name:   "퀀트 (Quant)",
		Style:  "모멘텀 (Momentum)",
		Desc:   "최근 추세가 강력한 종목을 기계적으로 매수합니다.",
		Avatar: "🤖",
	},
}

// BattleSimulator pits the persona roster against each other on realized
// 1-month returns of randomly sampled picks.
type BattleSimulator struct {
	data MarketData

	mu  sync.Mutex
	rng *rand.Rand
}

// NewBattleSimulator creates a simulator. The random source is injectable
// so tests can pin the sampled candidate sets.
func NewBattleSimulator(data MarketData, rng *rand.Rand) *BattleSimulator {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &BattleSimulator{data: data, rng: rng}
}

// Run simulates all personas and ranks them by average return descending.
// A pick whose history fetch fails is skipped without failing the persona;
// a persona whose picks all failed scores 0.
func (b *BattleSimulator) Run(ctx context.Context) []models.BattleResult {
	results := make([]models.BattleResult, len(battlePersonas))
	var wg sync.WaitGroup
	for i, p := range battlePersonas {
		picks := b.selectStocks(p)
		wg.Add(1)
		go func(i int, p Persona, picks []universe.Stock) {
			defer wg.Done()
			results[i] = b.simulate(ctx, p, picks)
		}(i, p, picks)
	}
	wg.Wait()

	// Stable sort preserves roster order for equal returns.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Return > results[j].Return
	})
	for i := range results {
		results[i].Rank = i + 1
	}
	return results
}

func (b *BattleSimulator) simulate(ctx context.Context, p Persona, picks []universe.Stock) models.BattleResult {
	res := models.BattleResult{
		ID:     p.ID,
		Name:   p.Name,
		Style:  p.Style,
		Desc:   p.Desc,
		Avatar: p.Avatar,
	}

	var total float64
	for _, stock := range picks {
		series := b.data.History(ctx, stock.Ticker, repository.P1Mo)
		if len(series) == 0 {
			continue
		}
		start := series[0].Close
		end := series[len(series)-1].Close
		if start == 0 {
			continue
		}
		ret := (end - start) / start * 100

		total += ret
		res.Portfolio = append(res.Portfolio, models.BattleHolding{
			Ticker: stock.Ticker,
			Name:   stock.NameKR,
			Return: ret,
			Price:  end,
		})
	}
	if len(res.Portfolio) > 0 {
		res.Return = total / float64(len(res.Portfolio))
	}
	return res
}

// selectStocks samples battlePickCount stocks without replacement from the
// persona's sector allow-list, falling back to the whole universe when the
// filter yields nothing.
func (b *BattleSimulator) selectStocks(p Persona) []universe.Stock {
	candidates := universe.BySector(p.Sectors...)
	if len(candidates) == 0 {
		candidates = universe.All()
	}

	b.mu.Lock()
	idx := b.rng.Perm(len(candidates))
	b.mu.Unlock()

	n := battlePickCount
	if n > len(candidates) {
		n = len(candidates)
	}
	picks := make([]universe.Stock, 0, n)
	for _, i := range idx[:n] {
		picks = append(picks, candidates[i])
	}
	return picks
}
