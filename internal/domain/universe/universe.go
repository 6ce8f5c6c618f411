package universe

import "strings"

// Stock is one entry of the static candidate universe used by scans,
// search, and the battle simulation.
type Stock struct {
	Ticker string
	Name   string
	NameKR string
	Sector string
}

// Sector names follow the upstream data source's taxonomy.
const (
	SectorTechnology     = "Technology"
	SectorCommunication  = "Communication Services"
	SectorConsumerCycl   = "Consumer Cyclical"
	SectorFinancial      = "Financial Services"
	SectorConsumerDef    = "Consumer Defensive"
	SectorHealthcare     = "Healthcare"
	SectorEnergy         = "Energy"
	SectorIndustrials    = "Industrials"
)

var stocks = []Stock{
	{Ticker: "AAPL", Name: "Apple", NameKR: "애플", Sector: SectorTechnology},
	{Ticker: "MSFT", Name: "Microsoft", NameKR: "마이크로소프트", Sector: SectorTechnology},
	{Ticker: "NVDA", Name: "NVIDIA", NameKR: "엔비디아", Sector: SectorTechnology},
	{Ticker: "AMD", Name: "Advanced Micro Devices", NameKR: "AMD", Sector: SectorTechnology},
	{Ticker: "INTC", Name: "Intel", NameKR: "인텔", Sector: SectorTechnology},
	{Ticker: "ORCL", Name: "Oracle", NameKR: "오라클", Sector: SectorTechnology},
	{Ticker: "CRM", Name: "Salesforce", NameKR: "세일즈포스", Sector: SectorTechnology},
	{Ticker: "ADBE", Name: "Adobe", NameKR: "어도비", Sector: SectorTechnology},
	{Ticker: "AVGO", Name: "Broadcom", NameKR: "브로드컴", Sector: SectorTechnology},
	{Ticker: "QCOM", Name: "Qualcomm", NameKR: "퀄컴", Sector: SectorTechnology},
	{Ticker: "GOOGL", Name: "Alphabet", NameKR: "구글", Sector: SectorCommunication},
	{Ticker: "META", Name: "Meta Platforms", NameKR: "메타", Sector: SectorCommunication},
	{Ticker: "NFLX", Name: "Netflix", NameKR: "넷플릭스", Sector: SectorCommunication},
	{Ticker: "DIS", Name: "Walt Disney", NameKR: "디즈니", Sector: SectorCommunication},
	{Ticker: "TMUS", Name: "T-Mobile US", NameKR: "티모바일", Sector: SectorCommunication},
	{Ticker: "AMZN", Name: "Amazon", NameKR: "아마존", Sector: SectorConsumerCycl},
	{Ticker: "TSLA", Name: "Tesla", NameKR: "테슬라", Sector: SectorConsumerCycl},
	{Ticker: "NKE", Name: "Nike", NameKR: "나이키", Sector: SectorConsumerCycl},
	{Ticker: "SBUX", Name: "Starbucks", NameKR: "스타벅스", Sector: SectorConsumerCycl},
	{Ticker: "MCD", Name: "McDonald's", NameKR: "맥도날드", Sector: SectorConsumerCycl},
	{Ticker: "HD", Name: "Home Depot", NameKR: "홈디포", Sector: SectorConsumerCycl},
	{Ticker: "JPM", Name: "JPMorgan Chase", NameKR: "JP모건", Sector: SectorFinancial},
	{Ticker: "BAC", Name: "Bank of America", NameKR: "뱅크오브아메리카", Sector: SectorFinancial},
	{Ticker: "V", Name: "Visa", NameKR: "비자", Sector: SectorFinancial},
	{Ticker: "MA", Name: "Mastercard", NameKR: "마스터카드", Sector: SectorFinancial},
	{Ticker: "GS", Name: "Goldman Sachs", NameKR: "골드만삭스", Sector: SectorFinancial},
	{Ticker: "PG", Name: "Procter & Gamble", NameKR: "P&G", Sector: SectorConsumerDef},
	{Ticker: "KO", Name: "Coca-Cola", NameKR: "코카콜라", Sector: SectorConsumerDef},
	{Ticker: "PEP", Name: "PepsiCo", NameKR: "펩시코", Sector: SectorConsumerDef},
	{Ticker: "WMT", Name: "Walmart", NameKR: "월마트", Sector: SectorConsumerDef},
	{Ticker: "COST", Name: "Costco", NameKR: "코스트코", Sector: SectorConsumerDef},
	{Ticker: "JNJ", Name: "Johnson & Johnson", NameKR: "존슨앤드존슨", Sector: SectorHealthcare},
	{Ticker: "PFE", Name: "Pfizer", NameKR: "화이자", Sector: SectorHealthcare},
	{Ticker: "UNH", Name: "UnitedHealth", NameKR: "유나이티드헬스", Sector: SectorHealthcare},
	{Ticker: "LLY", Name: "Eli Lilly", NameKR: "일라이릴리", Sector: SectorHealthcare},
	{Ticker: "ABBV", Name: "AbbVie", NameKR: "애브비", Sector: SectorHealthcare},
	{Ticker: "MRK", Name: "Merck", NameKR: "머크", Sector: SectorHealthcare},
	{Ticker: "XOM", Name: "Exxon Mobil", NameKR: "엑슨모빌", Sector: SectorEnergy},
	{Ticker: "CVX", Name: "Chevron", NameKR: "셰브론", Sector: SectorEnergy},
	{Ticker: "COP", Name: "ConocoPhillips", NameKR: "코노코필립스", Sector: SectorEnergy},
	{Ticker: "BA", Name: "Boeing", NameKR: "보잉", Sector: SectorIndustrials},
	{Ticker: "CAT", Name: "Caterpillar", NameKR: "캐터필러", Sector: SectorIndustrials},
}

// All returns the full universe. Callers must not mutate the result.
func All() []Stock {
	return stocks
}

// Tickers returns every ticker in the universe.
func Tickers() []string {
	out := make([]string, len(stocks))
	for i, s := range stocks {
		out[i] = s.Ticker
	}
	return out
}

// Find looks up one ticker, case-insensitive.
func Find(ticker string) (Stock, bool) {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	for _, s := range stocks {
		if s.Ticker == t {
			return s, true
		}
	}
	return Stock{}, false
}

// BySector returns all stocks in one of the given sectors. An empty sector
// list means the whole universe.
func BySector(sectors ...string) []Stock {
	if len(sectors) == 0 {
		return stocks
	}
	var out []Stock
	for _, s := range stocks {
		for _, sec := range sectors {
			if s.Sector == sec {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// Search matches query as a case-insensitive substring of ticker, English
// name, or Korean name, returning at most limit hits.
func Search(query string, limit int) []Stock {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []Stock
	for _, s := range stocks {
		if strings.Contains(strings.ToLower(s.Ticker), q) ||
			strings.Contains(strings.ToLower(s.Name), q) ||
			strings.Contains(s.NameKR, query) {
			out = append(out, s)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out
}
