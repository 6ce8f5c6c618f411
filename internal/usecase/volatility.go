package usecase

import (
	"errors"
	"fmt"
	"strings"

	"StockPilot/internal/domain/models"
)

// ErrInsufficientData is returned when a series is too short to compute a
// day-over-day change.
var ErrInsufficientData = errors.New("not enough price data")

// Cause reported when no price data exists at all. An empty series degrades
// to this payload; only a single-bar series is an error.
const causeNoData = "데이터 부족"

// Move type labels, ordered from strongest rise to strongest fall.
const (
	MoveSurge  = "급등"
	MoveUp     = "상승"
	MoveFlat   = "보합"
	MoveDown   = "하락"
	MovePlunge = "급락"
)

type keywordCategory struct {
	name  string
	words []string
}

// Keyword lists are deliberately simple substring matches, Korean and
// English, checked per category in a fixed order.
var volatilityCategories = []keywordCategory{
	{"earnings", []string{"실적", "매출", "이익", "earnings", "revenue", "profit"}},
	{"macro", []string{"금리", "인플레이션", "cpi", "fomc", "fed", "inflation", "rate"}},
	{"product", []string{"출시", "공개", "launch", "release", "unveil"}},
	{"merger", []string{"인수", "합병", "m&a", "acquisition", "merger"}},
	{"contract", []string{"계약", "수주", "contract", "deal"}},
}

var categoryNarratives = map[string]string{
	"earnings": "실적 발표 또는 재무 성과",
	"macro":    "거시 경제 지표 또는 금리 정책",
	"product":  "신제품 출시 또는 기술 공개",
	"merger":   "인수 합병(M&A) 이슈",
	"contract": "대규모 계약 또는 수주",
}

// VolatilityInferer attributes a daily price move to a news category using
// keyword containment. It never upgrades to semantic matching; the observable
// behavior is the keyword scan itself.
type VolatilityInferer struct{}

func NewVolatilityInferer() *VolatilityInferer {
	return &VolatilityInferer{}
}

// Infer computes the day-over-day change of the latest two closes and scans
// the news batch for category hits. The majority category wins; ties break
// toward the earliest category to reach the maximum count.
func (v *VolatilityInferer) Infer(ticker string, series []models.PriceBar, news []models.NewsItem) (models.VolatilityCause, error) {
	if len(series) == 0 {
		return models.VolatilityCause{Ticker: ticker, Cause: causeNoData}, nil
	}
	if len(series) < 2 {
		return models.VolatilityCause{}, ErrInsufficientData
	}

	curr := series[len(series)-1].Close
	prev := series[len(series)-2].Close
	changePercent := 0.0
	if prev != 0 {
		changePercent = (curr - prev) / prev * 100
	}

	moveType := MoveFlat
	switch {
	case changePercent > 3:
		moveType = MoveSurge
	case changePercent < -3:
		moveType = MovePlunge
	case changePercent > 1:
		moveType = MoveUp
	case changePercent < -1:
		moveType = MoveDown
	}

	counts := make(map[string]int)
	order := make([]string, 0, len(volatilityCategories))
	var related []models.NewsItem

	for _, item := range news {
		text := strings.ToLower(item.Title + " " + item.Summary)
		for _, cat := range volatilityCategories {
			if containsAny(text, cat.words) {
				if counts[cat.name] == 0 {
					order = append(order, cat.name)
				}
				counts[cat.name]++
				related = append(related, item)
				break
			}
		}
	}

	cause := ""
	switch {
	case len(counts) > 0:
		primary := stableArgmax(counts, order)
		cause = fmt.Sprintf("최근 %s 관련 소식이 주가 변동의 주요 원인으로 추정됩니다.", categoryNarratives[primary])
	case changePercent > 3 || changePercent < -3:
		cause = "뚜렷한 뉴스 없이 수급에 의한 변동이거나, 시장 전체의 영향일 수 있습니다."
	default:
		cause = "일반적인 시장 변동성 범위 내의 움직임입니다."
	}

	if len(related) > 2 {
		related = related[:2]
	}

	return models.VolatilityCause{
		Ticker:        ticker,
		ChangePercent: changePercent,
		MoveType:      moveType,
		Cause:         cause,
		RelatedNews:   related,
	}, nil
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, strings.ToLower(w)) {
			return true
		}
	}
	return false
}

// stableArgmax returns the key with the highest count, breaking ties by
// first-encountered order.
func stableArgmax(counts map[string]int, order []string) string {
	best := ""
	bestCount := -1
	for _, name := range order {
		if counts[name] > bestCount {
			best = name
			bestCount = counts[name]
		}
	}
	return best
}
