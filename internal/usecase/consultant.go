package usecase

import (
	"StockPilot/internal/domain/models"
	"StockPilot/internal/services/analytics"
)

const (
	rsiOversold   = 30.0
	rsiOverbought = 70.0
	buyThreshold  = 3
	sellThreshold = -2
)

// Consultant combines the three signal analyzers into one recommendation.
// Advise is a pure function of its inputs: identical series, profile and
// news always yield the identical result.
type Consultant struct {
	technical   *analytics.TechnicalAnalyzer
	fundamental *analytics.FundamentalAnalyzer
	sentiment   *analytics.SentimentAnalyzer
}

func NewConsultant() *Consultant {
	return &Consultant{
		technical:   analytics.NewTechnicalAnalyzer(),
		fundamental: analytics.NewFundamentalAnalyzer(),
		sentiment:   analytics.NewSentimentAnalyzer(),
	}
}

// Advise scores the ticker with additive point rules. Rules run in a fixed
// order and append their reason as they fire, so the reasons list mirrors
// evaluation order: trend, RSI, valuation, sentiment.
func (c *Consultant) Advise(ticker string, series []models.PriceBar, profile models.CompanyProfile, news []models.NewsItem) models.AdviceResult {
	tech := c.technical.Analyze(series)
	fund := c.fundamental.Analyze(profile)
	sent := c.sentiment.Analyze(news)

	score := 0
	var reasons []string

	switch tech.Trend {
	case models.TrendBullish:
		score += 2
		reasons = append(reasons, "기술적 분석상 상승 추세입니다.")
	case models.TrendBearish:
		score -= 2
		reasons = append(reasons, "기술적 분석상 하락 추세입니다.")
	}

	// An absent RSI reads as the neutral 50.
	rsi := 50.0
	if tech.RSI != nil {
		rsi = *tech.RSI
	}
	if rsi < rsiOversold {
		score++
		reasons = append(reasons, "RSI 지표가 과매도 구간입니다. 반등 가능성이 있습니다.")
	} else if rsi > rsiOverbought {
		score--
		reasons = append(reasons, "RSI 지표가 과매수 구간입니다. 조정 가능성이 있습니다.")
	}

	switch fund.Valuation {
	case models.ValuationUndervalued:
		score += 2
		reasons = append(reasons, "펀더멘털 분석상 저평가 상태입니다.")
	case models.ValuationOvervalued:
		score--
		reasons = append(reasons, "펀더멘털 분석상 고평가 상태일 수 있습니다.")
	}

	switch sent.Label {
	case models.SentimentPositive:
		score++
		reasons = append(reasons, "최근 뉴스 감성이 긍정적입니다.")
	case models.SentimentNegative:
		score--
		reasons = append(reasons, "최근 뉴스 감성이 부정적입니다.")
	}

	return models.AdviceResult{
		Ticker:  ticker,
		Action:  ActionForScore(score),
		Score:   score,
		Reasons: reasons,
		Signals: models.SignalSet{Technical: tech, Fundamental: fund, Sentiment: sent},
	}
}

// ActionForScore maps a combined score to the final action.
func ActionForScore(score int) string {
	switch {
	case score >= buyThreshold:
		return models.ActionBuy
	case score <= sellThreshold:
		return models.ActionSell
	default:
		return models.ActionHold
	}
}
