package usecase

import (
	"StockPilot/internal/domain/models"
)

// FX and index thresholds for the regime ladders.
const (
	highFXLevel    = 1400.0
	lowFXLevel     = 1200.0
	bearDropPct    = -1.5
	bullRisePct    = 1.5
	defaultUSDKRW  = 1300.0
)

// RegimeClassifier derives a coarse market-condition label from the
// USD/KRW rate and the KOSPI daily change. The two ladders fire
// independently and their labels concatenate.
type RegimeClassifier struct{}

func NewRegimeClassifier() *RegimeClassifier {
	return &RegimeClassifier{}
}

// ClassifyFromSummary reads the two inputs out of a market summary, falling
// back to a neutral FX level and flat KOSPI when either index is absent.
func (r *RegimeClassifier) ClassifyFromSummary(summary models.MarketSummary) models.MarketRegime {
	usdKRW := defaultUSDKRW
	if q, ok := summary.Index("KRW=X"); ok && q.Price > 0 {
		usdKRW = q.Price
	}
	kospiChange := 0.0
	if q, ok := summary.Index("^KS11"); ok {
		kospiChange = q.ChangePercent
	}
	return r.Classify(usdKRW, kospiChange)
}

// Classify applies the two threshold ladders.
func (r *RegimeClassifier) Classify(usdKRW, kospiChange float64) models.MarketRegime {
	regime := "중립 (Neutral)"
	advice := "시장 상황을 주시하며 분산 투자를 유지하세요."

	if usdKRW > highFXLevel {
		regime = "고환율 주의 (High Exchange Rate)"
		advice = "환율이 매우 높습니다. 외국인 수급이 불안정할 수 있으니 수출주 위주의 접근이 유리합니다."
	} else if usdKRW < lowFXLevel {
		regime = "저환율 (Low Exchange Rate)"
		advice = "환율이 안정적입니다. 내수주 및 금융주에 긍정적인 환경일 수 있습니다."
	}

	if kospiChange < bearDropPct {
		regime += " / 급락장 (Bear Market)"
		advice += " 시장 변동성이 큽니다. 현금 비중을 늘리고 저점 매수 기회를 엿보세요."
	} else if kospiChange > bullRisePct {
		regime += " / 급등장 (Bull Market)"
		advice += " 상승세가 강합니다. 추세 추종 전략이 유효할 수 있습니다."
	}

	return models.MarketRegime{
		Regime: regime,
		Advice: advice,
		Indicators: models.RegimeIndicators{
			USDKRW:      usdKRW,
			KospiChange: kospiChange,
		},
	}
}
