package usecase

import (
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"StockPilot/internal/domain/models"
)

// Fixed macro assets appended to every correlation matrix.
var macroAssets = []string{"USD/KRW", "Gold", "WTI Crude Oil"}

// PortfolioAnalyzer scores portfolio health and estimates cross-asset
// correlation.
type PortfolioAnalyzer struct{}

func NewPortfolioAnalyzer() *PortfolioAnalyzer {
	return &PortfolioAnalyzer{}
}

// Analyze aggregates enriched holdings into one health score with narrative
// advice. The score starts at 50 and is clamped to [0,100].
func (a *PortfolioAnalyzer) Analyze(holdings []models.EnrichedHolding) models.PortfolioAnalysis {
	if len(holdings) == 0 {
		return models.PortfolioAnalysis{
			Score:     0,
			Summary:   "포트폴리오가 비어있습니다.",
			Advice:    []string{"종목을 추가하여 포트폴리오를 구성해보세요."},
			RiskLevel: "N/A",
		}
	}

	var totalValue, totalPL float64
	for _, h := range holdings {
		totalValue += h.CurrentValue
		totalPL += h.ProfitLoss
	}
	plPercent := 0.0
	if basis := totalValue - totalPL; basis > 0 {
		plPercent = totalPL / basis * 100
	}

	score := 50
	var advice []string

	switch {
	case plPercent > 10:
		score += 20
		advice = append(advice, "전체 수익률이 매우 훌륭합니다! (10% 이상)")
	case plPercent > 0:
		score += 10
		advice = append(advice, "전체 수익률이 긍정적입니다.")
	case plPercent < -10:
		score -= 20
		advice = append(advice, "전체 수익률이 저조합니다. 손절매를 고려하거나 물타기 전략을 점검하세요.")
	default:
		advice = append(advice, "수익률이 보합세입니다.")
	}

	count := len(holdings)
	switch {
	case count < 3:
		score -= 10
		advice = append(advice, "보유 종목이 너무 적습니다. 리스크 분산을 위해 3개 이상의 종목을 보유하는 것을 추천합니다.")
	case count > 10:
		score -= 5
		advice = append(advice, "보유 종목이 너무 많아 관리가 어려울 수 있습니다. 핵심 종목 위주로 정리를 고려하세요.")
	default:
		score += 10
		advice = append(advice, "적절한 수의 종목을 보유하고 있습니다.")
	}

	riskLevel := "보통 (Moderate)"
	if count < 3 {
		riskLevel = "높음 (High) - 집중 투자"
	} else if plPercent < -20 {
		riskLevel = "매우 높음 (Very High) - 손실 확대"
	}

	if score > 100 {
		score = 100
	} else if score < 0 {
		score = 0
	}

	return models.PortfolioAnalysis{
		Score:     score,
		Summary:   fmt.Sprintf("총 자산 가치 $%.2f, 수익률 %.2f%%", totalValue, plPercent),
		Advice:    advice,
		RiskLevel: riskLevel,
	}
}

// Correlation builds the pseudo-correlation matrix over holding tickers
// plus the fixed macro set. Off-diagonal values are deterministic hash
// placeholders in [-0.8, 0.8], not statistical correlation; real covariance
// would need aligned historical series for every asset.
func (a *PortfolioAnalyzer) Correlation(tickers []string) models.CorrelationMatrix {
	assets := make([]string, 0, len(tickers)+len(macroAssets))
	assets = append(assets, tickers...)
	assets = append(assets, macroAssets...)

	matrix := make([][]float64, len(assets))
	for i, row := range assets {
		matrix[i] = make([]float64, len(assets))
		for j, col := range assets {
			matrix[i][j] = pseudoCorrelation(row, col)
		}
	}
	return models.CorrelationMatrix{Assets: assets, Matrix: matrix}
}

func pseudoCorrelation(row, col string) float64 {
	if row == col {
		return 1.0
	}
	h := fnv.New64a()
	h.Write([]byte(row + col))
	corr := (float64(h.Sum64()%160) - 80) / 100.0

	// Manual overrides for the currency pair itself and the classic
	// gold/dollar relationship.
	if strings.Contains(row, "KRW") && strings.Contains(col, "KRW") {
		corr = 1.0
	}
	if strings.Contains(row, "Gold") && strings.Contains(col, "KRW") {
		corr = 0.3
	}
	return math.Round(corr*100) / 100
}
