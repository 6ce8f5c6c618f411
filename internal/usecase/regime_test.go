package usecase

import (
	"strings"
	"testing"

	"StockPilot/internal/domain/models"
)

func TestClassifyLadders(t *testing.T) {
	r := NewRegimeClassifier()

	tests := []struct {
		name       string
		usdKRW     float64
		kospi      float64
		wantRegime string
	}{
		{"neutral", 1300, 0, "중립 (Neutral)"},
		{"high fx", 1450, 0, "고환율 주의 (High Exchange Rate)"},
		{"low fx", 1150, 0, "저환율 (Low Exchange Rate)"},
		{"neutral bear", 1300, -2.0, "중립 (Neutral) / 급락장 (Bear Market)"},
		{"neutral bull", 1300, 2.0, "중립 (Neutral) / 급등장 (Bull Market)"},
		{"high fx bear", 1450, -2.0, "고환율 주의 (High Exchange Rate) / 급락장 (Bear Market)"},
		{"boundary fx", 1400, 0, "중립 (Neutral)"},
		{"boundary kospi", 1300, 1.5, "중립 (Neutral)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Classify(tt.usdKRW, tt.kospi)
			if got.Regime != tt.wantRegime {
				t.Errorf("regime = %q, want %q", got.Regime, tt.wantRegime)
			}
			if got.Advice == "" {
				t.Error("advice is empty")
			}
			if got.Indicators.USDKRW != tt.usdKRW || got.Indicators.KospiChange != tt.kospi {
				t.Errorf("indicators = %+v", got.Indicators)
			}
		})
	}
}

func TestClassifyBearAdviceAppends(t *testing.T) {
	got := NewRegimeClassifier().Classify(1300, -3.0)
	if !strings.Contains(got.Advice, "분산 투자를 유지하세요.") {
		t.Errorf("advice lost base text: %q", got.Advice)
	}
	if !strings.Contains(got.Advice, "현금 비중을 늘리고") {
		t.Errorf("advice lost bear text: %q", got.Advice)
	}
}

func TestClassifyFromSummary(t *testing.T) {
	r := NewRegimeClassifier()

	summary := models.MarketSummary{Indices: []models.IndexQuote{
		{Symbol: "KRW=X", Price: 1425},
		{Symbol: "^KS11", Price: 2500, ChangePercent: -2.1},
	}}
	got := r.ClassifyFromSummary(summary)
	if got.Regime != "고환율 주의 (High Exchange Rate) / 급락장 (Bear Market)" {
		t.Errorf("regime = %q", got.Regime)
	}

	// Missing indices fall back to a neutral FX level and flat KOSPI.
	got = r.ClassifyFromSummary(models.MarketSummary{})
	if got.Regime != "중립 (Neutral)" {
		t.Errorf("fallback regime = %q", got.Regime)
	}
	if got.Indicators.USDKRW != 1300 {
		t.Errorf("fallback usd_krw = %v, want 1300", got.Indicators.USDKRW)
	}
}
