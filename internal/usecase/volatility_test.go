package usecase

import (
	"errors"
	"strings"
	"testing"
	"time"

	"StockPilot/internal/domain/models"
)

func TestInferEmptySeriesDegrades(t *testing.T) {
	v := NewVolatilityInferer()

	cause, err := v.Infer("AAPL", nil, nil)
	if err != nil {
		t.Fatalf("err = %v, want degraded payload", err)
	}
	if cause.Ticker != "AAPL" || cause.Cause != "데이터 부족" {
		t.Fatalf("cause = %+v, want 데이터 부족 for AAPL", cause)
	}
	if cause.MoveType != "" || cause.ChangePercent != 0 || len(cause.RelatedNews) != 0 {
		t.Fatalf("degraded payload carries analysis fields: %+v", cause)
	}
}

func TestInferSingleBarErrors(t *testing.T) {
	v := NewVolatilityInferer()
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	if _, err := v.Infer("AAPL", bars(start, 100), nil); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
}

func TestInferMoveTypes(t *testing.T) {
	v := NewVolatilityInferer()
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		closes []float64
		want   string
	}{
		{"surge", []float64{100, 105}, MoveSurge},
		{"up", []float64{100, 102}, MoveUp},
		{"flat", []float64{100, 100.5}, MoveFlat},
		{"down", []float64{100, 98}, MoveDown},
		{"plunge", []float64{100, 94}, MovePlunge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Infer("AAPL", bars(start, tt.closes...), nil)
			if err != nil {
				t.Fatal(err)
			}
			if got.MoveType != tt.want {
				t.Errorf("move = %s, want %s", got.MoveType, tt.want)
			}
		})
	}
}

func TestInferEarningsCause(t *testing.T) {
	v := NewVolatilityInferer()
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	news := []models.NewsItem{
		{Title: "애플 분기 실적 발표", Summary: "매출 사상 최대"},
		{Title: "Apple revenue beats estimates", Summary: ""},
		{Title: "New iPhone launch rumors", Summary: ""},
	}

	got, err := v.Infer("AAPL", bars(start, 100, 106), news)
	if err != nil {
		t.Fatal(err)
	}
	if got.MoveType != MoveSurge {
		t.Errorf("move = %s, want %s", got.MoveType, MoveSurge)
	}
	if !strings.Contains(got.Cause, "실적 발표 또는 재무 성과") {
		t.Errorf("cause = %q", got.Cause)
	}
	if len(got.RelatedNews) != 2 {
		t.Errorf("related = %d items, want 2", len(got.RelatedNews))
	}
}

func TestInferBigMoveWithoutNews(t *testing.T) {
	v := NewVolatilityInferer()
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	got, err := v.Infer("TSLA", bars(start, 100, 92), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.Cause != "뚜렷한 뉴스 없이 수급에 의한 변동이거나, 시장 전체의 영향일 수 있습니다." {
		t.Errorf("cause = %q", got.Cause)
	}
}

func TestInferSmallMoveDefaultCause(t *testing.T) {
	v := NewVolatilityInferer()
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	news := []models.NewsItem{{Title: "Weather update", Summary: "sunny"}}

	got, err := v.Infer("KO", bars(start, 100, 100.2), news)
	if err != nil {
		t.Fatal(err)
	}
	if got.Cause != "일반적인 시장 변동성 범위 내의 움직임입니다." {
		t.Errorf("cause = %q", got.Cause)
	}
}

func TestInferTieBreaksTowardFirstCategory(t *testing.T) {
	v := NewVolatilityInferer()
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	// One macro hit, then one earnings hit: macro reached max first.
	news := []models.NewsItem{
		{Title: "Fed rate decision looms", Summary: ""},
		{Title: "Strong earnings report", Summary: ""},
	}

	got, err := v.Infer("JPM", bars(start, 100, 102), news)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got.Cause, "거시 경제 지표 또는 금리 정책") {
		t.Errorf("cause = %q, want macro narrative", got.Cause)
	}
}
