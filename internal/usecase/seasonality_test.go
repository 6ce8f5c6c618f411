package usecase

import (
	"testing"
	"time"

	"StockPilot/internal/domain/models"
)

func TestSeasonalityEmptySeries(t *testing.T) {
	got := NewSeasonalityAnalyzer().Analyze(nil)
	if len(got.Seasonality) != 0 || got.BestDay != "" || got.Summary != "" {
		t.Fatalf("empty series yielded %+v", got)
	}
}

func TestSeasonalityWeekdayStats(t *testing.T) {
	// Mon 2025-03-03 through Fri 2025-03-07, then the next Monday.
	// Tue +2%, Wed -1%, Thu +1%, Fri 0%, Mon +3%.
	series := []models.PriceBar{
		{Date: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), Close: 100},
		{Date: time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), Close: 102},
		{Date: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), Close: 100.98},
		{Date: time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC), Close: 101.9898},
		{Date: time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC), Close: 101.9898},
		{Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Close: 105.049494},
	}

	got := NewSeasonalityAnalyzer().Analyze(series)

	// Monday through Friday each observed once.
	if len(got.Seasonality) != 5 {
		t.Fatalf("stats for %d days, want 5", len(got.Seasonality))
	}
	wantOrder := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	for i, stat := range got.Seasonality {
		if stat.Day != wantOrder[i] {
			t.Errorf("position %d = %s, want %s", i, stat.Day, wantOrder[i])
		}
		if stat.Count != 1 {
			t.Errorf("%s count = %d, want 1", stat.Day, stat.Count)
		}
	}

	if got.BestDay != "Monday" {
		t.Errorf("best = %s, want Monday", got.BestDay)
	}
	if got.WorstDay != "Wednesday" {
		t.Errorf("worst = %s, want Wednesday", got.WorstDay)
	}
	if got.Summary != "역사적으로 Monday에 매수하는 것이 가장 유리했습니다." {
		t.Errorf("summary = %q", got.Summary)
	}
}

func TestSeasonalitySkipsAbsentWeekdays(t *testing.T) {
	// Only two Tuesdays: one win, one loss.
	series := []models.PriceBar{
		{Date: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), Close: 100},
		{Date: time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), Close: 104},
		{Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Close: 104},
		{Date: time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), Close: 102},
	}

	got := NewSeasonalityAnalyzer().Analyze(series)

	days := map[string]models.WeekdayStat{}
	for _, stat := range got.Seasonality {
		days[stat.Day] = stat
	}
	if _, ok := days["Wednesday"]; ok {
		t.Error("Wednesday reported without observations")
	}
	tue, ok := days["Tuesday"]
	if !ok {
		t.Fatal("Tuesday missing")
	}
	if tue.Count != 2 {
		t.Errorf("Tuesday count = %d, want 2", tue.Count)
	}
	if tue.WinRatePct != 50 {
		t.Errorf("Tuesday win rate = %v, want 50", tue.WinRatePct)
	}
}

func TestSeasonalityAllNegativeStillPicksBest(t *testing.T) {
	// Losses every day; the least bad weekday must still be the best.
	series := []models.PriceBar{
		{Date: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), Close: 100},
		{Date: time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), Close: 99},   // Tue -1%
		{Date: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), Close: 95},   // Wed -4%
	}

	got := NewSeasonalityAnalyzer().Analyze(series)
	if got.BestDay != "Tuesday" {
		t.Errorf("best = %s, want Tuesday", got.BestDay)
	}
	if got.WorstDay != "Wednesday" {
		t.Errorf("worst = %s, want Wednesday", got.WorstDay)
	}
}
