package usecase

import (
	"fmt"
	"time"

	"StockPilot/internal/domain/models"
)

var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
}

// SeasonalityAnalyzer aggregates daily returns by weekday.
type SeasonalityAnalyzer struct{}

func NewSeasonalityAnalyzer() *SeasonalityAnalyzer {
	return &SeasonalityAnalyzer{}
}

// Analyze groups day-over-day percent returns by weekday name and reports
// mean return, observation count and win rate for each weekday present in
// the series, ordered Monday through Friday. An empty series yields an
// empty report.
func (a *SeasonalityAnalyzer) Analyze(series []models.PriceBar) models.SeasonalityReport {
	if len(series) == 0 {
		return models.SeasonalityReport{}
	}

	type agg struct {
		sum   float64
		wins  int
		count int
	}
	byDay := make(map[time.Weekday]*agg)

	for i := 1; i < len(series); i++ {
		prev := series[i-1].Close
		if prev == 0 {
			continue
		}
		ret := (series[i].Close - prev) / prev * 100
		day := series[i].Date.Weekday()
		if byDay[day] == nil {
			byDay[day] = &agg{}
		}
		byDay[day].sum += ret
		byDay[day].count++
		if ret > 0 {
			byDay[day].wins++
		}
	}

	report := models.SeasonalityReport{}
	bestAvg, worstAvg := 0.0, 0.0
	for _, day := range weekdayOrder {
		st, ok := byDay[day]
		if !ok || st.count == 0 {
			continue
		}
		avg := st.sum / float64(st.count)
		stat := models.WeekdayStat{
			Day:          day.String(),
			AvgReturnPct: avg,
			WinRatePct:   float64(st.wins) / float64(st.count) * 100,
			Count:        st.count,
		}
		report.Seasonality = append(report.Seasonality, stat)

		if report.BestDay == "" || avg > bestAvg {
			report.BestDay = stat.Day
			bestAvg = avg
		}
		if report.WorstDay == "" || avg < worstAvg {
			report.WorstDay = stat.Day
			worstAvg = avg
		}
	}

	if report.BestDay != "" {
		report.Summary = fmt.Sprintf("역사적으로 %s에 매수하는 것이 가장 유리했습니다.", report.BestDay)
	}
	return report
}
