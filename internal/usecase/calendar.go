package usecase

import (
	"fmt"
	"sort"
	"time"

	"StockPilot/internal/domain/models"
)

const (
	calendarMaxEvents   = 15
	tickerEventSpanDays = 60
)

// Static macro releases shown on every calendar.
var macroEvents = []models.CalendarEvent{
	{Date: "2025-11-27", Time: "22:30", Country: "US", Event: "GDP 성장률 (Q3)", Impact: "High", Forecast: "4.9%", Previous: "2.1%"},
	{Date: "2025-11-28", Time: "22:30", Country: "US", Event: "PCE 물가지수", Impact: "High", Forecast: "3.5%", Previous: "3.7%"},
	{Date: "2025-12-12", Time: "04:00", Country: "US", Event: "FOMC 금리결정", Impact: "High", Forecast: "5.50%", Previous: "5.50%"},
	{Date: "2025-12-13", Time: "22:30", Country: "US", Event: "CPI 소비자물가지수", Impact: "High", Forecast: "3.1%", Previous: "3.2%"},
}

// Calendar assembles the smart calendar: static macro releases, computed
// option-expiry dates, and simulated per-ticker events for the watchlist.
type Calendar struct {
	now func() time.Time
}

// NewCalendar creates a calendar builder with an injectable clock.
func NewCalendar(now func() time.Time) *Calendar {
	if now == nil {
		now = time.Now
	}
	return &Calendar{now: now}
}

// Build returns up to calendarMaxEvents upcoming events sorted by date.
// Past events are dropped; today is kept.
func (c *Calendar) Build(watchlistTickers []string) []models.CalendarEvent {
	today := c.now()
	events := make([]models.CalendarEvent, 0, len(macroEvents)+4+len(watchlistTickers))
	events = append(events, macroEvents...)
	events = append(events, c.optionExpiries(today)...)
	events = append(events, c.tickerEvents(today, watchlistTickers)...)

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date < events[j].Date
	})

	todayStr := today.Format("2006-01-02")
	upcoming := events[:0]
	for _, e := range events {
		if e.Date >= todayStr {
			upcoming = append(upcoming, e)
		}
	}
	if len(upcoming) > calendarMaxEvents {
		upcoming = upcoming[:calendarMaxEvents]
	}
	return upcoming
}

// optionExpiries computes the US (3rd Friday) and KR (2nd Thursday) option
// expiry for the current and next month.
func (c *Calendar) optionExpiries(today time.Time) []models.CalendarEvent {
	var events []models.CalendarEvent
	for i := 0; i < 2; i++ {
		month := today.AddDate(0, i, -today.Day()+1)

		usDay := nthWeekday(month.Year(), month.Month(), 3, time.Friday)
		if !usDay.IsZero() {
			events = append(events, models.CalendarEvent{
				Date:    usDay.Format("2006-01-02"),
				Time:    "06:00",
				Country: "US",
				Event:   "미국 옵션 만기일 (Triple Witching)",
				Impact:  "High",
				Type:    "expiration",
			})
		}

		krDay := nthWeekday(month.Year(), month.Month(), 2, time.Thursday)
		if !krDay.IsZero() {
			events = append(events, models.CalendarEvent{
				Date:    krDay.Format("2006-01-02"),
				Time:    "15:30",
				Country: "KR",
				Event:   "한국 옵션 만기일",
				Impact:  "High",
				Type:    "expiration",
			})
		}
	}
	return events
}

// tickerEvents simulates one earnings or ex-dividend event per watchlist
// ticker. The date offset is a character-sum hash so the same ticker always
// lands on the same day.
func (c *Calendar) tickerEvents(today time.Time, tickers []string) []models.CalendarEvent {
	var events []models.CalendarEvent
	for _, ticker := range tickers {
		seed := 0
		for _, r := range ticker {
			seed += int(r)
		}
		date := today.AddDate(0, 0, seed%tickerEventSpanDays).Format("2006-01-02")

		if seed%2 == 0 {
			events = append(events, models.CalendarEvent{
				Date:    date,
				Time:    "After Close",
				Country: "US",
				Event:   fmt.Sprintf("%s 실적 발표 (Earnings)", ticker),
				Impact:  "Medium",
				Type:    "earnings",
				Ticker:  ticker,
			})
		} else {
			events = append(events, models.CalendarEvent{
				Date:    date,
				Time:    "Market Open",
				Country: "US",
				Event:   fmt.Sprintf("%s 배당락일 (Ex-Dividend)", ticker),
				Impact:  "Medium",
				Type:    "dividend",
				Ticker:  ticker,
			})
		}
	}
	return events
}

// nthWeekday returns the nth occurrence of weekday in the given month, or
// the zero time when the month has no such day.
func nthWeekday(year int, month time.Month, n int, weekday time.Weekday) time.Time {
	d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	count := 0
	for d.Month() == month {
		if d.Weekday() == weekday {
			count++
			if count == n {
				return d
			}
		}
		d = d.AddDate(0, 0, 1)
	}
	return time.Time{}
}
