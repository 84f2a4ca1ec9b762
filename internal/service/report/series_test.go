package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/vetclinic-api/internal/model"
)

var (
	brt = time.FixedZone("BRT", -3*3600)
	jst = time.FixedZone("JST", 9*3600)
)

func TestYearWindowUsesLocalMidnight(t *testing.T) {
	// 22:00 on 31 Dec in Brazil is already 1 Jan in UTC.
	now := time.Date(2025, 1, 1, 1, 0, 0, 0, time.UTC).In(brt)

	since, until := yearWindow(now)
	assert.True(t, since.Equal(time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC)))
	assert.True(t, until.Equal(time.Date(2025, 1, 1, 3, 0, 0, 0, time.UTC)))
}

func TestCalendarYearBucketsAtMonthBoundary(t *testing.T) {
	since, _ := yearWindow(time.Date(2024, 6, 15, 12, 0, 0, 0, jst))

	// Local midnight of 1 Mar in Tokyo is still 29 Feb in UTC.
	rows := []model.PeriodCount{
		{Period: time.Date(2024, 2, 29, 15, 0, 0, 0, time.UTC), Total: 4},
		{Period: time.Date(2024, 1, 31, 15, 0, 0, 0, time.UTC), Total: 1},
	}

	months := calendarYear(since, rows)
	require.Len(t, months, 12)
	assert.Equal(t, model.MonthCount{Month: "Jan", Total: 0}, months[0])
	assert.Equal(t, model.MonthCount{Month: "Fev", Total: 1}, months[1])
	assert.Equal(t, model.MonthCount{Month: "Mar", Total: 4}, months[2])
}

func TestDailySeriesBucketsAtDayBoundary(t *testing.T) {
	since, _ := dayWindow(time.Date(2024, 6, 3, 8, 0, 0, 0, jst), 3)

	counts := []model.PeriodCount{
		{Period: time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC), Total: 2},
	}
	amounts := []model.PeriodAmount{
		{Period: time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC), Total: decimal.RequireFromString("90.10")},
	}

	days := dailySeries(since, 3, counts, amounts)
	require.Len(t, days, 3)
	assert.Equal(t, model.DailyPoint{Date: "01/06"}, days[0])
	assert.Equal(t, model.DailyPoint{Date: "02/06", Consultations: 2, Revenue: 90.1}, days[1])
}
