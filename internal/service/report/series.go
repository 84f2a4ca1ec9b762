package report

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jwalitptl/vetclinic-api/internal/model"
)

var monthNames = [12]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// ratio divides and rounds to 2 decimals; a zero denominator yields 0.
func ratio(num, den int64) float64 {
	if den == 0 {
		return 0
	}
	return round2(float64(num) / float64(den))
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// yearWindow spans the calendar year containing now.
func yearWindow(now time.Time) (time.Time, time.Time) {
	since := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	return since, since.AddDate(1, 0, 0)
}

// monthWindow spans the n calendar months ending with the one containing now.
func monthWindow(now time.Time, n int) (time.Time, time.Time) {
	current := startOfMonth(now)
	return current.AddDate(0, -(n - 1), 0), current.AddDate(0, 1, 0)
}

// dayWindow spans the n days ending today.
func dayWindow(now time.Time, n int) (time.Time, time.Time) {
	today := startOfDay(now)
	return today.AddDate(0, 0, -(n - 1)), today.AddDate(0, 0, 1)
}

const (
	monthKey = "2006-01"
	dayKey   = "2006-01-02"
)

// countsBy keys buckets by their wall clock in loc, the zone the report
// window was built in.
func countsBy(layout string, loc *time.Location, rows []model.PeriodCount) map[string]int64 {
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Period.In(loc).Format(layout)] += r.Total
	}
	return out
}

func amountsBy(layout string, loc *time.Location, rows []model.PeriodAmount) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		k := r.Period.In(loc).Format(layout)
		out[k] = out[k].Add(r.Total)
	}
	return out
}

// calendarYear returns all twelve months of since's year labelled with
// short Portuguese month names, missing months as zero.
func calendarYear(since time.Time, rows []model.PeriodCount) []model.MonthCount {
	totals := countsBy(monthKey, since.Location(), rows)
	out := make([]model.MonthCount, 12)
	for i := range out {
		m := since.AddDate(0, i, 0)
		out[i] = model.MonthCount{Month: monthNames[m.Month()-1], Total: float64(totals[m.Format(monthKey)])}
	}
	return out
}

// trailingMonthCounts returns n months starting at since labelled MM/YYYY.
func trailingMonthCounts(since time.Time, n int, rows []model.PeriodCount) []model.MonthCount {
	totals := countsBy(monthKey, since.Location(), rows)
	out := make([]model.MonthCount, n)
	for i := range out {
		m := since.AddDate(0, i, 0)
		out[i] = model.MonthCount{Month: m.Format("01/2006"), Total: float64(totals[m.Format(monthKey)])}
	}
	return out
}

func trailingMonthAmounts(since time.Time, n int, rows []model.PeriodAmount) []model.MonthCount {
	totals := amountsBy(monthKey, since.Location(), rows)
	out := make([]model.MonthCount, n)
	for i := range out {
		m := since.AddDate(0, i, 0)
		out[i] = model.MonthCount{Month: m.Format("01/2006"), Total: money(totals[m.Format(monthKey)])}
	}
	return out
}

// dailySeries returns n days starting at since labelled dd/MM.
func dailySeries(since time.Time, n int, counts []model.PeriodCount, amounts []model.PeriodAmount) []model.DailyPoint {
	byDay := countsBy(dayKey, since.Location(), counts)
	revenue := amountsBy(dayKey, since.Location(), amounts)
	out := make([]model.DailyPoint, n)
	for i := range out {
		d := since.AddDate(0, 0, i)
		k := d.Format(dayKey)
		out[i] = model.DailyPoint{
			Date:          d.Format("02/01"),
			Consultations: byDay[k],
			Revenue:       money(revenue[k]),
		}
	}
	return out
}

// distribution orders groups by count descending, ties by label.
func distribution(rows []model.LabelCount, label func(string) string) []model.NameValue {
	out := make([]model.NameValue, 0, len(rows))
	for _, r := range rows {
		name := r.Label
		if label != nil {
			name = label(r.Label)
		}
		out = append(out, model.NameValue{Name: name, Value: r.Total})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func countOf(rows []model.LabelCount, label string) int64 {
	for _, r := range rows {
		if r.Label == label {
			return r.Total
		}
	}
	return 0
}

func topEntry(e *model.TopEntry) *model.NameTotal {
	if e == nil {
		return nil
	}
	return &model.NameTotal{Name: e.Name, Total: e.Total}
}
