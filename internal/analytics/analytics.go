// Package analytics derives read-side aggregates from a loaded store
// snapshot. Every function is pure: the snapshot is never mutated.
//
// Monthly selection always uses the year of the supplied reference time,
// which callers set to the current system clock. Months of other years
// cannot be addressed by month number alone.
package analytics

import (
	"sort"
	"time"

	"fjacquet/expense-cli/internal/dateutils"
	"fjacquet/expense-cli/internal/models"

	"github.com/shopspring/decimal"
)

// DailyTotal is one day of the dense daily series.
type DailyTotal struct {
	Day   time.Time
	Total decimal.Decimal
}

// CategoryDelta is the per-category comparison between two months.
type CategoryDelta struct {
	Category string
	Total1   decimal.Decimal
	Total2   decimal.Decimal
	Delta    decimal.Decimal
}

// MonthComparison is the result of comparing two months of the current
// year. PctValid is false when the first month's total is zero; the
// percentage change is undefined in that case and PctChange must be
// ignored.
type MonthComparison struct {
	Year       int
	Month1     int
	Month2     int
	Total1     decimal.Decimal
	Total2     decimal.Decimal
	Delta      decimal.Decimal
	PctChange  decimal.Decimal
	PctValid   bool
	ByCategory []CategoryDelta
}

// MonthExpenses selects the expenses dated in the given month of ref's
// year.
func MonthExpenses(store *models.Store, month int, ref time.Time) []models.Expense {
	var out []models.Expense
	for _, e := range store.Expenses {
		if dateutils.SameMonth(e.Date, ref.Year(), month) {
			out = append(out, e)
		}
	}
	return out
}

// CategoryTotals groups expenses by category, summing amounts.
func CategoryTotals(expenses []models.Expense) map[string]decimal.Decimal {
	totals := map[string]decimal.Decimal{}
	for _, e := range expenses {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}
	return totals
}

// Total sums all expense amounts.
func Total(expenses []models.Expense) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range expenses {
		sum = sum.Add(e.Amount)
	}
	return sum
}

// DailyTotals groups expenses by calendar day and returns a dense
// ascending series from the first to the last day present, with zero
// totals filling days without expenses. An empty input yields an empty
// series.
func DailyTotals(expenses []models.Expense) []DailyTotal {
	if len(expenses) == 0 {
		return nil
	}

	byDay := map[time.Time]decimal.Decimal{}
	var first, last time.Time
	for i, e := range expenses {
		day := dateutils.Day(e.Date)
		byDay[day] = byDay[day].Add(e.Amount)
		if i == 0 || day.Before(first) {
			first = day
		}
		if i == 0 || day.After(last) {
			last = day
		}
	}

	var series []DailyTotal
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		series = append(series, DailyTotal{Day: day, Total: byDay[day]})
	}
	return series
}

// PeakDay returns the day with the maximum daily total. Ties resolve to
// the earliest day. The second return is false for an empty series.
func PeakDay(series []DailyTotal) (DailyTotal, bool) {
	if len(series) == 0 {
		return DailyTotal{}, false
	}
	peak := series[0]
	for _, d := range series[1:] {
		if d.Total.GreaterThan(peak.Total) {
			peak = d
		}
	}
	return peak, true
}

// DistinctDays counts the days in the series that carry at least one
// expense. The series is dense, so zero-total fill days do not count.
func DistinctDays(series []DailyTotal) int {
	count := 0
	for _, d := range series {
		if !d.Total.IsZero() {
			count++
		}
	}
	return count
}

// Compare computes totals, per-category totals over the union of both
// months' categories, the absolute delta and the percentage change
// between two months of ref's year.
func Compare(store *models.Store, month1, month2 int, ref time.Time) MonthComparison {
	expenses1 := MonthExpenses(store, month1, ref)
	expenses2 := MonthExpenses(store, month2, ref)

	totals1 := CategoryTotals(expenses1)
	totals2 := CategoryTotals(expenses2)

	cmp := MonthComparison{
		Year:   ref.Year(),
		Month1: month1,
		Month2: month2,
		Total1: Total(expenses1),
		Total2: Total(expenses2),
	}
	cmp.Delta = cmp.Total2.Sub(cmp.Total1)

	if !cmp.Total1.IsZero() {
		cmp.PctValid = true
		cmp.PctChange = cmp.Delta.Div(cmp.Total1).Mul(decimal.NewFromInt(100)).Round(2)
	}

	union := map[string]struct{}{}
	for c := range totals1 {
		union[c] = struct{}{}
	}
	for c := range totals2 {
		union[c] = struct{}{}
	}

	categories := make([]string, 0, len(union))
	for c := range union {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	for _, c := range categories {
		t1 := totals1[c]
		t2 := totals2[c]
		cmp.ByCategory = append(cmp.ByCategory, CategoryDelta{
			Category: c,
			Total1:   t1,
			Total2:   t2,
			Delta:    t2.Sub(t1),
		})
	}
	return cmp
}
