// Package report combines the analytics aggregates and the budget status
// into the monthly report and the two-month comparison consumed by the
// presentation layer.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"fjacquet/expense-cli/internal/analytics"
	"fjacquet/expense-cli/internal/dateutils"
	"fjacquet/expense-cli/internal/ledger"
	"fjacquet/expense-cli/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// CategoryAmount is one row of the category breakdown, sorted descending
// by amount.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// Monthly is the structured monthly report.
type Monthly struct {
	Year         int
	Month        int
	ExpenseCount int
	Total        decimal.Decimal
	DailyAverage decimal.Decimal
	Peak         analytics.DailyTotal
	HasPeak      bool
	Categories   []CategoryAmount
	Daily        []analytics.DailyTotal
	Budget       ledger.BudgetStatus
}

// BuildMonthly derives the monthly report for a month of ref's year from
// a loaded store snapshot. The snapshot is not mutated.
func BuildMonthly(store *models.Store, month int, ref time.Time) Monthly {
	expenses := analytics.MonthExpenses(store, month, ref)
	daily := analytics.DailyTotals(expenses)
	peak, hasPeak := analytics.PeakDay(daily)

	r := Monthly{
		Year:         ref.Year(),
		Month:        month,
		ExpenseCount: len(expenses),
		Total:        analytics.Total(expenses),
		Peak:         peak,
		HasPeak:      hasPeak,
		Daily:        daily,
		Budget:       ledger.StatusFromStore(store, month, ref),
	}

	if days := analytics.DistinctDays(daily); days > 0 {
		r.DailyAverage = r.Total.Div(decimal.NewFromInt(int64(days))).Round(2)
	}

	for category, total := range analytics.CategoryTotals(expenses) {
		r.Categories = append(r.Categories, CategoryAmount{Category: category, Amount: total})
	}
	sort.Slice(r.Categories, func(i, j int) bool {
		if !r.Categories[i].Amount.Equal(r.Categories[j].Amount) {
			return r.Categories[i].Amount.GreaterThan(r.Categories[j].Amount)
		}
		return r.Categories[i].Category < r.Categories[j].Category
	})

	log.WithFields(logrus.Fields{
		"month":    month,
		"expenses": r.ExpenseCount,
		"total":    r.Total.String(),
	}).Debug("Built monthly report")
	return r
}

// Render produces the text form of the monthly report. Amounts carry the
// given currency code.
func Render(r Monthly, currency string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Monthly report for %s %d\n", dateutils.MonthName(r.Month), r.Year)
	fmt.Fprintf(&b, "Expenses: %d\n", r.ExpenseCount)
	fmt.Fprintf(&b, "Total: %s\n", models.NewMoney(r.Total, currency))

	if r.ExpenseCount == 0 {
		b.WriteString("No expenses recorded for this month.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Daily average: %s\n", models.NewMoney(r.DailyAverage, currency))
	if r.HasPeak {
		fmt.Fprintf(&b, "Peak day: %s (%s)\n",
			dateutils.ToISODate(r.Peak.Day), models.NewMoney(r.Peak.Total, currency))
	}

	b.WriteString("\nBy category:\n")
	for _, c := range r.Categories {
		fmt.Fprintf(&b, "  %-16s %s\n", c.Category, models.NewMoney(c.Amount, currency))
	}

	b.WriteString("\nDaily totals:\n")
	for _, d := range r.Daily {
		fmt.Fprintf(&b, "  %s  %s\n", dateutils.ToISODate(d.Day), models.NewMoney(d.Total, currency))
	}

	b.WriteString("\n" + renderBudget(r.Budget, currency))
	return b.String()
}

func renderBudget(status ledger.BudgetStatus, currency string) string {
	if !status.Budgeted {
		return "Budget: no budget set for this month\n"
	}
	return fmt.Sprintf("Budget: %s, spent %s, remaining %s (%s%% used, %s)\n",
		models.NewMoney(status.Budget, currency),
		models.NewMoney(status.Spent, currency),
		models.NewMoney(status.Remaining, currency),
		status.UsedPct.String(),
		status.Classification)
}

// RenderBudgetStatus produces the standalone text form of a budget
// status.
func RenderBudgetStatus(status ledger.BudgetStatus, currency string) string {
	header := fmt.Sprintf("Budget status for %s %d\n", dateutils.MonthName(status.Month), status.Year)
	return header + renderBudget(status, currency)
}

// RenderComparison produces the text form of a two-month comparison.
func RenderComparison(cmp analytics.MonthComparison, currency string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Comparison: %s vs %s %d\n",
		dateutils.MonthName(cmp.Month1), dateutils.MonthName(cmp.Month2), cmp.Year)
	fmt.Fprintf(&b, "%s total: %s\n", dateutils.MonthName(cmp.Month1), models.NewMoney(cmp.Total1, currency))
	fmt.Fprintf(&b, "%s total: %s\n", dateutils.MonthName(cmp.Month2), models.NewMoney(cmp.Total2, currency))
	fmt.Fprintf(&b, "Change: %s", models.NewMoney(cmp.Delta, currency))
	if cmp.PctValid {
		fmt.Fprintf(&b, " (%s%%)", cmp.PctChange.String())
	} else {
		b.WriteString(" (percentage undefined: first month has no expenses)")
	}
	b.WriteString("\n")

	if len(cmp.ByCategory) > 0 {
		b.WriteString("\nBy category:\n")
		for _, d := range cmp.ByCategory {
			delta := d.Delta.StringFixed(2)
			if !d.Delta.IsNegative() {
				delta = "+" + delta
			}
			fmt.Fprintf(&b, "  %-16s %s -> %s (%s)\n",
				d.Category,
				d.Total1.StringFixed(2),
				d.Total2.StringFixed(2),
				delta)
		}
	}
	return b.String()
}
