package ledger

import (
	"time"

	"fjacquet/expense-cli/internal/dateutils"
	"fjacquet/expense-cli/internal/ledgererror"
	"fjacquet/expense-cli/internal/models"

	"github.com/shopspring/decimal"
)

// Classification is the warning level of a budget status.
type Classification string

const (
	ClassOK        Classification = "ok"
	ClassNearLimit Classification = "near-limit"
	ClassExceeded  Classification = "exceeded"
)

// nearLimitPct is the used-percentage threshold above which a budget is
// classified near-limit.
var nearLimitPct = decimal.NewFromInt(80)

// BudgetStatus is the derived spent-vs-budgeted comparison for one month
// of the current year. Budgeted is false when no budget is set; the
// percentage fields are meaningless in that case.
type BudgetStatus struct {
	Year           int
	Month          int
	Budgeted       bool
	Budget         decimal.Decimal
	Spent          decimal.Decimal
	Remaining      decimal.Decimal
	UsedPct        decimal.Decimal
	Classification Classification
}

// SetBudget writes or overwrites the budget for a month of the current
// system year. Budgets for other years cannot be addressed by month
// number alone; this mirrors the year-blind keying of the monthly
// analytics.
func (l *Ledger) SetBudget(month int, amount decimal.Decimal) error {
	if err := validateMonth(month); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return &ledgererror.ValidationError{Field: "amount", Reason: "must be positive"}
	}

	store, err := l.load()
	if err != nil {
		return err
	}

	year := l.now().Year()
	store.SetBudget(year, month, amount)
	if err := l.Write(store); err != nil {
		return err
	}

	log.WithFields(map[string]interface{}{
		"year":   year,
		"month":  month,
		"amount": amount.String(),
	}).Info("Set budget")
	return nil
}

// ViewBudget returns the budget amount for a month of the current year,
// zero when unset.
func (l *Ledger) ViewBudget(month int) (decimal.Decimal, error) {
	if err := validateMonth(month); err != nil {
		return decimal.Zero, err
	}
	store, err := l.load()
	if err != nil {
		return decimal.Zero, err
	}
	return store.Budget(l.now().Year(), month), nil
}

// ViewBudgets returns every month of the current year carrying a nonzero
// budget.
func (l *Ledger) ViewBudgets() (map[int]decimal.Decimal, error) {
	store, err := l.load()
	if err != nil {
		return nil, err
	}

	budgets := map[int]decimal.Decimal{}
	for month, amount := range store.Budgets[l.now().Year()] {
		if !amount.IsZero() {
			budgets[month] = amount
		}
	}
	return budgets, nil
}

// BudgetStatus computes the spent-vs-budgeted status for a month of the
// current year.
func (l *Ledger) BudgetStatus(month int) (BudgetStatus, error) {
	if err := validateMonth(month); err != nil {
		return BudgetStatus{}, err
	}
	store, err := l.load()
	if err != nil {
		return BudgetStatus{}, err
	}
	return StatusFromStore(store, month, l.now()), nil
}

// StatusFromStore derives the budget status for a month from an already
// loaded store snapshot. A zero budget short-circuits to an unbudgeted
// result instead of dividing by zero.
func StatusFromStore(store *models.Store, month int, now time.Time) BudgetStatus {
	year := now.Year()
	status := BudgetStatus{
		Year:   year,
		Month:  month,
		Budget: store.Budget(year, month),
	}

	spent := decimal.Zero
	for _, e := range store.Expenses {
		if dateutils.SameMonth(e.Date, year, month) {
			spent = spent.Add(e.Amount)
		}
	}
	status.Spent = spent

	if status.Budget.IsZero() {
		return status
	}

	status.Budgeted = true
	status.Remaining = status.Budget.Sub(spent)
	status.UsedPct = spent.Div(status.Budget).Mul(decimal.NewFromInt(100)).Round(2)

	switch {
	case status.Remaining.IsNegative():
		status.Classification = ClassExceeded
	case status.UsedPct.GreaterThan(nearLimitPct):
		status.Classification = ClassNearLimit
	default:
		status.Classification = ClassOK
	}
	return status
}

func validateMonth(month int) error {
	if month < 1 || month > 12 {
		return &ledgererror.ValidationError{Field: "month", Reason: "must be between 1 and 12"}
	}
	return nil
}
