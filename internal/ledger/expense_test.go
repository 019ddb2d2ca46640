package ledger

import (
	"testing"
	"time"

	"fjacquet/expense-cli/internal/ledgererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newLedgerWithCategories(t *testing.T, names ...string) *Ledger {
	t.Helper()
	l := newTestLedger(t)
	for _, name := range names {
		_, err := l.AddCategory(name, "")
		require.NoError(t, err)
	}
	return l
}

func TestAddExpenseAssignsSequentialIDs(t *testing.T) {
	l := newLedgerWithCategories(t, "food")

	first, err := l.AddExpense("Lunch", amount("15.50"), "food", AddOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)

	second, err := l.AddExpense("Dinner", amount("22.00"), "food", AddOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)
}

func TestAddExpenseUnknownCategory(t *testing.T) {
	l := newLedgerWithCategories(t, "food")

	_, err := l.AddExpense("Lunch", amount("15.50"), "food", AddOptions{})
	require.NoError(t, err)

	// transport was never added
	_, err = l.AddExpense("Bus", amount("2.75"), "transport", AddOptions{})
	require.Error(t, err)
	assert.True(t, ledgererror.IsValidation(err))
	assert.Contains(t, err.Error(), "category does not exist")
}

func TestAddExpenseSentinelCategory(t *testing.T) {
	l := newTestLedger(t)

	// Sentinel category is always valid, and empty defaults to it.
	e, err := l.AddExpense("Mystery purchase", amount("9.99"), "", AddOptions{})
	require.NoError(t, err)
	assert.Equal(t, "uncategorized", e.Category)

	e, err = l.AddExpense("Another one", amount("1.00"), "Uncategorized", AddOptions{})
	require.NoError(t, err)
	assert.Equal(t, "uncategorized", e.Category)
}

func TestAddExpenseValidation(t *testing.T) {
	l := newLedgerWithCategories(t, "food")

	tests := []struct {
		name        string
		description string
		amount      decimal.Decimal
	}{
		{"short description", "ab", amount("10")},
		{"empty description", "   ", amount("10")},
		{"zero amount", "Lunch", decimal.Zero},
		{"negative amount", "Lunch", amount("-5")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.AddExpense(tt.description, tt.amount, "food", AddOptions{})
			require.Error(t, err)
			assert.True(t, ledgererror.IsValidation(err))
		})
	}
}

func TestAddExpenseDefaultsAndOverrides(t *testing.T) {
	l := newLedgerWithCategories(t, "food")

	e, err := l.AddExpense("Lunch", amount("15.50"), "food", AddOptions{})
	require.NoError(t, err)
	assert.True(t, e.Date.Equal(testNow), "date defaults to the clock")

	override := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	e, err = l.AddExpense("Dinner", amount("20"), "food", AddOptions{
		Date:  override,
		Tags:  []string{"Work", "work", " travel ", ""},
		Notes: "client visit",
	})
	require.NoError(t, err)
	assert.True(t, e.Date.Equal(override))
	assert.Equal(t, []string{"work", "travel"}, e.Tags)
	assert.Equal(t, "client visit", e.Notes)
}

func TestIDMonotonicityAcrossDeletions(t *testing.T) {
	l := newLedgerWithCategories(t, "food")

	var lastID int
	for i := 0; i < 3; i++ {
		e, err := l.AddExpense("Some meal", amount("10"), "food", AddOptions{})
		require.NoError(t, err)
		assert.Greater(t, e.ID, lastID)
		lastID = e.ID
	}

	_, err := l.DeleteExpense(lastID)
	require.NoError(t, err)

	e, err := l.AddExpense("Another meal", amount("10"), "food", AddOptions{})
	require.NoError(t, err)
	assert.Greater(t, e.ID, lastID, "deleted IDs are never reused")
}

func TestUpdateExpensePartial(t *testing.T) {
	l := newLedgerWithCategories(t, "food", "transport")

	e, err := l.AddExpense("Lunch", amount("15.50"), "food", AddOptions{Notes: "old note"})
	require.NoError(t, err)

	newAmount := amount("18.00")
	newCategory := "transport"
	updated, err := l.UpdateExpense(e.ID, UpdateFields{
		Amount:   &newAmount,
		Category: &newCategory,
	})
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(newAmount))
	assert.Equal(t, "transport", updated.Category)
	// untouched fields survive
	assert.Equal(t, "Lunch", updated.Description)
	assert.Equal(t, "old note", updated.Notes)
}

func TestUpdateExpenseValidatesChangedFields(t *testing.T) {
	l := newLedgerWithCategories(t, "food")

	e, err := l.AddExpense("Lunch", amount("15.50"), "food", AddOptions{})
	require.NoError(t, err)

	bad := "no-such-category"
	_, err = l.UpdateExpense(e.ID, UpdateFields{Category: &bad})
	require.Error(t, err)
	assert.True(t, ledgererror.IsValidation(err))

	negative := amount("-1")
	_, err = l.UpdateExpense(e.ID, UpdateFields{Amount: &negative})
	require.Error(t, err)
	assert.True(t, ledgererror.IsValidation(err))
}

func TestUpdateExpenseEmptyCategoryFallsBackToSentinel(t *testing.T) {
	l := newLedgerWithCategories(t, "food")

	e, err := l.AddExpense("Lunch", amount("15.50"), "food", AddOptions{})
	require.NoError(t, err)

	// clearing the category behaves like adding without one
	empty := "  "
	updated, err := l.UpdateExpense(e.ID, UpdateFields{Category: &empty})
	require.NoError(t, err)
	assert.Equal(t, "uncategorized", updated.Category)
}

func TestUpdateExpenseNotFound(t *testing.T) {
	l := newTestLedger(t)
	desc := "Updated"
	_, err := l.UpdateExpense(99, UpdateFields{Description: &desc})
	require.Error(t, err)
	assert.True(t, ledgererror.IsNotFound(err))
}

func TestDeleteExpenseReturnsDeletedRecord(t *testing.T) {
	l := newLedgerWithCategories(t, "food")

	e, err := l.AddExpense("Lunch", amount("15.50"), "food", AddOptions{})
	require.NoError(t, err)

	deleted, err := l.DeleteExpense(e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, deleted.ID)
	assert.Equal(t, "Lunch", deleted.Description)

	_, err = l.DeleteExpense(e.ID)
	require.Error(t, err)
	assert.True(t, ledgererror.IsNotFound(err))
}

func TestListExpensesOrderedByDateDescending(t *testing.T) {
	l := newLedgerWithCategories(t, "food")

	older := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := l.AddExpense("Older meal", amount("10"), "food", AddOptions{Date: older})
	require.NoError(t, err)
	_, err = l.AddExpense("Newer meal", amount("10"), "food", AddOptions{Date: newer})
	require.NoError(t, err)

	expenses, err := l.ListExpenses()
	require.NoError(t, err)
	require.Len(t, expenses, 2)
	assert.Equal(t, "Newer meal", expenses[0].Description)
	assert.Equal(t, "Older meal", expenses[1].Description)
}
