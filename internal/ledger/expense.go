package ledger

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"fjacquet/expense-cli/internal/ledgererror"
	"fjacquet/expense-cli/internal/models"

	"github.com/shopspring/decimal"
)

// MinDescriptionLength is the shortest accepted expense description.
const MinDescriptionLength = 3

// AddOptions carries the optional fields of a new expense. A zero Date
// means "now".
type AddOptions struct {
	Tags  []string
	Notes string
	Date  time.Time
}

// UpdateFields carries a partial expense update. Nil pointers leave the
// field unchanged; a nil Tags slice leaves tags unchanged.
type UpdateFields struct {
	Description *string
	Amount      *decimal.Decimal
	Category    *string
	Date        *time.Time
	Tags        []string
	Notes       *string
}

// AddExpense validates the input, assigns the next ID and persists the
// new expense together with the advanced ID high-water mark.
func (l *Ledger) AddExpense(description string, amount decimal.Decimal, category string, opts AddOptions) (models.Expense, error) {
	store, err := l.load()
	if err != nil {
		return models.Expense{}, err
	}

	description = strings.TrimSpace(description)
	category = NormalizeCategoryKey(category)
	if category == "" {
		category = models.SentinelCategory
	}

	if err := validateExpense(store, description, amount, category); err != nil {
		return models.Expense{}, err
	}

	date := opts.Date
	if date.IsZero() {
		date = l.now()
	}

	expense := models.Expense{
		ID:          l.NextID(store),
		Description: description,
		Amount:      amount,
		Category:    category,
		Date:        date,
		Tags:        dedupeTags(opts.Tags),
		Notes:       opts.Notes,
	}

	store.Expenses = append(store.Expenses, expense)
	store.Metadata.LastID = expense.ID

	if err := l.Write(store); err != nil {
		return models.Expense{}, err
	}

	log.WithFields(logFieldsForExpense(expense)).Info("Added expense")
	return expense, nil
}

// UpdateExpense applies a partial update to an existing expense. Changed
// fields pass through the same validation as AddExpense.
func (l *Ledger) UpdateExpense(id int, fields UpdateFields) (models.Expense, error) {
	store, err := l.load()
	if err != nil {
		return models.Expense{}, err
	}

	idx := findExpense(store, id)
	if idx < 0 {
		return models.Expense{}, &ledgererror.NotFoundError{Kind: "expense", Key: strconv.Itoa(id)}
	}

	updated := store.Expenses[idx]
	if fields.Description != nil {
		updated.Description = strings.TrimSpace(*fields.Description)
	}
	if fields.Amount != nil {
		updated.Amount = *fields.Amount
	}
	if fields.Category != nil {
		key := NormalizeCategoryKey(*fields.Category)
		if key == "" {
			key = models.SentinelCategory
		}
		updated.Category = key
	}
	if fields.Date != nil {
		updated.Date = *fields.Date
	}
	if fields.Tags != nil {
		updated.Tags = dedupeTags(fields.Tags)
	}
	if fields.Notes != nil {
		updated.Notes = *fields.Notes
	}

	if err := validateExpense(store, updated.Description, updated.Amount, updated.Category); err != nil {
		return models.Expense{}, err
	}

	store.Expenses[idx] = updated
	if err := l.Write(store); err != nil {
		return models.Expense{}, err
	}

	log.WithFields(logFieldsForExpense(updated)).Info("Updated expense")
	return updated, nil
}

// DeleteExpense removes an expense and returns the deleted record. The ID
// high-water mark is not lowered, so the ID is never reused.
func (l *Ledger) DeleteExpense(id int) (models.Expense, error) {
	store, err := l.load()
	if err != nil {
		return models.Expense{}, err
	}

	idx := findExpense(store, id)
	if idx < 0 {
		return models.Expense{}, &ledgererror.NotFoundError{Kind: "expense", Key: strconv.Itoa(id)}
	}

	deleted := store.Expenses[idx]
	store.Expenses = append(store.Expenses[:idx], store.Expenses[idx+1:]...)

	if err := l.Write(store); err != nil {
		return models.Expense{}, err
	}

	log.WithField("id", deleted.ID).Info("Deleted expense")
	return deleted, nil
}

// ListExpenses returns all expenses ordered by date descending.
func (l *Ledger) ListExpenses() ([]models.Expense, error) {
	store, err := l.load()
	if err != nil {
		return nil, err
	}

	expenses := make([]models.Expense, len(store.Expenses))
	copy(expenses, store.Expenses)
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Date.After(expenses[j].Date)
	})
	return expenses, nil
}

// NormalizeCategoryKey maps a user-supplied category name to its registry
// key.
func NormalizeCategoryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// validateExpense is the single validation path shared by the add and
// update entry points.
func validateExpense(store *models.Store, description string, amount decimal.Decimal, category string) error {
	if len(description) < MinDescriptionLength {
		return &ledgererror.ValidationError{
			Field:  "description",
			Reason: fmt.Sprintf("must be at least %d characters", MinDescriptionLength),
		}
	}
	if !amount.IsPositive() {
		return &ledgererror.ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if category != models.SentinelCategory {
		if _, ok := store.Categories[category]; !ok {
			return &ledgererror.ValidationError{
				Field:  "category",
				Reason: fmt.Sprintf("category does not exist: %s", category),
			}
		}
	}
	return nil
}

func findExpense(store *models.Store, id int) int {
	for i, e := range store.Expenses {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// dedupeTags trims, lowercases and deduplicates tags preserving first
// occurrence order.
func dedupeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func logFieldsForExpense(e models.Expense) map[string]interface{} {
	return map[string]interface{}{
		"id":       e.ID,
		"amount":   e.Amount.String(),
		"category": e.Category,
	}
}
