package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreIsEmpty(t *testing.T) {
	s := NewStore()
	assert.Empty(t, s.Expenses)
	assert.Empty(t, s.Categories)
	assert.Empty(t, s.Budgets)
	assert.Equal(t, 0, s.Metadata.LastID)
}

func TestEnsureCollections(t *testing.T) {
	s := &Store{}
	s.EnsureCollections()
	assert.NotNil(t, s.Expenses)
	assert.NotNil(t, s.Categories)
	assert.NotNil(t, s.Budgets)
}

func TestCategoryInUse(t *testing.T) {
	s := NewStore()
	s.Expenses = append(s.Expenses, Expense{
		ID:       1,
		Category: "food",
		Amount:   decimal.NewFromFloat(12.50),
		Date:     time.Now(),
	})
	assert.True(t, s.CategoryInUse("food"))
	assert.False(t, s.CategoryInUse("transport"))
}

func TestBudgetAccess(t *testing.T) {
	s := NewStore()
	assert.True(t, s.Budget(2026, 3).IsZero())

	s.SetBudget(2026, 3, decimal.NewFromInt(100))
	assert.True(t, s.Budget(2026, 3).Equal(decimal.NewFromInt(100)))

	// setting again overwrites
	s.SetBudget(2026, 3, decimal.NewFromInt(250))
	assert.True(t, s.Budget(2026, 3).Equal(decimal.NewFromInt(250)))
}

func TestCategoryOrder(t *testing.T) {
	s := NewStore()
	s.AddCategory(Category{Name: "zebra"})
	s.AddCategory(Category{Name: "apple"})
	s.AddCategory(Category{Name: "zebra", Description: "updated"})

	ordered := s.OrderedCategories()
	require.Len(t, ordered, 2)
	assert.Equal(t, "zebra", ordered[0].Name)
	assert.Equal(t, "updated", ordered[0].Description)
	assert.Equal(t, "apple", ordered[1].Name)

	s.RemoveCategory("zebra")
	ordered = s.OrderedCategories()
	require.Len(t, ordered, 1)
	assert.Equal(t, "apple", ordered[0].Name)
}

func TestEnsureCollectionsRebuildsMissingOrder(t *testing.T) {
	s := &Store{
		Categories: map[string]Category{
			"pets":  {Name: "pets"},
			"books": {Name: "books"},
		},
	}
	s.EnsureCollections()

	// missing index entries come back name-sorted
	assert.Equal(t, []string{"books", "pets"}, s.CategoryOrder)

	// stale index entries are dropped
	s.CategoryOrder = []string{"gone", "pets", "books"}
	s.EnsureCollections()
	assert.Equal(t, []string{"pets", "books"}, s.CategoryOrder)
}

func TestStoreDocumentShape(t *testing.T) {
	s := NewStore()
	s.AddCategory(Category{Name: "food", Description: "meals"})
	s.SetBudget(2026, 4, decimal.NewFromInt(300))
	s.Expenses = append(s.Expenses, Expense{
		ID:          1,
		Description: "Lunch",
		Amount:      decimal.NewFromFloat(15.50),
		Category:    "food",
		Date:        time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC),
		Tags:        []string{"work"},
	})
	s.Metadata.LastID = 1

	data, err := json.Marshal(s)
	require.NoError(t, err)

	// Top-level keys and the year/month object nesting per the document
	// contract.
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	for _, key := range []string{"expenses", "categories", "categoryOrder", "budgets", "metadata"} {
		assert.Contains(t, doc, key)
	}
	assert.Contains(t, string(doc["budgets"]), `"2026"`)
	assert.Contains(t, string(doc["metadata"]), `"lastId":1`)

	var back Store
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Budget(2026, 4).Equal(decimal.NewFromInt(300)))
	assert.Equal(t, "Lunch", back.Expenses[0].Description)
}

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoney(decimal.NewFromFloat(10.25), "USD")
	b := NewMoney(decimal.NewFromFloat(4.75), "USD")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "15.00 USD", sum.String())

	sum, err = ZeroMoney("USD").Add(a)
	require.NoError(t, err)
	assert.Equal(t, "10.25 USD", sum.String())

	_, err = a.Add(NewMoney(decimal.NewFromInt(1), "CHF"))
	assert.Error(t, err)
}
