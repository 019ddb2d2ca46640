// Package models defines the ledger data model shared by the storage,
// analytics and export layers.
package models

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// SentinelCategory is always a valid expense category without explicit
// registration in the category registry.
const SentinelCategory = "uncategorized"

// Expense is a single expense record. Amounts are stored in the base
// currency; conversion happens only at export time.
type Expense struct {
	ID          int             `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
	Tags        []string        `json:"tags,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

// Category is a named expense grouping.
type Category struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Metadata holds the ID high-water mark. LastID is always >= the maximum
// ID among current and previously deleted expenses, so IDs are never
// reused.
type Metadata struct {
	LastID int `json:"lastId"`
}

// Store is the aggregate root persisted as one JSON document.
// Budgets are keyed by year, then month (1..12). CategoryOrder records
// the insertion order of the name-keyed category registry.
type Store struct {
	Expenses      []Expense                       `json:"expenses"`
	Categories    map[string]Category             `json:"categories"`
	CategoryOrder []string                        `json:"categoryOrder"`
	Budgets       map[int]map[int]decimal.Decimal `json:"budgets"`
	Metadata      Metadata                        `json:"metadata"`
}

// NewStore returns an empty store with all collections initialized and
// LastID zero.
func NewStore() *Store {
	return &Store{
		Expenses:      []Expense{},
		Categories:    map[string]Category{},
		CategoryOrder: []string{},
		Budgets:       map[int]map[int]decimal.Decimal{},
		Metadata:      Metadata{LastID: 0},
	}
}

// EnsureCollections replaces nil collections after unmarshaling a document
// written by an older version or trimmed by hand, and reconciles the
// category order index with the registry.
func (s *Store) EnsureCollections() {
	if s.Expenses == nil {
		s.Expenses = []Expense{}
	}
	if s.Categories == nil {
		s.Categories = map[string]Category{}
	}
	if s.CategoryOrder == nil {
		s.CategoryOrder = []string{}
	}
	if s.Budgets == nil {
		s.Budgets = map[int]map[int]decimal.Decimal{}
	}
	s.reconcileCategoryOrder()
}

// reconcileCategoryOrder drops order entries without a registry entry and
// appends registry keys missing from the order, name-sorted. Documents
// written before the order index existed still list every category.
func (s *Store) reconcileCategoryOrder() {
	order := make([]string, 0, len(s.Categories))
	seen := make(map[string]bool, len(s.Categories))
	for _, key := range s.CategoryOrder {
		if _, ok := s.Categories[key]; ok && !seen[key] {
			order = append(order, key)
			seen[key] = true
		}
	}

	var missing []string
	for key := range s.Categories {
		if !seen[key] {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	s.CategoryOrder = append(order, missing...)
}

// AddCategory records the category and appends its key to the insertion
// order index unless the key is already registered.
func (s *Store) AddCategory(c Category) {
	if _, exists := s.Categories[c.Name]; !exists {
		s.CategoryOrder = append(s.CategoryOrder, c.Name)
	}
	s.Categories[c.Name] = c
}

// RemoveCategory deletes the category and its order index entry.
func (s *Store) RemoveCategory(key string) {
	delete(s.Categories, key)
	for i, name := range s.CategoryOrder {
		if name == key {
			s.CategoryOrder = append(s.CategoryOrder[:i], s.CategoryOrder[i+1:]...)
			break
		}
	}
}

// OrderedCategories returns the categories in insertion order.
func (s *Store) OrderedCategories() []Category {
	categories := make([]Category, 0, len(s.CategoryOrder))
	for _, key := range s.CategoryOrder {
		if c, ok := s.Categories[key]; ok {
			categories = append(categories, c)
		}
	}
	return categories
}

// CategoryInUse reports whether any expense references the category key.
func (s *Store) CategoryInUse(key string) bool {
	for _, e := range s.Expenses {
		if e.Category == key {
			return true
		}
	}
	return false
}

// Budget returns the budget amount for (year, month), or zero when unset.
func (s *Store) Budget(year, month int) decimal.Decimal {
	months, ok := s.Budgets[year]
	if !ok {
		return decimal.Zero
	}
	amount, ok := months[month]
	if !ok {
		return decimal.Zero
	}
	return amount
}

// SetBudget writes or overwrites the budget amount for (year, month).
func (s *Store) SetBudget(year, month int, amount decimal.Decimal) {
	if s.Budgets == nil {
		s.Budgets = map[int]map[int]decimal.Decimal{}
	}
	if s.Budgets[year] == nil {
		s.Budgets[year] = map[int]decimal.Decimal{}
	}
	s.Budgets[year][month] = amount
}
