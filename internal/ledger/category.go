package ledger

import (
	"fjacquet/expense-cli/internal/ledgererror"
	"fjacquet/expense-cli/internal/models"
)

// seedCategories is installed and persisted the first time the registry
// is listed while empty, so a fresh ledger starts with a usable set.
var seedCategories = []models.Category{
	{Name: "food", Description: "Meals, groceries and drinks"},
	{Name: "transport", Description: "Public transport, fuel and parking"},
	{Name: "housing", Description: "Rent, mortgage and maintenance"},
	{Name: "utilities", Description: "Electricity, water, internet and phone"},
	{Name: "entertainment", Description: "Leisure, subscriptions and events"},
	{Name: "health", Description: "Medical, pharmacy and insurance"},
	{Name: "shopping", Description: "Clothing and household purchases"},
	{Name: "other", Description: "Everything else"},
}

// AddCategory registers a new category. The name is normalized to its
// lower-case key; registering an existing key fails.
func (l *Ledger) AddCategory(name, description string) (models.Category, error) {
	store, err := l.load()
	if err != nil {
		return models.Category{}, err
	}

	key := NormalizeCategoryKey(name)
	if key == "" {
		return models.Category{}, &ledgererror.ValidationError{Field: "category", Reason: "name must not be empty"}
	}
	if key == models.SentinelCategory {
		return models.Category{}, &ledgererror.ValidationError{Field: "category", Reason: "name is reserved"}
	}
	if _, exists := store.Categories[key]; exists {
		return models.Category{}, &ledgererror.CategoryError{Name: key, Kind: ledgererror.CategoryDuplicate}
	}

	category := models.Category{Name: key, Description: description}
	store.AddCategory(category)

	if err := l.Write(store); err != nil {
		return models.Category{}, err
	}

	log.WithField("category", key).Info("Added category")
	return category, nil
}

// ListCategories returns all registered categories in insertion order.
// An empty registry is seeded with the default set and persisted before
// being returned, so the registry is non-empty on first real use.
func (l *Ledger) ListCategories() ([]models.Category, error) {
	store, err := l.load()
	if err != nil {
		return nil, err
	}

	if len(store.Categories) == 0 {
		for _, c := range seedCategories {
			store.AddCategory(c)
		}
		if err := l.Write(store); err != nil {
			return nil, err
		}
		log.WithField("count", len(seedCategories)).Info("Seeded default categories")
	}

	return store.OrderedCategories(), nil
}

// DeleteCategory removes a category. Deletion fails while any expense
// still references the category.
func (l *Ledger) DeleteCategory(name string) error {
	store, err := l.load()
	if err != nil {
		return err
	}

	key := NormalizeCategoryKey(name)
	if _, exists := store.Categories[key]; !exists {
		return &ledgererror.NotFoundError{Kind: "category", Key: key}
	}
	if store.CategoryInUse(key) {
		return &ledgererror.CategoryError{Name: key, Kind: ledgererror.CategoryInUse}
	}

	store.RemoveCategory(key)
	if err := l.Write(store); err != nil {
		return err
	}

	log.WithField("category", key).Info("Deleted category")
	return nil
}
