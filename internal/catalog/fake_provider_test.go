package catalog

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"nativedelight/internal/models"
)

type fakeProvider struct {
	categories    []models.Category
	items         []models.MenuItem
	categoriesErr error
	itemsErr      error

	categoryCalls atomic.Int32
	itemCalls     atomic.Int32
}

func (f *fakeProvider) FetchCategories(ctx context.Context) ([]models.Category, error) {
	f.categoryCalls.Add(1)
	if f.categoriesErr != nil {
		return nil, f.categoriesErr
	}
	return f.categories, nil
}

func (f *fakeProvider) FetchMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	f.itemCalls.Add(1)
	if f.itemsErr != nil {
		return nil, f.itemsErr
	}
	return f.items, nil
}

var errUpstream = errors.New("upstream unavailable")

func sampleCatalog() *fakeProvider {
	return &fakeProvider{
		categories: []models.Category{
			{ID: "c1", Name: "Soups", Subcategories: []models.Subcategory{{ID: "s1", Name: "Pepper"}}},
			{ID: "c2", Name: "Rice"},
			{ID: "c3", Name: "Retired", Status: "inactive"},
		},
		items: []models.MenuItem{
			{ID: "a", Name: "Egusi", Price: decimal.RequireFromString("2000"), Category: models.MenuItemCategory{Name: "Soups"}},
			{ID: "b", Name: "Jollof", Price: decimal.RequireFromString("1500"), Category: models.MenuItemCategory{Name: "Rice"}},
			{ID: "c", Name: "Goat Pepper Soup", Price: decimal.RequireFromString("3500"), Category: models.MenuItemCategory{Name: "Soups", Subcategory: "Pepper"}},
			{ID: "d", Name: "Hidden", Price: decimal.RequireFromString("10"), Status: "inactive"},
		},
	}
}
