package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"

	"nativedelight/internal/apperrors"
	"nativedelight/internal/models"
)

const loadFailedMessage = "Failed to load menu or categories. Please try again later."

// Snapshot is the catalog as seen by one session. It is never mutated after
// construction, so it can be shared without locking.
type Snapshot struct {
	Categories []models.Category
	Items      []models.MenuItem

	itemsByID      map[string]models.MenuItem
	categoryByName map[string]models.Category
}

func NewSnapshot(categories []models.Category, items []models.MenuItem) *Snapshot {
	s := &Snapshot{
		Categories:     make([]models.Category, 0, len(categories)),
		Items:          make([]models.MenuItem, 0, len(items)),
		itemsByID:      make(map[string]models.MenuItem, len(items)),
		categoryByName: make(map[string]models.Category, len(categories)),
	}

	for _, category := range categories {
		if !category.IsActive() {
			continue
		}
		s.Categories = append(s.Categories, category)
		if _, exists := s.categoryByName[category.Name]; !exists {
			s.categoryByName[category.Name] = category
		}
	}

	for _, item := range items {
		if item.ID == "" || !item.IsActive() || item.Price.IsNegative() {
			continue
		}
		if _, exists := s.itemsByID[item.ID]; exists {
			continue
		}
		s.Items = append(s.Items, item)
		s.itemsByID[item.ID] = item
	}

	return s
}

func (s *Snapshot) Item(id string) (models.MenuItem, bool) {
	item, ok := s.itemsByID[id]
	return item, ok
}

func (s *Snapshot) Category(name string) (models.Category, bool) {
	category, ok := s.categoryByName[name]
	return category, ok
}

// FirstCategory is the category shown when a session starts.
func (s *Snapshot) FirstCategory() string {
	if len(s.Categories) == 0 {
		return ""
	}
	return s.Categories[0].Name
}

// Load fetches categories and menu items concurrently. Any failure is
// reported as a load error; nothing is retried.
func Load(ctx context.Context, provider Provider) (*Snapshot, error) {
	var (
		categories []models.Category
		items      []models.MenuItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = provider.FetchCategories(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = provider.FetchMenuItems(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeLoad, err, loadFailedMessage)
	}

	return NewSnapshot(categories, items), nil
}
