// Package view tracks which category or subcategory a session is browsing
// and derives the visible menu items from it.
package view

import "nativedelight/internal/models"

type Mode string

const (
	ModeCategories  Mode = "categories"
	ModeSubcategory Mode = "subcategory"
)

// Selection is the serializable view state.
type Selection struct {
	Mode              Mode   `json:"mode"`
	ActiveCategory    string `json:"activeCategory"`
	ActiveSubcategory string `json:"activeSubcategory"`
	DetailCategory    string `json:"detailCategory,omitempty"`
}

// Selector is not safe for concurrent use.
type Selector struct {
	mode              Mode
	activeCategory    string
	activeSubcategory string
	detailCategory    string
}

func NewSelector(defaultCategory string) *Selector {
	return &Selector{mode: ModeCategories, activeCategory: defaultCategory}
}

// SelectCategory filters by category name alone.
func (s *Selector) SelectCategory(name string) {
	s.mode = ModeCategories
	s.activeCategory = name
	s.activeSubcategory = ""
}

// OpenCategory shows the detail view listing a category's subcategories.
func (s *Selector) OpenCategory(name string) {
	s.detailCategory = name
}

func (s *Selector) CloseCategory() {
	s.detailCategory = ""
}

func (s *Selector) DetailCategory() string {
	return s.detailCategory
}

// SelectSubcategory switches to subcategory mode and closes the detail view.
func (s *Selector) SelectSubcategory(category, subcategory string) {
	s.mode = ModeSubcategory
	s.activeCategory = category
	s.activeSubcategory = subcategory
	s.detailCategory = ""
}

// Back returns to categories mode with both selections cleared.
func (s *Selector) Back() {
	s.mode = ModeCategories
	s.activeCategory = ""
	s.activeSubcategory = ""
	s.detailCategory = ""
}

func (s *Selector) Mode() Mode {
	return s.mode
}

func (s *Selector) Selection() Selection {
	return Selection{
		Mode:              s.mode,
		ActiveCategory:    s.activeCategory,
		ActiveSubcategory: s.activeSubcategory,
		DetailCategory:    s.detailCategory,
	}
}

func (s *Selector) Matches(item models.MenuItem) bool {
	if item.Category.Name != s.activeCategory {
		return false
	}
	if s.mode == ModeSubcategory {
		return item.Category.Subcategory == s.activeSubcategory
	}
	return true
}

// Visible keeps the catalog order of items.
func (s *Selector) Visible(items []models.MenuItem) []models.MenuItem {
	visible := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if s.Matches(item) {
			visible = append(visible, item)
		}
	}
	return visible
}
