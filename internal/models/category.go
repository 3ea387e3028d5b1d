package models

type Subcategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoryImage is the normalized image representation; catalogs may send a
// bare location string instead, see ImageRef.
type CategoryImage struct {
	URL string `json:"url"`
}

type Category struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Status        string         `json:"status,omitempty"`
	Image         *CategoryImage `json:"image"`
	Subcategories []Subcategory  `json:"subcategories"`
}

func (c Category) IsActive() bool {
	return isActiveStatus(c.Status)
}

// HasSubcategory matches subcategory names exactly, the same way items are filtered.
func (c Category) HasSubcategory(name string) bool {
	for _, sub := range c.Subcategories {
		if sub.Name == name {
			return true
		}
	}
	return false
}
