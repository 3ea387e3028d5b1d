package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

const StatusActive = "active"

type MenuItemCategory struct {
	Name        string `json:"name"`
	Subcategory string `json:"subcategory,omitempty"`
}

type MenuItem struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	Category    MenuItemCategory `json:"category"`
	Status      string           `json:"status,omitempty"`
	Image       string           `json:"image,omitempty"`
}

// IsActive treats a missing status as available.
func (m MenuItem) IsActive() bool {
	return isActiveStatus(m.Status)
}

func isActiveStatus(status string) bool {
	trimmed := strings.TrimSpace(status)
	return trimmed == "" || strings.EqualFold(trimmed, StatusActive)
}
