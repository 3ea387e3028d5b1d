// Package catalog loads the read-only restaurant catalog (categories and
// menu items) from MongoDB or from a remote catalog API.
package catalog

import (
	"context"

	"nativedelight/internal/models"
)

type Provider interface {
	FetchCategories(ctx context.Context) ([]models.Category, error)
	FetchMenuItems(ctx context.Context) ([]models.MenuItem, error)
}
