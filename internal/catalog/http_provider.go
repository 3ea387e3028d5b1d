package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"nativedelight/internal/models"
)

const maxCatalogBody = 4 << 20

type subcategoryPayload struct {
	ID    string `json:"_id"`
	AltID string `json:"id"`
	Name  string `json:"name"`
}

type categoryPayload struct {
	ID            string               `json:"_id"`
	AltID         string               `json:"id"`
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	Status        string               `json:"status"`
	Image         models.ImageRef      `json:"image"`
	Subcategories []subcategoryPayload `json:"subcategories"`
}

type menuItemPayload struct {
	ID          string                  `json:"_id"`
	AltID       string                  `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Price       decimal.Decimal         `json:"price"`
	Category    models.MenuItemCategory `json:"category"`
	Status      string                  `json:"status"`
	Image       string                  `json:"image"`
}

// HTTPProvider reads the catalog from a remote API exposing
// GET /categories and GET /menu-items.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

func NewHTTPProvider(baseURL string, timeout time.Duration) *HTTPProvider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPProvider{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *HTTPProvider) FetchCategories(ctx context.Context) ([]models.Category, error) {
	var payload []categoryPayload
	if err := p.getList(ctx, "/categories", &payload); err != nil {
		return nil, err
	}

	categories := make([]models.Category, 0, len(payload))
	for _, raw := range payload {
		subs := make([]models.Subcategory, 0, len(raw.Subcategories))
		for _, sub := range raw.Subcategories {
			subs = append(subs, models.Subcategory{
				ID:   firstNonEmpty(sub.ID, sub.AltID),
				Name: strings.TrimSpace(sub.Name),
			})
		}
		categories = append(categories, models.Category{
			ID:            firstNonEmpty(raw.ID, raw.AltID),
			Name:          strings.TrimSpace(raw.Name),
			Description:   raw.Description,
			Status:        raw.Status,
			Image:         raw.Image.Image(),
			Subcategories: subs,
		})
	}
	return categories, nil
}

func (p *HTTPProvider) FetchMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	var payload []menuItemPayload
	if err := p.getList(ctx, "/menu-items", &payload); err != nil {
		return nil, err
	}

	items := make([]models.MenuItem, 0, len(payload))
	for _, raw := range payload {
		items = append(items, models.MenuItem{
			ID:          firstNonEmpty(raw.ID, raw.AltID),
			Name:        strings.TrimSpace(raw.Name),
			Description: raw.Description,
			Price:       raw.Price.Round(2),
			Category: models.MenuItemCategory{
				Name:        strings.TrimSpace(raw.Category.Name),
				Subcategory: strings.TrimSpace(raw.Category.Subcategory),
			},
			Status: raw.Status,
			Image:  raw.Image,
		})
	}
	return items, nil
}

func (p *HTTPProvider) getList(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBody))
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := decodeList(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
