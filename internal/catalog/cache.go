package catalog

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"nativedelight/internal/models"
)

const (
	categoriesKey = "categories"
	menuItemsKey  = "menu_items"

	sharedFetchTimeout = 15 * time.Second
)

// CachedProvider memoizes the upstream lists for ttl. Concurrent misses for
// the same list share one upstream call. A non-positive ttl disables caching.
type CachedProvider struct {
	next       Provider
	categories *expirable.LRU[string, []models.Category]
	items      *expirable.LRU[string, []models.MenuItem]
	group      singleflight.Group
}

func NewCachedProvider(next Provider, ttl time.Duration) *CachedProvider {
	p := &CachedProvider{next: next}
	if ttl > 0 {
		p.categories = expirable.NewLRU[string, []models.Category](1, nil, ttl)
		p.items = expirable.NewLRU[string, []models.MenuItem](1, nil, ttl)
	}
	return p
}

func (p *CachedProvider) FetchCategories(ctx context.Context) ([]models.Category, error) {
	if p.categories == nil {
		return p.next.FetchCategories(ctx)
	}
	if cached, ok := p.categories.Get(categoriesKey); ok {
		return cloneCategories(cached), nil
	}

	v, err := p.shared(ctx, categoriesKey, func(fetchCtx context.Context) (any, error) {
		categories, err := p.next.FetchCategories(fetchCtx)
		if err != nil {
			return nil, err
		}
		p.categories.Add(categoriesKey, categories)
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return cloneCategories(v.([]models.Category)), nil
}

func (p *CachedProvider) FetchMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	if p.items == nil {
		return p.next.FetchMenuItems(ctx)
	}
	if cached, ok := p.items.Get(menuItemsKey); ok {
		return cloneItems(cached), nil
	}

	v, err := p.shared(ctx, menuItemsKey, func(fetchCtx context.Context) (any, error) {
		items, err := p.next.FetchMenuItems(fetchCtx)
		if err != nil {
			return nil, err
		}
		p.items.Add(menuItemsKey, items)
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return cloneItems(v.([]models.MenuItem)), nil
}

// shared runs one upstream fetch for every concurrent caller of key. The fetch
// does not inherit the cancellation of whichever caller started it; each
// caller stops waiting when its own ctx ends.
func (p *CachedProvider) shared(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {
	ch := p.group.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedFetchTimeout)
		defer cancel()
		return fetch(fetchCtx)
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Invalidate drops both cached lists.
func (p *CachedProvider) Invalidate() {
	if p.categories != nil {
		p.categories.Purge()
	}
	if p.items != nil {
		p.items.Purge()
	}
}

func cloneCategories(in []models.Category) []models.Category {
	out := make([]models.Category, len(in))
	copy(out, in)
	return out
}

func cloneItems(in []models.MenuItem) []models.MenuItem {
	out := make([]models.MenuItem, len(in))
	copy(out, in)
	return out
}
