package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	pkgerrors "github.com/rjbuenaventura/kusina-pos/pkg/errors"
	"github.com/rjbuenaventura/kusina-pos/pkg/logger"
)

type lister interface {
	List(ctx context.Context, category string) ([]Item, error)
}

// Cache is the listing cache the provider consults before the back
// office. *redis.Client satisfies it.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CatalogKey(category string) string
}

// Provider serves category listings, consulting the cache before the
// back office. The catalog is fetched once per category switch, not
// polled; mid-session stock changes from other terminals are an accepted
// staleness window because the back office re-checks stock at order
// creation.
type Provider struct {
	source lister
	cache  Cache
	ttl    time.Duration
	logg   *logger.Logger
}

// NewProvider builds a provider. The cache is optional; without one every
// listing goes straight to the back office.
func NewProvider(source lister, cache Cache, ttl time.Duration, logg *logger.Logger) (*Provider, error) {
	if source == nil {
		return nil, fmt.Errorf("catalog source required")
	}
	return &Provider{
		source: source,
		cache:  cache,
		ttl:    ttl,
		logg:   logg,
	}, nil
}

// List returns the items for a category, cache first.
func (p *Provider) List(ctx context.Context, category string) ([]Item, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}

	if p.cache != nil {
		if items, ok := p.fromCache(ctx, category); ok {
			return items, nil
		}
	}

	items, err := p.source.List(ctx, category)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		p.storeInCache(ctx, category, items)
	}
	return items, nil
}

// Find returns a single item from a category listing.
func (p *Provider) Find(ctx context.Context, category string, productID int64) (*Item, error) {
	items, err := p.List(ctx, category)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == productID {
			return &items[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found in category")
}

func (p *Provider) fromCache(ctx context.Context, category string) ([]Item, bool) {
	raw, err := p.cache.Get(ctx, p.cache.CatalogKey(category))
	if err != nil {
		return nil, false
	}
	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		if p.logg != nil {
			p.logg.Warn(p.logg.WithCategory(ctx, category), "discarding corrupt catalog cache entry")
		}
		return nil, false
	}
	return items, true
}

func (p *Provider) storeInCache(ctx context.Context, category string, items []Item) {
	payload, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := p.cache.Set(ctx, p.cache.CatalogKey(category), string(payload), p.ttl); err != nil && p.logg != nil {
		p.logg.Warn(p.logg.WithCategory(ctx, category), "failed to cache catalog listing")
	}
}
