// Package catalog owns the in-memory product list: a generated sample set at
// startup, optionally replaced by a successful backend fetch.
package catalog

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"hooks/internal/domain"
)

// Fetcher is the best-effort backend read. A nil slice or error leaves the
// current catalog untouched.
type Fetcher interface {
	All(ctx context.Context) ([]domain.Product, error)
}

type Catalog struct {
	mu       sync.RWMutex
	products []domain.Product
	byID     map[int64]domain.Product
}

func New(products []domain.Product) *Catalog {
	c := &Catalog{}
	c.install(products)
	return c
}

func (c *Catalog) install(products []domain.Product) {
	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	c.products = products
	c.byID = byID
}

// Replace installs a fetched product list. Empty input is ignored so a dry
// backend never wipes the generated fallback.
func (c *Catalog) Replace(products []domain.Product) {
	if len(products) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.install(products)
}

// Refresh queries the backend and swaps the catalog on a non-empty result.
// Failures are logged and swallowed; the generated catalog stays in place.
func (c *Catalog) Refresh(ctx context.Context, f Fetcher, logger *zap.Logger) {
	products, err := f.All(ctx)
	if err != nil {
		logger.Warn("catalog refresh failed, keeping generated products", zap.Error(err))
		return
	}
	if len(products) == 0 {
		logger.Info("catalog backend empty, keeping generated products")
		return
	}
	c.Replace(products)
	logger.Info("catalog replaced from backend", zap.Int("count", len(products)))
}

// Products returns the catalog in stable order. The slice is a copy.
func (c *Catalog) Products() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Get(id int64) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.byID[id]
	return p, ok
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}

// Sort orders accepted by Filter. SortFeatured keeps catalog order.
const (
	SortFeatured  = "featured"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortNewest    = "newest"
)

// FilterOptions narrows and orders a catalog projection. Zero values mean
// "no constraint"; MaxPrice of 0 is treated as unbounded.
type FilterOptions struct {
	Categories []string
	MinPrice   float64
	MaxPrice   float64
	SortBy     string
}

// Filter recomputes a projection on every call; nothing is cached across
// catalog mutations.
func (c *Catalog) Filter(opts FilterOptions) []domain.Product {
	wanted := make(map[string]bool, len(opts.Categories))
	for _, cat := range opts.Categories {
		wanted[cat] = true
	}

	c.mu.RLock()
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if len(wanted) > 0 && !wanted[p.Category] {
			continue
		}
		if p.Price < opts.MinPrice {
			continue
		}
		if opts.MaxPrice > 0 && p.Price > opts.MaxPrice {
			continue
		}
		out = append(out, p)
	}
	c.mu.RUnlock()

	switch opts.SortBy {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return out
}
