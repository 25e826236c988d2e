package catalog

import (
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vitrinelabs/storefront_api/internal/models"
)

// Filter results are memoized per normalized query; the feed is small and
// queries repeat as the user types.
const filterCacheSize = 128

// Catalog holds the full parsed product set and answers text-filter queries.
// It is the source of truth for listing and search. The set is replaced
// wholesale on feed refresh; individual products are never mutated.
type Catalog struct {
	mu       sync.RWMutex
	products []models.Product
	byID     map[string]models.Product
	filters  *lru.Cache[string, []models.Product]
}

// New constructs an empty Catalog.
func New() *Catalog {
	filters, _ := lru.New[string, []models.Product](filterCacheSize)
	return &Catalog{
		byID:    make(map[string]models.Product),
		filters: filters,
	}
}

// Replace swaps the product set and invalidates memoized filter results.
func (c *Catalog) Replace(products []models.Product) {
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	c.mu.Lock()
	c.products = products
	c.byID = byID
	c.mu.Unlock()

	c.filters.Purge()
}

// All returns a snapshot of the full product set in feed order.
func (c *Catalog) All() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of products held.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}

// Get returns the product with the given id.
func (c *Catalog) Get(id string) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.byID[id]
	return p, ok
}

// Filter returns products whose name or description contains the query,
// case-insensitively. An empty query matches everything. The result keeps
// feed order and an empty result is a valid outcome, not an error. Filter
// never mutates the catalog.
func (c *Catalog) Filter(query string) []models.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return c.All()
	}

	if cached, ok := c.filters.Get(query); ok {
		return cached
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	matched := make([]models.Product, 0)
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Description), query) {
			matched = append(matched, p)
		}
	}

	// Insert under the read lock so Replace's purge, which takes the write
	// lock, can never run between computing against the old set and
	// memoizing it.
	c.filters.Add(query, matched)
	return matched
}
