package store

import (
	"sync"

	"github.com/wishcrate/storefront/client"
)

// Catalog holds the last-fetched product listings: the browsed page, the
// featured set and the currently viewed product. Each slot is replaced
// wholesale on fetch; a failed fetch leaves the previous value in place
// because nothing is ever written for it.
type Catalog struct {
	mu sync.RWMutex

	products []client.Product
	featured []client.Product
	current  *client.Product

	productsGate gate
	featuredGate gate
	currentGate  gate
}

// NewCatalog creates an empty catalog container.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// BeginProducts issues a sequence token for a product listing fetch.
func (c *Catalog) BeginProducts() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.productsGate.begin()
}

// ReplaceProducts stores the listing wholesale, or reports false when a
// newer fetch has already landed.
func (c *Catalog) ReplaceProducts(seq uint64, products []client.Product) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.productsGate.admit(seq) {
		return false
	}
	c.products = products
	return true
}

// BeginFeatured issues a sequence token for a featured fetch.
func (c *Catalog) BeginFeatured() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.featuredGate.begin()
}

// ReplaceFeatured stores the featured set wholesale.
func (c *Catalog) ReplaceFeatured(seq uint64, products []client.Product) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.featuredGate.admit(seq) {
		return false
	}
	c.featured = products
	return true
}

// BeginCurrent issues a sequence token for a product detail fetch.
func (c *Catalog) BeginCurrent() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentGate.begin()
}

// SetCurrent stores the viewed product, or nil to clear it.
func (c *Catalog) SetCurrent(seq uint64, product *client.Product) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.currentGate.admit(seq) {
		return false
	}
	c.current = product
	return true
}

// Products returns the last stored listing.
func (c *Catalog) Products() []client.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.products
}

// Featured returns the last stored featured set.
func (c *Catalog) Featured() []client.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.featured
}

// Current returns the currently viewed product, or nil.
func (c *Catalog) Current() *client.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}
