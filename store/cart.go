package store

import (
	"sync"

	"github.com/wishcrate/storefront/client"
)

// Cart holds the last-fetched cart snapshot and the item count derived
// from it. The count is the server's TotalItems, trusted as-is.
type Cart struct {
	mu sync.RWMutex

	snapshot  *client.Cart
	itemCount int
	gate      gate
}

// NewCart creates an empty cart container.
func NewCart() *Cart {
	return &Cart{}
}

// Begin issues a sequence token for a request whose response will be
// presented to Replace. Requests that race take distinct tokens and the
// newest applied one wins.
func (c *Cart) Begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gate.begin()
}

// Replace stores the snapshot wholesale and derives the item count, or
// reports false when a newer response has already been applied. A nil
// snapshot reads as an empty cart.
func (c *Cart) Replace(seq uint64, snapshot *client.Cart) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.gate.admit(seq) {
		return false
	}

	c.snapshot = snapshot
	if snapshot == nil {
		c.itemCount = 0
	} else {
		c.itemCount = snapshot.TotalItems
	}
	return true
}

// Clear resets to no snapshot and zero count, and discards every
// outstanding sequence token so in-flight responses are abandoned.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshot = nil
	c.itemCount = 0
	c.gate.seal()
}

// Snapshot returns the current cart snapshot, or nil.
func (c *Cart) Snapshot() *client.Cart {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// ItemCount returns the derived item count.
func (c *Cart) ItemCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.itemCount
}
