// Package store holds the client-state containers: the cart and the
// notification feed. Both are explicit injectable values constructed at
// startup and passed by reference; nothing here is ambient.
package store

import (
	"errors"
	"sync"

	"hooks/internal/domain"
)

// ErrOutOfStock reports an add against a product with zero stock. It is a
// caller-facing condition, never fatal.
var ErrOutOfStock = errors.New("product is out of stock")

// Cart maintains the items a user intends to purchase. Item order is
// insertion order and stable across mutations; quantities stay within
// [1, stock]. Total is recomputed from the items on every read so it can
// never drift from the collection.
type Cart struct {
	mu    sync.RWMutex
	items []domain.CartItem

	subMu sync.Mutex
	subs  map[int]func()
	nextS int
}

func NewCart() *Cart {
	return &Cart{subs: make(map[int]func())}
}

// Subscribe registers fn to run synchronously after every mutation. The
// returned function unsubscribes.
func (c *Cart) Subscribe(fn func()) (unsubscribe func()) {
	c.subMu.Lock()
	id := c.nextS
	c.nextS++
	c.subs[id] = fn
	c.subMu.Unlock()

	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

func (c *Cart) notify() {
	c.subMu.Lock()
	fns := make([]func(), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// AddItem inserts the product with quantity 1, or increments an existing
// entry by one clamped to the product's stock. Zero stock is rejected.
func (c *Cart) AddItem(p domain.Product) error {
	if p.Stock <= 0 {
		return ErrOutOfStock
	}

	c.mu.Lock()
	for i := range c.items {
		if c.items[i].Product.ID == p.ID {
			if c.items[i].Quantity < c.items[i].Product.Stock {
				c.items[i].Quantity++
			}
			c.mu.Unlock()
			c.notify()
			return nil
		}
	}
	c.items = append(c.items, domain.CartItem{Product: p, Quantity: 1})
	c.mu.Unlock()
	c.notify()
	return nil
}

// RemoveItem deletes the entry for productID; absent ids are a no-op.
func (c *Cart) RemoveItem(productID int64) {
	c.mu.Lock()
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	c.notify()
}

// SetQuantity clamps quantity to [1, stock]. A requested quantity below 1
// removes the item entirely (decrement-to-zero removes).
func (c *Cart) SetQuantity(productID int64, quantity int) {
	if quantity < 1 {
		c.RemoveItem(productID)
		return
	}

	c.mu.Lock()
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			if quantity > c.items[i].Product.Stock {
				quantity = c.items[i].Product.Stock
			}
			c.items[i].Quantity = quantity
			break
		}
	}
	c.mu.Unlock()
	c.notify()
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
	c.notify()
}

// Items returns a copy of the cart in insertion order.
func (c *Cart) Items() []domain.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Total sums price × quantity over the collection, recomputed per call.
func (c *Cart) Total() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var total float64
	for _, it := range c.items {
		total += it.Subtotal()
	}
	return total
}

func (c *Cart) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
