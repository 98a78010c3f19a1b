// Package cart accumulates line items on the client side before they are
// submitted as a place-order request. It is a plain in-memory aggregate and
// never talks to the network; a Cart belongs to a single session and is not
// safe for concurrent use.
package cart

import "sort"

type Item struct {
	Name      string
	UnitPrice int64
	Quantity  int
}

type Cart struct {
	items map[string]Item
	seq   map[string]int
	next  int
}

func New() *Cart {
	return &Cart{
		items: make(map[string]Item),
		seq:   make(map[string]int),
	}
}

// Add inserts the item under the given line id. Repeat-order flows generate a
// fresh id per add, so there is no merging; adding an existing id replaces it.
func (c *Cart) Add(id string, item Item) {
	if item.Quantity < 0 {
		item.Quantity = 0
	}
	if _, ok := c.items[id]; !ok {
		c.seq[id] = c.next
		c.next++
	}
	c.items[id] = item
}

// UpdateQuantity sets the quantity for a line, clamped at zero. A line driven
// to zero stays in the cart as a visible empty row; removal is a separate
// user action.
func (c *Cart) UpdateQuantity(id string, quantity int) {
	item, ok := c.items[id]
	if !ok {
		return
	}
	if quantity < 0 {
		quantity = 0
	}
	item.Quantity = quantity
	c.items[id] = item
}

func (c *Cart) Remove(id string) {
	delete(c.items, id)
	delete(c.seq, id)
}

func (c *Cart) Get(id string) (Item, bool) {
	item, ok := c.items[id]
	return item, ok
}

func (c *Cart) Len() int {
	return len(c.items)
}

// Total is the amount owed over all lines, zeroed rows included (they
// contribute nothing).
func (c *Cart) Total() int64 {
	var total int64
	for _, item := range c.items {
		total += item.UnitPrice * int64(item.Quantity)
	}
	return total
}

func (c *Cart) Clear() {
	c.items = make(map[string]Item)
	c.seq = make(map[string]int)
	c.next = 0
}

// Items produces the place-order payload: lines in insertion order with
// zero-quantity rows left out.
func (c *Cart) Items() []Item {
	ids := make([]string, 0, len(c.items))
	for id, item := range c.items {
		if item.Quantity > 0 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return c.seq[ids[i]] < c.seq[ids[j]] })

	out := make([]Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.items[id])
	}
	return out
}
