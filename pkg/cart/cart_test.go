package cart

import (
	"testing"
)

func TestCart(t *testing.T) {
	tests := []struct {
		name    string
		actions func(c *Cart, t *testing.T)
	}{
		{
			name: "total over several lines",
			actions: func(c *Cart, t *testing.T) {
				c.Add("1", Item{Name: "Pizza", UnitPrice: 300, Quantity: 2})
				c.Add("2", Item{Name: "Coke", UnitPrice: 60, Quantity: 1})
				if got := c.Total(); got != 660 {
					t.Errorf("expected total=660, got=%d", got)
				}
			},
		},
		{
			name: "quantity never goes below zero",
			actions: func(c *Cart, t *testing.T) {
				c.Add("1", Item{Name: "Fries", UnitPrice: 100, Quantity: 1})
				c.UpdateQuantity("1", -3)
				item, ok := c.Get("1")
				if !ok || item.Quantity != 0 {
					t.Errorf("expected clamped quantity=0, got=%+v ok=%v", item, ok)
				}
			},
		},
		{
			name: "zeroed line stays visible but is not submitted",
			actions: func(c *Cart, t *testing.T) {
				c.Add("1", Item{Name: "Burger", UnitPrice: 150, Quantity: 2})
				c.UpdateQuantity("1", 0)
				if c.Len() != 1 {
					t.Errorf("expected zeroed line to stay in cart, len=%d", c.Len())
				}
				if items := c.Items(); len(items) != 0 {
					t.Errorf("expected empty payload, got=%v", items)
				}
				if got := c.Total(); got != 0 {
					t.Errorf("expected total=0, got=%d", got)
				}
			},
		},
		{
			name: "remove deletes the line outright",
			actions: func(c *Cart, t *testing.T) {
				c.Add("1", Item{Name: "Pasta", UnitPrice: 220, Quantity: 1})
				c.Remove("1")
				if c.Len() != 0 {
					t.Errorf("expected empty cart, len=%d", c.Len())
				}
			},
		},
		{
			name: "update of unknown line is a no-op",
			actions: func(c *Cart, t *testing.T) {
				c.UpdateQuantity("missing", 3)
				if c.Len() != 0 {
					t.Errorf("expected cart to stay empty, len=%d", c.Len())
				}
			},
		},
		{
			name: "items keep insertion order",
			actions: func(c *Cart, t *testing.T) {
				c.Add("b", Item{Name: "Wraps", UnitPrice: 180, Quantity: 1})
				c.Add("a", Item{Name: "Sandwich", UnitPrice: 140, Quantity: 2})
				c.Add("c", Item{Name: "Ice Cream", UnitPrice: 90, Quantity: 1})
				items := c.Items()
				if len(items) != 3 || items[0].Name != "Wraps" || items[1].Name != "Sandwich" || items[2].Name != "Ice Cream" {
					t.Errorf("unexpected order: %v", items)
				}
			},
		},
		{
			name: "adding the same id replaces the line",
			actions: func(c *Cart, t *testing.T) {
				c.Add("1", Item{Name: "Pizza", UnitPrice: 300, Quantity: 1})
				c.Add("1", Item{Name: "Pizza", UnitPrice: 300, Quantity: 4})
				item, _ := c.Get("1")
				if item.Quantity != 4 {
					t.Errorf("expected quantity=4, got=%d", item.Quantity)
				}
				if c.Len() != 1 {
					t.Errorf("expected single line, len=%d", c.Len())
				}
			},
		},
		{
			name: "clear empties everything",
			actions: func(c *Cart, t *testing.T) {
				c.Add("1", Item{Name: "Coke", UnitPrice: 60, Quantity: 2})
				c.Clear()
				if c.Len() != 0 || c.Total() != 0 {
					t.Errorf("expected cleared cart, len=%d total=%d", c.Len(), c.Total())
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.actions(New(), t)
		})
	}
}
