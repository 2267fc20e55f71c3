// Package cart holds the working selection for one checkout session.
package cart

import "github.com/ankirsydii/Orderly/internal/models"

// Line pairs a catalog product with a positive quantity. A line whose
// quantity would reach zero is removed from the cart, never retained.
type Line struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Cart is owned by exactly one checkout session. It round-trips through the
// session cache as JSON, so all state lives in exported fields.
type Cart struct {
	Lines []Line `json:"lines"`
}

func New() *Cart {
	return &Cart{}
}

// Add puts one unit of the product into the cart. A repeated add for the
// same product ID merges into the existing line instead of duplicating it.
func (c *Cart) Add(product models.Product) {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == product.ID {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, Line{Product: product, Quantity: 1})
}

// Remove takes one unit of the product out of the cart, dropping the line
// entirely when it was the last unit. Removing an absent product is a no-op.
func (c *Cart) Remove(productID string) {
	for i := range c.Lines {
		if c.Lines[i].Product.ID != productID {
			continue
		}
		if c.Lines[i].Quantity > 1 {
			c.Lines[i].Quantity--
		} else {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		}
		return
	}
}

// Total recomputes the running total on every call. Carts hold tens of
// lines at most, so recomputation beats keeping an incremental sum correct.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.Lines {
		total += line.Product.Price * float64(line.Quantity)
	}
	return total
}

// OrderLines snapshots the cart into order items. The snapshot copies name
// and price by value so later edits to the catalog product leave persisted
// orders untouched.
func (c *Cart) OrderLines() []models.OrderItem {
	items := make([]models.OrderItem, 0, len(c.Lines))
	for _, line := range c.Lines {
		items = append(items, models.OrderItem{
			ProductName: line.Product.Name,
			Price:       line.Product.Price,
			Quantity:    line.Quantity,
		})
	}
	return items
}

func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) Empty() bool {
	return len(c.Lines) == 0
}
