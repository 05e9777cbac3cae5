// Package cart holds the shopping cart: an ordered list of lines, unique by
// product, with totals derived on every read.
package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pupuk/storefront/internal/domain/shared/valueobject"
)

// Product is what the storefront hands to the cart when a customer adds
// something.
type Product struct {
	ID       uuid.UUID
	Name     string
	ImageURL string
	Price    decimal.Decimal
	Unit     string
}

// Line is one product in the cart. Field names on the wire match what the
// storefront has always persisted.
type Line struct {
	ProductID uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"image_url,omitempty"`
	UnitPrice decimal.Decimal `json:"selling_price"`
	Unit      string          `json:"unit,omitempty"`
	Quantity  int             `json:"quantity"`
}

// Subtotal returns UnitPrice * Quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is not safe for concurrent use; the application layer guards it.
type Cart struct {
	lines []Line
}

// New builds a cart from previously stored lines. Lines without a product id
// are dropped, duplicates are merged and quantities below one are raised to one.
func New(lines []Line) *Cart {
	c := &Cart{}
	for _, l := range lines {
		if l.ProductID == uuid.Nil {
			continue
		}
		if l.Quantity < 1 {
			l.Quantity = 1
		}
		if i := c.index(l.ProductID); i >= 0 {
			c.lines[i].Quantity += l.Quantity
			continue
		}
		c.lines = append(c.lines, l)
	}
	return c
}

func (c *Cart) index(productID uuid.UUID) int {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Add merges qty into the existing line for p or appends a new line.
// qty is not validated here.
func (c *Cart) Add(p Product, qty int) {
	if i := c.index(p.ID); i >= 0 {
		c.lines[i].Quantity += qty
		return
	}
	c.lines = append(c.lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		ImageURL:  p.ImageURL,
		UnitPrice: p.Price,
		Unit:      p.Unit,
		Quantity:  qty,
	})
}

// Remove deletes the line for productID. It reports whether a line was removed.
func (c *Cart) Remove(productID uuid.UUID) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return true
}

// UpdateQuantity sets the quantity of an existing line. Quantities below one
// are ignored; removal is a separate operation.
func (c *Cart) UpdateQuantity(productID uuid.UUID, quantity int) bool {
	if quantity < 1 {
		return false
	}
	i := c.index(productID)
	if i < 0 {
		return false
	}
	c.lines[i].Quantity = quantity
	return true
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// TotalItems is the sum of quantities.
func (c *Cart) TotalItems() int {
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

// TotalAmount is the sum of unit price times quantity.
func (c *Cart) TotalAmount() valueobject.Money {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return valueobject.NewRupiah(total)
}
