// Package cart holds the in-progress order for one session: an
// ordered collection of lines keyed by product identity.
package cart

import (
	"github.com/shopspring/decimal"
	"github.com/stocksavvy/procure/internal/core/domain"
)

// A Cart keeps at most one line per product, in insertion order.
// It is exclusively owned by a single session context and is not
// safe for concurrent use; the owning service serializes access.
type Cart struct {
	order []domain.ProductID
	lines map[domain.ProductID]*domain.CartLine
}

func New() *Cart {
	return &Cart{lines: make(map[domain.ProductID]*domain.CartLine)}
}

// Restore rebuilds a cart from persisted lines, dropping any
// duplicate product entries and non-positive quantities that a
// stale snapshot might carry.
func Restore(lines []domain.CartLine) *Cart {
	c := New()
	for _, l := range lines {
		if l.Quantity < 1 {
			continue
		}
		if _, ok := c.lines[l.ProductID]; ok {
			continue
		}
		cp := l
		c.order = append(c.order, cp.ProductID)
		c.lines[cp.ProductID] = &cp
	}
	return c
}

// Add inserts a line with quantity 1, or increments the quantity of
// the existing line for the same product. Pricing comes from the
// resolved supplier when one is given; otherwise the line starts
// unpriced with no supplier.
func (c *Cart) Add(p domain.Product, rs *domain.ResolvedSupplier) {
	if l, ok := c.lines[p.ProductID]; ok {
		l.Quantity++
		return
	}

	l := &domain.CartLine{
		ProductID:     p.ProductID,
		Name:          p.Name,
		SKU:           p.SKU,
		UnitOfMeasure: p.UnitOfMeasure,
		Quantity:      1,
		UnitPrice:     decimal.Zero,
	}
	if rs != nil {
		sid := rs.SupplierID
		l.SupplierID = &sid
		l.SupplierName = rs.SupplierName
		l.UnitPrice = rs.UnitPrice
	}
	c.order = append(c.order, p.ProductID)
	c.lines[p.ProductID] = l
}

// SetQuantity sets the line quantity, clamped to a minimum of 1.
// A line never sits at zero; use Remove to delete it. No-op for an
// unknown product.
func (c *Cart) SetQuantity(id domain.ProductID, n int) {
	l, ok := c.lines[id]
	if !ok {
		return
	}
	if n < 1 {
		n = 1
	}
	l.Quantity = n
}

// ChangeQuantityBy adjusts the line quantity by delta with the same
// clamping as SetQuantity.
func (c *Cart) ChangeQuantityBy(id domain.ProductID, delta int) {
	l, ok := c.lines[id]
	if !ok {
		return
	}
	c.SetQuantity(id, l.Quantity+delta)
}

// Remove deletes the line. No-op for an unknown product.
func (c *Cart) Remove(id domain.ProductID) {
	if _, ok := c.lines[id]; !ok {
		return
	}
	delete(c.lines, id)
	for i, pid := range c.order {
		if pid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.order = nil
	c.lines = make(map[domain.ProductID]*domain.CartLine)
}

// SetSupplier re-prices the line from the quote of the given supplier
// among the product's known quotes. No-op when the supplier has no
// quote for that product.
func (c *Cart) SetSupplier(
	id domain.ProductID, sid domain.SupplierID, quotes []domain.SupplierQuote,
) {
	l, ok := c.lines[id]
	if !ok {
		return
	}
	for _, q := range quotes {
		if q.ProductID != id || q.SupplierID != sid {
			continue
		}
		supplierID := q.SupplierID
		l.SupplierID = &supplierID
		l.SupplierName = q.SupplierName
		l.UnitPrice = q.UnitPrice
		return
	}
}

// Total sums quantity times unit price over all lines. The result is
// exact and unrounded; rounding happens at display time only.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, id := range c.order {
		total = total.Add(c.lines[id].LineTotal())
	}
	return total
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.lines[id])
	}
	return out
}

func (c *Cart) Len() int {
	return len(c.order)
}
