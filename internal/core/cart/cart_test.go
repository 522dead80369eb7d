package cart_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stocksavvy/procure/internal/core/cart"
	"github.com/stocksavvy/procure/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id domain.ProductID, name string) domain.Product {
	return domain.Product{ProductID: id, Name: name, SKU: name + "-SKU"}
}

func resolved(sid domain.SupplierID, name, unitPrice string) *domain.ResolvedSupplier {
	return &domain.ResolvedSupplier{
		SupplierID:   sid,
		SupplierName: name,
		UnitPrice:    decimal.RequireFromString(unitPrice),
	}
}

func TestCartAdd(t *testing.T) {
	t.Run("RepeatedAddAccumulatesOneLine", func(t *testing.T) {
		c := cart.New()
		c.Add(product(1, "SSD"), resolved(10, "Acme", "10"))
		c.Add(product(1, "SSD"), resolved(10, "Acme", "10"))

		lines := c.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 2, lines[0].Quantity)
		assert.True(t, c.Total().Equal(decimal.RequireFromString("20")))
	})

	t.Run("KeepsInsertionOrder", func(t *testing.T) {
		c := cart.New()
		c.Add(product(3, "C"), nil)
		c.Add(product(1, "A"), nil)
		c.Add(product(2, "B"), nil)
		c.Add(product(1, "A"), nil)

		lines := c.Lines()
		require.Len(t, lines, 3)
		assert.Equal(t, domain.ProductID(3), lines[0].ProductID)
		assert.Equal(t, domain.ProductID(1), lines[1].ProductID)
		assert.Equal(t, domain.ProductID(2), lines[2].ProductID)
	})

	t.Run("NoResolvedSupplierStartsUnpriced", func(t *testing.T) {
		c := cart.New()
		c.Add(product(1, "SSD"), nil)

		lines := c.Lines()
		require.Len(t, lines, 1)
		assert.Nil(t, lines[0].SupplierID)
		assert.True(t, lines[0].UnitPrice.IsZero())
	})
}

func TestCartQuantity(t *testing.T) {
	t.Run("SetQuantityClampsToOne", func(t *testing.T) {
		c := cart.New()
		c.Add(product(1, "SSD"), nil)

		c.SetQuantity(1, 0)
		assert.Equal(t, 1, c.Lines()[0].Quantity)

		c.SetQuantity(1, -5)
		assert.Equal(t, 1, c.Lines()[0].Quantity)

		c.SetQuantity(1, 7)
		assert.Equal(t, 7, c.Lines()[0].Quantity)
	})

	t.Run("ChangeQuantityBy", func(t *testing.T) {
		c := cart.New()
		c.Add(product(1, "SSD"), resolved(10, "Acme", "10"))

		c.ChangeQuantityBy(1, 2)
		assert.Equal(t, 3, c.Lines()[0].Quantity)
		assert.True(t, c.Total().Equal(decimal.RequireFromString("30")))

		c.ChangeQuantityBy(1, -10)
		assert.Equal(t, 1, c.Lines()[0].Quantity)
	})

	t.Run("UnknownProductIsNoop", func(t *testing.T) {
		c := cart.New()
		c.SetQuantity(404, 3)
		c.ChangeQuantityBy(404, 1)
		assert.Equal(t, 0, c.Len())
	})
}

func TestCartRemove(t *testing.T) {
	t.Run("ReaddAfterRemoveStartsFresh", func(t *testing.T) {
		c := cart.New()
		c.Add(product(1, "SSD"), nil)
		c.SetQuantity(1, 5)
		c.Remove(1)
		require.Equal(t, 0, c.Len())

		c.Add(product(1, "SSD"), nil)
		lines := c.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 1, lines[0].Quantity)
	})

	t.Run("Clear", func(t *testing.T) {
		c := cart.New()
		c.Add(product(1, "A"), nil)
		c.Add(product(2, "B"), nil)
		c.Clear()
		assert.Equal(t, 0, c.Len())
		assert.True(t, c.Total().IsZero())
	})
}

func TestCartSetSupplier(t *testing.T) {
	quotes := []domain.SupplierQuote{
		{
			SupplierID: 10, SupplierName: "Acme", ProductID: 1,
			UnitPrice: decimal.RequireFromString("10"),
		},
		{
			SupplierID: 20, SupplierName: "Globex", ProductID: 1,
			UnitPrice: decimal.RequireFromString("8.50"),
		},
	}

	t.Run("RepricesLine", func(t *testing.T) {
		c := cart.New()
		c.Add(product(1, "SSD"), resolved(10, "Acme", "10"))
		c.SetQuantity(1, 2)

		c.SetSupplier(1, 20, quotes)

		l := c.Lines()[0]
		require.NotNil(t, l.SupplierID)
		assert.Equal(t, domain.SupplierID(20), *l.SupplierID)
		assert.Equal(t, "Globex", l.SupplierName)
		assert.Equal(t, 2, l.Quantity)
		assert.True(t, c.Total().Equal(decimal.RequireFromString("17")))
	})

	t.Run("NoQuoteForSupplierIsNoop", func(t *testing.T) {
		c := cart.New()
		c.Add(product(1, "SSD"), resolved(10, "Acme", "10"))

		c.SetSupplier(1, 77, quotes)

		l := c.Lines()[0]
		require.NotNil(t, l.SupplierID)
		assert.Equal(t, domain.SupplierID(10), *l.SupplierID)
	})
}

func TestCartTotalExactDecimal(t *testing.T) {
	c := cart.New()
	c.Add(product(1, "A"), resolved(10, "Acme", "0.10"))
	c.SetQuantity(1, 3)
	c.Add(product(2, "B"), resolved(10, "Acme", "0.20"))

	// 0.10*3 + 0.20 has no binary-float drift
	assert.True(t, c.Total().Equal(decimal.RequireFromString("0.5")))
}

func TestCartRestore(t *testing.T) {
	lines := []domain.CartLine{
		{ProductID: 1, Name: "A", Quantity: 2},
		{ProductID: 2, Name: "B", Quantity: 0},
		{ProductID: 1, Name: "A-dup", Quantity: 9},
	}

	c := cart.Restore(lines)
	restored := c.Lines()
	require.Len(t, restored, 1)
	assert.Equal(t, "A", restored[0].Name)
	assert.Equal(t, 2, restored[0].Quantity)
}
