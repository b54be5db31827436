package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/domain"
)

func testProduct(id int64, name, price, category string) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Category: category,
		Stock:    10,
	}
}

func assertTotal(t *testing.T, c *Cart, want string) {
	t.Helper()
	assert.True(t, c.Total().Equal(decimal.RequireFromString(want)),
		"total = %s, want %s", c.Total(), want)
}

func TestCart_AddItem_AggregatesQuantity(t *testing.T) {
	c := New()
	smartphone := testProduct(1, "Smartphone XYZ", "899.99", "eletronicos")

	require.NoError(t, c.AddItem(smartphone, 2))
	require.NoError(t, c.AddItem(smartphone, 1))

	require.Equal(t, 1, c.Len(), "repeated adds must aggregate into one entry")
	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 3, entries[0].Quantity)
	assert.Equal(t, 3, c.ItemCount())
	assertTotal(t, c, "2699.97")
}

func TestCart_AddItem_InvalidQuantity(t *testing.T) {
	c := New()
	p := testProduct(1, "Smartphone XYZ", "899.99", "eletronicos")

	require.ErrorIs(t, c.AddItem(p, 0), ErrInvalidQuantity)
	require.ErrorIs(t, c.AddItem(p, -3), ErrInvalidQuantity)

	assert.Equal(t, 0, c.Len(), "rejected adds must not mutate the cart")
	assert.Equal(t, 0, c.ItemCount())
	assertTotal(t, c, "0")
}

func TestCart_AddItem_DoesNotEnforceStock(t *testing.T) {
	c := New()
	p := testProduct(1, "Smartphone XYZ", "899.99", "eletronicos")
	p.Stock = 2

	// The cart may exceed physical stock; that is the contract.
	require.NoError(t, c.AddItem(p, 50))
	assert.Equal(t, 50, c.ItemCount())
}

func TestCart_UpdateQuantity_ReplacesNotIncrements(t *testing.T) {
	c := New()
	smartphone := testProduct(1, "Smartphone XYZ", "899.99", "eletronicos")
	require.NoError(t, c.AddItem(smartphone, 3))

	c.UpdateQuantity(1, 1)

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Quantity, "update must replace the quantity, not add to it")
	assertTotal(t, c, "899.99")
}

func TestCart_UpdateQuantity_NonPositiveRemoves(t *testing.T) {
	for _, quantity := range []int{0, -1, -100} {
		c := New()
		require.NoError(t, c.AddItem(testProduct(1, "Smartphone XYZ", "899.99", "eletronicos"), 2))

		c.UpdateQuantity(1, quantity)

		assert.Equal(t, 0, c.Len(), "quantity %d should remove the entry", quantity)
		assert.Equal(t, 0, c.ItemCount())
		assertTotal(t, c, "0")
	}
}

func TestCart_UpdateQuantity_UnknownProductIsNoop(t *testing.T) {
	c := New()
	require.NoError(t, c.AddItem(testProduct(1, "Smartphone XYZ", "899.99", "eletronicos"), 2))

	c.UpdateQuantity(999, 5)

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 2, c.ItemCount())
}

func TestCart_RemoveItem(t *testing.T) {
	c := New()
	require.NoError(t, c.AddItem(testProduct(1, "Smartphone XYZ", "899.99", "eletronicos"), 2))

	c.RemoveItem(1)

	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.ItemCount())
	assertTotal(t, c, "0")

	// Removing an absent id is a no-op, not an error.
	c.RemoveItem(1)
	c.RemoveItem(999)
	assert.Equal(t, 0, c.Len())
}

func TestCart_TotalAcrossProducts(t *testing.T) {
	c := New()
	require.NoError(t, c.AddItem(testProduct(1, "Smartphone XYZ", "899.99", "eletronicos"), 2))
	require.NoError(t, c.AddItem(testProduct(3, "Camiseta Básica", "29.99", "roupas"), 3))

	// 2*899.99 + 3*29.99
	assertTotal(t, c, "1889.95")
	assert.Equal(t, 5, c.ItemCount())
	assert.Equal(t, 2, c.Len())
}

func TestCart_Clear(t *testing.T) {
	c := New()
	require.NoError(t, c.AddItem(testProduct(1, "Smartphone XYZ", "899.99", "eletronicos"), 2))
	require.NoError(t, c.AddItem(testProduct(3, "Camiseta Básica", "29.99", "roupas"), 1))

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.ItemCount())
	assertTotal(t, c, "0")

	// Idempotent.
	c.Clear()
	assert.Equal(t, 0, c.Len())

	// The cart stays usable after clearing.
	require.NoError(t, c.AddItem(testProduct(1, "Smartphone XYZ", "899.99", "eletronicos"), 1))
	assert.Equal(t, 1, c.ItemCount())
}

func TestCart_EntriesStableInsertionOrder(t *testing.T) {
	c := New()
	a := testProduct(10, "A", "1.00", "x")
	b := testProduct(20, "B", "2.00", "x")
	d := testProduct(30, "D", "3.00", "x")

	require.NoError(t, c.AddItem(a, 1))
	require.NoError(t, c.AddItem(b, 1))
	require.NoError(t, c.AddItem(d, 1))

	ids := func() []int64 {
		var out []int64
		for _, e := range c.Entries() {
			out = append(out, e.Product.ID)
		}
		return out
	}
	assert.Equal(t, []int64{10, 20, 30}, ids())

	// Aggregating into an existing entry keeps its position.
	require.NoError(t, c.AddItem(b, 4))
	assert.Equal(t, []int64{10, 20, 30}, ids())

	// Removal closes the gap; re-adding appends at the end.
	c.RemoveItem(20)
	assert.Equal(t, []int64{10, 30}, ids())
	require.NoError(t, c.AddItem(b, 1))
	assert.Equal(t, []int64{10, 30, 20}, ids())
}

func TestCart_SpecScenario(t *testing.T) {
	c := New()
	smartphone := testProduct(1, "Smartphone XYZ", "899.99", "eletronicos")

	require.NoError(t, c.AddItem(smartphone, 2))
	require.NoError(t, c.AddItem(smartphone, 1))
	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 3, entries[0].Quantity)
	assertTotal(t, c, "2699.97")

	c.UpdateQuantity(1, 1)
	entries = c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Quantity)
	assertTotal(t, c, "899.99")

	c.RemoveItem(1)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.ItemCount())
	assertTotal(t, c, "0")
}
