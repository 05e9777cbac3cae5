package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(price int64) Product {
	return Product{ID: uuid.New(), Name: "Urea", Price: decimal.NewFromInt(price), Unit: "kg"}
}

func TestCart_AddMergesByProduct(t *testing.T) {
	a, b := product(1000), product(5000)
	c := New(nil)

	c.Add(a, 1)
	c.Add(b, 1)
	c.Add(a, 3)
	c.Add(a, 1)

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, a.ID, lines[0].ProductID)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, b.ID, lines[1].ProductID)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestCart_Totals(t *testing.T) {
	a, b := product(1000), product(5000)
	c := New(nil)
	c.Add(a, 2)
	c.Add(b, 1)

	assert.Equal(t, 3, c.TotalItems())
	assert.True(t, c.TotalAmount().Amount().Equal(decimal.NewFromInt(7000)))

	c.UpdateQuantity(b.ID, 4)
	assert.Equal(t, 6, c.TotalItems())
	assert.True(t, c.TotalAmount().Amount().Equal(decimal.NewFromInt(22000)))

	c.Remove(a.ID)
	assert.True(t, c.TotalAmount().Amount().Equal(decimal.NewFromInt(20000)))
}

func TestCart_UpdateQuantityBelowOneIgnored(t *testing.T) {
	a := product(1000)
	c := New(nil)
	c.Add(a, 2)

	for _, q := range []int{0, -1, -100} {
		assert.False(t, c.UpdateQuantity(a.ID, q))
		assert.Equal(t, 2, c.Lines()[0].Quantity)
	}
	assert.False(t, c.UpdateQuantity(uuid.New(), 3))
}

func TestCart_RemoveAbsentIsNoop(t *testing.T) {
	c := New(nil)
	c.Add(product(1), 1)
	assert.False(t, c.Remove(uuid.New()))
	assert.Len(t, c.Lines(), 1)
}

func TestCart_Clear(t *testing.T) {
	c := New(nil)
	c.Add(product(1), 1)
	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.TotalItems())
	assert.True(t, c.TotalAmount().IsZero())
}

func TestNew_Sanitizes(t *testing.T) {
	id := uuid.New()
	c := New([]Line{
		{ProductID: id, Name: "A", UnitPrice: decimal.NewFromInt(10), Quantity: 0},
		{ProductID: uuid.Nil, Name: "broken", Quantity: 3},
		{ProductID: id, Name: "A", UnitPrice: decimal.NewFromInt(10), Quantity: 2},
	})

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestLines_ReturnsCopy(t *testing.T) {
	c := New(nil)
	c.Add(product(1), 1)
	lines := c.Lines()
	lines[0].Quantity = 99
	assert.Equal(t, 1, c.Lines()[0].Quantity)
}
