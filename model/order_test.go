package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLineItemComputesTotal(t *testing.T) {
	rec := StockRecord{ID: "1001", Name: "Pen", Price: decimal.RequireFromString("10.25"), Quantity: 5}
	it := NewLineItem(rec, 3)

	assert.Equal(t, "1001", it.ProductID)
	assert.Equal(t, "Pen", it.Name)
	assert.Equal(t, 3, it.Quantity)
	assert.True(t, it.LineTotal.Equal(decimal.RequireFromString("30.75")), "got %s", it.LineTotal)
}

func TestBillDisplayRounding(t *testing.T) {
	b := Bill{
		Items:    []LineItem{{ProductID: "1", Quantity: 1}},
		Tax1:     decimal.RequireFromString("0.3125"),
		Tax2:     decimal.RequireFromString("0.3125"),
		Total:    decimal.RequireFromString("13.125"),
		Subtotal: decimal.RequireFromString("12.5"),
	}
	assert.False(t, b.NoPurchase())
	assert.Equal(t, "0.31", b.Tax1Display())
	assert.Equal(t, "0.31", b.Tax2Display())
	assert.Equal(t, "13.13", b.TotalDisplay())
	assert.Equal(t, "31.50", Display(decimal.RequireFromString("31.5")))
}

func TestBillJournalEntries(t *testing.T) {
	at := time.Date(2026, 10, 19, 14, 3, 0, 0, time.UTC)
	customer := Customer{Name: "Ada", Email: "ada@example.com", Phone: "555"}
	b := Bill{
		Customer: customer,
		IssuedAt: at,
		Items: []LineItem{
			NewLineItem(StockRecord{ID: "1001", Name: "Pen", Price: decimal.NewFromInt(10)}, 3),
			NewLineItem(StockRecord{ID: "1002", Name: "Ink", Price: decimal.NewFromInt(4)}, 1),
		},
	}

	entries := b.JournalEntries()
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, JournalFlag, e.Flag)
		assert.Equal(t, customer, e.Customer)
		assert.Equal(t, at, e.Timestamp)
	}
	assert.Equal(t, "1001", entries[0].ProductID)
	assert.Equal(t, "30", entries[0].LineTotal.String())
	assert.Equal(t, "1002", entries[1].ProductID)

	assert.True(t, Bill{}.NoPurchase())
}

func TestCatalogSortedAndClone(t *testing.T) {
	c := Catalog{
		"2": {ID: "2", Name: "b", Quantity: 1},
		"1": {ID: "1", Name: "a", Quantity: 2},
	}
	sorted := c.Sorted()
	require.Len(t, sorted, 2)
	assert.Equal(t, "1", sorted[0].ID)
	assert.Equal(t, "2", sorted[1].ID)

	cp := c.Clone()
	cp["1"].Quantity = 0
	assert.Equal(t, 2, c["1"].Quantity)
}
