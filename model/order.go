package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JournalFlag is the fixed leading column of every sales journal line.
const JournalFlag = 1

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// LineItem is one committed cart entry. It is never mutated after creation.
type LineItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

func NewLineItem(record StockRecord, qty int) LineItem {
	return LineItem{
		ProductID: record.ID,
		Name:      record.Name,
		Quantity:  qty,
		UnitPrice: record.Price,
		LineTotal: record.Price.Mul(decimal.NewFromInt(int64(qty))),
	}
}

type SalesJournalEntry struct {
	Flag      int
	Customer  Customer
	ProductID string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
	Timestamp time.Time
}

// Bill keeps full precision; the Display helpers round for presentation.
type Bill struct {
	ID       uuid.UUID       `json:"id"`
	Customer Customer        `json:"customer"`
	Items    []LineItem      `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax1     decimal.Decimal `json:"tax1"`
	Tax2     decimal.Decimal `json:"tax2"`
	Total    decimal.Decimal `json:"total"`
	IssuedAt time.Time       `json:"issued_at"`
}

// NoPurchase reports the empty-cart outcome.
func (b Bill) NoPurchase() bool {
	return len(b.Items) == 0
}

func (b Bill) Tax1Display() string  { return Display(b.Tax1) }
func (b Bill) Tax2Display() string  { return Display(b.Tax2) }
func (b Bill) TotalDisplay() string { return Display(b.Total) }

// JournalEntries flattens the bill into one journal entry per line item.
func (b Bill) JournalEntries() []SalesJournalEntry {
	out := make([]SalesJournalEntry, 0, len(b.Items))
	for _, it := range b.Items {
		out = append(out, SalesJournalEntry{
			Flag:      JournalFlag,
			Customer:  b.Customer,
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal,
			Timestamp: b.IssuedAt,
		})
	}
	return out
}

// Display rounds an amount to two decimal places.
func Display(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
