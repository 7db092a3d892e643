package models

import (
	"sort"

	"github.com/shopspring/decimal"
)

// StockRecord is one product's price and remaining quantity.
type StockRecord struct {
	ID       string          `json:"id" validate:"required"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
	Quantity int             `json:"quantity" validate:"gte=0"`
}

// Catalog maps product id to its stock record. It is owned by a single
// session and is never shared across goroutines.
type Catalog map[string]*StockRecord

// Sorted returns copies of the records ordered by product id.
func (c Catalog) Sorted() []StockRecord {
	out := make([]StockRecord, 0, len(c))
	for _, r := range c {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Clone returns a deep copy of the catalog.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for id, r := range c {
		cp := *r
		out[id] = &cp
	}
	return out
}
