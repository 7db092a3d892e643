package store

import (
	"fmt"

	models "inventory-billing/model"
	pkgerrors "inventory-billing/pkg/errors"
)

// Lookup returns a copy of the stock record for id.
func Lookup(catalog models.Catalog, id string) (models.StockRecord, bool) {
	rec, ok := catalog[id]
	if !ok || rec == nil {
		return models.StockRecord{}, false
	}
	return *rec, true
}

// Decrement reduces on-hand stock for id. The caller guarantees
// amount <= current quantity.
func Decrement(catalog models.Catalog, id string, amount int) error {
	rec, ok := catalog[id]
	if !ok || rec == nil {
		return pkgerrors.New(pkgerrors.CodeInvalidProduct, fmt.Sprintf("product %q not in catalog", id))
	}
	rec.Quantity -= amount
	return nil
}
