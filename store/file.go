package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	models "inventory-billing/model"
	pkgerrors "inventory-billing/pkg/errors"

	"github.com/shopspring/decimal"
)

// recordJSON is the on-disk shape of one catalog entry. Pointers tell a
// missing key apart from a zero value.
type recordJSON struct {
	Name     *string      `json:"Name"`
	Price    *json.Number `json:"Price"`
	Quantity *int         `json:"Quantity"`
}

func (r recordJSON) missing() []string {
	var keys []string
	if r.Name == nil {
		keys = append(keys, "Name")
	}
	if r.Price == nil {
		keys = append(keys, "Price")
	}
	if r.Quantity == nil {
		keys = append(keys, "Quantity")
	}
	return keys
}

// FileCatalog keeps the catalog as one JSON object keyed by product id.
type FileCatalog struct {
	Path string
}

func NewFileCatalog(path string) *FileCatalog {
	return &FileCatalog{Path: path}
}

func (f *FileCatalog) Load(ctx context.Context) (models.Catalog, error) {
	raw, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, fmt.Sprintf("catalog %s not found", f.Path))
	}
	if err != nil {
		return nil, err
	}

	var doc map[string]recordJSON
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeMalformedData, err, fmt.Sprintf("catalog %s is not a product map", f.Path))
	}
	// a bare `null` decodes into a nil map without error
	if doc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeMalformedData, fmt.Sprintf("catalog %s is not a product map", f.Path))
	}

	catalog := make(models.Catalog, len(doc))
	for id, r := range doc {
		if keys := r.missing(); len(keys) > 0 {
			details := make(map[string]string, len(keys))
			for _, k := range keys {
				details[k] = "required"
			}
			return nil, pkgerrors.New(pkgerrors.CodeMalformedData, fmt.Sprintf("product %q is missing fields", id)).
				WithDetails(details)
		}
		price, err := decimal.NewFromString(r.Price.String())
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeMalformedData, err, fmt.Sprintf("product %q has an invalid price", id))
		}
		catalog[id] = &models.StockRecord{ID: id, Name: *r.Name, Price: price, Quantity: *r.Quantity}
	}
	if err := validateCatalog(catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

// Persist overwrites the file with the full catalog.
func (f *FileCatalog) Persist(ctx context.Context, catalog models.Catalog) error {
	doc := make(map[string]recordJSON, len(catalog))
	for id, r := range catalog {
		name, price, qty := r.Name, json.Number(r.Price.String()), r.Quantity
		doc[id] = recordJSON{Name: &name, Price: &price, Quantity: &qty}
	}
	raw, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(f.Path, raw, 0o644)
}

func (f *FileCatalog) Close() error { return nil }
