package store

import (
	"context"

	models "inventory-billing/model"
)

// CatalogStore loads the catalog at session start and overwrites it at bill time.
type CatalogStore interface {
	Load(ctx context.Context) (models.Catalog, error)
	Persist(ctx context.Context, catalog models.Catalog) error
	Close() error
}

// SalesJournal is the append-only record of completed sales.
type SalesJournal interface {
	Append(ctx context.Context, entries []models.SalesJournalEntry) error
	Close() error
}
