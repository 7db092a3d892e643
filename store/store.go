package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	models "inventory-billing/model"
	pkgerrors "inventory-billing/pkg/errors"

	"github.com/lib/pq"
)

//go:embed migrations.sql
var migrationSQL string

// SQLSTATE for a missing relation.
const undefinedTable pq.ErrorCode = "42P01"

// PostgresStore keeps both the catalog and the sales journal in Postgres.
// Like the file backends it holds no locks: two sessions persisting the same
// catalog overwrite each other.
type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	DB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := DB.Ping(); err != nil {
		_ = DB.Close()
		return nil, err
	}
	return &PostgresStore{DB: DB}, nil
}

func (s *PostgresStore) Close() error { return s.DB.Close() }

// Migrate applies the embedded schema. It is idempotent.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, migrationSQL)
	return err
}

func (s *PostgresStore) Load(ctx context.Context) (models.Catalog, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id, name, price, quantity FROM catalog_items ORDER BY id`)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == undefinedTable {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "catalog table not found")
		}
		return nil, err
	}
	defer rows.Close()

	catalog := models.Catalog{}
	for rows.Next() {
		var r models.StockRecord
		if err := rows.Scan(&r.ID, &r.Name, &r.Price, &r.Quantity); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeMalformedData, err, "unreadable catalog row")
		}
		rec := r
		catalog[r.ID] = &rec
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := validateCatalog(catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

// Persist replaces every catalog row inside one transaction.
func (s *PostgresStore) Persist(ctx context.Context, catalog models.Catalog) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	// ensure rollback on early return
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_items`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO catalog_items (id, name, price, quantity) VALUES ($1, $2, $3, $4)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range catalog.Sorted() {
		if _, err := stmt.ExecContext(ctx, r.ID, r.Name, r.Price, r.Quantity); err != nil {
			return fmt.Errorf("persist product %q: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Append inserts the journal entries inside one transaction.
func (s *PostgresStore) Append(ctx context.Context, entries []models.SalesJournalEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sales_journal
			(flag, customer_name, customer_email, customer_phone, product_id, product_name, quantity, unit_price, line_total, sold_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx,
			e.Flag, e.Customer.Name, e.Customer.Email, e.Customer.Phone,
			e.ProductID, e.Name, e.Quantity, e.UnitPrice, e.LineTotal, e.Timestamp,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
