package main

// Single-session point-of-sale terminal.
//
// Reads the catalog once at startup and overwrites it once at bill time.
// Two sessions sharing the same catalog clobber each other: last writer wins.

import (
	"context"
	"flag"
	"os"

	"inventory-billing/handler"
	"inventory-billing/pkg/config"
	"inventory-billing/pkg/logger"
	"inventory-billing/pkg/metrics"
	"inventory-billing/service"
	"inventory-billing/store"

	pkgerrors "inventory-billing/pkg/errors"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

const serviceName = "inventory-billing"

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: serviceName, Format: "console"})

	if err := godotenv.Load(); err != nil {
		logg.Debug(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	catalogPath := flag.String("catalog", cfg.Storage.CatalogPath, "catalog JSON file")
	journalPath := flag.String("journal", cfg.Storage.JournalPath, "sales journal file")
	flag.Parse()
	cfg.Storage.CatalogPath = *catalogPath
	cfg.Storage.JournalPath = *journalPath

	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(logg.WithField(ctx, "dump", pkgerrors.Dump(err)), "session aborted", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	catalogStore, journal, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	sessionMetrics := metrics.NewSessionMetrics(reg)
	defer func() {
		err = multierr.Combine(
			err,
			catalogStore.Close(),
			journal.Close(),
			metrics.WriteTextfile(cfg.Metrics.TextfilePath, reg),
		)
	}()

	console := handler.NewConsole(os.Stdin, os.Stdout)
	svc, err := service.NewService(ctx, service.Params{
		Catalog: catalogStore,
		Journal: journal,
		Confirm: console.ConfirmShortfall,
		TaxRate: decimal.NewNullDecimal(cfg.Billing.TaxRate),
		Logger:  logg,
		Metrics: sessionMetrics,
	})
	if err != nil {
		return err
	}

	h := handler.NewHandler(svc, console, logg, cfg.Billing.CurrencyLabel)
	_, err = h.Run(ctx)
	return err
}

func openStorage(ctx context.Context, cfg config.StorageConfig) (store.CatalogStore, store.SalesJournal, error) {
	if !cfg.UsesPostgres() {
		return store.NewFileCatalog(cfg.CatalogPath), store.NewFileJournal(cfg.JournalPath), nil
	}

	pg, err := store.NewPostgresStore(cfg.DSN)
	if err != nil {
		return nil, nil, err
	}
	if cfg.AutoMigrate {
		if err := pg.Migrate(ctx); err != nil {
			return nil, nil, multierr.Append(err, pg.Close())
		}
	}
	// the journal shares the catalog's pool; closing it once is enough
	return pg, noopCloser{pg}, nil
}

type noopCloser struct {
	store.SalesJournal
}

func (noopCloser) Close() error { return nil }
