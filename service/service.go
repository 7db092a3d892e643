package service

import (
	"context"
	"fmt"
	"time"

	models "inventory-billing/model"
	pkgerrors "inventory-billing/pkg/errors"
	"inventory-billing/pkg/logger"
	"inventory-billing/pkg/metrics"
	"inventory-billing/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the per-authority rate. It is applied twice.
var DefaultTaxRate = decimal.RequireFromString("0.025")

// Shortfall describes a request that exceeds on-hand stock.
type Shortfall struct {
	ProductID string
	Name      string
	Requested int
	Available int
}

// ShortfallConfirmer asks the operator whether to take everything in stock
// instead. It may block indefinitely.
type ShortfallConfirmer func(ctx context.Context, s Shortfall) bool

type Params struct {
	Catalog store.CatalogStore
	Journal store.SalesJournal
	Confirm ShortfallConfirmer
	// TaxRate falls back to DefaultTaxRate when not Valid. A valid zero
	// rate bills without tax.
	TaxRate decimal.NullDecimal
	Logger  *logger.Logger
	Metrics *metrics.SessionMetrics
	Now     func() time.Time
}

// Service is the cart ledger for one session. It owns the in-memory catalog
// and is not safe for concurrent use.
type Service struct {
	catalogStore store.CatalogStore
	journal      store.SalesJournal
	confirm      ShortfallConfirmer
	taxRate      decimal.Decimal
	log          *logger.Logger
	metrics      *metrics.SessionMetrics
	now          func() time.Time

	catalog  models.Catalog
	items    []models.LineItem
	subtotal decimal.Decimal
}

// NewService loads the catalog and starts an empty cart. A missing catalog
// source is logged and replaced by an empty catalog; any other load error
// is returned.
func NewService(ctx context.Context, p Params) (*Service, error) {
	if p.Catalog == nil {
		return nil, fmt.Errorf("catalog store required")
	}
	if p.Journal == nil {
		return nil, fmt.Errorf("sales journal required")
	}
	if p.Logger == nil {
		p.Logger = logger.Nop()
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	taxRate := DefaultTaxRate
	if p.TaxRate.Valid {
		taxRate = p.TaxRate.Decimal
	}
	if taxRate.IsNegative() {
		return nil, fmt.Errorf("tax rate must be >= 0")
	}

	catalog, err := p.Catalog.Load(ctx)
	if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		p.Logger.Warn(p.Logger.WithField(ctx, "error", err.Error()), "catalog source missing, starting with an empty catalog")
		catalog = models.Catalog{}
		err = nil
	}
	if err != nil {
		return nil, err
	}
	p.Logger.Info(p.Logger.WithField(ctx, "products", len(catalog)), "catalog loaded")

	return &Service{
		catalogStore: p.Catalog,
		journal:      p.Journal,
		confirm:      p.Confirm,
		taxRate:      taxRate,
		log:          p.Logger,
		metrics:      p.Metrics,
		now:          p.Now,
		catalog:      catalog,
		subtotal:     decimal.Zero,
	}, nil
}

// Menu lists the current stock ordered by product id.
func (s *Service) Menu() []models.StockRecord {
	return s.catalog.Sorted()
}

// Items returns the cart lines in insertion order.
func (s *Service) Items() []models.LineItem {
	out := make([]models.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Service) Subtotal() decimal.Decimal {
	return s.subtotal
}

// AddToCart commits qty of productID, or everything in stock when the
// operator accepts a shortfall. On error the cart and catalog are unchanged.
func (s *Service) AddToCart(ctx context.Context, productID string, qty int) (models.LineItem, error) {
	ctx = s.log.WithProductID(ctx, productID)

	if qty <= 0 {
		s.metrics.IncRejection("invalid_quantity")
		return models.LineItem{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be > 0").
			WithDetails(map[string]any{"quantity": qty})
	}

	rec, ok := store.Lookup(s.catalog, productID)
	if !ok {
		s.metrics.IncRejection("invalid_product")
		return models.LineItem{}, pkgerrors.New(pkgerrors.CodeInvalidProduct, fmt.Sprintf("product %q not in catalog", productID))
	}

	if rec.Quantity >= qty {
		return s.commit(ctx, rec, qty, false)
	}

	shortfall := Shortfall{ProductID: rec.ID, Name: rec.Name, Requested: qty, Available: rec.Quantity}
	if rec.Quantity == 0 {
		s.metrics.IncRejection("out_of_stock")
		return models.LineItem{}, insufficient(shortfall, "product is out of stock")
	}

	accepted := s.confirm != nil && s.confirm(ctx, shortfall)
	s.metrics.IncShortfall(accepted)
	if !accepted {
		s.log.Info(s.log.WithFields(ctx, map[string]any{"requested": qty, "available": rec.Quantity}), "shortfall declined")
		s.metrics.IncRejection("declined")
		return models.LineItem{}, insufficient(shortfall, "reduced quantity declined")
	}
	return s.commit(ctx, rec, rec.Quantity, true)
}

func (s *Service) commit(ctx context.Context, rec models.StockRecord, qty int, partial bool) (models.LineItem, error) {
	item := models.NewLineItem(rec, qty)
	if err := store.Decrement(s.catalog, rec.ID, qty); err != nil {
		return models.LineItem{}, err
	}
	s.items = append(s.items, item)
	s.subtotal = s.subtotal.Add(item.LineTotal)
	s.metrics.IncAddition(partial)

	s.log.Debug(s.log.WithFields(ctx, map[string]any{"quantity": qty, "partial": partial}), "line item added")
	return item, nil
}

func insufficient(sf Shortfall, msg string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeInsufficientStock, msg).WithDetails(sf)
}

// GenerateBill totals the cart, appends it to the sales journal and then
// persists the catalog. An empty cart yields a bill with no items and
// touches neither output. The two writes are not atomic: if the catalog
// write fails after the journal append, the two disagree.
func (s *Service) GenerateBill(ctx context.Context, customer models.Customer) (models.Bill, error) {
	if len(s.items) == 0 {
		s.metrics.IncBill("no_purchase")
		s.log.Info(ctx, "no purchase, nothing persisted")
		return models.Bill{Customer: customer}, nil
	}

	bill := s.computeBill(customer)
	ctx = s.log.WithBillID(ctx, bill.ID.String())

	if err := s.journal.Append(ctx, bill.JournalEntries()); err != nil {
		s.metrics.IncBill("failed")
		s.log.Error(ctx, "failed to append sales journal", err)
		return bill, fmt.Errorf("append sales journal: %w", err)
	}
	if err := s.catalogStore.Persist(ctx, s.catalog); err != nil {
		s.metrics.IncBill("failed")
		s.log.Error(ctx, "catalog not persisted after journal append; journal and catalog disagree", err)
		return bill, fmt.Errorf("persist catalog: %w", err)
	}

	s.metrics.IncBill("issued")
	s.metrics.ObserveBillAmount(bill.Total)
	s.log.Info(s.log.WithFields(ctx, map[string]any{"lines": len(bill.Items), "total": bill.TotalDisplay()}), "bill issued")
	return bill, nil
}

func (s *Service) computeBill(customer models.Customer) models.Bill {
	subtotal := decimal.Zero
	for _, it := range s.items {
		subtotal = subtotal.Add(it.LineTotal)
	}
	tax := subtotal.Mul(s.taxRate)
	return models.Bill{
		ID:       uuid.New(),
		Customer: customer,
		Items:    s.Items(),
		Subtotal: subtotal,
		Tax1:     tax,
		Tax2:     tax,
		Total:    subtotal.Add(tax).Add(tax),
		IssuedAt: s.now(),
	}
}
