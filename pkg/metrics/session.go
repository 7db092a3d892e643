package metrics

import (
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// SessionMetrics counts what happened during one point-of-sale session.
type SessionMetrics struct {
	additions  *prometheus.CounterVec
	rejections *prometheus.CounterVec
	shortfalls *prometheus.CounterVec
	bills      *prometheus.CounterVec
	billAmount prometheus.Histogram
}

// NewSessionMetrics registers the session metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewSessionMetrics(reg prometheus.Registerer) *SessionMetrics {
	if reg == nil {
		return &SessionMetrics{}
	}
	additions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_cart_additions_total",
		Help: "Line items committed to the cart.",
	}, []string{"fulfillment"})
	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_rejected_additions_total",
		Help: "Add-to-cart requests that left the cart unchanged.",
	}, []string{"reason"})
	shortfalls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_shortfalls_total",
		Help: "Requests exceeding available stock, by operator decision.",
	}, []string{"outcome"})
	bills := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_bills_total",
		Help: "Bill generation attempts by outcome.",
	}, []string{"outcome"})
	billAmount := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pos_bill_amount",
		Help:    "Final bill totals including tax.",
		Buckets: prometheus.ExponentialBuckets(10, 4, 8),
	})
	reg.MustRegister(additions, rejections, shortfalls, bills, billAmount)
	return &SessionMetrics{
		additions:  additions,
		rejections: rejections,
		shortfalls: shortfalls,
		bills:      bills,
		billAmount: billAmount,
	}
}

// IncAddition records a committed line item; partial marks a shortfall fallback.
func (m *SessionMetrics) IncAddition(partial bool) {
	if m == nil || m.additions == nil {
		return
	}
	fulfillment := "full"
	if partial {
		fulfillment = "partial"
	}
	m.additions.WithLabelValues(fulfillment).Inc()
}

// IncRejection records an add-to-cart request that changed nothing.
func (m *SessionMetrics) IncRejection(reason string) {
	if m == nil || m.rejections == nil {
		return
	}
	m.rejections.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncShortfall records the operator's answer to a shortfall prompt.
func (m *SessionMetrics) IncShortfall(accepted bool) {
	if m == nil || m.shortfalls == nil {
		return
	}
	outcome := "declined"
	if accepted {
		outcome = "accepted"
	}
	m.shortfalls.WithLabelValues(outcome).Inc()
}

// IncBill records a bill generation outcome.
func (m *SessionMetrics) IncBill(outcome string) {
	if m == nil || m.bills == nil {
		return
	}
	m.bills.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveBillAmount records the final total of an issued bill.
func (m *SessionMetrics) ObserveBillAmount(total decimal.Decimal) {
	if m == nil || m.billAmount == nil {
		return
	}
	m.billAmount.Observe(total.InexactFloat64())
}

// WriteTextfile dumps the gathered metrics in the node_exporter textfile
// format. An empty path is a no-op.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if path == "" || g == nil {
		return nil
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return prometheus.WriteToTextfile(path, g)
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
