package metrics

import (
	"github.com/failsafe-org/safeguard-cli/internal/domain"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var trackedStatuses = []models.TransactionStatus{
	models.TransactionStatusPending,
	models.TransactionStatusReady,
	models.TransactionStatusExecuted,
	models.TransactionStatusCanceled,
	models.TransactionStatusStale,
	models.TransactionStatusUnknown,
}

// Metrics holds the Prometheus collectors of the transaction reconciler
type Metrics struct {
	transactions  *prometheus.GaugeVec
	ledgerEvents  *prometheus.CounterVec
	droppedEvents prometheus.Counter
}

// NewMetrics creates a new Metrics instance and registers all collectors.
// If registry is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	return &Metrics{
		transactions: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "safeguard_transactions",
				Help: "Number of timelocked transactions by status",
			},
			[]string{"status"},
		),
		ledgerEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "safeguard_ledger_events_total",
				Help: "Total number of events applied to the transaction ledger by kind",
			},
			[]string{"kind"},
		),
		droppedEvents: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "safeguard_dropped_events_total",
				Help: "Total number of malformed or unverifiable events dropped during reconciliation",
			},
		),
	}
}

// ObserveEvent counts an applied ledger event
func (m *Metrics) ObserveEvent(kind string) {
	m.ledgerEvents.WithLabelValues(kind).Inc()
}

// ObserveDropped counts dropped events
func (m *Metrics) ObserveDropped(n int) {
	if n > 0 {
		m.droppedEvents.Add(float64(n))
	}
}

// ObserveLedger sets the per-status gauges from a ledger snapshot
func (m *Metrics) ObserveLedger(ledger domain.Ledger) {
	counts := ledger.CountByStatus()
	for _, status := range trackedStatuses {
		m.transactions.WithLabelValues(string(status)).Set(float64(counts[status]))
	}
}

var _ usecase.ReconcilerMetrics = (*Metrics)(nil)
