package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	TransfersCreated prometheus.Counter
	TransferDuration prometheus.Histogram
	TransferAmount   prometheus.Histogram
	TransferErrors   *prometheus.CounterVec

	WalletsSoftDeleted      prometheus.Counter
	TransactionsSoftDeleted prometheus.Counter
}

// New creates all metrics and registers them with the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates all metrics against a specific registerer. Tests pass a
// fresh registry so repeated construction does not collide.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TransfersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_transfers_created_total",
			Help: "Total number of transfers created",
		}),
		TransferDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_transfer_duration_seconds",
			Help:    "Duration of transfer operations",
			Buckets: prometheus.DefBuckets,
		}),
		TransferAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_transfer_amount_minor_units",
			Help:    "Transfer amounts in minor currency units",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		TransferErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_transfer_errors_total",
				Help: "Total number of failed transfers by reason",
			},
			[]string{"reason"},
		),
		WalletsSoftDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_wallets_soft_deleted_total",
			Help: "Total number of wallets soft-deleted",
		}),
		TransactionsSoftDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_transactions_soft_deleted_total",
			Help: "Total number of transactions soft-deleted",
		}),
	}
}
