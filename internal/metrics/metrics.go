package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// Payment results
const (
	ResultSuccess           = "success"
	ResultNotFound          = "not_found"
	ResultInvalidState      = "invalid_state"
	ResultWalletUnavailable = "wallet_unavailable"
	ResultInsufficientFunds = "insufficient_funds"
	ResultTransient         = "transient"
	ResultError             = "error"
)

var (
	paymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_order_payments_total",
			Help: "Total number of order payment attempts by result",
		},
		[]string{"result"},
	)

	paymentDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wallet_order_payment_duration_seconds",
			Help:    "Duration of the order payment transaction",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2, 5},
		},
		[]string{"result"},
	)

	ledgerEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_ledger_entries_total",
			Help: "Total number of committed ledger entries by type",
		},
		[]string{"type"},
	)

	ledgerAmountTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_ledger_amount_total",
			Help: "Sum of committed ledger entry amounts by type",
		},
		[]string{"type"},
	)
)

// ObservePayment records one payment attempt.
func ObservePayment(result string, started time.Time) {
	paymentsTotal.WithLabelValues(result).Inc()
	paymentDuration.WithLabelValues(result).Observe(time.Since(started).Seconds())
}

// ObserveLedgerEntry records one committed ledger entry.
func ObserveLedgerEntry(entryType string, amount decimal.Decimal) {
	ledgerEntriesTotal.WithLabelValues(entryType).Inc()
	ledgerAmountTotal.WithLabelValues(entryType).Add(amount.InexactFloat64())
}
