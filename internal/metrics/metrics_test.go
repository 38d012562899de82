package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestObservePayment(t *testing.T) {
	before := testutil.ToFloat64(paymentsTotal.WithLabelValues(ResultSuccess))

	ObservePayment(ResultSuccess, time.Now())

	assert.Equal(t, before+1, testutil.ToFloat64(paymentsTotal.WithLabelValues(ResultSuccess)))
}

func TestObserveLedgerEntry(t *testing.T) {
	beforeCount := testutil.ToFloat64(ledgerEntriesTotal.WithLabelValues("payment"))
	beforeAmount := testutil.ToFloat64(ledgerAmountTotal.WithLabelValues("payment"))

	ObserveLedgerEntry("payment", decimal.NewFromInt(60000))

	assert.Equal(t, beforeCount+1, testutil.ToFloat64(ledgerEntriesTotal.WithLabelValues("payment")))
	assert.Equal(t, beforeAmount+60000, testutil.ToFloat64(ledgerAmountTotal.WithLabelValues("payment")))
}
