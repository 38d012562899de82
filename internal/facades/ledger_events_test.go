package facades

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fake kafka writer ---
type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func testEvent() models.Transaction {
	return models.Transaction{
		TransactionID: "3f1c2f6e-6f55-4b55-9d4c-8d2f0d2b8a10",
		Timestamp:     1700000000,
		WalletID:      "wallet",
		UserID:        "user",
		OrderID:       "order",
		Operation:     models.TransactionTypePayment,
		Amount:        decimal.RequireFromString("60000"),
		BalanceBefore: decimal.RequireFromString("100000"),
		BalanceAfter:  decimal.RequireFromString("40000"),
	}
}

// --- Tests ---
func TestPublish(t *testing.T) {
	w := &fakeWriter{}
	facade := NewLedgerEventsKafkaFacade(w)

	err := facade.Publish(context.Background(), testEvent())
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "3f1c2f6e-6f55-4b55-9d4c-8d2f0d2b8a10", string(w.msgs[0].Key))

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, "payment", got["operation"])
	assert.Equal(t, "60000", got["amount"])
	assert.Equal(t, "order", got["order_id"])
}

func TestPublish_Error(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	facade := NewLedgerEventsKafkaFacade(w)

	err := facade.Publish(context.Background(), testEvent())
	assert.EqualError(t, err, "broker down")
}

func TestPublish_NilWriter(t *testing.T) {
	facade := NewLedgerEventsKafkaFacade(nil)

	assert.NoError(t, facade.Publish(context.Background(), testEvent()))
}

func TestNewKafkaWriter(t *testing.T) {
	w := NewKafkaWriter([]string{"localhost:9092"}, "wallet.transactions")
	assert.Equal(t, "wallet.transactions", w.Topic)
	assert.Equal(t, kafka.RequireAll, w.RequiredAcks)
	assert.True(t, w.Async, "publishing must not hold the request")
	assert.Equal(t, 3, w.MaxAttempts)
	assert.Equal(t, 10*time.Millisecond, w.BatchTimeout)
	assert.Equal(t, 10*time.Second, w.WriteTimeout)
	assert.NotNil(t, w.Completion)
	assert.NotNil(t, w.Logger)
	assert.NotNil(t, w.ErrorLogger)
}

func TestNewKafkaWriter_UnreachableBrokerDoesNotBlock(t *testing.T) {
	// nothing listens on port 1
	w := NewKafkaWriter([]string{"127.0.0.1:1"}, "wallet.transactions")
	defer w.Close()

	facade := NewLedgerEventsKafkaFacade(w)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	started := time.Now()
	_ = facade.Publish(ctx, models.Transaction{TransactionID: "tx-1", Operation: models.TransactionTypePayment})
	assert.Less(t, time.Since(started), 2*time.Second)
}

func TestLedgerEventsCompletion(t *testing.T) {
	msgs := []kafka.Message{{Topic: "wallet.transactions", Key: []byte("tx-1")}}
	assert.NotPanics(t, func() {
		ledgerEventsCompletion(msgs, nil)
		ledgerEventsCompletion(msgs, errors.New("broker down"))
	})
}
