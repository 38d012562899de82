package facades

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sbilibin2017/gw-wallet-payments/internal/logger"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
	"github.com/segmentio/kafka-go"
)

// MessageWriter is the subset of *kafka.Writer used by the facade.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// LedgerEventsKafkaFacade publishes committed ledger entries to Kafka.
type LedgerEventsKafkaFacade struct {
	writer MessageWriter
}

// NewLedgerEventsKafkaFacade creates a new facade. A nil writer disables publishing.
func NewLedgerEventsKafkaFacade(writer MessageWriter) *LedgerEventsKafkaFacade {
	return &LedgerEventsKafkaFacade{writer: writer}
}

// Publish writes one event keyed by the transaction id.
func (f *LedgerEventsKafkaFacade) Publish(ctx context.Context, ev models.Transaction) error {
	if f.writer == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "transaction_id", ev.TransactionID)
		return nil
	}

	data, err := json.Marshal(ev)
	if err != nil {
		logger.Log.Errorw("failed to marshal ledger event", "transaction_id", ev.TransactionID, "error", err)
		return err
	}

	msg := kafka.Message{
		Key:   []byte(ev.TransactionID),
		Value: data,
	}
	if err := f.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish ledger event", "transaction_id", ev.TransactionID, "error", err)
		return err
	}

	logger.Log.Infow("ledger event queued", "transaction_id", ev.TransactionID, "operation", ev.Operation, "amount", ev.Amount)
	return nil
}

// Writer settings. WriteMessages never waits for delivery, failures are
// reported to ledgerEventsCompletion.
const (
	writerMaxAttempts  = 3
	writerBatchTimeout = 10 * time.Millisecond
	writerWriteTimeout = 10 * time.Second
)

// NewKafkaWriter builds the asynchronous writer used in production.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		Async:                  true,
		MaxAttempts:            writerMaxAttempts,
		BatchTimeout:           writerBatchTimeout,
		WriteTimeout:           writerWriteTimeout,
		Completion:             ledgerEventsCompletion,
		Logger:                 kafka.LoggerFunc(func(msg string, args ...any) { logger.Log.Debugf(msg, args...) }),
		ErrorLogger:            kafka.LoggerFunc(func(msg string, args ...any) { logger.Log.Errorf(msg, args...) }),
	}
}

func ledgerEventsCompletion(messages []kafka.Message, err error) {
	for _, msg := range messages {
		if err != nil {
			logger.Log.Errorw("failed to deliver ledger event", "topic", msg.Topic, "transaction_id", string(msg.Key), "error", err)
			continue
		}
		logger.Log.Debugw("ledger event delivered", "topic", msg.Topic, "transaction_id", string(msg.Key))
	}
}
