package payments

//go:generate mockgen -source=redelivery.go -destination=redelivery_mock.go -package=payments

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/sbilibin2017/gw-token-ledger/internal/logger"
	"github.com/sbilibin2017/gw-token-ledger/internal/models"
	"github.com/segmentio/kafka-go"
)

// MessageReader is the consumer side of a Kafka topic.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// CreditApplier applies a payment credit.
type CreditApplier interface {
	Apply(ctx context.Context, credit models.PaymentCredit) (*Result, error)
}

// RedeliveryWorker consumes the payment retry topic and re-applies each credit
// once its delay has passed. Credits are idempotent by reference.
type RedeliveryWorker struct {
	reader  MessageReader
	applier CreditApplier
	delay   time.Duration
	now     func() time.Time

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// NewRedeliveryWorker creates a worker that waits delay after a failure before retrying.
func NewRedeliveryWorker(reader MessageReader, applier CreditApplier, delay time.Duration) *RedeliveryWorker {
	return &RedeliveryWorker{
		reader:  reader,
		applier: applier,
		delay:   delay,
		now:     time.Now,
	}
}

// Start consumes in a background goroutine until ctx is done or Stop is called.
func (w *RedeliveryWorker) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		logger.Log.Infow("payment redelivery worker started")
		for {
			msg, err := w.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					logger.Log.Infow("payment redelivery worker shutting down")
					return
				}
				logger.Log.Errorw("could not read payment retry message", "error", err)
				if !sleep(ctx, time.Second) {
					return
				}
				continue
			}

			if !w.process(ctx, msg) {
				return
			}

			if err := w.reader.CommitMessages(ctx, msg); err != nil {
				logger.Log.Errorw("failed to commit payment retry message", "error", err)
			}
		}
	}()
}

// Stop cancels the consumer, closes the reader and waits for the loop to exit.
func (w *RedeliveryWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if err := w.reader.Close(); err != nil {
		logger.Log.Warnw("failed to close payment retry reader", "error", err)
	}
	w.wg.Wait()
	logger.Log.Infow("payment redelivery worker stopped")
}

// process handles one message. It returns false when ctx ended while waiting,
// in which case the message is left uncommitted.
func (w *RedeliveryWorker) process(ctx context.Context, msg kafka.Message) bool {
	var credit models.PaymentCredit
	if err := json.Unmarshal(msg.Value, &credit); err != nil {
		logger.Log.Errorw("skipping malformed payment retry message", "key", string(msg.Key), "error", err)
		return true
	}

	if wait := credit.FailedAt.Add(w.delay).Sub(w.now()); wait > 0 {
		if !sleep(ctx, wait) {
			return false
		}
	}

	result, err := w.applier.Apply(ctx, credit)
	switch {
	case err != nil && errors.Is(err, context.Canceled):
		return false
	case err != nil:
		logger.Log.Errorw("payment redelivery failed", "reference", credit.Reference, "attempts", credit.Attempts, "error", err)
	default:
		logger.Log.Infow("payment redelivered", "reference", credit.Reference, "outcome", result.Outcome, "ledger_applied", result.LedgerApplied)
	}
	return true
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
