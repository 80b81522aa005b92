package realtime

//go:generate mockgen -source=consumer.go -destination=consumer_mock.go -package=realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sbilibin2017/gw-token-ledger/internal/logger"
	"github.com/sbilibin2017/gw-token-ledger/internal/models"
	"github.com/segmentio/kafka-go"
)

// MessageReader is the consumer side of the ledger change feed.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer feeds ledger events from Kafka into a Projection.
type Consumer struct {
	reader     MessageReader
	projection *Projection

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// NewConsumer creates a new Consumer.
func NewConsumer(reader MessageReader, projection *Projection) *Consumer {
	return &Consumer{reader: reader, projection: projection}
}

// Start consumes in a background goroutine until ctx is done or Stop is called.
func (c *Consumer) Start(ctx context.Context) {
	ctx, c.cancel = context.WithCancel(ctx)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		logger.Log.Infow("ledger projection consumer started")
		for {
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					logger.Log.Infow("ledger projection consumer shutting down")
					return
				}
				logger.Log.Errorw("could not read ledger event", "error", err)
				select {
				case <-ctx.Done():
					return
				case <-time.After(time.Second):
				}
				continue
			}

			c.handle(msg)

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				logger.Log.Errorw("failed to commit ledger event", "error", err)
			}
		}
	}()
}

// Stop cancels the consumer, closes the reader and waits for the loop to exit.
func (c *Consumer) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
	if err := c.reader.Close(); err != nil {
		logger.Log.Warnw("failed to close ledger event reader", "error", err)
	}
	c.wg.Wait()
	logger.Log.Infow("ledger projection consumer stopped")
}

func (c *Consumer) handle(msg kafka.Message) {
	var event models.LedgerEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		logger.Log.Errorw("skipping malformed ledger event", "key", string(msg.Key), "error", err)
		return
	}
	c.projection.Apply(event)
}
