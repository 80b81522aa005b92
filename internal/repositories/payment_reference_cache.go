package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-token-ledger/internal/logger"
)

// PaymentReferenceCacheRepository remembers processed payment references in Redis
// so replayed webhooks are answered without touching the database.
type PaymentReferenceCacheRepository struct {
	client *redis.Client
	exp    time.Duration // how long a processed reference is remembered
}

// NewPaymentReferenceCacheRepository creates a new repository instance.
func NewPaymentReferenceCacheRepository(client *redis.Client, expiration time.Duration) *PaymentReferenceCacheRepository {
	return &PaymentReferenceCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func paymentReferenceKey(reference string) string {
	return fmt.Sprintf("payment_reference:%s", reference)
}

// IsProcessed reports whether the reference was marked as processed.
func (r *PaymentReferenceCacheRepository) IsProcessed(ctx context.Context, reference string) (bool, error) {
	key := paymentReferenceKey(reference)

	n, err := r.client.Exists(ctx, key).Result()
	logger.Log.Infow("cache",
		"key", key,
		"result", n,
		"error", err,
	)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MarkProcessed remembers the reference.
func (r *PaymentReferenceCacheRepository) MarkProcessed(ctx context.Context, reference string) error {
	key := paymentReferenceKey(reference)

	err := r.client.Set(ctx, key, "1", r.exp).Err()
	logger.Log.Infow("cache",
		"key", key,
		"result", "ok",
		"error", err,
	)
	return err
}
