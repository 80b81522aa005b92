package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-token-ledger/internal/logger"
	"github.com/sbilibin2017/gw-token-ledger/internal/models"
	"github.com/segmentio/kafka-go"
)

// publishChange publishes the wallet update and the inserted transaction of a
// committed mutation. Publishing failures are logged; the ledger is the source of truth.
func (s *WalletService) publishChange(ctx context.Context, wallet *models.Wallet, txn *models.Transaction) {
	if wallet == nil {
		return
	}
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "userID", wallet.UserID)
		return
	}

	now := s.now()
	events := []models.LedgerEvent{{
		ID:         uuid.New(),
		Type:       models.EventWalletUpdated,
		UserID:     wallet.UserID,
		Wallet:     wallet,
		OccurredAt: now,
	}}
	if txn != nil {
		events = append(events, models.LedgerEvent{
			ID:          uuid.New(),
			Type:        models.EventTransactionInserted,
			UserID:      wallet.UserID,
			Transaction: txn,
			OccurredAt:  now,
		})
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		data, err := json.Marshal(event)
		if err != nil {
			logger.Log.Errorw("Failed to marshal ledger event for Kafka", "event_id", event.ID, "error", err)
			return
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(event.UserID.String()),
			Value: data,
		})
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msgs...); err != nil {
		logger.Log.Errorw("Failed to publish ledger events to Kafka", "userID", wallet.UserID, "error", err)
		return
	}
	logger.Log.Infow("Ledger events published to Kafka", "userID", wallet.UserID, "version", wallet.Version, "count", len(msgs))
}
