package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-token-ledger/internal/entitlement"
	"github.com/sbilibin2017/gw-token-ledger/internal/logger"
	"github.com/sbilibin2017/gw-token-ledger/internal/metrics"
	"github.com/sbilibin2017/gw-token-ledger/internal/models"
)

// PromotionRequest names what to promote and with which plan.
// Cost and duration always come from the pricing table.
type PromotionRequest struct {
	EntityID   uuid.UUID           `json:"entityId" validate:"required"`
	EntityKind models.EntityKind   `json:"entityKind" validate:"required,oneof=job profile"`
	Plan       models.PromotionTag `json:"plan" validate:"required,oneof=silver gold premium"`
}

// PromotionQuote describes what a promotion would cost and do, without buying it.
type PromotionQuote struct {
	Plan                 models.PromotionPlan `json:"plan"`
	Balance              int64                `json:"balance"`
	CanAfford            bool                 `json:"canAfford"`
	Active               bool                 `json:"active"`
	CurrentTag           models.PromotionTag  `json:"currentTag"`
	CurrentExpiresAt     *time.Time           `json:"currentExpiresAt,omitempty"`
	AlreadyPromoted      bool                 `json:"alreadyPromoted"`
	WouldExtend          bool                 `json:"wouldExtend"`
	RequiresConfirmation bool                 `json:"requiresConfirmation"`
	NewExpiresAt         *time.Time           `json:"newExpiresAt,omitempty"`
}

// PromotionResult is the outcome of a purchased promotion.
type PromotionResult struct {
	Entity            *models.PromotableEntity `json:"entity"`
	Wallet            *models.Wallet           `json:"wallet"`
	Plan              models.PromotionPlan     `json:"plan"`
	WouldExtend       bool                     `json:"wouldExtend"`
	PreviousExpiresAt *time.Time               `json:"previousExpiresAt,omitempty"`
}

func promotionDescription(kind models.EntityKind, plan models.PromotionTag) string {
	if kind == models.EntityProfile {
		return fmt.Sprintf("Profile Promotion (%s)", plan)
	}
	return fmt.Sprintf("Job Promotion (%s)", plan)
}

// QuotePromotion previews a promotion for the caller.
func (s *WalletService) QuotePromotion(ctx context.Context, userID uuid.UUID, req PromotionRequest) (*PromotionQuote, error) {
	plan, err := s.resolvePromotion(req)
	if err != nil {
		return nil, err
	}

	entity, err := s.promotions.Get(ctx, req.EntityKind, req.EntityID)
	if err != nil {
		return nil, entityError(req, err)
	}
	if entity.OwnerID != userID {
		return nil, ErrNotEntityOwner
	}

	wallet, err := s.GetOrCreateWallet(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	active := entitlement.IsPromotionActive(entity.PromotionTag, entity.PromotionExpiresAt, now)
	quote := &PromotionQuote{
		Plan:       plan,
		Balance:    wallet.Balance,
		CanAfford:  entitlement.CanAfford(wallet.Balance, plan.Cost),
		Active:     active,
		CurrentTag: entitlement.EffectiveTag(entity.PromotionTag, entity.PromotionExpiresAt, now),
	}
	if active {
		quote.CurrentExpiresAt = entity.PromotionExpiresAt
	}

	if active && req.EntityKind == models.EntityJob {
		quote.AlreadyPromoted = true
		return quote, nil
	}

	quote.WouldExtend = active
	quote.RequiresConfirmation = active
	expiresAt := entitlement.ComputeNewExpiry(entity.PromotionExpiresAt, plan.DurationDays, now)
	quote.NewExpiresAt = &expiresAt
	return quote, nil
}

// PromoteEntity buys a promotion for a job or a profile owned by userID.
// An active job promotion is rejected with *AlreadyPromotedError. An active
// profile promotion is extended from its current expiry. The debit is written
// before the tag and both commit together.
func (s *WalletService) PromoteEntity(ctx context.Context, userID uuid.UUID, req PromotionRequest) (*PromotionResult, error) {
	plan, err := s.resolvePromotion(req)
	if err != nil {
		return nil, err
	}

	var (
		result = &PromotionResult{Plan: plan}
		txn    *models.Transaction
	)
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		entity, err := s.promotions.GetForUpdate(ctx, req.EntityKind, req.EntityID)
		if err != nil {
			return entityError(req, err)
		}
		if entity.OwnerID != userID {
			return ErrNotEntityOwner
		}

		now := s.now()
		active := entitlement.IsPromotionActive(entity.PromotionTag, entity.PromotionExpiresAt, now)
		if active && req.EntityKind == models.EntityJob {
			return &AlreadyPromotedError{Tag: entity.PromotionTag, ExpiresAt: *entity.PromotionExpiresAt}
		}
		if active {
			result.WouldExtend = true
			result.PreviousExpiresAt = entity.PromotionExpiresAt
		}
		expiresAt := entitlement.ComputeNewExpiry(entity.PromotionExpiresAt, plan.DurationDays, now)

		result.Wallet, txn, err = s.applyDebit(ctx, userID, plan.Cost, promotionDescription(req.EntityKind, plan.Name))
		if err != nil {
			return err
		}

		result.Entity, err = s.promotions.SetPromotion(ctx, req.EntityKind, req.EntityID, plan.Name, expiresAt)
		if err != nil {
			logger.Log.Errorw("failed to set promotion", "entityID", req.EntityID, "kind", req.EntityKind, "error", err)
			return storeError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishChange(ctx, result.Wallet, txn)
	metrics.RecordPromotion(string(req.EntityKind), string(plan.Name), result.WouldExtend)
	logger.Log.Infow("promotion purchased",
		"entityID", req.EntityID,
		"kind", req.EntityKind,
		"plan", plan.Name,
		"extended", result.WouldExtend,
		"expiresAt", result.Entity.PromotionExpiresAt,
	)
	return result, nil
}

func (s *WalletService) resolvePromotion(req PromotionRequest) (models.PromotionPlan, error) {
	if !req.EntityKind.Valid() {
		return models.PromotionPlan{}, ErrUnsupportedEntity
	}
	return s.pricing.Plan(req.Plan)
}

func entityError(req PromotionRequest, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrEntityNotFound
	}
	logger.Log.Errorw("failed to load entity", "entityID", req.EntityID, "kind", req.EntityKind, "error", err)
	return storeError(err)
}
