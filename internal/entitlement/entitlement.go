// Package entitlement holds the pure decision rules of the token ledger:
// whether a balance covers a cost and how promotion expiry is computed.
package entitlement

import (
	"time"

	"github.com/sbilibin2017/gw-token-ledger/internal/models"
)

// CanAfford reports whether balance covers cost.
func CanAfford(balance, cost int64) bool {
	return balance >= cost
}

// ComputeNewExpiry returns the expiry of a promotion bought at now for durationDays.
// An active promotion (currentExpiry after now) is extended from its current expiry,
// otherwise the new promotion starts at now.
func ComputeNewExpiry(currentExpiry *time.Time, durationDays int, now time.Time) time.Time {
	base := now
	if currentExpiry != nil && currentExpiry.After(now) {
		base = *currentExpiry
	}
	return base.AddDate(0, 0, durationDays)
}

// IsPromotionActive reports whether a stored tag is still in effect at now.
func IsPromotionActive(tag models.PromotionTag, expiresAt *time.Time, now time.Time) bool {
	return tag != models.PromotionNone && tag != "" && expiresAt != nil && expiresAt.After(now)
}

// EffectiveTag applies lazy expiry: an expired promotion reads as none.
func EffectiveTag(tag models.PromotionTag, expiresAt *time.Time, now time.Time) models.PromotionTag {
	if !IsPromotionActive(tag, expiresAt, now) {
		return models.PromotionNone
	}
	return tag
}
