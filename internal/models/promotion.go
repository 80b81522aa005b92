package models

import (
	"time"

	"github.com/google/uuid"
)

// PromotionTag is the visibility tier applied to a job or a profile.
type PromotionTag string

// Supported promotion tiers
const (
	PromotionNone    PromotionTag = "none"
	PromotionSilver  PromotionTag = "silver"
	PromotionGold    PromotionTag = "gold"
	PromotionPremium PromotionTag = "premium"
)

// Valid reports whether the tag is one of the known tiers.
func (t PromotionTag) Valid() bool {
	switch t {
	case PromotionNone, PromotionSilver, PromotionGold, PromotionPremium:
		return true
	}
	return false
}

// EntityKind identifies which kind of record is being promoted.
type EntityKind string

// Promotable entity kinds
const (
	EntityJob     EntityKind = "job"
	EntityProfile EntityKind = "profile"
)

// Valid reports whether the kind is job or profile.
func (k EntityKind) Valid() bool {
	return k == EntityJob || k == EntityProfile
}

// PromotableEntity holds the promotion columns of a job or a profile.
// For profiles ID and OwnerID are both the user id.
type PromotableEntity struct {
	ID                 uuid.UUID    `json:"id" db:"id"`
	Kind               EntityKind   `json:"kind" db:"-"`
	OwnerID            uuid.UUID    `json:"owner_id" db:"owner_id"`
	PromotionTag       PromotionTag `json:"promotion_tag" db:"promotion_tag"`
	PromotionExpiresAt *time.Time   `json:"promotion_expires_at" db:"promotion_expires_at"`
}

// PromotionPlan is one row of the pricing table.
type PromotionPlan struct {
	Name         PromotionTag `json:"name" yaml:"-"`
	Cost         int64        `json:"cost" yaml:"cost"`
	DurationDays int          `json:"duration_days" yaml:"duration_days"`
}

// Duration returns the plan length as a time.Duration.
func (p PromotionPlan) Duration() time.Duration {
	return time.Duration(p.DurationDays) * 24 * time.Hour
}
