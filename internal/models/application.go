package models

import (
	"time"

	"github.com/google/uuid"
)

// JobApplication is a paid application of a freelancer to a job.
type JobApplication struct {
	ID          uuid.UUID `json:"id" db:"id"`
	JobID       uuid.UUID `json:"job_id" db:"job_id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	TokensSpent int64     `json:"tokens_spent" db:"tokens_spent"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
