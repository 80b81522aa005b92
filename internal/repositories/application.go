package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-token-ledger/internal/models"
)

// ApplicationRepository records paid job applications.
type ApplicationRepository struct {
	db *sqlx.DB
}

// NewApplicationRepository creates a new ApplicationRepository.
func NewApplicationRepository(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// JobExists reports whether the job is present.
func (r *ApplicationRepository) JobExists(ctx context.Context, jobID uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM jobs WHERE id = $1)`

	var exists bool
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &exists, query, jobID)
	logQuery(query, []any{jobID}, exists, err)
	return exists, err
}

// Create inserts an application. If the user already applied to the job
// nothing is written and sql.ErrNoRows is returned.
func (r *ApplicationRepository) Create(ctx context.Context, jobID, userID uuid.UUID, tokensSpent int64) (*models.JobApplication, error) {
	const query = `
		INSERT INTO job_applications (id, job_id, user_id, tokens_spent, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (job_id, user_id) DO NOTHING
		RETURNING id, job_id, user_id, tokens_spent, created_at
	`

	args := []any{uuid.New(), jobID, userID, tokensSpent}

	var app models.JobApplication
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &app, query, args...)
	logQuery(query, args, app.ID, err)
	if err != nil {
		return nil, err
	}
	return &app, nil
}
