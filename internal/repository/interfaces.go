// internal/repository/interfaces.go
package repository

import (
	"context"

	"assistant-backend/internal/models"
)

// AccountRepository persists the account aggregate. Update performs an
// optimistic-concurrency replace keyed by userId and revision; a lost race
// surfaces as the CONFLICT AppError and the caller retries from a fresh
// snapshot.
type AccountRepository interface {
	Create(ctx context.Context, acct *models.Account) error
	GetByUserID(ctx context.Context, userID string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	Update(ctx context.Context, acct *models.Account) error
	Delete(ctx context.Context, userID string) error
	// Admin methods
	GetAll(ctx context.Context) ([]models.Account, error)
	GetTotalCount(ctx context.Context) (int64, error)
}

// ActivityRepository is the append-only audit trail of admin actions.
type ActivityRepository interface {
	Create(ctx context.Context, activity *models.ActivityLog) error
	GetRecent(ctx context.Context, limit int) ([]models.ActivityLog, error)
	GetByTarget(ctx context.Context, targetID string, limit int) ([]models.ActivityLog, error)
}
