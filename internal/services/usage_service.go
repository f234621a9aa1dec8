// internal/services/usage_service.go
package services

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"assistant-backend/internal/models"
	"assistant-backend/internal/quota"
	"assistant-backend/internal/repository"
	apperrors "assistant-backend/pkg/errors"
)

// recordRetryLimit bounds the reload-and-reapply loop when concurrent
// writers race on the same account document.
const recordRetryLimit = 5

var (
	tokensRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "usage_tokens_recorded_total",
		Help: "Tokens recorded against accounts, by modality.",
	}, []string{"modality"})

	recordConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "usage_record_conflicts_total",
		Help: "Optimistic-concurrency conflicts hit while recording usage.",
	})
)

// UsageService is the engine's contract to the controller layer: advisory
// pre-checks, the single recording entry point, and the reporting view.
type UsageService interface {
	CheckRequestAllowed(acct *models.Account, modality quota.Modality) quota.Decision
	CheckTokensAllowed(acct *models.Account, tokenCount int64) quota.Decision
	ResolvePrivileges(acct *models.Account) quota.Privileges
	RecordUsage(ctx context.Context, userID string, modality quota.Modality, tokens int64, cost float64) (*models.Account, error)
	GetAnalyticsView(ctx context.Context, userID string) (*quota.AnalyticsView, error)
}

type usageService struct {
	accountRepo repository.AccountRepository
	clock       quota.Clock
}

func NewUsageService(accountRepo repository.AccountRepository, clock quota.Clock) UsageService {
	return &usageService{
		accountRepo: accountRepo,
		clock:       clock,
	}
}

func (s *usageService) CheckRequestAllowed(acct *models.Account, modality quota.Modality) quota.Decision {
	return quota.CanMakeRequest(acct, modality)
}

func (s *usageService) CheckTokensAllowed(acct *models.Account, tokenCount int64) quota.Decision {
	return quota.CanUseTokens(acct, tokenCount)
}

func (s *usageService) ResolvePrivileges(acct *models.Account) quota.Privileges {
	return quota.ResolvePrivileges(acct)
}

// RecordUsage applies one consumption event and persists it under the
// account's revision check. On a conflict the whole sequence restarts from a
// freshly loaded snapshot, never re-applying a stale delta. The mutation
// happens on a clone, so a failed persist leaves nothing observable.
func (s *usageService) RecordUsage(ctx context.Context, userID string, modality quota.Modality, tokens int64, cost float64) (*models.Account, error) {
	for attempt := 0; attempt < recordRetryLimit; attempt++ {
		acct, err := s.accountRepo.GetByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}

		next := acct.Clone()
		if err := quota.Apply(next, modality, tokens, cost, s.clock.Now()); err != nil {
			switch {
			case errors.Is(err, quota.ErrNegativeTokens),
				errors.Is(err, quota.ErrNegativeCost),
				errors.Is(err, quota.ErrUnknownModality):
				return nil, apperrors.NewInvariantViolationError(err.Error())
			}
			return nil, err
		}

		err = s.accountRepo.Update(ctx, next)
		if err == nil {
			tokensRecorded.WithLabelValues(modality.String()).Add(float64(tokens))
			return next, nil
		}
		if !apperrors.IsErrorType(err, apperrors.ErrConflict) {
			return nil, err
		}

		recordConflicts.Inc()
		zap.L().Debug("Usage record lost a write race, retrying",
			zap.String("userId", userID),
			zap.Int("attempt", attempt+1))
	}

	zap.L().Warn("Usage record exhausted retries", zap.String("userId", userID))
	return nil, apperrors.NewConflictError()
}

// GetAnalyticsView loads a fresh snapshot and projects the reporting view.
// Read-only: never touches the write path.
func (s *usageService) GetAnalyticsView(ctx context.Context, userID string) (*quota.AnalyticsView, error) {
	acct, err := s.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := quota.Project(acct)
	return &view, nil
}
