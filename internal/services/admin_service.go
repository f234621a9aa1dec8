// internal/services/admin_service.go
package services

import (
	"context"

	"go.uber.org/zap"

	"assistant-backend/internal/models"
	"assistant-backend/internal/quota"
	"assistant-backend/internal/repository"
	apperrors "assistant-backend/pkg/errors"
)

// AdminService covers the privileged account-management surface. Every
// mutation is gated on the actor's resolved permissions, bumps the actor's
// admin-action counters, and leaves an audit trail.
type AdminService interface {
	ListAccounts(ctx context.Context, actor *models.Account) (*models.AdminAccountListResponse, error)
	GetAccountAnalytics(ctx context.Context, actor *models.Account, targetID string) (*quota.AnalyticsView, error)
	UpdateUserSettings(ctx context.Context, actor *models.Account, targetID string, req *models.UpdateUserSettingsRequest) (*models.Account, error)
	UpdateAdminSettings(ctx context.Context, actor *models.Account, targetID string, req *models.UpdateAdminSettingsRequest) (*models.Account, error)
	SetActive(ctx context.Context, actor *models.Account, targetID string, active bool) (*models.Account, error)
	GetActivity(ctx context.Context, actor *models.Account, targetID string, limit int) ([]models.ActivityLog, error)
}

type adminService struct {
	accountRepo  repository.AccountRepository
	activityRepo repository.ActivityRepository
	clock        quota.Clock
}

func NewAdminService(accountRepo repository.AccountRepository, activityRepo repository.ActivityRepository, clock quota.Clock) AdminService {
	return &adminService{
		accountRepo:  accountRepo,
		activityRepo: activityRepo,
		clock:        clock,
	}
}

func (s *adminService) ListAccounts(ctx context.Context, actor *models.Account) (*models.AdminAccountListResponse, error) {
	if err := s.requirePermission(actor, quota.PermManageUsers); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.accountRepo.GetTotalCount(ctx)
	if err != nil {
		return nil, err
	}

	return &models.AdminAccountListResponse{
		Message:  "Accounts retrieved successfully",
		Accounts: accounts,
		Total:    int(total),
	}, nil
}

func (s *adminService) GetAccountAnalytics(ctx context.Context, actor *models.Account, targetID string) (*quota.AnalyticsView, error) {
	if err := s.requirePermission(actor, quota.PermViewSystemAnalytics); err != nil {
		return nil, err
	}

	target, err := s.accountRepo.GetByUserID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	view := quota.Project(target)
	return &view, nil
}

func (s *adminService) UpdateUserSettings(ctx context.Context, actor *models.Account, targetID string, req *models.UpdateUserSettingsRequest) (*models.Account, error) {
	if err := s.requirePermission(actor, quota.PermManageUsers); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrValidation, 400, "validation failed", err.Error())
	}

	updated, err := s.mutateAccount(ctx, targetID, func(acct *models.Account) {
		acct.UserSettings = req.UserSettings
	})
	if err != nil {
		return nil, err
	}

	s.recordAdminAction(ctx, actor, targetID, "update-user-settings", "User limits and feature flags replaced")
	return updated, nil
}

func (s *adminService) UpdateAdminSettings(ctx context.Context, actor *models.Account, targetID string, req *models.UpdateAdminSettingsRequest) (*models.Account, error) {
	if err := s.requirePermission(actor, quota.PermManageSystemSettings); err != nil {
		return nil, err
	}

	updated, err := s.mutateAccount(ctx, targetID, func(acct *models.Account) {
		acct.AdminSettings.CanManageUsers = req.CanManageUsers
		acct.AdminSettings.CanViewSystemAnalytics = req.CanViewSystemAnalytics
		acct.AdminSettings.CanManageSystemSettings = req.CanManageSystemSettings
		acct.AdminSettings.CanAccessLogs = req.CanAccessLogs
		acct.AdminSettings.CanManageBilling = req.CanManageBilling
		acct.AdminSettings.HasUnlimitedUsage = req.HasUnlimitedUsage
		acct.AdminSettings.CanOverrideUserLimits = req.CanOverrideUserLimits
	})
	if err != nil {
		return nil, err
	}

	s.recordAdminAction(ctx, actor, targetID, "update-admin-settings", "Admin permissions replaced")
	return updated, nil
}

func (s *adminService) SetActive(ctx context.Context, actor *models.Account, targetID string, active bool) (*models.Account, error) {
	if err := s.requirePermission(actor, quota.PermManageUsers); err != nil {
		return nil, err
	}

	updated, err := s.mutateAccount(ctx, targetID, func(acct *models.Account) {
		acct.IsActive = active
	})
	if err != nil {
		return nil, err
	}

	action := "deactivate-account"
	if active {
		action = "reactivate-account"
	}
	s.recordAdminAction(ctx, actor, targetID, action, "Account active flag changed")
	return updated, nil
}

// GetActivity returns the most recent audit entries, optionally filtered to
// one target account.
func (s *adminService) GetActivity(ctx context.Context, actor *models.Account, targetID string, limit int) ([]models.ActivityLog, error) {
	if err := s.requirePermission(actor, quota.PermAccessLogs); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if targetID != "" {
		return s.activityRepo.GetByTarget(ctx, targetID, limit)
	}
	return s.activityRepo.GetRecent(ctx, limit)
}

func (s *adminService) requirePermission(actor *models.Account, perm quota.AdminPermission) error {
	if !quota.ResolvePrivileges(actor).Has(perm) {
		return apperrors.NewForbiddenError("missing permission: " + string(perm))
	}
	return nil
}

// mutateAccount runs the load-mutate-persist loop under the revision check,
// same discipline as usage recording.
func (s *adminService) mutateAccount(ctx context.Context, userID string, mutate func(*models.Account)) (*models.Account, error) {
	for attempt := 0; attempt < recordRetryLimit; attempt++ {
		acct, err := s.accountRepo.GetByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}

		next := acct.Clone()
		mutate(next)
		next.UpdatedAt = s.clock.Now()

		err = s.accountRepo.Update(ctx, next)
		if err == nil {
			return next, nil
		}
		if !apperrors.IsErrorType(err, apperrors.ErrConflict) {
			return nil, err
		}
	}
	return nil, apperrors.NewConflictError()
}

// recordAdminAction bumps the actor's counters and appends to the audit
// trail. Best effort: a failure here never rolls back the admin mutation.
func (s *adminService) recordAdminAction(ctx context.Context, actor *models.Account, targetID, action, description string) {
	now := s.clock.Now()

	if _, err := s.mutateAccount(ctx, actor.UserID, func(acct *models.Account) {
		acct.AdminSettings.LastAdminAction = now
		acct.AdminSettings.AdminActionCount++
	}); err != nil {
		zap.L().Warn("Failed to bump admin action counter",
			zap.String("actorId", actor.UserID),
			zap.Error(err))
	}

	entry := &models.ActivityLog{
		ActorID:     actor.UserID,
		TargetID:    targetID,
		Action:      action,
		Description: description,
		Timestamp:   now,
	}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		zap.L().Warn("Failed to write activity log",
			zap.String("actorId", actor.UserID),
			zap.String("action", action),
			zap.Error(err))
	}
}
