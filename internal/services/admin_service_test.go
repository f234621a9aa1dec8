package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistant-backend/internal/models"
	"assistant-backend/internal/quota"
	apperrors "assistant-backend/pkg/errors"
)

type fakeActivityRepo struct {
	entries []models.ActivityLog
}

func (r *fakeActivityRepo) Create(_ context.Context, activity *models.ActivityLog) error {
	r.entries = append(r.entries, *activity)
	return nil
}

func (r *fakeActivityRepo) GetRecent(_ context.Context, limit int) ([]models.ActivityLog, error) {
	if len(r.entries) > limit {
		return r.entries[len(r.entries)-limit:], nil
	}
	return r.entries, nil
}

func (r *fakeActivityRepo) GetByTarget(_ context.Context, targetID string, limit int) ([]models.ActivityLog, error) {
	var out []models.ActivityLog
	for _, e := range r.entries {
		if e.TargetID == targetID {
			out = append(out, e)
		}
	}
	return out, nil
}

func adminFixture(t *testing.T) (*adminService, *fakeAccountRepo, *fakeActivityRepo, *models.Account, *models.Account) {
	t.Helper()
	clock := &fixedClock{now: time.Date(2026, time.August, 12, 9, 0, 0, 0, time.UTC)}
	accountRepo := newFakeAccountRepo()
	activityRepo := &fakeActivityRepo{}

	admin := models.NewAccount("admin-1", "admin@example.com", "Admin", "x", clock.Now())
	admin.Role = models.RoleAdmin
	admin.AdminSettings.CanManageUsers = true
	admin.AdminSettings.CanViewSystemAnalytics = true
	admin.AdminSettings.CanManageSystemSettings = true
	admin.AdminSettings.CanAccessLogs = true
	require.NoError(t, accountRepo.Create(context.Background(), admin))

	user := models.NewAccount("u-1", "u1@example.com", "U One", "x", clock.Now())
	require.NoError(t, accountRepo.Create(context.Background(), user))

	svc := NewAdminService(accountRepo, activityRepo, clock).(*adminService)
	return svc, accountRepo, activityRepo, admin, user
}

func TestUpdateUserSettingsRequiresManageUsers(t *testing.T) {
	svc, repo, _, _, user := adminFixture(t)

	// A plain user account cannot drive admin mutations even with stray
	// flags in storage.
	user.AdminSettings.CanManageUsers = true
	req := &models.UpdateUserSettingsRequest{UserSettings: user.UserSettings}

	_, err := svc.UpdateUserSettings(context.Background(), user, "u-1", req)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrForbidden))

	stored, getErr := repo.GetByUserID(context.Background(), "u-1")
	require.NoError(t, getErr)
	assert.Equal(t, int64(models.DefaultMonthlyTokenLimit), stored.UserSettings.MonthlyTokenLimit)
}

func TestUpdateUserSettingsReplacesLimits(t *testing.T) {
	svc, repo, activities, admin, _ := adminFixture(t)

	req := &models.UpdateUserSettingsRequest{
		UserSettings: models.UserSettings{
			MonthlyTokenLimit:   250000,
			MonthlyRequestLimit: 2500,
			CanUseVideo:         false,
			CanUseAudio:         true,
			CanUseDocument:      true,
			CanUseImage:         true,
		},
	}

	updated, err := svc.UpdateUserSettings(context.Background(), admin, "u-1", req)
	require.NoError(t, err)
	assert.Equal(t, int64(250000), updated.UserSettings.MonthlyTokenLimit)
	assert.False(t, updated.UserSettings.CanUseVideo)

	// The actor's action counter moved and the audit trail has the entry.
	actor, err := repo.GetByUserID(context.Background(), "admin-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), actor.AdminSettings.AdminActionCount)
	assert.False(t, actor.AdminSettings.LastAdminAction.IsZero())

	require.Len(t, activities.entries, 1)
	assert.Equal(t, "update-user-settings", activities.entries[0].Action)
	assert.Equal(t, "u-1", activities.entries[0].TargetID)
}

func TestSetActiveTogglesAccount(t *testing.T) {
	svc, repo, _, admin, _ := adminFixture(t)

	updated, err := svc.SetActive(context.Background(), admin, "u-1", false)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	stored, err := repo.GetByUserID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	updated, err = svc.SetActive(context.Background(), admin, "u-1", true)
	require.NoError(t, err)
	assert.True(t, updated.IsActive)
}

func TestUpdateAdminSettingsGrantsUnlimited(t *testing.T) {
	svc, repo, _, admin, _ := adminFixture(t)

	req := &models.UpdateAdminSettingsRequest{HasUnlimitedUsage: true, CanManageBilling: true}
	updated, err := svc.UpdateAdminSettings(context.Background(), admin, "u-1", req)
	require.NoError(t, err)
	assert.True(t, updated.AdminSettings.HasUnlimitedUsage)

	// Flags are stored but stay inert until the account holds the admin
	// role.
	stored, err := repo.GetByUserID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.False(t, quota.ResolvePrivileges(stored).Unlimited)
}

func TestGetActivityRequiresAccessLogs(t *testing.T) {
	svc, _, activities, admin, user := adminFixture(t)
	activities.entries = []models.ActivityLog{{ActorID: "admin-1", Action: "x"}}

	entries, err := svc.GetActivity(context.Background(), admin, "", 50)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	_, err = svc.GetActivity(context.Background(), user, "", 50)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrForbidden))
}

func TestGetActivityFiltersByTarget(t *testing.T) {
	svc, _, activities, admin, _ := adminFixture(t)
	activities.entries = []models.ActivityLog{
		{ActorID: "admin-1", TargetID: "u-1", Action: "deactivate-account"},
		{ActorID: "admin-1", TargetID: "u-2", Action: "reactivate-account"},
	}

	entries, err := svc.GetActivity(context.Background(), admin, "u-2", 50)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "u-2", entries[0].TargetID)
}

func TestListAccounts(t *testing.T) {
	svc, _, _, admin, _ := adminFixture(t)

	resp, err := svc.ListAccounts(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Accounts, 2)
}
