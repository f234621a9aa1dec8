package quota

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistant-backend/internal/models"
)

func TestModalityBreakdownPercentages(t *testing.T) {
	acct := limitedAccount()
	acct.Analytics.TotalTokens = 300
	acct.Analytics.Tokens = models.ModalityTotals{Video: 100, Audio: 100, Document: 100}
	acct.Analytics.Requests = models.ModalityTotals{Video: 1, Audio: 1, Document: 1}

	breakdown := ModalityBreakdown(acct)
	require.Len(t, breakdown, 4)

	// One-decimal rounding: 100/300 -> 33.3.
	assert.Equal(t, 33.3, breakdown["video"].Percentage)
	assert.Equal(t, 33.3, breakdown["audio"].Percentage)
	assert.Equal(t, 33.3, breakdown["document"].Percentage)
	assert.Equal(t, 0.0, breakdown["image"].Percentage)
	assert.Equal(t, int64(100), breakdown["video"].Tokens)
	assert.Equal(t, int64(1), breakdown["video"].Requests)
}

func TestModalityBreakdownZeroTotals(t *testing.T) {
	acct := limitedAccount()

	for modality, usage := range ModalityBreakdown(acct) {
		assert.Equal(t, 0.0, usage.Percentage, modality)
	}
}

func TestLimitsViewRemainingAndPercentages(t *testing.T) {
	acct := limitedAccount()
	acct.Analytics.CurrentMonthTokens = 250
	acct.Analytics.CurrentMonthRequests = 3

	limits := LimitsView(acct)
	assert.Equal(t, int64(750), limits.TokensRemaining)
	assert.Equal(t, int64(7), limits.RequestsRemaining)
	assert.Equal(t, 25.0, limits.TokenUsagePercentage)
	assert.Equal(t, 30.0, limits.RequestUsagePercentage)
}

func TestLimitsViewRemainingClampedAtZero(t *testing.T) {
	acct := limitedAccount()
	// Over-limit state is possible because recording is unconditional.
	acct.Analytics.CurrentMonthTokens = 1200
	acct.Analytics.CurrentMonthRequests = 15

	limits := LimitsView(acct)
	assert.Equal(t, int64(0), limits.TokensRemaining)
	assert.Equal(t, int64(0), limits.RequestsRemaining)
	assert.Equal(t, 120.0, limits.TokenUsagePercentage)
}

func TestRecentDailyUsageWindow(t *testing.T) {
	acct := limitedAccount()
	for day := 1; day <= 10; day++ {
		acct.DailyUsage = append(acct.DailyUsage, models.DailyUsage{
			Date:  fmt.Sprintf("2026-04-%02d", day),
			Total: int64(day),
		})
	}

	recent := RecentDailyUsage(acct)
	require.Len(t, recent, ChartDays)
	assert.Equal(t, "2026-04-04", recent[0].Date)
	assert.Equal(t, "2026-04-10", recent[len(recent)-1].Date)

	// The projection is a copy, not an alias into account state.
	recent[0].Total = 999
	assert.Equal(t, int64(4), acct.DailyUsage[3].Total)
}

func TestProjectUserView(t *testing.T) {
	now := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	acct := models.NewAccount("u-1", "u1@example.com", "U One", "x", now)
	require.NoError(t, Apply(acct, ModalityImage, 400, 0.04, now))

	view := Project(acct)
	require.NotNil(t, view.Limits)
	assert.Nil(t, view.Admin)
	assert.Equal(t, int64(400), view.TotalTokens)
	assert.Equal(t, int64(1), view.TotalRequests)
	assert.InDelta(t, 0.04, view.TotalSpend, 1e-9)
	assert.Equal(t, 100.0, view.Breakdown["image"].Percentage)
	require.Len(t, view.RecentDaily, 1)
	assert.Equal(t, int64(400), view.RecentDaily[0].Image)
}

func TestProjectAdminView(t *testing.T) {
	now := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	acct := models.NewAccount("a-1", "admin@example.com", "Admin", "x", now)
	acct.Role = models.RoleAdmin
	acct.AdminSettings.HasUnlimitedUsage = true
	acct.AdminSettings.CanManageUsers = true
	acct.AdminSettings.AdminActionCount = 12

	view := Project(acct)
	require.NotNil(t, view.Admin)
	assert.Nil(t, view.Limits)
	assert.True(t, view.Admin.HasUnlimitedUsage)
	assert.Equal(t, int64(12), view.Admin.AdminActionCount)
	assert.Equal(t, []AdminPermission{PermManageUsers}, view.Admin.Permissions)
}

func TestProjectDoesNotMutate(t *testing.T) {
	now := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	acct := models.NewAccount("u-1", "u1@example.com", "U One", "x", now)
	require.NoError(t, Apply(acct, ModalityAudio, 10, 0, now))
	before := acct.Clone()

	_ = Project(acct)

	assert.Equal(t, before.Analytics, acct.Analytics)
	assert.Equal(t, before.DailyUsage, acct.DailyUsage)
}
