package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccountDefaults(t *testing.T) {
	now := time.Date(2026, time.August, 17, 14, 30, 0, 0, time.UTC)
	acct := NewAccount("u-1", " U1@Example.COM ", "U One", "hash", now)

	assert.Equal(t, RoleUser, acct.Role)
	assert.True(t, acct.IsActive)
	assert.Equal(t, "u1@example.com", acct.Email)
	assert.Equal(t, int64(DefaultMonthlyTokenLimit), acct.UserSettings.MonthlyTokenLimit)
	assert.Equal(t, int64(DefaultMonthlyRequestLimit), acct.UserSettings.MonthlyRequestLimit)
	assert.True(t, acct.UserSettings.CanUseVideo)
	assert.True(t, acct.UserSettings.CanUseAudio)
	assert.True(t, acct.UserSettings.CanUseDocument)
	assert.True(t, acct.UserSettings.CanUseImage)

	// Month tracking starts at the first of the creation month.
	assert.Equal(t, time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), acct.Analytics.CurrentMonthStart)
	assert.NotNil(t, acct.DailyUsage)
	assert.Empty(t, acct.DailyUsage)
}

func TestCloneIsIndependent(t *testing.T) {
	now := time.Date(2026, time.August, 17, 0, 0, 0, 0, time.UTC)
	acct := NewAccount("u-1", "u1@example.com", "U One", "hash", now)
	acct.DailyUsage = append(acct.DailyUsage, DailyUsage{Date: "2026-08-17", Docs: 10, Total: 10})

	cp := acct.Clone()
	cp.Analytics.TotalTokens = 999
	cp.DailyUsage[0].Total = 999
	cp.DailyUsage = append(cp.DailyUsage, DailyUsage{Date: "2026-08-18"})

	assert.Equal(t, int64(0), acct.Analytics.TotalTokens)
	assert.Equal(t, int64(10), acct.DailyUsage[0].Total)
	require.Len(t, acct.DailyUsage, 1)
}

func TestModalityTotalsSum(t *testing.T) {
	totals := ModalityTotals{Video: 1, Audio: 2, Document: 3, Image: 4}
	assert.Equal(t, int64(10), totals.Sum())
}

func TestRegisterRequestValidate(t *testing.T) {
	valid := RegisterRequest{UserID: "u", Email: "a@b.co", Password: "longenough"}
	require.NoError(t, valid.Validate())

	missing := RegisterRequest{Email: "a@b.co", Password: "longenough"}
	assert.Error(t, missing.Validate())

	badEmail := RegisterRequest{UserID: "u", Email: "not-an-email", Password: "longenough"}
	assert.Error(t, badEmail.Validate())
}
