package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"assistant-backend/internal/models"
	apperrors "assistant-backend/pkg/errors"
)

func authFixture(t *testing.T) (AuthService, *fakeAccountRepo, *fixedClock) {
	t.Helper()
	clock := &fixedClock{now: time.Date(2026, time.August, 12, 8, 0, 0, 0, time.UTC)}
	repo := newFakeAccountRepo()
	svc := NewAuthService(repo, clock, "test-secret", time.Hour, bcrypt.MinCost)
	return svc, repo, clock
}

func TestRegisterCreatesAccountWithDefaults(t *testing.T) {
	svc, repo, _ := authFixture(t)

	resp, err := svc.Register(context.Background(), &models.RegisterRequest{
		UserID:   "u-1",
		Email:    "U1@Example.com",
		Name:     "U One",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, resp.Account.Role)
	assert.True(t, resp.Account.IsActive)

	stored, err := repo.GetByUserID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "u1@example.com", stored.Email)
	assert.Equal(t, int64(models.DefaultMonthlyTokenLimit), stored.UserSettings.MonthlyTokenLimit)
	assert.Equal(t, int64(models.DefaultMonthlyRequestLimit), stored.UserSettings.MonthlyRequestLimit)
	assert.True(t, stored.UserSettings.CanUseVideo)
	assert.True(t, stored.UserSettings.CanUseImage)
	assert.Equal(t, time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), stored.Analytics.CurrentMonthStart)
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _, _ := authFixture(t)
	req := &models.RegisterRequest{UserID: "u-1", Email: "u1@example.com", Password: "hunter2hunter2"}

	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrAccountExists))
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := authFixture(t)

	tests := []struct {
		name string
		req  models.RegisterRequest
	}{
		{name: "missing userId", req: models.RegisterRequest{Email: "a@b.c", Password: "longenough"}},
		{name: "missing email", req: models.RegisterRequest{UserID: "u", Password: "longenough"}},
		{name: "bad email", req: models.RegisterRequest{UserID: "u", Email: "nope", Password: "longenough"}},
		{name: "short password", req: models.RegisterRequest{UserID: "u", Email: "a@b.c", Password: "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), &tt.req)
			require.Error(t, err)
			assert.True(t, apperrors.IsErrorType(err, apperrors.ErrValidation))
		})
	}
}

func TestLoginAndVerify(t *testing.T) {
	svc, _, _ := authFixture(t)
	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		UserID: "u-1", Email: "u1@example.com", Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{
		Email: "u1@example.com", Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, "u-1", resp.UserID)
	assert.Equal(t, models.RoleUser, resp.Role)

	claims, err := svc.VerifyToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := authFixture(t)
	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		UserID: "u-1", Email: "u1@example.com", Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &models.LoginRequest{
		Email: "u1@example.com", Password: "wrong-password",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrUnauthorized))
}

func TestLoginDeactivatedAccount(t *testing.T) {
	svc, repo, _ := authFixture(t)
	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		UserID: "u-1", Email: "u1@example.com", Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	acct, err := repo.GetByUserID(context.Background(), "u-1")
	require.NoError(t, err)
	acct.IsActive = false
	require.NoError(t, repo.Update(context.Background(), acct))

	_, err = svc.Login(context.Background(), &models.LoginRequest{
		Email: "u1@example.com", Password: "hunter2hunter2",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrAccountDisabled))
}

func TestVerifyTokenExpiry(t *testing.T) {
	svc, _, clock := authFixture(t)
	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		UserID: "u-1", Email: "u1@example.com", Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{
		Email: "u1@example.com", Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	clock.now = clock.now.Add(2 * time.Hour)
	_, err = svc.VerifyToken(resp.Token)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrUnauthorized))
}
