package quota

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistant-backend/internal/models"
)

func TestResolvePrivilegesUserIgnoresStrayAdminFlags(t *testing.T) {
	acct := limitedAccount()
	// Inconsistent write: user-role account with admin flags set in storage.
	acct.AdminSettings = models.AdminSettings{
		CanManageUsers:        true,
		CanAccessLogs:         true,
		HasUnlimitedUsage:     true,
		CanOverrideUserLimits: true,
	}

	priv := ResolvePrivileges(acct)
	assert.False(t, priv.Unlimited)
	assert.False(t, priv.Overridable)
	assert.Empty(t, priv.Permissions)
	assert.False(t, priv.Has(PermManageUsers))
}

func TestResolvePrivilegesAdmin(t *testing.T) {
	acct := limitedAccount()
	acct.Role = models.RoleAdmin
	acct.AdminSettings = models.AdminSettings{
		CanManageUsers:         true,
		CanViewSystemAnalytics: true,
		CanManageBilling:       true,
		CanOverrideUserLimits:  true,
	}

	priv := ResolvePrivileges(acct)
	assert.False(t, priv.Unlimited)
	assert.True(t, priv.Overridable)
	require.Len(t, priv.Permissions, 3)
	assert.True(t, priv.Has(PermManageUsers))
	assert.True(t, priv.Has(PermViewSystemAnalytics))
	assert.True(t, priv.Has(PermManageBilling))
	assert.False(t, priv.Has(PermManageSystemSettings))
	assert.False(t, priv.Has(PermAccessLogs))
}

func TestResolvePrivilegesUnlimited(t *testing.T) {
	acct := limitedAccount()
	acct.Role = models.RoleAdmin
	acct.AdminSettings.HasUnlimitedUsage = true

	assert.True(t, ResolvePrivileges(acct).Unlimited)
}

func TestParseModality(t *testing.T) {
	for _, m := range Modalities {
		parsed, err := ParseModality(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	_, err := ParseModality("text")
	assert.Error(t, err)
}

func TestModalityEnabledMapping(t *testing.T) {
	settings := models.UserSettings{CanUseVideo: true, CanUseDocument: true}

	assert.True(t, ModalityVideo.Enabled(settings))
	assert.False(t, ModalityAudio.Enabled(settings))
	assert.True(t, ModalityDocument.Enabled(settings))
	assert.False(t, ModalityImage.Enabled(settings))
}
