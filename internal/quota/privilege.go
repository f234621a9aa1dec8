// internal/quota/privilege.go
package quota

import "assistant-backend/internal/models"

// AdminPermission names one of the grantable admin capabilities.
type AdminPermission string

const (
	PermManageUsers          AdminPermission = "manage-users"
	PermViewSystemAnalytics  AdminPermission = "view-system-analytics"
	PermManageSystemSettings AdminPermission = "manage-system-settings"
	PermAccessLogs           AdminPermission = "access-logs"
	PermManageBilling        AdminPermission = "manage-billing"
)

// Privileges is the effective capability set resolved from an account's role
// and admin settings.
type Privileges struct {
	Unlimited   bool              `json:"unlimited"`
	Overridable bool              `json:"overridable"`
	Permissions []AdminPermission `json:"permissions"`
}

// Has reports whether the permission was granted.
func (p Privileges) Has(perm AdminPermission) bool {
	for _, granted := range p.Permissions {
		if granted == perm {
			return true
		}
	}
	return false
}

// ResolvePrivileges maps role and admin settings to effective capabilities.
// For non-admin accounts every admin capability resolves to false no matter
// what stray flag values storage holds.
func ResolvePrivileges(acct *models.Account) Privileges {
	if !acct.IsAdmin() {
		return Privileges{Permissions: []AdminPermission{}}
	}

	s := acct.AdminSettings
	perms := make([]AdminPermission, 0, 5)
	if s.CanManageUsers {
		perms = append(perms, PermManageUsers)
	}
	if s.CanViewSystemAnalytics {
		perms = append(perms, PermViewSystemAnalytics)
	}
	if s.CanManageSystemSettings {
		perms = append(perms, PermManageSystemSettings)
	}
	if s.CanAccessLogs {
		perms = append(perms, PermAccessLogs)
	}
	if s.CanManageBilling {
		perms = append(perms, PermManageBilling)
	}

	return Privileges{
		Unlimited:   s.HasUnlimitedUsage,
		Overridable: s.CanOverrideUserLimits,
		Permissions: perms,
	}
}
