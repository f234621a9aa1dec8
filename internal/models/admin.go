// internal/models/admin.go
package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Response models for admin endpoints
type AdminAccountListResponse struct {
	Message  string    `json:"message"`
	Accounts []Account `json:"accounts"`
	Total    int       `json:"total"`
}

// UpdateUserSettingsRequest carries a full replacement of a user's limits
// and feature flags.
type UpdateUserSettingsRequest struct {
	UserSettings UserSettings `json:"userSettings"`
}

func (r *UpdateUserSettingsRequest) Validate() error {
	if r.UserSettings.MonthlyTokenLimit < 0 {
		return errors.New("monthlyTokenLimit must not be negative")
	}
	if r.UserSettings.MonthlyRequestLimit < 0 {
		return errors.New("monthlyRequestLimit must not be negative")
	}
	return nil
}

// UpdateAdminSettingsRequest replaces the grantable admin flags. Timestamps
// and the action counter are managed server-side.
type UpdateAdminSettingsRequest struct {
	CanManageUsers          bool `json:"canManageUsers"`
	CanViewSystemAnalytics  bool `json:"canViewSystemAnalytics"`
	CanManageSystemSettings bool `json:"canManageSystemSettings"`
	CanAccessLogs           bool `json:"canAccessLogs"`
	CanManageBilling        bool `json:"canManageBilling"`
	HasUnlimitedUsage       bool `json:"hasUnlimitedUsage"`
	CanOverrideUserLimits   bool `json:"canOverrideUserLimits"`
}

type SetActiveRequest struct {
	Active bool `json:"active"`
}

// ActivityLog records one admin action for the audit trail.
type ActivityLog struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"id,omitempty"`
	ActorID     string                 `bson:"actorId" json:"actorId"`
	TargetID    string                 `bson:"targetId,omitempty" json:"targetId,omitempty"`
	Action      string                 `bson:"action" json:"action"`
	Description string                 `bson:"description" json:"description"`
	Timestamp   time.Time              `bson:"timestamp" json:"timestamp"`
	Metadata    map[string]interface{} `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

type ActivityResponse struct {
	Message    string        `json:"message"`
	Activities []ActivityLog `json:"activities"`
}
