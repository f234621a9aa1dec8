// internal/models/account.go
package models

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Default monthly limits applied at registration
const (
	DefaultMonthlyTokenLimit   = 100000
	DefaultMonthlyRequestLimit = 1000
)

// DailyUsageRetention bounds the dailyUsage history kept on the account.
const DailyUsageRetention = 30

// Account is the aggregate root: one document per tenant, mutated as a whole
// under an optimistic revision check.
type Account struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID        string             `bson:"userId" json:"userId"`
	Email         string             `bson:"email" json:"email"`
	Name          string             `bson:"name" json:"name"`
	PasswordHash  string             `bson:"passwordHash" json:"-"`
	Role          string             `bson:"role" json:"role"`
	IsActive      bool               `bson:"isActive" json:"isActive"`
	Revision      int64              `bson:"revision" json:"-"`
	UserSettings  UserSettings       `bson:"userSettings" json:"userSettings"`
	AdminSettings AdminSettings      `bson:"adminSettings" json:"adminSettings,omitempty"`
	Analytics     UsageAnalytics     `bson:"analytics" json:"analytics"`
	DailyUsage    []DailyUsage       `bson:"dailyUsage" json:"dailyUsage"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserSettings holds the per-account limits and feature flags. Theme and
// Language are UI preferences carried for the frontend, not consumed by the
// quota engine.
type UserSettings struct {
	MonthlyTokenLimit   int64  `bson:"monthlyTokenLimit" json:"monthlyTokenLimit"`
	MonthlyRequestLimit int64  `bson:"monthlyRequestLimit" json:"monthlyRequestLimit"`
	CanUseVideo         bool   `bson:"canUseVideo" json:"canUseVideo"`
	CanUseAudio         bool   `bson:"canUseAudio" json:"canUseAudio"`
	CanUseDocument      bool   `bson:"canUseDocument" json:"canUseDocument"`
	CanUseImage         bool   `bson:"canUseImage" json:"canUseImage"`
	Theme               string `bson:"theme,omitempty" json:"theme,omitempty"`
	Language            string `bson:"language,omitempty" json:"language,omitempty"`
}

// AdminSettings is only meaningful when Role == RoleAdmin; for regular users
// the fields are inert regardless of what storage holds.
type AdminSettings struct {
	CanManageUsers          bool      `bson:"canManageUsers" json:"canManageUsers"`
	CanViewSystemAnalytics  bool      `bson:"canViewSystemAnalytics" json:"canViewSystemAnalytics"`
	CanManageSystemSettings bool      `bson:"canManageSystemSettings" json:"canManageSystemSettings"`
	CanAccessLogs           bool      `bson:"canAccessLogs" json:"canAccessLogs"`
	CanManageBilling        bool      `bson:"canManageBilling" json:"canManageBilling"`
	HasUnlimitedUsage       bool      `bson:"hasUnlimitedUsage" json:"hasUnlimitedUsage"`
	CanOverrideUserLimits   bool      `bson:"canOverrideUserLimits" json:"canOverrideUserLimits"`
	LastAdminAction         time.Time `bson:"lastAdminAction,omitempty" json:"lastAdminAction,omitempty"`
	AdminActionCount        int64     `bson:"adminActionCount" json:"adminActionCount"`
}

// UsageAnalytics carries both the forever-accumulating totals and the
// current-month counters that reset on rollover.
type UsageAnalytics struct {
	TotalSpend           float64        `bson:"totalSpend" json:"totalSpend"`
	TotalTokens          int64          `bson:"totalTokens" json:"totalTokens"`
	TotalRequests        int64          `bson:"totalRequests" json:"totalRequests"`
	CurrentMonthTokens   int64          `bson:"currentMonthTokens" json:"currentMonthTokens"`
	CurrentMonthRequests int64          `bson:"currentMonthRequests" json:"currentMonthRequests"`
	CurrentMonthStart    time.Time      `bson:"currentMonthStart" json:"currentMonthStart"`
	Tokens               ModalityTotals `bson:"tokens" json:"tokens"`
	Requests             ModalityTotals `bson:"requests" json:"requests"`
	LastUpdated          time.Time      `bson:"lastUpdated" json:"lastUpdated"`
}

// ModalityTotals is the cumulative per-modality breakdown.
type ModalityTotals struct {
	Video    int64 `bson:"video" json:"video"`
	Audio    int64 `bson:"audio" json:"audio"`
	Document int64 `bson:"document" json:"document"`
	Image    int64 `bson:"image" json:"image"`
}

// Sum returns the total across all four modalities.
func (m ModalityTotals) Sum() int64 {
	return m.Video + m.Audio + m.Document + m.Image
}

// DailyUsage is one calendar day's token consumption. Date is a YYYY-MM-DD
// string so daily bucketing is stable across time zones. The document
// modality is stored under "docs".
type DailyUsage struct {
	Date  string `bson:"date" json:"date"`
	Video int64  `bson:"video" json:"video"`
	Audio int64  `bson:"audio" json:"audio"`
	Docs  int64  `bson:"docs" json:"docs"`
	Image int64  `bson:"image" json:"image"`
	Total int64  `bson:"total" json:"total"`
}

// NewAccount builds an account with registration defaults: every modality
// enabled, standard monthly limits, month tracking anchored at the first of
// the current month.
func NewAccount(userID, email, name, passwordHash string, now time.Time) *Account {
	return &Account{
		UserID:       userID,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Name:         name,
		PasswordHash: passwordHash,
		Role:         RoleUser,
		IsActive:     true,
		UserSettings: UserSettings{
			MonthlyTokenLimit:   DefaultMonthlyTokenLimit,
			MonthlyRequestLimit: DefaultMonthlyRequestLimit,
			CanUseVideo:         true,
			CanUseAudio:         true,
			CanUseDocument:      true,
			CanUseImage:         true,
		},
		Analytics: UsageAnalytics{
			CurrentMonthStart: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
			LastUpdated:       now,
		},
		DailyUsage: []DailyUsage{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Clone returns a deep copy. RecordUsage mutates a clone so that nothing is
// observable unless the subsequent persist succeeds.
func (a *Account) Clone() *Account {
	cp := *a
	cp.DailyUsage = make([]DailyUsage, len(a.DailyUsage))
	copy(cp.DailyUsage, a.DailyUsage)
	return &cp
}

// IsAdmin reports whether the account holds the admin role.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

type RegisterRequest struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (r *RegisterRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return errors.New("userId is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	if !isValidEmail(r.Email) {
		return errors.New("invalid email format")
	}
	if len(r.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

func isValidEmail(email string) bool {
	// Basic email validation - in production, use a proper validation library
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}
