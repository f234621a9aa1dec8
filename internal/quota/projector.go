// internal/quota/projector.go
package quota

import (
	"math"
	"time"

	"assistant-backend/internal/models"
)

// ChartDays is how many trailing daily entries reporting exposes, distinct
// from the storage retention window.
const ChartDays = 7

// ModalityUsage is one modality's share of cumulative consumption.
type ModalityUsage struct {
	Tokens     int64   `json:"tokens"`
	Requests   int64   `json:"requests"`
	Percentage float64 `json:"percentage"`
}

// UsageLimits is the user-facing quota view for the current month.
type UsageLimits struct {
	MonthlyTokenLimit      int64   `json:"monthlyTokenLimit"`
	MonthlyRequestLimit    int64   `json:"monthlyRequestLimit"`
	CurrentMonthTokens     int64   `json:"currentMonthTokens"`
	CurrentMonthRequests   int64   `json:"currentMonthRequests"`
	TokensRemaining        int64   `json:"tokensRemaining"`
	RequestsRemaining      int64   `json:"requestsRemaining"`
	TokenUsagePercentage   float64 `json:"tokenUsagePercentage"`
	RequestUsagePercentage float64 `json:"requestUsagePercentage"`
}

// AdminInfo is the admin-facing slice of the analytics view.
type AdminInfo struct {
	HasUnlimitedUsage bool              `json:"hasUnlimitedUsage"`
	LastAdminAction   time.Time         `json:"lastAdminAction,omitempty"`
	AdminActionCount  int64             `json:"adminActionCount"`
	Permissions       []AdminPermission `json:"permissions"`
}

// AnalyticsView is the full reporting projection for one account. Limits is
// set for user accounts, Admin for admin accounts.
type AnalyticsView struct {
	TotalSpend    float64                  `json:"totalSpend"`
	TotalTokens   int64                    `json:"totalTokens"`
	TotalRequests int64                    `json:"totalRequests"`
	LastUpdated   time.Time                `json:"lastUpdated"`
	Breakdown     map[string]ModalityUsage `json:"breakdown"`
	RecentDaily   []models.DailyUsage      `json:"recentDaily"`
	Limits        *UsageLimits             `json:"limits,omitempty"`
	Admin         *AdminInfo               `json:"admin,omitempty"`
}

// ModalityBreakdown derives each modality's cumulative tokens, requests and
// token percentage. Percentages are 0 when nothing has been consumed.
func ModalityBreakdown(acct *models.Account) map[string]ModalityUsage {
	a := acct.Analytics
	breakdown := make(map[string]ModalityUsage, len(Modalities))
	for _, m := range Modalities {
		tokens := modalityValue(a.Tokens, m)
		breakdown[string(m)] = ModalityUsage{
			Tokens:     tokens,
			Requests:   modalityValue(a.Requests, m),
			Percentage: percentage(tokens, a.TotalTokens),
		}
	}
	return breakdown
}

// LimitsView derives the remaining-quota view for the current month.
func LimitsView(acct *models.Account) UsageLimits {
	s := acct.UserSettings
	a := acct.Analytics
	return UsageLimits{
		MonthlyTokenLimit:      s.MonthlyTokenLimit,
		MonthlyRequestLimit:    s.MonthlyRequestLimit,
		CurrentMonthTokens:     a.CurrentMonthTokens,
		CurrentMonthRequests:   a.CurrentMonthRequests,
		TokensRemaining:        remaining(s.MonthlyTokenLimit, a.CurrentMonthTokens),
		RequestsRemaining:      remaining(s.MonthlyRequestLimit, a.CurrentMonthRequests),
		TokenUsagePercentage:   percentage(a.CurrentMonthTokens, s.MonthlyTokenLimit),
		RequestUsagePercentage: percentage(a.CurrentMonthRequests, s.MonthlyRequestLimit),
	}
}

// RecentDailyUsage returns the most recent ChartDays entries, oldest first.
func RecentDailyUsage(acct *models.Account) []models.DailyUsage {
	usage := acct.DailyUsage
	if len(usage) > ChartDays {
		usage = usage[len(usage)-ChartDays:]
	}
	out := make([]models.DailyUsage, len(usage))
	copy(out, usage)
	return out
}

// Project assembles the complete analytics view without mutating the
// account. Never called on the write path.
func Project(acct *models.Account) AnalyticsView {
	view := AnalyticsView{
		TotalSpend:    acct.Analytics.TotalSpend,
		TotalTokens:   acct.Analytics.TotalTokens,
		TotalRequests: acct.Analytics.TotalRequests,
		LastUpdated:   acct.Analytics.LastUpdated,
		Breakdown:     ModalityBreakdown(acct),
		RecentDaily:   RecentDailyUsage(acct),
	}
	if acct.IsAdmin() {
		s := acct.AdminSettings
		view.Admin = &AdminInfo{
			HasUnlimitedUsage: s.HasUnlimitedUsage,
			LastAdminAction:   s.LastAdminAction,
			AdminActionCount:  s.AdminActionCount,
			Permissions:       ResolvePrivileges(acct).Permissions,
		}
	} else {
		limits := LimitsView(acct)
		view.Limits = &limits
	}
	return view
}

func modalityValue(totals models.ModalityTotals, m Modality) int64 {
	switch m {
	case ModalityVideo:
		return totals.Video
	case ModalityAudio:
		return totals.Audio
	case ModalityDocument:
		return totals.Document
	case ModalityImage:
		return totals.Image
	}
	return 0
}

func remaining(limit, used int64) int64 {
	if used >= limit {
		return 0
	}
	return limit - used
}

// percentage rounds to one decimal and guards the zero denominator.
func percentage(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*1000) / 10
}
