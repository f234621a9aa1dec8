// internal/quota/policy.go
package quota

import (
	"fmt"

	"assistant-backend/internal/models"
)

// Decision is the outcome of a quota pre-check. Reason is only set when the
// action is denied and is safe to surface to the end user.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// CanMakeRequest decides whether the account may issue one more request for
// the given modality. Pure: no counters are touched. Callers are expected to
// run this before doing billable work; recording itself is unconditional.
func CanMakeRequest(acct *models.Account, modality Modality) Decision {
	if ResolvePrivileges(acct).Unlimited {
		return allow()
	}
	if !modality.Enabled(acct.UserSettings) {
		return deny(fmt.Sprintf("%s processing is disabled for your account", modality))
	}
	if acct.Analytics.CurrentMonthRequests >= acct.UserSettings.MonthlyRequestLimit {
		return deny("Monthly request limit exceeded")
	}
	return allow()
}

// CanUseTokens decides whether consuming tokenCount more tokens would stay
// within the monthly budget. Reaching the limit exactly is allowed; only
// exceeding it is denied.
func CanUseTokens(acct *models.Account, tokenCount int64) Decision {
	if ResolvePrivileges(acct).Unlimited {
		return allow()
	}
	if acct.Analytics.CurrentMonthTokens+tokenCount > acct.UserSettings.MonthlyTokenLimit {
		return deny("Monthly token limit would be exceeded")
	}
	return allow()
}
