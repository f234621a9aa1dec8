// internal/quota/ledger.go
package quota

import (
	"errors"
	"time"

	"assistant-backend/internal/models"
)

// Ledger invariant violations. These mean a caller handed the engine corrupt
// input; nothing is mutated when they are returned.
var (
	ErrNegativeTokens  = errors.New("token count must not be negative")
	ErrNegativeCost    = errors.New("cost must not be negative")
	ErrUnknownModality = errors.New("unknown modality")
)

// DateKey formats a moment as the calendar-day bucket key.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// RolloverIfNeeded resets the month counters when now has crossed into a new
// calendar month since currentMonthStart. Idempotent within a month; a gap
// of several months collapses straight to the current one. Must run before
// any addition to the month counters.
func RolloverIfNeeded(analytics *models.UsageAnalytics, now time.Time) bool {
	start := analytics.CurrentMonthStart
	if start.Year() == now.Year() && start.Month() == now.Month() {
		return false
	}
	analytics.CurrentMonthTokens = 0
	analytics.CurrentMonthRequests = 0
	analytics.CurrentMonthStart = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return true
}

// Apply records one consumption event against the account in memory: the
// cumulative totals, the per-modality breakdown, the month counters (after
// the rollover guard) and the bounded daily history. It is the sole mutator
// of analytics and dailyUsage. Persisting the mutated account is the
// caller's job; Apply either mutates fully or not at all.
func Apply(acct *models.Account, modality Modality, tokens int64, cost float64, now time.Time) error {
	if tokens < 0 {
		return ErrNegativeTokens
	}
	if cost < 0 {
		return ErrNegativeCost
	}
	if _, err := ParseModality(string(modality)); err != nil {
		return ErrUnknownModality
	}

	RolloverIfNeeded(&acct.Analytics, now)

	a := &acct.Analytics
	a.TotalSpend += cost
	a.TotalTokens += tokens
	a.TotalRequests++
	a.CurrentMonthTokens += tokens
	a.CurrentMonthRequests++
	addModality(&a.Tokens, modality, tokens)
	addModality(&a.Requests, modality, 1)
	a.LastUpdated = now

	bucketDaily(acct, modality, tokens, DateKey(now))
	acct.UpdatedAt = now
	return nil
}

func addModality(totals *models.ModalityTotals, modality Modality, n int64) {
	switch modality {
	case ModalityVideo:
		totals.Video += n
	case ModalityAudio:
		totals.Audio += n
	case ModalityDocument:
		totals.Document += n
	case ModalityImage:
		totals.Image += n
	}
}

// bucketDaily upserts today's entry and trims the history to the retention
// window, oldest first. Entries stay in chronological insertion order, so
// one bucket per distinct date.
func bucketDaily(acct *models.Account, modality Modality, tokens int64, date string) {
	var entry *models.DailyUsage
	for i := range acct.DailyUsage {
		if acct.DailyUsage[i].Date == date {
			entry = &acct.DailyUsage[i]
			break
		}
	}
	if entry == nil {
		acct.DailyUsage = append(acct.DailyUsage, models.DailyUsage{Date: date})
		entry = &acct.DailyUsage[len(acct.DailyUsage)-1]
	}

	switch modality {
	case ModalityVideo:
		entry.Video += tokens
	case ModalityAudio:
		entry.Audio += tokens
	case ModalityDocument:
		entry.Docs += tokens
	case ModalityImage:
		entry.Image += tokens
	}
	entry.Total += tokens

	if excess := len(acct.DailyUsage) - models.DailyUsageRetention; excess > 0 {
		acct.DailyUsage = acct.DailyUsage[excess:]
	}
}
