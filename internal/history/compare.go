package history

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vnme1/subscription-tracker/internal/subscription"
)

// SubscriptionDiff is one per-service line of a snapshot comparison.
// ChangeType is NEW, REMOVED, or CHANGED; nil amounts / empty statuses mean
// that side did not change or does not exist.
type SubscriptionDiff struct {
	ServiceName string
	ChangeType  string
	OldAmount   *decimal.Decimal
	NewAmount   *decimal.Decimal
	OldStatus   string
	NewStatus   string
}

// ComparisonResult is the on-demand diff of two snapshots. Unlike the change
// tracker it folds amount and status deltas into one CHANGED entry and does
// not flag cycle changes separately.
type ComparisonResult struct {
	OldAnalysisDate time.Time
	NewAnalysisDate time.Time

	OldSubscriptionCount  int
	NewSubscriptionCount  int
	SubscriptionCountDiff int

	OldMonthlyTotal           decimal.Decimal
	NewMonthlyTotal           decimal.Decimal
	MonthlyTotalDiff          decimal.Decimal
	MonthlyTotalChangePercent float64

	OldAnnualProjection  decimal.Decimal
	NewAnnualProjection  decimal.Decimal
	AnnualProjectionDiff decimal.Decimal

	NewSubscriptions     []SubscriptionDiff
	RemovedSubscriptions []SubscriptionDiff
	ChangedSubscriptions []SubscriptionDiff
}

// Compare diffs two snapshots. The pair is reordered by analysis date first,
// so callers cannot invert the deltas by passing arguments backwards.
func Compare(older, newer *AnalysisHistory) *ComparisonResult {
	if older.AnalysisDate.After(newer.AnalysisDate) {
		older, newer = newer, older
	}

	result := &ComparisonResult{
		OldAnalysisDate:       older.AnalysisDate,
		NewAnalysisDate:       newer.AnalysisDate,
		OldSubscriptionCount:  older.SubscriptionCount,
		NewSubscriptionCount:  newer.SubscriptionCount,
		SubscriptionCountDiff: newer.SubscriptionCount - older.SubscriptionCount,
		OldMonthlyTotal:       older.MonthlyTotal,
		NewMonthlyTotal:       newer.MonthlyTotal,
		MonthlyTotalDiff:      newer.MonthlyTotal.Sub(older.MonthlyTotal),
		OldAnnualProjection:   older.AnnualProjection,
		NewAnnualProjection:   newer.AnnualProjection,
		AnnualProjectionDiff:  newer.AnnualProjection.Sub(older.AnnualProjection),
		NewSubscriptions:      []SubscriptionDiff{},
		RemovedSubscriptions:  []SubscriptionDiff{},
		ChangedSubscriptions:  []SubscriptionDiff{},
	}

	// Percentage stays 0 when the older total is zero.
	if older.MonthlyTotal.IsPositive() {
		percent, _ := result.MonthlyTotalDiff.
			DivRound(older.MonthlyTotal, 4).
			Mul(decimal.NewFromInt(100)).
			Float64()
		result.MonthlyTotalChangePercent = percent
	}

	compareSubscriptions(older, newer, result)

	return result
}

func compareSubscriptions(older, newer *AnalysisHistory, result *ComparisonResult) {
	oldByName := subsByName(older.Subscriptions)
	newByName := subsByName(newer.Subscriptions)

	for i := range newer.Subscriptions {
		sub := &newer.Subscriptions[i]

		if _, exists := oldByName[sub.ServiceName]; !exists {
			amount := sub.MonthlyAmount
			result.NewSubscriptions = append(result.NewSubscriptions, SubscriptionDiff{
				ServiceName: sub.ServiceName,
				ChangeType:  "NEW",
				NewAmount:   &amount,
				NewStatus:   sub.Status.Korean(),
			})
		}
	}

	for i := range older.Subscriptions {
		sub := &older.Subscriptions[i]

		if _, exists := newByName[sub.ServiceName]; !exists {
			amount := sub.MonthlyAmount
			result.RemovedSubscriptions = append(result.RemovedSubscriptions, SubscriptionDiff{
				ServiceName: sub.ServiceName,
				ChangeType:  "REMOVED",
				OldAmount:   &amount,
				OldStatus:   sub.Status.Korean(),
			})
		}
	}

	for i := range newer.Subscriptions {
		newSub := &newer.Subscriptions[i]

		oldSub, exists := oldByName[newSub.ServiceName]
		if !exists {
			continue
		}

		diff := SubscriptionDiff{ServiceName: newSub.ServiceName}
		changed := false

		if !oldSub.MonthlyAmount.Equal(newSub.MonthlyAmount) {
			oldAmount := oldSub.MonthlyAmount
			newAmount := newSub.MonthlyAmount
			diff.OldAmount = &oldAmount
			diff.NewAmount = &newAmount
			changed = true
		}

		if oldSub.Status != newSub.Status {
			diff.OldStatus = oldSub.Status.Korean()
			diff.NewStatus = newSub.Status.Korean()
			changed = true
		}

		if changed {
			diff.ChangeType = "CHANGED"
			result.ChangedSubscriptions = append(result.ChangedSubscriptions, diff)
		}
	}
}

func subsByName(subs []subscription.Subscription) map[string]*subscription.Subscription {
	byName := make(map[string]*subscription.Subscription, len(subs))
	for i := range subs {
		byName[subs[i].ServiceName] = &subs[i]
	}

	return byName
}
