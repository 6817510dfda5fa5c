package subscription

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// CancellationStaleDays is the default no-charge window after which a
// subscription is flagged for review.
const CancellationStaleDays = 60

// Summary aggregates one detection run for reporting and snapshotting.
// Totals cover ACTIVE subscriptions only.
type Summary struct {
	AnalysisDate           time.Time
	TotalSubscriptions     int
	ActiveSubscriptions    int
	MonthlyTotal           decimal.Decimal
	AnnualProjection       decimal.Decimal
	Subscriptions          []Subscription
	CancellationCandidates []Subscription
	UpcomingPayments       []Subscription // next charge within 7 days
}

// BuildSummary computes the aggregate view of a detection run as of now.
func BuildSummary(subs []Subscription, now time.Time) Summary {
	summary := Summary{
		AnalysisDate:     now,
		Subscriptions:    subs,
		MonthlyTotal:     decimal.Zero,
		AnnualProjection: decimal.Zero,
	}

	weekLater := now.AddDate(0, 0, 7)

	for i := range subs {
		sub := &subs[i]

		summary.TotalSubscriptions++

		if sub.CancellationCandidate(now, CancellationStaleDays) {
			summary.CancellationCandidates = append(summary.CancellationCandidates, *sub)
		}

		if !sub.IsActive() {
			continue
		}

		summary.ActiveSubscriptions++
		summary.MonthlyTotal = summary.MonthlyTotal.Add(sub.MonthlyAmount)
		summary.AnnualProjection = summary.AnnualProjection.Add(sub.AnnualCost())

		if sub.NextChargeDate != nil && !sub.NextChargeDate.After(weekLater) {
			summary.UpcomingPayments = append(summary.UpcomingPayments, *sub)
		}
	}

	return summary
}

// TopExpensive returns the n most expensive active subscriptions by monthly
// amount, highest first.
func (s Summary) TopExpensive(n int) []Subscription {
	active := make([]Subscription, 0, len(s.Subscriptions))

	for _, sub := range s.Subscriptions {
		if sub.IsActive() {
			active = append(active, sub)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].MonthlyAmount.GreaterThan(active[j].MonthlyAmount)
	})

	if len(active) > n {
		active = active[:n]
	}

	return active
}

// GroupByCycle buckets active subscriptions by billing cycle.
func (s Summary) GroupByCycle() map[BillingCycle][]Subscription {
	buckets := make(map[BillingCycle][]Subscription)

	for _, sub := range s.Subscriptions {
		if sub.IsActive() {
			buckets[sub.BillingCycle] = append(buckets[sub.BillingCycle], sub)
		}
	}

	return buckets
}
