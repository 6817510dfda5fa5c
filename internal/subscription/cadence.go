package subscription

import (
	"sort"

	"github.com/vnme1/subscription-tracker/internal/transaction"
)

// classifyCadence infers the billing cycle from the day gaps between
// consecutive charges. Non-positive gaps (same-day duplicates, unsorted
// leftovers) are dropped silently. Only the mean gap is matched against the
// target windows; individual gap regularity is not checked.
//
// Windows widen with the period to absorb calendar drift: 30±v, 90±2v,
// 180±3v, 365±5v. Checks run shortest-period first, so a mean inside two
// windows resolves to the shorter cycle.
func classifyCadence(txs []transaction.Transaction, maxDayVariance int) BillingCycle {
	if len(txs) < 2 {
		return CycleUnknown
	}

	sorted := make([]transaction.Transaction, len(txs))
	copy(sorted, txs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var gaps []int

	for i := 1; i < len(sorted); i++ {
		days := int(sorted[i].Date.Sub(sorted[i-1].Date).Hours() / 24)
		if days > 0 {
			gaps = append(gaps, days)
		}
	}

	if len(gaps) == 0 {
		return CycleUnknown
	}

	sum := 0
	for _, g := range gaps {
		sum += g
	}

	mean := float64(sum) / float64(len(gaps))

	v := float64(maxDayVariance)

	switch {
	case inRange(mean, 30, v):
		return CycleMonthly
	case inRange(mean, 90, 2*v):
		return CycleQuarterly
	case inRange(mean, 180, 3*v):
		return CycleSemiAnnual
	case inRange(mean, 365, 5*v):
		return CycleAnnual
	}

	return CycleUnknown
}

func inRange(value, target, variance float64) bool {
	return value >= target-variance && value <= target+variance
}
