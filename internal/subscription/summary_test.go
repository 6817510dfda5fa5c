package subscription_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnme1/subscription-tracker/internal/subscription"
)

func summaryFixture() (subscription.Summary, time.Time) {
	now := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	soon := now.AddDate(0, 0, 3)
	later := now.AddDate(0, 0, 20)

	subs := []subscription.Subscription{
		{
			ServiceName:    "넷플릭스",
			MonthlyAmount:  decimal.NewFromInt(17000),
			BillingCycle:   subscription.CycleMonthly,
			LastChargeDate: now.AddDate(0, 0, -27),
			NextChargeDate: &soon,
			Status:         subscription.StatusActive,
		},
		{
			ServiceName:    "백업서비스",
			MonthlyAmount:  decimal.NewFromInt(10000),
			BillingCycle:   subscription.CycleQuarterly,
			LastChargeDate: now.AddDate(0, 0, -50),
			NextChargeDate: &later,
			Status:         subscription.StatusActive,
		},
		{
			ServiceName:    "멜론",
			MonthlyAmount:  decimal.NewFromInt(7900),
			BillingCycle:   subscription.CycleMonthly,
			LastChargeDate: now.AddDate(0, 0, -100),
			Status:         subscription.StatusInactive,
		},
	}

	return subscription.BuildSummary(subs, now), now
}

func TestBuildSummary_Totals(t *testing.T) {
	summary, now := summaryFixture()

	assert.Equal(t, now, summary.AnalysisDate)
	assert.Equal(t, 3, summary.TotalSubscriptions)
	assert.Equal(t, 2, summary.ActiveSubscriptions)

	// Only ACTIVE subscriptions count toward the totals.
	assert.True(t, decimal.NewFromInt(27000).Equal(summary.MonthlyTotal))
	assert.True(t, decimal.NewFromInt(244000).Equal(summary.AnnualProjection))
}

func TestBuildSummary_CancellationCandidates(t *testing.T) {
	summary, _ := summaryFixture()

	require.Len(t, summary.CancellationCandidates, 1)
	assert.Equal(t, "멜론", summary.CancellationCandidates[0].ServiceName)
}

func TestBuildSummary_UpcomingPayments(t *testing.T) {
	summary, _ := summaryFixture()

	require.Len(t, summary.UpcomingPayments, 1)
	assert.Equal(t, "넷플릭스", summary.UpcomingPayments[0].ServiceName)
}

func TestBuildSummary_Empty(t *testing.T) {
	now := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	summary := subscription.BuildSummary(nil, now)

	assert.Zero(t, summary.TotalSubscriptions)
	assert.Zero(t, summary.ActiveSubscriptions)
	assert.True(t, summary.MonthlyTotal.IsZero())
	assert.True(t, summary.AnnualProjection.IsZero())
}

func TestSummary_TopExpensive(t *testing.T) {
	summary, _ := summaryFixture()

	top := summary.TopExpensive(1)
	require.Len(t, top, 1)
	assert.Equal(t, "넷플릭스", top[0].ServiceName)

	// Inactive subscriptions never rank, so asking for more only returns
	// the active ones.
	top = summary.TopExpensive(10)
	assert.Len(t, top, 2)
}

func TestSummary_GroupByCycle(t *testing.T) {
	summary, _ := summaryFixture()

	buckets := summary.GroupByCycle()
	require.Len(t, buckets, 2)
	assert.Len(t, buckets[subscription.CycleMonthly], 1)
	assert.Len(t, buckets[subscription.CycleQuarterly], 1)
}
