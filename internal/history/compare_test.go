package history_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnme1/subscription-tracker/internal/history"
	"github.com/vnme1/subscription-tracker/internal/subscription"
)

func snapshot(analysisDate time.Time, monthlyTotal int64, subs ...subscription.Subscription) *history.AnalysisHistory {
	return &history.AnalysisHistory{
		ID:                uuid.New(),
		AnalysisDate:      analysisDate,
		SubscriptionCount: len(subs),
		MonthlyTotal:      decimal.NewFromInt(monthlyTotal),
		AnnualProjection:  decimal.NewFromInt(monthlyTotal * 12),
		Subscriptions:     subs,
	}
}

func TestCompare_Deltas(t *testing.T) {
	older := snapshot(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 20000,
		sub("넷플릭스", 10000, subscription.StatusActive, subscription.CycleMonthly),
		sub("멜론", 10000, subscription.StatusActive, subscription.CycleMonthly),
	)
	newer := snapshot(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), 25000,
		sub("넷플릭스", 12000, subscription.StatusActive, subscription.CycleMonthly),
		sub("멜론", 10000, subscription.StatusActive, subscription.CycleMonthly),
		sub("유튜브", 3000, subscription.StatusActive, subscription.CycleMonthly),
	)

	result := history.Compare(older, newer)

	assert.Equal(t, older.AnalysisDate, result.OldAnalysisDate)
	assert.Equal(t, newer.AnalysisDate, result.NewAnalysisDate)
	assert.Equal(t, 2, result.OldSubscriptionCount)
	assert.Equal(t, 3, result.NewSubscriptionCount)
	assert.Equal(t, 1, result.SubscriptionCountDiff)
	assert.True(t, decimal.NewFromInt(5000).Equal(result.MonthlyTotalDiff))
	assert.InDelta(t, 25.0, result.MonthlyTotalChangePercent, 0.001)
	assert.True(t, decimal.NewFromInt(60000).Equal(result.AnnualProjectionDiff))

	require.Len(t, result.NewSubscriptions, 1)
	assert.Equal(t, "유튜브", result.NewSubscriptions[0].ServiceName)
	assert.Equal(t, "NEW", result.NewSubscriptions[0].ChangeType)

	assert.Empty(t, result.RemovedSubscriptions)

	require.Len(t, result.ChangedSubscriptions, 1)
	changed := result.ChangedSubscriptions[0]
	assert.Equal(t, "넷플릭스", changed.ServiceName)
	assert.Equal(t, "CHANGED", changed.ChangeType)
	require.NotNil(t, changed.OldAmount)
	require.NotNil(t, changed.NewAmount)
	assert.True(t, decimal.NewFromInt(10000).Equal(*changed.OldAmount))
	assert.True(t, decimal.NewFromInt(12000).Equal(*changed.NewAmount))
	assert.Empty(t, changed.OldStatus)
}

func TestCompare_ReordersByDate(t *testing.T) {
	older := snapshot(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 20000)
	newer := snapshot(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), 25000)

	// Passing the arguments backwards must not invert the deltas.
	result := history.Compare(newer, older)

	assert.Equal(t, older.AnalysisDate, result.OldAnalysisDate)
	assert.Equal(t, newer.AnalysisDate, result.NewAnalysisDate)
	assert.True(t, decimal.NewFromInt(5000).Equal(result.MonthlyTotalDiff))
}

func TestCompare_ZeroOlderTotal(t *testing.T) {
	older := snapshot(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 0)
	newer := snapshot(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), 25000,
		sub("넷플릭스", 25000, subscription.StatusActive, subscription.CycleMonthly),
	)

	result := history.Compare(older, newer)

	assert.Zero(t, result.MonthlyTotalChangePercent)
	assert.True(t, decimal.NewFromInt(25000).Equal(result.MonthlyTotalDiff))
}

func TestCompare_RemovedSubscription(t *testing.T) {
	older := snapshot(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 13900,
		sub("웨이브", 13900, subscription.StatusActive, subscription.CycleMonthly),
	)
	newer := snapshot(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), 0)

	result := history.Compare(older, newer)

	require.Len(t, result.RemovedSubscriptions, 1)
	removed := result.RemovedSubscriptions[0]
	assert.Equal(t, "웨이브", removed.ServiceName)
	assert.Equal(t, "REMOVED", removed.ChangeType)
	require.NotNil(t, removed.OldAmount)
	assert.True(t, decimal.NewFromInt(13900).Equal(*removed.OldAmount))
	assert.Equal(t, "활성", removed.OldStatus)
}

func TestCompare_StatusOnlyChange(t *testing.T) {
	older := snapshot(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 7900,
		sub("멜론", 7900, subscription.StatusActive, subscription.CycleMonthly),
	)
	newer := snapshot(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), 0,
		sub("멜론", 7900, subscription.StatusInactive, subscription.CycleMonthly),
	)

	result := history.Compare(older, newer)

	require.Len(t, result.ChangedSubscriptions, 1)
	changed := result.ChangedSubscriptions[0]
	assert.Nil(t, changed.OldAmount)
	assert.Equal(t, "활성", changed.OldStatus)
	assert.Equal(t, "비활성", changed.NewStatus)
}
