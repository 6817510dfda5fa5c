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

var trackerClock = func() time.Time {
	return time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
}

func sub(name string, monthly int64, status subscription.Status, cycle subscription.BillingCycle) subscription.Subscription {
	return subscription.Subscription{
		ID:            uuid.New(),
		ServiceName:   name,
		MonthlyAmount: decimal.NewFromInt(monthly),
		Status:        status,
		BillingCycle:  cycle,
	}
}

func TestTracker_FirstRunAllCreated(t *testing.T) {
	current := []subscription.Subscription{
		sub("넷플릭스", 17000, subscription.StatusActive, subscription.CycleMonthly),
		sub("멜론", 7900, subscription.StatusActive, subscription.CycleMonthly),
	}

	tracker := history.NewTracker().WithClock(trackerClock)
	changes := tracker.TrackChanges(nil, current)

	require.Len(t, changes, 2)

	for i, c := range changes {
		assert.Equal(t, history.ChangeCreated, c.ChangeType)
		assert.Equal(t, current[i].ServiceName, c.ServiceName)
		assert.Equal(t, current[i].ID, c.SubscriptionID)
		assert.Empty(t, c.OldValue)
		assert.Equal(t, current[i].ServiceName, c.NewValue)
		assert.Equal(t, "신규 구독 감지", c.Notes)
		assert.Equal(t, trackerClock(), c.ChangeDate)
	}
}

func TestTracker_AmountIncrease(t *testing.T) {
	previous := []subscription.Subscription{
		sub("넷플릭스", 10000, subscription.StatusActive, subscription.CycleMonthly),
	}
	current := []subscription.Subscription{
		sub("넷플릭스", 12000, subscription.StatusActive, subscription.CycleMonthly),
	}

	tracker := history.NewTracker().WithClock(trackerClock)
	changes := tracker.TrackChanges(previous, current)

	require.Len(t, changes, 1)
	c := changes[0]
	assert.Equal(t, history.ChangeAmountChanged, c.ChangeType)
	assert.Equal(t, "₩10,000", c.OldValue)
	assert.Equal(t, "₩12,000", c.NewValue)
	assert.Equal(t, "금액 인상", c.Notes)
}

func TestTracker_AmountDecrease(t *testing.T) {
	previous := []subscription.Subscription{
		sub("멜론", 10900, subscription.StatusActive, subscription.CycleMonthly),
	}
	current := []subscription.Subscription{
		sub("멜론", 7900, subscription.StatusActive, subscription.CycleMonthly),
	}

	tracker := history.NewTracker().WithClock(trackerClock)
	changes := tracker.TrackChanges(previous, current)

	require.Len(t, changes, 1)
	assert.Equal(t, "금액 인하", changes[0].Notes)
}

func TestTracker_StatusAndCycleChanges(t *testing.T) {
	previous := []subscription.Subscription{
		sub("백업서비스", 10000, subscription.StatusActive, subscription.CycleMonthly),
	}
	current := []subscription.Subscription{
		sub("백업서비스", 10000, subscription.StatusPending, subscription.CycleQuarterly),
	}

	tracker := history.NewTracker().WithClock(trackerClock)
	changes := tracker.TrackChanges(previous, current)

	require.Len(t, changes, 2)

	assert.Equal(t, history.ChangeStatusChanged, changes[0].ChangeType)
	assert.Equal(t, "활성", changes[0].OldValue)
	assert.Equal(t, "대기중", changes[0].NewValue)

	assert.Equal(t, history.ChangeCycleChanged, changes[1].ChangeType)
	assert.Equal(t, "월간", changes[1].OldValue)
	assert.Equal(t, "분기", changes[1].NewValue)
}

func TestTracker_Cancelled(t *testing.T) {
	previous := []subscription.Subscription{
		sub("웨이브", 13900, subscription.StatusActive, subscription.CycleMonthly),
	}

	tracker := history.NewTracker().WithClock(trackerClock)
	changes := tracker.TrackChanges(previous, nil)

	require.Len(t, changes, 1)
	c := changes[0]
	assert.Equal(t, history.ChangeCancelled, c.ChangeType)
	assert.Equal(t, "웨이브", c.OldValue)
	assert.Empty(t, c.NewValue)
	assert.Equal(t, "구독 취소 또는 미감지", c.Notes)
	assert.Equal(t, previous[0].ID, c.SubscriptionID)
}

func TestTracker_UnchangedEmitsNothing(t *testing.T) {
	previous := []subscription.Subscription{
		sub("넷플릭스", 17000, subscription.StatusActive, subscription.CycleMonthly),
	}
	current := []subscription.Subscription{
		sub("넷플릭스", 17000, subscription.StatusActive, subscription.CycleMonthly),
	}

	tracker := history.NewTracker().WithClock(trackerClock)
	changes := tracker.TrackChanges(previous, current)

	assert.Empty(t, changes)
}

func TestTracker_MixedRun(t *testing.T) {
	previous := []subscription.Subscription{
		sub("넷플릭스", 10000, subscription.StatusActive, subscription.CycleMonthly),
		sub("웨이브", 13900, subscription.StatusActive, subscription.CycleMonthly),
	}
	current := []subscription.Subscription{
		sub("넷플릭스", 12000, subscription.StatusActive, subscription.CycleMonthly),
		sub("유튜브", 10450, subscription.StatusActive, subscription.CycleMonthly),
	}

	tracker := history.NewTracker().WithClock(trackerClock)
	changes := tracker.TrackChanges(previous, current)

	require.Len(t, changes, 3)
	assert.Equal(t, history.ChangeAmountChanged, changes[0].ChangeType)
	assert.Equal(t, history.ChangeCreated, changes[1].ChangeType)
	assert.Equal(t, "유튜브", changes[1].ServiceName)
	assert.Equal(t, history.ChangeCancelled, changes[2].ChangeType)
	assert.Equal(t, "웨이브", changes[2].ServiceName)
}
