package history

import (
	"time"

	"github.com/vnme1/subscription-tracker/internal/money"
	"github.com/vnme1/subscription-tracker/internal/subscription"
)

// Tracker diffs the current detection run against the previous one and emits
// typed change events. It is pure; persistence is the caller's problem.
type Tracker struct {
	now func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{now: time.Now}
}

// WithClock overrides the event timestamp source.
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

// TrackChanges compares subscription sets by service name. A nil or empty
// previous list (first-ever analysis) marks every current subscription
// CREATED. A service present in both runs can emit up to three independent
// events: amount, status, and cycle.
func (t *Tracker) TrackChanges(previous, current []subscription.Subscription) []SubscriptionChange {
	prevByName := make(map[string]*subscription.Subscription, len(previous))
	for i := range previous {
		prevByName[previous[i].ServiceName] = &previous[i]
	}

	currByName := make(map[string]*subscription.Subscription, len(current))
	for i := range current {
		currByName[current[i].ServiceName] = &current[i]
	}

	changes := make([]SubscriptionChange, 0)

	for i := range current {
		curr := &current[i]

		prev, exists := prevByName[curr.ServiceName]
		if !exists {
			changes = append(changes, t.newChange(curr, ChangeCreated, "", curr.ServiceName, "신규 구독 감지"))
			continue
		}

		changes = append(changes, t.diffPair(prev, curr)...)
	}

	for i := range previous {
		prev := &previous[i]

		if _, exists := currByName[prev.ServiceName]; !exists {
			changes = append(changes, t.newChange(prev, ChangeCancelled, prev.ServiceName, "", "구독 취소 또는 미감지"))
		}
	}

	return changes
}

func (t *Tracker) diffPair(prev, curr *subscription.Subscription) []SubscriptionChange {
	var changes []SubscriptionChange

	if !prev.MonthlyAmount.Equal(curr.MonthlyAmount) {
		note := "금액 인하"
		if curr.MonthlyAmount.GreaterThan(prev.MonthlyAmount) {
			note = "금액 인상"
		}

		changes = append(changes, t.newChange(curr, ChangeAmountChanged,
			money.FormatWon(prev.MonthlyAmount),
			money.FormatWon(curr.MonthlyAmount), note))
	}

	if prev.Status != curr.Status {
		changes = append(changes, t.newChange(curr, ChangeStatusChanged,
			prev.Status.Korean(), curr.Status.Korean(), "구독 상태 변경"))
	}

	if prev.BillingCycle != curr.BillingCycle {
		changes = append(changes, t.newChange(curr, ChangeCycleChanged,
			prev.BillingCycle.Korean(), curr.BillingCycle.Korean(), "결제 주기 변경"))
	}

	return changes
}

func (t *Tracker) newChange(sub *subscription.Subscription, changeType ChangeType, oldValue, newValue, notes string) SubscriptionChange {
	return SubscriptionChange{
		SubscriptionID: sub.ID,
		ServiceName:    sub.ServiceName,
		ChangeType:     changeType,
		OldValue:       oldValue,
		NewValue:       newValue,
		ChangeDate:     t.now(),
		Notes:          notes,
	}
}
