package history

import (
	"time"

	"github.com/google/uuid"
)

// ChangeType classifies one detected delta between two runs.
type ChangeType string

const (
	ChangeCreated       ChangeType = "CREATED"
	ChangeAmountChanged ChangeType = "AMOUNT_CHANGED"
	ChangeStatusChanged ChangeType = "STATUS_CHANGED"
	ChangeCycleChanged  ChangeType = "CYCLE_CHANGED"
	ChangeCancelled     ChangeType = "CANCELLED"
)

func (t ChangeType) Korean() string {
	switch t {
	case ChangeCreated:
		return "신규 구독"
	case ChangeAmountChanged:
		return "금액 변경"
	case ChangeStatusChanged:
		return "상태 변경"
	case ChangeCycleChanged:
		return "주기 변경"
	case ChangeCancelled:
		return "구독 취소"
	}

	return string(t)
}

// SubscriptionChange is one append-only change event. Old/new values are
// pre-formatted display strings; empty means not applicable.
type SubscriptionChange struct {
	ID             int64
	SubscriptionID uuid.UUID
	ServiceName    string
	ChangeType     ChangeType
	OldValue       string
	NewValue       string
	ChangeDate     time.Time
	Notes          string
}
