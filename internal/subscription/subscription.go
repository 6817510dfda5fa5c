package subscription

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vnme1/subscription-tracker/internal/transaction"
)

// BillingCycle is the inferred recurring charge interval.
type BillingCycle string

const (
	CycleMonthly    BillingCycle = "MONTHLY"
	CycleQuarterly  BillingCycle = "QUARTERLY"
	CycleSemiAnnual BillingCycle = "SEMI_ANNUAL"
	CycleAnnual     BillingCycle = "ANNUAL"
	CycleUnknown    BillingCycle = "UNKNOWN"
)

// Days returns the canonical period length of the cycle in days.
func (c BillingCycle) Days() int {
	switch c {
	case CycleMonthly:
		return 30
	case CycleQuarterly:
		return 90
	case CycleSemiAnnual:
		return 180
	case CycleAnnual:
		return 365
	}

	return 0
}

// Korean returns the display name used in reports and change events.
func (c BillingCycle) Korean() string {
	switch c {
	case CycleMonthly:
		return "월간"
	case CycleQuarterly:
		return "분기"
	case CycleSemiAnnual:
		return "반기"
	case CycleAnnual:
		return "연간"
	}

	return "미확인"
}

// Status is derived from charge recency; CANCELLED is only ever produced by
// change tracking, never by the detector.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusPending   Status = "PENDING"
	StatusInactive  Status = "INACTIVE"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) Korean() string {
	switch s {
	case StatusActive:
		return "활성"
	case StatusPending:
		return "대기중"
	case StatusInactive:
		return "비활성"
	case StatusCancelled:
		return "취소됨"
	}

	return string(s)
}

// Subscription is an inferred recurring payment. A fresh set is built on
// every detection run; continuity across runs exists only by service name.
type Subscription struct {
	ID                uuid.UUID
	ServiceName       string
	MonthlyAmount     decimal.Decimal // cycle-normalized
	LastAmount        decimal.Decimal // raw average charge
	BillingCycle      BillingCycle
	FirstDetectedDate time.Time
	LastChargeDate    time.Time
	NextChargeDate    *time.Time
	Status            Status
	TransactionCount  int
	TotalSpent        decimal.Decimal

	// Transactions that produced this subscription. Only meaningful during
	// the detection run that built it; not loaded back from the store.
	Transactions []transaction.Transaction
}

// IsActive reports whether the subscription charged within the last 60 days.
func (s *Subscription) IsActive() bool {
	return s.Status == StatusActive
}

// AnnualCost projects the yearly spend from the monthly-equivalent amount.
func (s *Subscription) AnnualCost() decimal.Decimal {
	switch s.BillingCycle {
	case CycleMonthly:
		return s.MonthlyAmount.Mul(decimal.NewFromInt(12))
	case CycleQuarterly:
		return s.MonthlyAmount.Mul(decimal.NewFromInt(4))
	case CycleSemiAnnual:
		return s.MonthlyAmount.Mul(decimal.NewFromInt(2))
	case CycleAnnual:
		return s.MonthlyAmount
	}

	return decimal.Zero
}

// CancellationCandidate reports whether no charge has been seen for more
// than daysThreshold days as of asOf.
func (s *Subscription) CancellationCandidate(asOf time.Time, daysThreshold int) bool {
	if s.LastChargeDate.IsZero() {
		return true
	}

	return asOf.AddDate(0, 0, -daysThreshold).After(s.LastChargeDate)
}

// computeNextChargeDate projects the next charge from the last one. Nil when
// the cycle is unknown or no charge was observed.
func (s *Subscription) computeNextChargeDate() {
	if s.LastChargeDate.IsZero() || s.BillingCycle == CycleUnknown {
		s.NextChargeDate = nil
		return
	}

	next := s.LastChargeDate.AddDate(0, 0, s.BillingCycle.Days())
	s.NextChargeDate = &next
}

// statusFor derives the status from charge recency: <=60 days ACTIVE,
// 61-90 PENDING, >90 INACTIVE.
func statusFor(lastChargeDate, now time.Time) Status {
	days := int(now.Sub(lastChargeDate).Hours() / 24)

	switch {
	case days <= 60:
		return StatusActive
	case days <= 90:
		return StatusPending
	default:
		return StatusInactive
	}
}
