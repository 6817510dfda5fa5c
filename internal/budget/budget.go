package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AlertType grades how close the monthly subscription spend is to the budget.
type AlertType string

const (
	AlertSafe     AlertType = "SAFE"
	AlertWarning  AlertType = "WARNING"
	AlertCritical AlertType = "CRITICAL"
	AlertExceeded AlertType = "EXCEEDED"
)

func (a AlertType) Korean() string {
	switch a {
	case AlertSafe:
		return "안전"
	case AlertWarning:
		return "주의"
	case AlertCritical:
		return "위험"
	case AlertExceeded:
		return "초과"
	}

	return string(a)
}

func (a AlertType) Emoji() string {
	switch a {
	case AlertSafe:
		return "🟢"
	case AlertWarning:
		return "🟡"
	case AlertCritical:
		return "🟠"
	case AlertExceeded:
		return "🔴"
	}

	return ""
}

// Alert is one evaluation of spend against a monthly budget. Thresholds are
// percentages of the budget.
type Alert struct {
	ID                uuid.UUID
	MonthlyBudget     decimal.Decimal
	CurrentSpending   decimal.Decimal
	WarningThreshold  decimal.Decimal
	CriticalThreshold decimal.Decimal
	AlertType         AlertType
	CreatedAt         time.Time
}

// Grade classifies a spending level against the budget. A non-positive
// budget always grades SAFE.
func (a *Alert) Grade(spending decimal.Decimal) AlertType {
	if !a.MonthlyBudget.IsPositive() {
		return AlertSafe
	}

	percentage := spending.
		Mul(decimal.NewFromInt(100)).
		DivRound(a.MonthlyBudget, 2)

	switch {
	case percentage.GreaterThanOrEqual(decimal.NewFromInt(100)):
		return AlertExceeded
	case percentage.GreaterThanOrEqual(a.CriticalThreshold):
		return AlertCritical
	case percentage.GreaterThanOrEqual(a.WarningThreshold):
		return AlertWarning
	}

	return AlertSafe
}

// RemainingBudget is budget minus current spending; negative when exceeded.
func (a *Alert) RemainingBudget() decimal.Decimal {
	return a.MonthlyBudget.Sub(a.CurrentSpending)
}

// UsagePercentage is current spending as a percent of the budget.
func (a *Alert) UsagePercentage() float64 {
	if !a.MonthlyBudget.IsPositive() {
		return 0
	}

	percentage, _ := a.CurrentSpending.
		Mul(decimal.NewFromInt(100)).
		DivRound(a.MonthlyBudget, 2).
		Float64()

	return percentage
}
