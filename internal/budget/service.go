package budget

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vnme1/subscription-tracker/internal/money"
	"github.com/vnme1/subscription-tracker/internal/subscription"
)

var (
	defaultWarningThreshold  = decimal.NewFromInt(80)
	defaultCriticalThreshold = decimal.NewFromInt(90)
)

// Prediction projects where the spend lands once upcoming payments hit.
type Prediction struct {
	CurrentSpending    decimal.Decimal
	ProjectedSpending  decimal.Decimal
	AdditionalSpending decimal.Decimal
	CurrentStatus      AlertType
	ProjectedStatus    AlertType
	WillExceedBudget   bool
}

// Recommendation is the budget advice for one evaluation: REDUCE names the
// most expensive active subscription as the cut target, MAINTAIN is a pat on
// the back.
type Recommendation struct {
	Type            string
	Message         string
	TargetService   string
	PotentialSaving decimal.Decimal
}

// Service evaluates subscription spend against a monthly budget. Stateless;
// budgets are supplied per call.
type Service struct {
	now func() time.Time
}

func NewService() *Service {
	return &Service{now: time.Now}
}

// WithClock overrides the alert timestamp source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateAlert grades the current active spend against monthlyBudget using the
// default 80/90 thresholds.
func (s *Service) CreateAlert(monthlyBudget decimal.Decimal, subs []subscription.Subscription) *Alert {
	spending := monthlySpending(subs)

	alert := &Alert{
		ID:                uuid.New(),
		MonthlyBudget:     monthlyBudget,
		CurrentSpending:   spending,
		WarningThreshold:  defaultWarningThreshold,
		CriticalThreshold: defaultCriticalThreshold,
		CreatedAt:         s.now(),
	}
	alert.AlertType = alert.Grade(spending)

	slog.Info("budget alert created",
		"budget", monthlyBudget.String(),
		"spending", spending.String(),
		"status", alert.AlertType,
	)

	return alert
}

// Predict adds the upcoming payments on top of the current spend and regrades.
func (s *Service) Predict(alert *Alert, upcoming []subscription.Subscription) Prediction {
	additional := decimal.Zero
	for _, sub := range upcoming {
		additional = additional.Add(sub.MonthlyAmount)
	}

	projected := alert.CurrentSpending.Add(additional)
	projectedStatus := alert.Grade(projected)

	return Prediction{
		CurrentSpending:    alert.CurrentSpending,
		ProjectedSpending:  projected,
		AdditionalSpending: additional,
		CurrentStatus:      alert.AlertType,
		ProjectedStatus:    projectedStatus,
		WillExceedBudget:   projectedStatus == AlertExceeded,
	}
}

// Recommend suggests the cheapest way back under budget.
func (s *Service) Recommend(alert *Alert, subs []subscription.Subscription) Recommendation {
	deficit := alert.CurrentSpending.Sub(alert.MonthlyBudget)

	if !deficit.IsPositive() {
		return Recommendation{
			Type:    "MAINTAIN",
			Message: fmt.Sprintf("예산 내에서 잘 관리하고 있습니다. 여유: %s", money.FormatWon(alert.RemainingBudget())),
		}
	}

	rec := Recommendation{
		Type:    "REDUCE",
		Message: fmt.Sprintf("예산을 %s 초과했습니다. 구독 정리가 필요합니다.", money.FormatWon(deficit)),
	}

	var expensive *subscription.Subscription

	for i := range subs {
		if !subs[i].IsActive() {
			continue
		}

		if expensive == nil || subs[i].MonthlyAmount.GreaterThan(expensive.MonthlyAmount) {
			expensive = &subs[i]
		}
	}

	if expensive != nil {
		rec.TargetService = expensive.ServiceName
		rec.PotentialSaving = expensive.MonthlyAmount
	}

	return rec
}

func monthlySpending(subs []subscription.Subscription) decimal.Decimal {
	total := decimal.Zero

	for _, sub := range subs {
		if sub.IsActive() {
			total = total.Add(sub.MonthlyAmount)
		}
	}

	return total
}
