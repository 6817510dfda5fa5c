package budget_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnme1/subscription-tracker/internal/budget"
	"github.com/vnme1/subscription-tracker/internal/subscription"
)

func sub(name string, monthly int64, status subscription.Status) subscription.Subscription {
	return subscription.Subscription{
		ServiceName:   name,
		MonthlyAmount: decimal.NewFromInt(monthly),
		Status:        status,
	}
}

func TestService_CreateAlert_Grades(t *testing.T) {
	tests := []struct {
		name     string
		budget   int64
		spending int64
		want     budget.AlertType
	}{
		{"Safe", 100000, 50000, budget.AlertSafe},
		{"WarningAt80", 100000, 80000, budget.AlertWarning},
		{"CriticalAt90", 100000, 90000, budget.AlertCritical},
		{"ExceededAt100", 100000, 100000, budget.AlertExceeded},
		{"ExceededOver", 100000, 120000, budget.AlertExceeded},
	}

	svc := budget.NewService()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs := []subscription.Subscription{
				sub("넷플릭스", tt.spending, subscription.StatusActive),
			}

			alert := svc.CreateAlert(decimal.NewFromInt(tt.budget), subs)
			assert.Equal(t, tt.want, alert.AlertType)
		})
	}
}

func TestService_CreateAlert_IgnoresInactive(t *testing.T) {
	svc := budget.NewService()

	subs := []subscription.Subscription{
		sub("넷플릭스", 17000, subscription.StatusActive),
		sub("웨이브", 200000, subscription.StatusInactive),
	}

	alert := svc.CreateAlert(decimal.NewFromInt(100000), subs)
	assert.True(t, decimal.NewFromInt(17000).Equal(alert.CurrentSpending))
	assert.Equal(t, budget.AlertSafe, alert.AlertType)
}

func TestAlert_ZeroBudgetIsSafe(t *testing.T) {
	svc := budget.NewService()

	alert := svc.CreateAlert(decimal.Zero, []subscription.Subscription{
		sub("넷플릭스", 17000, subscription.StatusActive),
	})

	assert.Equal(t, budget.AlertSafe, alert.AlertType)
	assert.Zero(t, alert.UsagePercentage())
}

func TestAlert_RemainingAndUsage(t *testing.T) {
	svc := budget.NewService()

	alert := svc.CreateAlert(decimal.NewFromInt(50000), []subscription.Subscription{
		sub("넷플릭스", 17000, subscription.StatusActive),
	})

	assert.True(t, decimal.NewFromInt(33000).Equal(alert.RemainingBudget()))
	assert.InDelta(t, 34.0, alert.UsagePercentage(), 0.01)
}

func TestService_Predict(t *testing.T) {
	svc := budget.NewService()

	alert := svc.CreateAlert(decimal.NewFromInt(50000), []subscription.Subscription{
		sub("넷플릭스", 30000, subscription.StatusActive),
	})
	require.Equal(t, budget.AlertSafe, alert.AlertType)

	upcoming := []subscription.Subscription{
		sub("멜론", 25000, subscription.StatusActive),
	}

	prediction := svc.Predict(alert, upcoming)
	assert.True(t, decimal.NewFromInt(55000).Equal(prediction.ProjectedSpending))
	assert.Equal(t, budget.AlertSafe, prediction.CurrentStatus)
	assert.Equal(t, budget.AlertExceeded, prediction.ProjectedStatus)
	assert.True(t, prediction.WillExceedBudget)
}

func TestService_Recommend_Reduce(t *testing.T) {
	svc := budget.NewService()

	subs := []subscription.Subscription{
		sub("넷플릭스", 17000, subscription.StatusActive),
		sub("웨이브", 13900, subscription.StatusActive),
	}

	alert := svc.CreateAlert(decimal.NewFromInt(20000), subs)
	rec := svc.Recommend(alert, subs)

	assert.Equal(t, "REDUCE", rec.Type)
	assert.Contains(t, rec.Message, "₩10,900")
	assert.Equal(t, "넷플릭스", rec.TargetService)
	assert.True(t, decimal.NewFromInt(17000).Equal(rec.PotentialSaving))
}

func TestService_Recommend_Maintain(t *testing.T) {
	svc := budget.NewService()

	subs := []subscription.Subscription{
		sub("넷플릭스", 17000, subscription.StatusActive),
	}

	alert := svc.CreateAlert(decimal.NewFromInt(50000), subs)
	rec := svc.Recommend(alert, subs)

	assert.Equal(t, "MAINTAIN", rec.Type)
	assert.Contains(t, rec.Message, "₩33,000")
	assert.Empty(t, rec.TargetService)
}
