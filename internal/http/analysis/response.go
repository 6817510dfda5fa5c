package analysis

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vnme1/subscription-tracker/internal/category"
	"github.com/vnme1/subscription-tracker/internal/history"
	"github.com/vnme1/subscription-tracker/internal/subscription"
)

type subscriptionResponse struct {
	ID                uuid.UUID       `json:"id"`
	ServiceName       string          `json:"service_name"`
	MonthlyAmount     decimal.Decimal `json:"monthly_amount"`
	LastAmount        decimal.Decimal `json:"last_amount"`
	BillingCycle      string          `json:"billing_cycle"`
	Status            string          `json:"status"`
	FirstDetectedDate time.Time       `json:"first_detected_date"`
	LastChargeDate    time.Time       `json:"last_charge_date"`
	NextChargeDate    *time.Time      `json:"next_charge_date,omitempty"`
	TransactionCount  int             `json:"transaction_count"`
	TotalSpent        decimal.Decimal `json:"total_spent"`
	AnnualCost        decimal.Decimal `json:"annual_cost"`
}

type historyResponse struct {
	ID                uuid.UUID              `json:"id"`
	AnalysisDate      time.Time              `json:"analysis_date"`
	FileName          string                 `json:"file_name"`
	TransactionCount  int                    `json:"transaction_count"`
	SubscriptionCount int                    `json:"subscription_count"`
	MonthlyTotal      decimal.Decimal        `json:"monthly_total"`
	AnnualProjection  decimal.Decimal        `json:"annual_projection"`
	Subscriptions     []subscriptionResponse `json:"subscriptions"`
}

type diffResponse struct {
	ServiceName string           `json:"service_name"`
	ChangeType  string           `json:"change_type"`
	OldAmount   *decimal.Decimal `json:"old_amount,omitempty"`
	NewAmount   *decimal.Decimal `json:"new_amount,omitempty"`
	OldStatus   string           `json:"old_status,omitempty"`
	NewStatus   string           `json:"new_status,omitempty"`
}

type comparisonResponse struct {
	OldAnalysisDate time.Time `json:"old_analysis_date"`
	NewAnalysisDate time.Time `json:"new_analysis_date"`

	OldSubscriptionCount  int `json:"old_subscription_count"`
	NewSubscriptionCount  int `json:"new_subscription_count"`
	SubscriptionCountDiff int `json:"subscription_count_diff"`

	OldMonthlyTotal           decimal.Decimal `json:"old_monthly_total"`
	NewMonthlyTotal           decimal.Decimal `json:"new_monthly_total"`
	MonthlyTotalDiff          decimal.Decimal `json:"monthly_total_diff"`
	MonthlyTotalChangePercent float64         `json:"monthly_total_change_percent"`

	OldAnnualProjection  decimal.Decimal `json:"old_annual_projection"`
	NewAnnualProjection  decimal.Decimal `json:"new_annual_projection"`
	AnnualProjectionDiff decimal.Decimal `json:"annual_projection_diff"`

	NewSubscriptions     []diffResponse `json:"new_subscriptions"`
	RemovedSubscriptions []diffResponse `json:"removed_subscriptions"`
	ChangedSubscriptions []diffResponse `json:"changed_subscriptions"`
}

type categoryStatsResponse struct {
	Category    string          `json:"category"`
	DisplayName string          `json:"display_name"`
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Percentage  float64         `json:"percentage"`
}

type budgetResponse struct {
	MonthlyBudget   decimal.Decimal `json:"monthly_budget"`
	CurrentSpending decimal.Decimal `json:"current_spending"`
	RemainingBudget decimal.Decimal `json:"remaining_budget"`
	UsagePercentage float64         `json:"usage_percentage"`
	AlertType       string          `json:"alert_type"`
	AlertLabel      string          `json:"alert_label"`

	Recommendation struct {
		Type            string          `json:"type"`
		Message         string          `json:"message"`
		TargetService   string          `json:"target_service,omitempty"`
		PotentialSaving decimal.Decimal `json:"potential_saving"`
	} `json:"recommendation"`
}

func toSubscriptionResponse(sub *subscription.Subscription) subscriptionResponse {
	return subscriptionResponse{
		ID:                sub.ID,
		ServiceName:       sub.ServiceName,
		MonthlyAmount:     sub.MonthlyAmount,
		LastAmount:        sub.LastAmount,
		BillingCycle:      string(sub.BillingCycle),
		Status:            string(sub.Status),
		FirstDetectedDate: sub.FirstDetectedDate,
		LastChargeDate:    sub.LastChargeDate,
		NextChargeDate:    sub.NextChargeDate,
		TransactionCount:  sub.TransactionCount,
		TotalSpent:        sub.TotalSpent,
		AnnualCost:        sub.AnnualCost(),
	}
}

func toHistoryResponse(h *history.AnalysisHistory) historyResponse {
	subs := make([]subscriptionResponse, 0, len(h.Subscriptions))
	for i := range h.Subscriptions {
		subs = append(subs, toSubscriptionResponse(&h.Subscriptions[i]))
	}

	return historyResponse{
		ID:                h.ID,
		AnalysisDate:      h.AnalysisDate,
		FileName:          h.FileName,
		TransactionCount:  h.TransactionCount,
		SubscriptionCount: h.SubscriptionCount,
		MonthlyTotal:      h.MonthlyTotal,
		AnnualProjection:  h.AnnualProjection,
		Subscriptions:     subs,
	}
}

func toHistoryResponseList(hs []*history.AnalysisHistory) []historyResponse {
	responses := make([]historyResponse, 0, len(hs))
	for _, h := range hs {
		responses = append(responses, toHistoryResponse(h))
	}

	return responses
}

func toDiffResponseList(diffs []history.SubscriptionDiff) []diffResponse {
	responses := make([]diffResponse, 0, len(diffs))
	for _, d := range diffs {
		responses = append(responses, diffResponse{
			ServiceName: d.ServiceName,
			ChangeType:  d.ChangeType,
			OldAmount:   d.OldAmount,
			NewAmount:   d.NewAmount,
			OldStatus:   d.OldStatus,
			NewStatus:   d.NewStatus,
		})
	}

	return responses
}

func toComparisonResponse(result *history.ComparisonResult) comparisonResponse {
	return comparisonResponse{
		OldAnalysisDate:           result.OldAnalysisDate,
		NewAnalysisDate:           result.NewAnalysisDate,
		OldSubscriptionCount:      result.OldSubscriptionCount,
		NewSubscriptionCount:      result.NewSubscriptionCount,
		SubscriptionCountDiff:     result.SubscriptionCountDiff,
		OldMonthlyTotal:           result.OldMonthlyTotal,
		NewMonthlyTotal:           result.NewMonthlyTotal,
		MonthlyTotalDiff:          result.MonthlyTotalDiff,
		MonthlyTotalChangePercent: result.MonthlyTotalChangePercent,
		OldAnnualProjection:       result.OldAnnualProjection,
		NewAnnualProjection:       result.NewAnnualProjection,
		AnnualProjectionDiff:      result.AnnualProjectionDiff,
		NewSubscriptions:          toDiffResponseList(result.NewSubscriptions),
		RemovedSubscriptions:      toDiffResponseList(result.RemovedSubscriptions),
		ChangedSubscriptions:      toDiffResponseList(result.ChangedSubscriptions),
	}
}

func toCategoryStatsResponse(stats map[category.Category]category.Stats) []categoryStatsResponse {
	responses := make([]categoryStatsResponse, 0, len(stats))
	for _, stat := range stats {
		responses = append(responses, categoryStatsResponse{
			Category:    string(stat.Category),
			DisplayName: stat.DisplayName,
			Count:       stat.Count,
			TotalAmount: stat.TotalAmount,
			Percentage:  stat.Percentage,
		})
	}

	// Biggest spend first; the map iteration above is unordered.
	sort.Slice(responses, func(i, j int) bool {
		return responses[i].TotalAmount.GreaterThan(responses[j].TotalAmount)
	})

	return responses
}
