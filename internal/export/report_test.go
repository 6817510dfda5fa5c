package export_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnme1/subscription-tracker/internal/category"
	"github.com/vnme1/subscription-tracker/internal/export"
	"github.com/vnme1/subscription-tracker/internal/history"
	"github.com/vnme1/subscription-tracker/internal/subscription"
)

func fixedClock() time.Time {
	return time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
}

func reportFixture() *history.AnalysisHistory {
	now := fixedClock()
	next := now.AddDate(0, 0, 14)

	return &history.AnalysisHistory{
		ID:                uuid.New(),
		AnalysisDate:      now,
		FileName:          "card_2025_q1.csv",
		SubscriptionCount: 2,
		MonthlyTotal:      decimal.NewFromInt(24900),
		AnnualProjection:  decimal.NewFromInt(298800),
		Subscriptions: []subscription.Subscription{
			{
				ServiceName:       "넷플릭스",
				MonthlyAmount:     decimal.NewFromInt(17000),
				BillingCycle:      subscription.CycleMonthly,
				Status:            subscription.StatusActive,
				FirstDetectedDate: now.AddDate(0, -3, 0),
				LastChargeDate:    now.AddDate(0, 0, -16),
				NextChargeDate:    &next,
				TransactionCount:  3,
				TotalSpent:        decimal.NewFromInt(51000),
			},
			{
				ServiceName:       "멜론",
				MonthlyAmount:     decimal.NewFromInt(7900),
				BillingCycle:      subscription.CycleMonthly,
				Status:            subscription.StatusInactive,
				FirstDetectedDate: now.AddDate(0, -6, 0),
				LastChargeDate:    now.AddDate(0, 0, -100),
				TransactionCount:  4,
				TotalSpent:        decimal.NewFromInt(31600),
			},
		},
	}
}

func TestReporter_WriteReport(t *testing.T) {
	reporter := export.NewReporter(category.NewAnalyzer(nil)).WithClock(fixedClock)

	var buf bytes.Buffer
	err := reporter.WriteReport(&buf, reportFixture())
	require.NoError(t, err)

	out := buf.String()

	assert.Contains(t, out, "=== 구독 서비스 분석 보고서 ===")
	assert.Contains(t, out, "분석 파일:,card_2025_q1.csv")
	assert.Contains(t, out, "생성일시:,2025-04-01")

	assert.Contains(t, out, "[요약 정보]")
	assert.Contains(t, out, "총 구독 수:,2")
	assert.Contains(t, out, "월 총액:,\"₩24,900\"")

	// Category section only counts the active subscription.
	assert.Contains(t, out, "[카테고리별 분석]")
	assert.Contains(t, out, "🎬 엔터테인먼트,1,")

	assert.Contains(t, out, "[구독 상세 목록]")
	assert.Contains(t, out, "넷플릭스,")
	assert.Contains(t, out, "월간,활성")
	assert.Contains(t, out, "2025-04-15")

	// The stale subscription lands in the review section with its gap.
	assert.Contains(t, out, "[취소 검토 대상]")
	assert.Contains(t, out, "멜론,\"₩7,900\",2024-12-22,100")
}

func TestReporter_NoCancellationSection(t *testing.T) {
	h := reportFixture()
	h.Subscriptions = h.Subscriptions[:1]

	reporter := export.NewReporter(category.NewAnalyzer(nil)).WithClock(fixedClock)

	var buf bytes.Buffer
	require.NoError(t, reporter.WriteReport(&buf, h))

	assert.NotContains(t, buf.String(), "[취소 검토 대상]")
}

func TestReporter_SectionOrder(t *testing.T) {
	reporter := export.NewReporter(category.NewAnalyzer(nil)).WithClock(fixedClock)

	var buf bytes.Buffer
	require.NoError(t, reporter.WriteReport(&buf, reportFixture()))

	out := buf.String()
	summaryIdx := strings.Index(out, "[요약 정보]")
	categoryIdx := strings.Index(out, "[카테고리별 분석]")
	detailIdx := strings.Index(out, "[구독 상세 목록]")
	cancelIdx := strings.Index(out, "[취소 검토 대상]")

	assert.True(t, summaryIdx < categoryIdx)
	assert.True(t, categoryIdx < detailIdx)
	assert.True(t, detailIdx < cancelIdx)
}
