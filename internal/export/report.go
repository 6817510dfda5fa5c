package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/vnme1/subscription-tracker/internal/category"
	"github.com/vnme1/subscription-tracker/internal/history"
	"github.com/vnme1/subscription-tracker/internal/money"
	"github.com/vnme1/subscription-tracker/internal/subscription"
)

// Reporter renders an analysis snapshot as a sectioned CSV report: header,
// summary, category breakdown, per-subscription detail, and cancellation
// review candidates.
type Reporter struct {
	analyzer *category.Analyzer
	now      func() time.Time
}

func NewReporter(analyzer *category.Analyzer) *Reporter {
	return &Reporter{
		analyzer: analyzer,
		now:      time.Now,
	}
}

// WithClock overrides the report timestamp source.
func (r *Reporter) WithClock(now func() time.Time) *Reporter {
	r.now = now
	return r
}

// WriteReport writes the full report for one snapshot to w.
func (r *Reporter) WriteReport(w io.Writer, h *history.AnalysisHistory) error {
	cw := csv.NewWriter(w)

	r.writeHeader(cw, h)
	r.writeSummary(cw, h)
	r.writeCategories(cw, h)
	r.writeDetails(cw, h)
	r.writeCancellations(cw, h)

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	slog.Info("csv report generated", "id", h.ID, "subscriptions", len(h.Subscriptions))

	return nil
}

func (r *Reporter) writeHeader(cw *csv.Writer, h *history.AnalysisHistory) {
	cw.Write([]string{"=== 구독 서비스 분석 보고서 ==="})
	cw.Write([]string{"생성일시:", r.now().Format("2006-01-02")})
	cw.Write([]string{"분석 파일:", h.FileName})
	cw.Write([]string{""})
}

func (r *Reporter) writeSummary(cw *csv.Writer, h *history.AnalysisHistory) {
	cw.Write([]string{"[요약 정보]"})
	cw.Write([]string{"총 구독 수:", fmt.Sprintf("%d", h.SubscriptionCount)})
	cw.Write([]string{"월 총액:", money.FormatWon(h.MonthlyTotal)})
	cw.Write([]string{"연간 예상:", money.FormatWon(h.AnnualProjection)})
	cw.Write([]string{""})
}

func (r *Reporter) writeCategories(cw *csv.Writer, h *history.AnalysisHistory) {
	stats := r.analyzer.Distribution(h.Subscriptions)

	keys := make([]category.Category, 0, len(stats))
	for c := range stats {
		keys = append(keys, c)
	}

	// Stable section order regardless of map iteration.
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	cw.Write([]string{"[카테고리별 분석]"})
	cw.Write([]string{"카테고리", "구독 수", "월 금액", "비율(%)"})

	for _, c := range keys {
		stat := stats[c]
		cw.Write([]string{
			stat.DisplayName,
			fmt.Sprintf("%d", stat.Count),
			money.FormatWon(stat.TotalAmount),
			fmt.Sprintf("%.1f%%", stat.Percentage),
		})
	}

	cw.Write([]string{""})
}

func (r *Reporter) writeDetails(cw *csv.Writer, h *history.AnalysisHistory) {
	cw.Write([]string{"[구독 상세 목록]"})
	cw.Write([]string{
		"서비스명", "월금액", "연간예상", "결제주기", "상태",
		"첫결제일", "최근결제일", "다음결제예정일",
		"총결제횟수", "총지출액", "카테고리", "취소추천",
	})

	now := r.now()

	for i := range h.Subscriptions {
		sub := &h.Subscriptions[i]

		cancellation := "N"
		if sub.CancellationCandidate(now, subscription.CancellationStaleDays) {
			cancellation = "Y"
		}

		cw.Write([]string{
			sub.ServiceName,
			money.FormatWon(sub.MonthlyAmount),
			money.FormatWon(sub.AnnualCost()),
			sub.BillingCycle.Korean(),
			sub.Status.Korean(),
			formatDate(sub.FirstDetectedDate),
			formatDate(sub.LastChargeDate),
			formatDatePtr(sub.NextChargeDate),
			fmt.Sprintf("%d", sub.TransactionCount),
			money.FormatWon(sub.TotalSpent),
			r.analyzer.Classify(sub.ServiceName).Korean(),
			cancellation,
		})
	}

	cw.Write([]string{""})
}

func (r *Reporter) writeCancellations(cw *csv.Writer, h *history.AnalysisHistory) {
	now := r.now()

	var candidates []*subscription.Subscription

	for i := range h.Subscriptions {
		if h.Subscriptions[i].CancellationCandidate(now, subscription.CancellationStaleDays) {
			candidates = append(candidates, &h.Subscriptions[i])
		}
	}

	if len(candidates) == 0 {
		return
	}

	cw.Write([]string{"[취소 검토 대상]"})
	cw.Write([]string{"서비스명", "월금액", "마지막 결제일", "미사용 기간(일)"})

	for _, sub := range candidates {
		days := 0
		if !sub.LastChargeDate.IsZero() {
			days = int(now.Sub(sub.LastChargeDate).Hours() / 24)
		}

		cw.Write([]string{
			sub.ServiceName,
			money.FormatWon(sub.MonthlyAmount),
			formatDate(sub.LastChargeDate),
			fmt.Sprintf("%d", days),
		})
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format("2006-01-02")
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}

	return formatDate(*t)
}
