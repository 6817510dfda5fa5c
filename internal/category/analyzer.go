package category

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vnme1/subscription-tracker/internal/subscription"
)

// Stats aggregates the active subscriptions of one category.
type Stats struct {
	Category    Category
	Count       int
	TotalAmount decimal.Decimal
	Percentage  float64
	DisplayName string
}

// Analyzer classifies subscriptions by service name. The mapping is injected
// so deployments can extend it without a rebuild.
type Analyzer struct {
	mapping Mapping
}

func NewAnalyzer(mapping Mapping) *Analyzer {
	if mapping == nil {
		mapping = DefaultMapping()
	}

	return &Analyzer{mapping: mapping}
}

// Distribution buckets the active subscriptions by category. Percentages are
// shares of the active monthly total.
func (a *Analyzer) Distribution(subs []subscription.Subscription) map[Category]Stats {
	stats := make(map[Category]Stats)
	if len(subs) == 0 {
		return stats
	}

	totalAmount := decimal.Zero
	grouped := make(map[Category][]subscription.Subscription)

	for _, sub := range subs {
		if !sub.IsActive() {
			continue
		}

		totalAmount = totalAmount.Add(sub.MonthlyAmount)

		c := a.Classify(sub.ServiceName)
		grouped[c] = append(grouped[c], sub)
	}

	for c, group := range grouped {
		categoryTotal := decimal.Zero
		for _, sub := range group {
			categoryTotal = categoryTotal.Add(sub.MonthlyAmount)
		}

		percentage := 0.0
		if totalAmount.IsPositive() {
			percentage, _ = categoryTotal.
				DivRound(totalAmount, 4).
				Mul(decimal.NewFromInt(100)).
				Float64()
		}

		stats[c] = Stats{
			Category:    c,
			Count:       len(group),
			TotalAmount: categoryTotal,
			Percentage:  percentage,
			DisplayName: c.DisplayName(),
		}
	}

	slog.Debug("category distribution built", "categories", len(stats))

	return stats
}

// Classify maps a service name to its category: mapped fragments first, then
// generic keywords, then OTHER.
func (a *Analyzer) Classify(serviceName string) Category {
	lower := strings.ToLower(serviceName)

	for fragment, c := range a.mapping {
		if strings.Contains(lower, strings.ToLower(fragment)) {
			return c
		}
	}

	switch {
	case strings.Contains(lower, "tv") || strings.Contains(lower, "영화"):
		return Video
	case strings.Contains(lower, "music") || strings.Contains(lower, "음악"):
		return Music
	case strings.Contains(lower, "cloud") || strings.Contains(lower, "드라이브"):
		return Storage
	}

	return Other
}

// TopSpending returns the category with the highest total, or false when
// stats is empty. Ties break by category name to keep the answer stable.
func TopSpending(stats map[Category]Stats) (Stats, bool) {
	if len(stats) == 0 {
		return Stats{}, false
	}

	keys := make([]Category, 0, len(stats))
	for c := range stats {
		keys = append(keys, c)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	top := stats[keys[0]]
	for _, c := range keys[1:] {
		if stats[c].TotalAmount.GreaterThan(top.TotalAmount) {
			top = stats[c]
		}
	}

	return top, true
}

// PotentialSavings estimates the amount freed by cutting a category's spend
// by reductionPercent.
func PotentialSavings(stats map[Category]Stats, c Category, reductionPercent int) decimal.Decimal {
	stat, ok := stats[c]
	if !ok {
		return decimal.Zero
	}

	return stat.TotalAmount.
		Mul(decimal.NewFromInt(int64(reductionPercent))).
		DivRound(decimal.NewFromInt(100), 2)
}
