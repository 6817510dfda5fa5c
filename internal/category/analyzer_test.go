package category_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnme1/subscription-tracker/internal/category"
	"github.com/vnme1/subscription-tracker/internal/subscription"
)

func sub(name string, monthly int64, status subscription.Status) subscription.Subscription {
	return subscription.Subscription{
		ServiceName:   name,
		MonthlyAmount: decimal.NewFromInt(monthly),
		Status:        status,
	}
}

func TestAnalyzer_Classify(t *testing.T) {
	a := category.NewAnalyzer(nil)

	tests := []struct {
		name    string
		service string
		want    category.Category
	}{
		{"MappedService", "넷플릭스", category.Entertainment},
		{"MappedFragment", "멜론 정기결제", category.Music},
		{"KeywordTV", "Apple TV+", category.Video},
		{"KeywordCloud", "Mycloud 백업", category.Storage},
		{"Unknown", "동네헬스장", category.Other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Classify(tt.service))
		})
	}
}

func TestAnalyzer_Distribution(t *testing.T) {
	a := category.NewAnalyzer(nil)

	subs := []subscription.Subscription{
		sub("넷플릭스", 17000, subscription.StatusActive),
		sub("왓챠", 7900, subscription.StatusActive),
		sub("멜론", 10900, subscription.StatusActive),
		sub("웨이브", 13900, subscription.StatusInactive), // excluded
	}

	stats := a.Distribution(subs)
	require.Len(t, stats, 2)

	ent := stats[category.Entertainment]
	assert.Equal(t, 2, ent.Count)
	assert.True(t, decimal.NewFromInt(24900).Equal(ent.TotalAmount))
	assert.Equal(t, "🎬 엔터테인먼트", ent.DisplayName)

	music := stats[category.Music]
	assert.Equal(t, 1, music.Count)

	assert.InDelta(t, 100.0, ent.Percentage+music.Percentage, 0.1)
}

func TestAnalyzer_Distribution_Empty(t *testing.T) {
	a := category.NewAnalyzer(nil)
	assert.Empty(t, a.Distribution(nil))
}

func TestTopSpending(t *testing.T) {
	a := category.NewAnalyzer(nil)

	subs := []subscription.Subscription{
		sub("넷플릭스", 17000, subscription.StatusActive),
		sub("멜론", 10900, subscription.StatusActive),
	}

	top, ok := category.TopSpending(a.Distribution(subs))
	require.True(t, ok)
	assert.Equal(t, category.Entertainment, top.Category)

	_, ok = category.TopSpending(nil)
	assert.False(t, ok)
}

func TestPotentialSavings(t *testing.T) {
	a := category.NewAnalyzer(nil)

	subs := []subscription.Subscription{
		sub("넷플릭스", 17000, subscription.StatusActive),
		sub("왓챠", 3000, subscription.StatusActive),
	}

	stats := a.Distribution(subs)

	saving := category.PotentialSavings(stats, category.Entertainment, 50)
	assert.True(t, decimal.NewFromInt(10000).Equal(saving))

	assert.True(t, category.PotentialSavings(stats, category.Fitness, 50).IsZero())
}
