package subscription_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnme1/subscription-tracker/internal/subscription"
	"github.com/vnme1/subscription-tracker/internal/transaction"
)

func tx(merchant string, y, m, d int, amount int64) transaction.Transaction {
	return transaction.Transaction{
		Merchant: merchant,
		Date:     time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.NewFromInt(amount),
	}
}

func TestNormalizeMerchant(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Uppercase", "netflix", "NETFLIX"},
		{"StripsPunctuation", "NETFLIX.COM *MEMBERSHIP", "NETFLIXCOMMEMBERSHIP"},
		{"KeepsHangul", "넷플릭스 정기결제", "넷플릭스정기결제"},
		{"KeepsDigits", "쿠팡 와우 2기", "쿠팡와우2기"},
		{"Empty", "  *** ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, subscription.NormalizeMerchant(tt.in))
		})
	}
}

func TestSubstringGrouper_MergesVariants(t *testing.T) {
	txs := []transaction.Transaction{
		tx("넷플릭스", 2025, 1, 15, 17000),
		tx("넷플릭스 정기결제", 2025, 2, 15, 17000),
		tx("스타벅스", 2025, 1, 20, 5500),
	}

	g := subscription.NewSubstringGrouper()
	groups := g.Group(txs)

	require.Len(t, groups, 2)
	assert.Equal(t, "넷플릭스", groups[0].Key)
	assert.Len(t, groups[0].Transactions, 2)
	assert.Equal(t, "스타벅스", groups[1].Key)
	assert.Len(t, groups[1].Transactions, 1)
}

func TestSubstringGrouper_InsertionOrder(t *testing.T) {
	txs := []transaction.Transaction{
		tx("유튜브", 2025, 1, 1, 10000),
		tx("넷플릭스", 2025, 1, 2, 17000),
		tx("멜론", 2025, 1, 3, 7900),
	}

	g := subscription.NewSubstringGrouper()
	groups := g.Group(txs)

	require.Len(t, groups, 3)
	assert.Equal(t, "유튜브", groups[0].Key)
	assert.Equal(t, "넷플릭스", groups[1].Key)
	assert.Equal(t, "멜론", groups[2].Key)
}

func TestSubstringGrouper_GreedyFirstMatch(t *testing.T) {
	// The first group whose key is a substring wins, even when a later
	// group would be a closer match.
	txs := []transaction.Transaction{
		tx("KT", 2025, 1, 1, 30000),
		tx("KTX", 2025, 1, 5, 59800),
	}

	g := subscription.NewSubstringGrouper()
	groups := g.Group(txs)

	require.Len(t, groups, 1)
	assert.Equal(t, "KT", groups[0].Key)
	assert.Len(t, groups[0].Transactions, 2)
}

func TestSubstringGrouper_Empty(t *testing.T) {
	g := subscription.NewSubstringGrouper()
	assert.Empty(t, g.Group(nil))
}
