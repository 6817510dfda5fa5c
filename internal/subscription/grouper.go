package subscription

import (
	"strings"
	"unicode"

	"github.com/vnme1/subscription-tracker/internal/transaction"
)

// MerchantGroup is one cluster of transactions attributed to a single
// real-world merchant, keyed by the normalized name that started the group.
type MerchantGroup struct {
	Key          string
	Transactions []transaction.Transaction
}

// Grouper partitions transactions into merchant groups. It sits behind an
// interface so the greedy matcher below can be swapped for a
// similarity-scored one without touching the detector.
type Grouper interface {
	Group(txs []transaction.Transaction) []MerchantGroup
}

// SubstringGrouper assigns each transaction to the first existing group whose
// key equals, contains, or is contained in the normalized merchant name.
// Greedy and order-dependent: "KT" and "KTX" end up in one group. Groups come
// back in insertion order.
type SubstringGrouper struct{}

func NewSubstringGrouper() *SubstringGrouper {
	return &SubstringGrouper{}
}

func (g *SubstringGrouper) Group(txs []transaction.Transaction) []MerchantGroup {
	groups := make([]MerchantGroup, 0)

	for _, tx := range txs {
		normalized := NormalizeMerchant(tx.Merchant)

		found := false

		for i := range groups {
			if similarMerchant(normalized, groups[i].Key) {
				groups[i].Transactions = append(groups[i].Transactions, tx)
				found = true

				break
			}
		}

		if !found {
			groups = append(groups, MerchantGroup{
				Key:          normalized,
				Transactions: []transaction.Transaction{tx},
			})
		}
	}

	return groups
}

// NormalizeMerchant uppercases the merchant name and strips everything except
// letters and digits (Hangul included).
func NormalizeMerchant(merchant string) string {
	var b strings.Builder

	for _, r := range strings.ToUpper(merchant) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}

	return b.String()
}

func similarMerchant(a, b string) bool {
	if a == b {
		return true
	}

	return strings.Contains(a, b) || strings.Contains(b, a)
}
