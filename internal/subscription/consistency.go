package subscription

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/vnme1/subscription-tracker/internal/transaction"
)

// consistentAmounts decides whether a merchant group's charges are stable
// enough to be one subscription. Refunds are ignored; at least 2 charges are
// required. The representative value is sorted[len/2] (the upper median for
// even sizes), and the group passes when at least 80% of charges sit within
// tolerancePercent of it.
func consistentAmounts(txs []transaction.Transaction, tolerancePercent float64) bool {
	var amounts []decimal.Decimal

	for _, tx := range txs {
		if tx.Amount.IsPositive() {
			amounts = append(amounts, tx.Amount)
		}
	}

	if len(amounts) < 2 {
		return false
	}

	sort.Slice(amounts, func(i, j int) bool {
		return amounts[i].LessThan(amounts[j])
	})

	median := amounts[len(amounts)/2]

	consistent := 0

	for _, amount := range amounts {
		if withinTolerance(amount, median, tolerancePercent) {
			consistent++
		}
	}

	ratio := float64(consistent) / float64(len(amounts))

	return ratio >= 0.8
}

func withinTolerance(value, target decimal.Decimal, tolerancePercent float64) bool {
	tolerance := target.Mul(decimal.NewFromFloat(tolerancePercent / 100))
	diff := value.Sub(target).Abs()

	return diff.LessThanOrEqual(tolerance)
}
