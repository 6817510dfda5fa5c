package subscription

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vnme1/subscription-tracker/internal/transaction"
)

// Config holds the detection thresholds.
type Config struct {
	// MinOccurrence is the minimum number of transactions a merchant group
	// needs before it is analyzed at all.
	MinOccurrence int
	// AmountTolerance is the allowed deviation from the representative
	// charge, in percent.
	AmountTolerance float64
	// MaxDayVariance is the half-width of the monthly cadence window in
	// days; longer cycles scale it up.
	MaxDayVariance int
}

// DefaultConfig mirrors the shipped defaults: 2 occurrences, 5% amount
// tolerance, ±5 days on the monthly window.
func DefaultConfig() Config {
	return Config{
		MinOccurrence:   2,
		AmountTolerance: 5.0,
		MaxDayVariance:  5,
	}
}

// Detector turns a raw transaction list into inferred subscriptions.
// It holds no state between calls.
type Detector struct {
	cfg     Config
	grouper Grouper
	now     func() time.Time
}

func NewDetector(cfg Config) *Detector {
	return &Detector{
		cfg:     cfg,
		grouper: NewSubstringGrouper(),
		now:     time.Now,
	}
}

// WithClock overrides the time source. Tests use this to pin status
// derivation to a fixed day.
func (d *Detector) WithClock(now func() time.Time) *Detector {
	d.now = now
	return d
}

// Detect infers subscriptions from the transaction stream. Groups that fail
// the occurrence, consistency, or cadence gates are dropped silently; data
// quality never produces an error here, only fewer results.
func (d *Detector) Detect(txs []transaction.Transaction) []Subscription {
	if len(txs) == 0 {
		return []Subscription{}
	}

	groups := d.grouper.Group(txs)
	slog.Debug("grouped transactions", "transactions", len(txs), "merchants", len(groups))

	subscriptions := make([]Subscription, 0)

	for _, group := range groups {
		if len(group.Transactions) < d.cfg.MinOccurrence {
			continue
		}

		if !consistentAmounts(group.Transactions, d.cfg.AmountTolerance) {
			continue
		}

		cycle := classifyCadence(group.Transactions, d.cfg.MaxDayVariance)
		if cycle == CycleUnknown {
			continue
		}

		sub := d.build(group.Key, group.Transactions, cycle)
		subscriptions = append(subscriptions, sub)

		slog.Info("subscription detected",
			"service", sub.ServiceName,
			"monthly_amount", sub.MonthlyAmount.String(),
			"cycle", sub.BillingCycle,
		)
	}

	return subscriptions
}

// build materializes a Subscription from a qualifying group.
func (d *Detector) build(merchant string, txs []transaction.Transaction, cycle BillingCycle) Subscription {
	totalSpent := decimal.Zero

	for _, tx := range txs {
		if tx.Amount.IsPositive() {
			totalSpent = totalSpent.Add(tx.Amount)
		}
	}

	// Raw average divides by the full group size, refunds included.
	rawAverage := totalSpent.DivRound(decimal.NewFromInt(int64(len(txs))), 2)

	firstDate := txs[0].Date
	lastDate := txs[0].Date

	for _, tx := range txs[1:] {
		if tx.Date.Before(firstDate) {
			firstDate = tx.Date
		}

		if tx.Date.After(lastDate) {
			lastDate = tx.Date
		}
	}

	sub := Subscription{
		ID:                uuid.New(),
		ServiceName:       merchant,
		MonthlyAmount:     monthlyEquivalent(rawAverage, cycle),
		LastAmount:        rawAverage,
		BillingCycle:      cycle,
		FirstDetectedDate: firstDate,
		LastChargeDate:    lastDate,
		Status:            statusFor(lastDate, d.now()),
		TransactionCount:  len(txs),
		TotalSpent:        totalSpent,
		Transactions:      append([]transaction.Transaction(nil), txs...),
	}

	sub.computeNextChargeDate()

	return sub
}

// monthlyEquivalent converts a per-charge average into a monthly amount.
func monthlyEquivalent(amount decimal.Decimal, cycle BillingCycle) decimal.Decimal {
	switch cycle {
	case CycleQuarterly:
		return amount.DivRound(decimal.NewFromInt(3), 2)
	case CycleSemiAnnual:
		return amount.DivRound(decimal.NewFromInt(6), 2)
	case CycleAnnual:
		return amount.DivRound(decimal.NewFromInt(12), 2)
	}

	return amount
}
