package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is one parsed card/bank statement line. It is created once by
// the CSV importer and never mutated afterwards.
type Transaction struct {
	ID          uuid.UUID
	Date        time.Time // calendar day, midnight UTC
	Merchant    string
	Amount      decimal.Decimal // positive = charge, negative = refund/credit
	Category    string
	Description string
	CardNumber  string // masked
}

// IsCharge reports whether the transaction is a payment (as opposed to a
// refund or credit).
func (t Transaction) IsCharge() bool {
	return t.Amount.IsPositive()
}

// WithinPeriod reports whether the transaction date falls inside the
// inclusive [start, end] range.
func (t Transaction) WithinPeriod(start, end time.Time) bool {
	return !t.Date.Before(start) && !t.Date.After(end)
}
