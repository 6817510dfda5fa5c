package card

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	enc "github.com/vnme1/subscription-tracker/internal/encoding"
	"github.com/vnme1/subscription-tracker/internal/transaction"
)

// dateLayouts covers the formats Korean card companies actually export.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"01/02/2006",
	"2006.01.02",
	"20060102",
}

// Parser reads a card-statement CSV and produces transactions. Expected row
// layout: [date, merchant, amount, category?, description?, card number?].
// Malformed rows are skipped with a warning; only I/O level failures error.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader, hasHeader bool) ([]transaction.Transaction, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	start := 0
	if hasHeader && len(rows) > 0 {
		start = 1
	}

	var txs []transaction.Transaction

	for i := start; i < len(rows); i++ {
		tx, err := parseRow(rows[i])
		if err != nil {
			slog.Warn("skipping malformed row", "line", i+1, "error", err)
			continue
		}

		txs = append(txs, tx)
	}

	slog.Info("parsed card statement", "rows", len(rows), "transactions", len(txs))

	return txs, nil
}

func parseRow(row []string) (transaction.Transaction, error) {
	if len(row) < 3 {
		return transaction.Transaction{}, fmt.Errorf("need at least 3 fields, got %d", len(row))
	}

	date, err := parseDate(strings.TrimSpace(row[0]))
	if err != nil {
		return transaction.Transaction{}, err
	}

	merchant := cleanMerchant(strings.TrimSpace(row[1]))
	if merchant == "" {
		return transaction.Transaction{}, fmt.Errorf("missing merchant")
	}

	amount, err := parseAmount(strings.TrimSpace(row[2]))
	if err != nil {
		return transaction.Transaction{}, err
	}

	tx := transaction.Transaction{
		ID:       uuid.New(),
		Date:     date,
		Merchant: merchant,
		Amount:   amount,
	}

	if len(row) > 3 {
		tx.Category = strings.TrimSpace(row[3])
	}

	if len(row) > 4 {
		tx.Description = strings.TrimSpace(row[4])
	}

	if len(row) > 5 && strings.TrimSpace(row[5]) != "" {
		tx.CardNumber = maskCardNumber(strings.TrimSpace(row[5]))
	}

	return tx, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

var nonAmount = regexp.MustCompile(`[^0-9.\-]`)

// parseAmount strips currency symbols and grouping commas. Refund/cancel
// markers (환불, 취소) force the amount negative even when the digits are
// printed unsigned.
func parseAmount(s string) (decimal.Decimal, error) {
	clean := nonAmount.ReplaceAllString(s, "")

	negative := strings.HasPrefix(clean, "-") ||
		strings.Contains(s, "환불") ||
		strings.Contains(s, "취소")

	clean = strings.ReplaceAll(clean, "-", "")
	if negative {
		clean = "-" + clean
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("unparseable amount %q", s)
	}

	return d, nil
}

var (
	stars      = regexp.MustCompile(`\*+`)
	whitespace = regexp.MustCompile(`\s+`)
	nonDigits  = regexp.MustCompile(`[^0-9]`)
)

func cleanMerchant(s string) string {
	s = stars.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, " ")

	return strings.TrimSpace(s)
}

// maskCardNumber keeps the first and last four digits. Too-short values are
// returned untouched.
func maskCardNumber(s string) string {
	digits := nonDigits.ReplaceAllString(s, "")
	if len(digits) < 8 {
		return s
	}

	return digits[:4] + "-****-****-" + digits[len(digits)-4:]
}
