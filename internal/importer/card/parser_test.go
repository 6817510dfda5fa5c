package card_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"

	"github.com/vnme1/subscription-tracker/internal/importer/card"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParser_BasicStatement(t *testing.T) {
	csv := `거래일자,가맹점명,금액,카테고리,비고,카드번호
2025-01-15,넷플릭스,17000,엔터테인먼트,정기결제,1234567812345678
2025-01-20,스타벅스 강남점,5500,카페,,
`

	p := card.NewParser()
	txs, err := p.Parse(strings.NewReader(csv), true)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, date(2025, 1, 15), txs[0].Date)
	assert.Equal(t, "넷플릭스", txs[0].Merchant)
	assert.True(t, decimal.NewFromInt(17000).Equal(txs[0].Amount))
	assert.Equal(t, "엔터테인먼트", txs[0].Category)
	assert.Equal(t, "정기결제", txs[0].Description)
	assert.Equal(t, "1234-****-****-5678", txs[0].CardNumber)

	assert.Equal(t, "스타벅스 강남점", txs[1].Merchant)
	assert.Empty(t, txs[1].CardNumber)
}

func TestParser_NoHeader(t *testing.T) {
	csv := "2025-01-15,넷플릭스,17000\n"

	p := card.NewParser()
	txs, err := p.Parse(strings.NewReader(csv), false)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "넷플릭스", txs[0].Merchant)
}

func TestParser_DateFormats(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"ISO", "2025-01-15", date(2025, 1, 15)},
		{"Slashes", "2025/01/15", date(2025, 1, 15)},
		{"Dots", "2025.01.15", date(2025, 1, 15)},
		{"Compact", "20250115", date(2025, 1, 15)},
	}

	p := card.NewParser()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txs, err := p.Parse(strings.NewReader(tt.raw+",넷플릭스,17000\n"), false)
			require.NoError(t, err)
			require.Len(t, txs, 1)
			assert.Equal(t, tt.want, txs[0].Date)
		})
	}
}

func TestParser_AmountCleaning(t *testing.T) {
	csv := `2025-01-15,넷플릭스,"₩17,000"
2025-01-20,넷플릭스(환불),"17,000원 환불"
2025-01-25,쿠팡,-4500
`

	p := card.NewParser()
	txs, err := p.Parse(strings.NewReader(csv), false)
	require.NoError(t, err)
	require.Len(t, txs, 3)

	assert.True(t, decimal.NewFromInt(17000).Equal(txs[0].Amount))
	assert.True(t, decimal.NewFromInt(-17000).Equal(txs[1].Amount), "refund marker should flip sign")
	assert.True(t, decimal.NewFromInt(-4500).Equal(txs[2].Amount))
}

func TestParser_MerchantCleaning(t *testing.T) {
	csv := "2025-01-15,NETFLIX*  MEMBERSHIP,17000\n"

	p := card.NewParser()
	txs, err := p.Parse(strings.NewReader(csv), false)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "NETFLIX MEMBERSHIP", txs[0].Merchant)
}

func TestParser_SkipsMalformedRows(t *testing.T) {
	csv := `2025-01-15,넷플릭스,17000
not-a-date,유튜브,10000
2025-01-20,,5500
2025-01-25,스타벅스,abc
2025-02-15,넷플릭스,17000
`

	p := card.NewParser()
	txs, err := p.Parse(strings.NewReader(csv), false)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "넷플릭스", txs[0].Merchant)
	assert.Equal(t, "넷플릭스", txs[1].Merchant)
}

func TestParser_EUCKREncoding(t *testing.T) {
	utf8CSV := "거래일자,가맹점명,금액\n2025-01-15,넷플릭스,17000\n"

	encoded, err := korean.EUCKR.NewEncoder().Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	p := card.NewParser()
	txs, err := p.Parse(bytes.NewReader(encoded), true)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "넷플릭스", txs[0].Merchant)
}

func TestParser_ShortCardNumberKeptAsIs(t *testing.T) {
	csv := "2025-01-15,넷플릭스,17000,,,1234\n"

	p := card.NewParser()
	txs, err := p.Parse(strings.NewReader(csv), false)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "1234", txs[0].CardNumber)
}

func TestParser_EmptyFile(t *testing.T) {
	p := card.NewParser()
	txs, err := p.Parse(strings.NewReader(""), true)
	require.NoError(t, err)
	assert.Empty(t, txs)
}
