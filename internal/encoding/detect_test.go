package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"

	"github.com/vnme1/subscription-tracker/internal/encoding"
)

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	// Valid UTF-8 with Hangul should pass through unchanged.
	input := "거래일자,가맹점명,금액\n2025-01-15,넷플릭스,17000\n"
	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_EUCKR(t *testing.T) {
	input := "거래일자,가맹점명,금액\n2025-01-15,넷플릭스,17000\n"

	encoded, err := korean.EUCKR.NewEncoder().Bytes([]byte(input))
	require.NoError(t, err)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(encoded))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	// UTF-8 BOM (0xEF 0xBB 0xBF) should be stripped.
	bom := []byte{0xEF, 0xBB, 0xBF}
	content := []byte("거래일자,가맹점명,금액\n")
	input := append(bom, content...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "거래일자,가맹점명,금액\n", string(got))
}
