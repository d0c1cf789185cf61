package csvimport

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVParser_ParseHeader(t *testing.T) {
	t.Run("maps headers by name", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader("price_type,min_quantity,price\nREGULAR,1,10.50\n"))
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())

		assert.Equal(t, []string{"price_type", "min_quantity", "price"}, parser.Headers())
		assert.Empty(t, parser.ValidateHeaders([]string{"price_type", "price"}))
		assert.Equal(t, []string{"max_quantity"}, parser.ValidateHeaders([]string{"max_quantity"}))
	})

	t.Run("strips UTF-8 BOM", func(t *testing.T) {
		parser, err := ParseFromBytes(append([]byte{0xEF, 0xBB, 0xBF}, []byte("a,b\n1,2\n")...))
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())
		assert.Equal(t, []string{"a", "b"}, parser.Headers())
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := NewCSVParser(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("rejects non-UTF-8 input", func(t *testing.T) {
		_, err := ParseFromBytes([]byte{0xFF, 0xFE, 0x41, 0x00})
		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})
}

func TestCSVParser_ReadRow(t *testing.T) {
	t.Run("maps fields and trims space", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader("sku,qty\n ABC-1 , 5\n"))
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())

		row, err := parser.ReadRow()
		require.NoError(t, err)
		assert.Equal(t, 2, row.LineNumber)
		assert.Equal(t, "ABC-1", row.Get("sku"))
		assert.Equal(t, "5", row.Get("qty"))

		_, err = parser.ReadRow()
		assert.Equal(t, io.EOF, err)
	})

	t.Run("short rows pad missing columns", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader("a,b,c\n1,2\n"))
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())

		row, err := parser.ReadRow()
		require.NoError(t, err)
		assert.Equal(t, "", row.Get("c"))
	})
}

func TestCSVParser_ReadAllRows(t *testing.T) {
	parser, err := NewCSVParser(strings.NewReader("a,b\n1,2\n,\n3,4\n"))
	require.NoError(t, err)
	require.NoError(t, parser.ParseHeader())

	rows, err := parser.ReadAllRows()
	require.NoError(t, err)
	// the blank row is skipped
	require.Len(t, rows, 2)
	assert.Equal(t, "3", rows[1].Get("a"))
	assert.Equal(t, 4, rows[1].LineNumber)
}
