package sheetpack

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestCompressor(t *testing.T, opts Options) *Compressor {
	t.Helper()
	c, err := New(opts)
	require.NoError(t, err)
	return c
}

func TestParseCSV(t *testing.T) {
	c := newTestCompressor(t, DefaultOptions())

	input := "123,456\napple,apple\n,2024-01-15"
	summary, err := c.ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, Summary{
		"[INTEGER]": {"Sheet1!A1:B1"},
		"apple":     {"Sheet1!A2:B2"},
		"[DATE]":    {"Sheet1!B3"},
	}, summary)
}

func TestParseCSVLiteralEmptyIsACategory(t *testing.T) {
	c := newTestCompressor(t, DefaultOptions())

	// A cell whose text is exactly "Empty" collides with the blank
	// sentinel string; it must still be bucketed as its own literal
	// category.
	summary, err := c.ParseCSV(strings.NewReader("Empty,1\n Empty ,"))
	require.NoError(t, err)

	assert.Equal(t, Summary{
		"Empty":     {"Sheet1!A1:A2"},
		"[INTEGER]": {"Sheet1!B1"},
	}, summary)
}

func TestParseCSVEmptyAndBlankCells(t *testing.T) {
	c := newTestCompressor(t, DefaultOptions())

	// Empty and whitespace-only cells never reach a bucket.
	summary, err := c.ParseCSV(strings.NewReader(",,\n  , \n"))
	require.NoError(t, err)
	assert.Empty(t, summary)
}

func TestParseCSVCustomDelimiter(t *testing.T) {
	opts := DefaultOptions()
	opts.CSVDelimiter = ';'
	c := newTestCompressor(t, opts)

	summary, err := c.ParseCSV(strings.NewReader("1;2;3"))
	require.NoError(t, err)
	assert.Equal(t, Summary{"[INTEGER]": {"Sheet1!A1:C1"}}, summary)
}

func TestParseCSVCharset(t *testing.T) {
	opts := DefaultOptions()
	opts.CSVCharset = "ISO-8859-1"
	c := newTestCompressor(t, opts)

	// "café" in Latin-1.
	input := string([]byte{'c', 'a', 'f', 0xE9, ',', '1'})
	summary, err := c.ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, Summary{
		"café":      {"Sheet1!A1"},
		"[INTEGER]": {"Sheet1!B1"},
	}, summary)
}

func TestParseCSVUnknownCharset(t *testing.T) {
	opts := DefaultOptions()
	opts.CSVCharset = "no-such-charset"
	c := newTestCompressor(t, opts)

	_, err := c.ParseCSV(strings.NewReader("1"))
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "csv", parseErr.Format)
}

func writeTestWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Revenue"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", 100))
	require.NoError(t, f.SetCellValue("Sheet1", "A3", 200))
	require.NoError(t, f.SetCellValue("Sheet1", "C1", "50%"))

	_, err := f.NewSheet("Sheet2")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Sheet2", "A1", 300))

	path := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParsePathExcel(t *testing.T) {
	c := newTestCompressor(t, DefaultOptions())

	summary, err := c.ParsePath(writeTestWorkbook(t))
	require.NoError(t, err)

	// Integers merge within Sheet1 but never across sheets.
	assert.Equal(t, Summary{
		"Revenue":      {"Sheet1!A1"},
		"[INTEGER]":    {"Sheet1!A2:A3", "Sheet2!A1"},
		"[PERCENTAGE]": {"Sheet1!C1"},
	}, summary)
}

func TestParsePathUnsupportedExtension(t *testing.T) {
	c := newTestCompressor(t, DefaultOptions())

	path := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))

	_, err := c.ParsePath(path)
	require.ErrorIs(t, err, ErrUnsupportedExtension)
}

func TestParsePathMissingFile(t *testing.T) {
	c := newTestCompressor(t, DefaultOptions())

	_, err := c.ParsePath(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}

func TestParseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("1\n2\n3"))
	}))
	defer srv.Close()

	c := newTestCompressor(t, DefaultOptions())

	summary, err := c.ParseURL(context.Background(), srv.URL+"/data.csv")
	require.NoError(t, err)
	assert.Equal(t, Summary{"[INTEGER]": {"Sheet1!A1:A3"}}, summary)
}

func TestParseURLUnsupportedExtension(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("irrelevant"))
	}))
	defer srv.Close()

	c := newTestCompressor(t, DefaultOptions())

	_, err := c.ParseURL(context.Background(), srv.URL+"/data.pdf")
	require.ErrorIs(t, err, ErrUnsupportedExtension)
}

func TestParseURLDownloadError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := newTestCompressor(t, DefaultOptions())

	_, err := c.ParseURL(context.Background(), srv.URL+"/data.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status")
}

func TestParseExcelInvalidData(t *testing.T) {
	c := newTestCompressor(t, DefaultOptions())

	_, err := c.ParseExcel(strings.NewReader("this is not a workbook"))
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "excel", parseErr.Format)
}

func TestNewRejectsBadCustomPattern(t *testing.T) {
	_, err := New(Options{
		CustomPatterns: map[string]string{"bad": `^(`},
	})
	require.Error(t, err)
}

func TestCustomPatternsEndToEnd(t *testing.T) {
	opts := DefaultOptions()
	opts.CustomPatterns = map[string]string{"sku": `^SKU-\d+$`}
	c := newTestCompressor(t, opts)

	summary, err := c.ParseCSV(strings.NewReader("SKU-100,SKU-101"))
	require.NoError(t, err)
	assert.Equal(t, Summary{"[SKU]": {"Sheet1!A1:B1"}}, summary)
}
