// Package sheetpack compresses spreadsheet contents into a compact
// category-to-ranges summary suitable for LLM consumption.
package sheetpack

import (
	"net/http"

	"go.uber.org/zap"
)

// SupportedExtensions lists the file extensions the dispatching parse
// entry points accept.
var SupportedExtensions = []string{".xlsx", ".xlsm", ".xltx", ".xltm", ".ods", ".csv"}

// Options configures a Compressor.
type Options struct {
	// CustomPatterns maps pattern names to anchored regular expression
	// sources. A name matching a built-in pattern replaces it in place;
	// new names are tried after the built-ins, in lexical name order.
	CustomPatterns map[string]string
	// DateLayouts replaces the default date layouts when non-nil.
	// Layouts use the Go reference time, e.g. "2006-01-02".
	DateLayouts []string
	// TimeLayouts replaces the default time layouts when non-nil.
	TimeLayouts []string
	// CSVDelimiter is the field delimiter for CSV input. Zero means comma.
	CSVDelimiter rune
	// CSVCharset is the IANA name of the CSV input encoding.
	// Empty means UTF-8.
	CSVCharset string
	// InsecureSkipVerify disables TLS certificate verification for
	// URL input.
	InsecureSkipVerify bool
	// HTTPClient overrides the client used for URL input. If nil, a
	// default client is used.
	HTTPClient *http.Client
	// Logger receives progress and recovery diagnostics. Nil disables
	// logging.
	Logger *zap.Logger
}

// DefaultOptions returns options with built-in patterns, comma-delimited
// UTF-8 CSV input, and logging disabled.
func DefaultOptions() Options {
	return Options{}
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

func (o Options) csvDelimiter() rune {
	if o.CSVDelimiter != 0 {
		return o.CSVDelimiter
	}
	return ','
}
