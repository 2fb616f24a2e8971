package sheetpack

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/models"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/parser"
)

// Summary maps each category tag to the range expressions covering the
// cells of that category.
type Summary map[string][]string

// Compressor parses spreadsheet documents and compresses their
// contents into a Summary. It is safe for concurrent use.
type Compressor struct {
	opts       Options
	classifier *Classifier
	log        *zap.Logger
}

// New builds a Compressor from opts. It fails only when a custom
// pattern does not compile.
func New(opts Options) (*Compressor, error) {
	classifier, err := NewClassifier(opts)
	if err != nil {
		return nil, err
	}
	return &Compressor{
		opts:       opts,
		classifier: classifier,
		log:        opts.logger(),
	}, nil
}

// ParseExcel reads an Excel workbook (.xlsx, .xlsm, .xltx, .xltm) and
// returns its compressed summary.
func (c *Compressor) ParseExcel(r io.Reader) (Summary, error) {
	sheets, err := parser.ExtractExcel(r)
	if err != nil {
		return nil, &ParseError{Format: "excel", Err: err}
	}
	c.log.Info("excel parsing completed", zap.Int("sheets", len(sheets)))
	return c.summarize(sheets), nil
}

// ParseODS reads an OpenDocument spreadsheet and returns its compressed
// summary.
func (c *Compressor) ParseODS(r io.Reader) (Summary, error) {
	sheets, err := parser.ExtractODS(r)
	if err != nil {
		return nil, &ParseError{Format: "ods", Err: err}
	}
	c.log.Info("ods parsing completed", zap.Int("sheets", len(sheets)))
	return c.summarize(sheets), nil
}

// ParseCSV reads delimiter-separated values as a single sheet named
// "Sheet1" and returns its compressed summary. Delimiter and charset
// come from the Compressor's options.
func (c *Compressor) ParseCSV(r io.Reader) (Summary, error) {
	sheet, err := parser.ExtractCSV(r, parser.CSVOptions{
		Delimiter: c.opts.csvDelimiter(),
		Charset:   c.opts.CSVCharset,
	})
	if err != nil {
		return nil, &ParseError{Format: "csv", Err: err}
	}
	c.log.Info("csv parsing completed")
	return c.summarize([]models.Sheet{sheet}), nil
}

// ParseURL downloads the document at fileURL and dispatches on the URL
// path's extension.
func (c *Compressor) ParseURL(ctx context.Context, fileURL string) (Summary, error) {
	u, err := url.Parse(fileURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", fileURL, err)
	}

	c.log.Info("downloading file", zap.String("url", fileURL))
	data, err := parser.Fetch(ctx, fileURL, parser.FetchOptions{
		Client:             c.opts.HTTPClient,
		InsecureSkipVerify: c.opts.InsecureSkipVerify,
	})
	if err != nil {
		return nil, err
	}

	return c.parseBytes(data, strings.ToLower(path.Ext(u.Path)))
}

// ParsePath reads a local file and dispatches on its extension.
func (c *Compressor) ParsePath(filePath string) (Summary, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return c.parseBytes(data, strings.ToLower(filepath.Ext(filePath)))
}

func (c *Compressor) parseBytes(data []byte, ext string) (Summary, error) {
	c.log.Info("parsing file", zap.String("extension", ext))
	switch ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return c.ParseExcel(bytes.NewReader(data))
	case ".ods":
		return c.ParseODS(bytes.NewReader(data))
	case ".csv":
		return c.ParseCSV(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %q (supported: %s)",
			ErrUnsupportedExtension, ext, strings.Join(SupportedExtensions, ", "))
	}
}
