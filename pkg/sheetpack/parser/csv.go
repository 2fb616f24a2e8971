package parser

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/models"
)

// CSVOptions configures the CSV back-end.
type CSVOptions struct {
	// Delimiter is the field separator. Zero means comma.
	Delimiter rune
	// Charset is the IANA name of the input encoding. Empty means
	// UTF-8.
	Charset string
}

// ExtractCSV reads delimiter-separated values as a single sheet named
// "Sheet1". Rows may have differing field counts; quoting is lenient.
func ExtractCSV(r io.Reader, opts CSVOptions) (models.Sheet, error) {
	sheet := models.Sheet{Name: "Sheet1"}

	if opts.Charset != "" {
		enc, err := ianaindex.IANA.Encoding(opts.Charset)
		if err != nil || enc == nil {
			return sheet, fmt.Errorf("unknown charset %q", opts.Charset)
		}
		r = transform.NewReader(r, enc.NewDecoder())
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return sheet, err
		}
		row++
		for colIdx, value := range record {
			if value == "" {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(colIdx+1, row)
			if err != nil {
				return sheet, err
			}
			sheet.Cells = append(sheet.Cells, models.Cell{
				Row:   row,
				Col:   colIdx + 1,
				Ref:   ref,
				Value: value,
			})
		}
	}

	return sheet, nil
}
