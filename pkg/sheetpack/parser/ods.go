package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/models"
)

// ExtractODS reads an OpenDocument spreadsheet and normalizes every
// sheet. Cell repetition attributes are expanded so coordinates match
// what a spreadsheet application would display.
func ExtractODS(r io.Reader) ([]models.Sheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	content, err := readZipFile(zr, "content.xml")
	if err != nil {
		return nil, err
	}
	return parseContent(content)
}

func readZipFile(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("%s not found in archive", name)
}

func parseContent(data []byte) ([]models.Sheet, error) {
	var sheets []models.Sheet

	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "table" {
			sheet, err := parseTable(decoder, se)
			if err != nil {
				return nil, err
			}
			sheets = append(sheets, sheet)
		}
	}

	return sheets, nil
}

func parseTable(decoder *xml.Decoder, start xml.StartElement) (models.Sheet, error) {
	sheet := models.Sheet{Name: attrValue(start.Attr, "name")}

	row := 0
	for {
		token, err := decoder.Token()
		if err != nil {
			return sheet, err
		}
		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "table-header-rows", "table-rows", "table-row-group":
				// Grouping wrappers; their children are ordinary rows.
				continue
			case "table-row":
			default:
				if err := decoder.Skip(); err != nil {
					return sheet, err
				}
				continue
			}
			repeat := repeatCount(t.Attr, "number-rows-repeated")
			cells, err := parseRow(decoder)
			if err != nil {
				return sheet, err
			}
			for i := 0; i < repeat; i++ {
				row++
				for _, rc := range cells {
					ref, err := excelize.CoordinatesToCellName(rc.col, row)
					if err != nil {
						return sheet, err
					}
					sheet.Cells = append(sheet.Cells, models.Cell{
						Row:   row,
						Col:   rc.col,
						Ref:   ref,
						Value: rc.value,
					})
				}
			}
		case xml.EndElement:
			if t.Name.Local == "table" {
				return sheet, nil
			}
		}
	}
}

type rowCell struct {
	col   int
	value string
}

func parseRow(decoder *xml.Decoder) ([]rowCell, error) {
	var cells []rowCell
	col := 0
	for {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local != "table-cell" && t.Name.Local != "covered-table-cell" {
				if err := decoder.Skip(); err != nil {
					return nil, err
				}
				continue
			}
			repeat := repeatCount(t.Attr, "number-columns-repeated")
			value, err := cellText(decoder, t)
			if err != nil {
				return nil, err
			}
			for i := 0; i < repeat; i++ {
				col++
				if value != "" {
					cells = append(cells, rowCell{col: col, value: value})
				}
			}
		case xml.EndElement:
			if t.Name.Local == "table-row" {
				return cells, nil
			}
		}
	}
}

// cellText collects the character data of a cell's text paragraphs,
// joining multiple paragraphs with newlines. Encoded whitespace
// (text:s, text:tab, text:line-break) is expanded into the literal
// characters it stands for. When a cell carries no display text but
// has an office:value attribute, the attribute value is used instead.
func cellText(decoder *xml.Decoder, start xml.StartElement) (string, error) {
	var sb strings.Builder
	depth := 1
	inParagraph := 0
	paragraphs := 0
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return "", err
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "p":
				inParagraph++
				paragraphs++
				if paragraphs > 1 {
					sb.WriteString("\n")
				}
			case "s":
				if inParagraph > 0 {
					sb.WriteString(strings.Repeat(" ", repeatCount(t.Attr, "c")))
				}
			case "tab":
				if inParagraph > 0 {
					sb.WriteString("\t")
				}
			case "line-break":
				if inParagraph > 0 {
					sb.WriteString("\n")
				}
			}
		case xml.EndElement:
			depth--
			if t.Name.Local == "p" {
				inParagraph--
			}
		case xml.CharData:
			if inParagraph > 0 {
				sb.Write(t)
			}
		}
	}

	text := sb.String()
	if text == "" {
		text = attrValue(start.Attr, "value")
	}
	return text, nil
}

func attrValue(attrs []xml.Attr, local string) string {
	for _, a := range attrs {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func repeatCount(attrs []xml.Attr, local string) int {
	v := attrValue(attrs, local)
	if v == "" {
		return 1
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
