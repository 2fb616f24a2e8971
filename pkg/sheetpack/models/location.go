package models

// Location identifies exactly one cell in the whole workbook.
// Immutable once produced.
type Location struct {
	// Sheet is the sheet name.
	Sheet string `json:"sheet"`
	// Ref is the A1-style cell reference within the sheet.
	Ref string `json:"ref"`
}
