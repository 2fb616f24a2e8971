// Package models defines data structures shared by the spreadsheet
// back-ends and the compression core.
package models

// Cell is one non-empty cell in normalized form. Every back-end adapts
// its native representation to this before the core sees it.
type Cell struct {
	// Row is the 1-based row index Ref was derived from. The
	// compression core keys on Ref; Row and Col are kept for
	// consumers that want numeric coordinates without re-parsing
	// the reference.
	Row int `json:"row"`
	// Col is the 1-based column index Ref was derived from.
	Col int `json:"col"`
	// Ref is the A1-style cell reference, e.g. "B3".
	Ref string `json:"ref"`
	// Value is the raw cell content as text.
	Value string `json:"value"`
}
