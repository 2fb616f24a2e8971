package models

// Sheet holds the normalized cells of one sheet in row-major scan order.
type Sheet struct {
	// Name is the sheet name as reported by the source document.
	Name string `json:"name"`
	// Cells contains the non-empty cells, row-major.
	Cells []Cell `json:"cells,omitempty"`
}
