package sheetpack

import (
	"strings"

	"go.uber.org/zap"

	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/models"
)

// bucketSheet walks one sheet's cells in row-major order and appends
// each non-empty cell's location to its category bucket. Bucket lists
// keep insertion order and are never deduplicated. Blankness is
// checked on the value itself, not on the category string, so a cell
// whose literal text is "Empty" still forms its own category.
func (c *Compressor) bucketSheet(sheet models.Sheet, grouped map[string][]models.Location) {
	for _, cell := range sheet.Cells {
		if strings.TrimSpace(cell.Value) == "" {
			continue
		}
		category := c.classifier.Classify(cell.Value)
		grouped[category] = append(grouped[category], models.Location{
			Sheet: sheet.Name,
			Ref:   cell.Ref,
		})
	}
}

// summarize buckets every sheet, merging same-named categories across
// sheets in sheet-scan order, then compresses each category's locations
// independently. A category whose compression fails internally degrades
// to one expression per location; the failure is logged, never
// propagated. Categories with no surviving locations are omitted.
func (c *Compressor) summarize(sheets []models.Sheet) Summary {
	grouped := make(map[string][]models.Location)
	for _, sheet := range sheets {
		c.log.Debug("processing sheet",
			zap.String("sheet", sheet.Name),
			zap.Int("cells", len(sheet.Cells)))
		c.bucketSheet(sheet, grouped)
	}

	result := make(Summary, len(grouped))
	for category, locs := range grouped {
		ranges, err := compressWithFallback(locs)
		if err != nil {
			c.log.Error("compressing cell references",
				zap.String("category", category),
				zap.Error(err))
		}
		result[category] = ranges
	}
	return result
}
