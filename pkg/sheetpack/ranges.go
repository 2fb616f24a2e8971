package sheetpack

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/models"
)

type cellPoint struct {
	loc models.Location
	col int
	row int
}

// CompressLocations merges one category's cell locations into range
// expressions of the form "Sheet!Cell" or "Sheet!Start:End". A range
// extends only to its immediate sorted successor, down a column or
// across a row; no 2-D rectangle detection is attempted. On any
// internal failure the result degrades to one expression per location,
// in input order, so no location is ever lost or duplicated.
func CompressLocations(locs []models.Location) []string {
	ranges, _ := compressWithFallback(locs)
	return ranges
}

// compressWithFallback reports the internal error alongside the
// (possibly fallback) result so the aggregator can log it.
func compressWithFallback(locs []models.Location) ([]string, error) {
	ranges, err := compressLocations(locs)
	if err != nil {
		fallback := make([]string, len(locs))
		for i, loc := range locs {
			fallback[i] = loc.Sheet + "!" + loc.Ref
		}
		return fallback, err
	}
	return ranges, nil
}

func compressLocations(locs []models.Location) ([]string, error) {
	if len(locs) == 0 {
		return nil, nil
	}

	points := make([]cellPoint, len(locs))
	for i, loc := range locs {
		col, row, err := excelize.CellNameToCoordinates(loc.Ref)
		if err != nil {
			return nil, fmt.Errorf("cell reference %q: %w", loc.Ref, err)
		}
		points[i] = cellPoint{loc: loc, col: col, row: row}
	}

	sort.SliceStable(points, func(i, j int) bool {
		a, b := points[i], points[j]
		if a.loc.Sheet != b.loc.Sheet {
			return a.loc.Sheet < b.loc.Sheet
		}
		if a.col != b.col {
			return a.col < b.col
		}
		return a.row < b.row
	})

	var ranges []string
	start, end := points[0], points[0]

	flush := func() {
		if start.col == end.col && start.row == end.row {
			ranges = append(ranges, start.loc.Sheet+"!"+start.loc.Ref)
			return
		}
		ranges = append(ranges, start.loc.Sheet+"!"+start.loc.Ref+":"+end.loc.Ref)
	}

	for _, p := range points[1:] {
		switch {
		case p.loc.Sheet != start.loc.Sheet:
			// Ranges never span sheets.
			flush()
			start, end = p, p
		case p.col == end.col && p.row == end.row+1,
			p.row == end.row && p.col == end.col+1:
			end = p
		default:
			flush()
			start, end = p, p
		}
	}
	flush()

	return ranges, nil
}
