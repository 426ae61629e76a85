package ui

// ColumnCount is the closed set of table shapes a breakpoint may select.
type ColumnCount int

const (
	ColumnCountTwo ColumnCount = iota
	ColumnCountThree
	ColumnCountFour
)

// Count returns the number of displayed columns.
func (c ColumnCount) Count() int {
	switch c {
	case ColumnCountTwo:
		return 2
	case ColumnCountFour:
		return 4
	default:
		return 3
	}
}

// columnData is one table shape: a column count and the nominal width of
// each displayed column.
type columnData struct {
	count  ColumnCount
	widths []int
}

// breakpoint maps a minimum terminal width to a table shape. Every factory
// registers a zero-width breakpoint so any positive width matches.
type breakpoint struct {
	minWidth int
	columns  columnData
}

// resolveColumns picks the active shape for the given width: breakpoints are
// scanned in ascending minWidth order and the last one whose minWidth is
// strictly below the width wins. Leftover space beyond the nominal widths is
// spread evenly between columns; when even minimal gaps don't fit, spacing
// collapses to zero and the drawing layer clips.
func resolveColumns(breakpoints []breakpoint, width int) (ColumnCount, []int, int) {
	count := ColumnCountThree
	var widths []int
	spacing := 0

	for _, bp := range breakpoints {
		if bp.minWidth >= width {
			continue
		}
		count = bp.columns.count
		widths = bp.columns.widths

		total := 0
		for _, w := range widths {
			total += w
		}
		if width < total-count.Count() {
			spacing = 0
		} else if s := (width - total) / count.Count(); s > 0 {
			spacing = s
		} else {
			spacing = 0
		}
	}

	return count, widths, spacing
}

// projectCells applies the column-count reduction policy: at two columns the
// middle of the three logical columns is dropped, never the first or last.
func projectCells(count ColumnCount, cells []string) []string {
	switch count {
	case ColumnCountTwo:
		return []string{cells[0], cells[2]}
	case ColumnCountFour:
		return []string{cells[0], cells[1], cells[2], cells[3]}
	default:
		return []string{cells[0], cells[1], cells[2]}
	}
}
