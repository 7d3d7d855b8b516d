package ui

// columns.go computes table column widths. Fixed columns are allocated first
// and flexible columns share what is left by ratio.

// ColumnSpec defines a table column with flexible or fixed width.
// Use FlexRatio for columns that should expand/contract with terminal width.
// Use FixedWidth for columns that should maintain constant width.
type ColumnSpec struct {
	Title      string
	MinWidth   int // 0 = no minimum
	FixedWidth int // if > 0, used as is and FlexRatio is ignored
	FlexRatio  int // relative share of the remaining width
}

// Column is a resolved column
type Column struct {
	Title string
	Width int
}

const (
	columnSpacing   = 1
	highlightPrefix = "  "
)

// RepoColumns returns the repository table layout
func RepoColumns() []ColumnSpec {
	return []ColumnSpec{
		{Title: "Name", FixedWidth: 15},
		{Title: "Stars", FixedWidth: 8},
		{Title: "Forks", FixedWidth: 8},
		{Title: "License", FixedWidth: 15},
		{Title: "Age", FixedWidth: 15},
		{Title: "Updated", FlexRatio: 1, MinWidth: 15},
	}
}

// CalculateColumns computes column widths from specs for a content width
// that excludes spacing and the highlight prefix.
func CalculateColumns(specs []ColumnSpec, totalWidth int) []Column {
	// First pass: fixed widths and the sum of flex ratios
	fixedTotal := 0
	flexTotal := 0
	for _, s := range specs {
		if s.FixedWidth > 0 {
			fixedTotal += s.FixedWidth
		} else {
			flexTotal += s.FlexRatio
		}
	}

	remaining := max(totalWidth-fixedTotal, 0)

	columns := make([]Column, len(specs))
	for i, s := range specs {
		var width int
		if s.FixedWidth > 0 {
			width = s.FixedWidth
		} else if flexTotal > 0 {
			width = remaining * s.FlexRatio / flexTotal
		}
		if s.MinWidth > 0 && width < s.MinWidth {
			width = s.MinWidth
		}
		columns[i] = Column{Title: s.Title, Width: width}
	}

	return columns
}

// tableColumns lays the repository columns out across a terminal width
func tableColumns(width int) []Column {
	specs := RepoColumns()
	content := width - len(highlightPrefix) - columnSpacing*(len(specs)-1)
	return CalculateColumns(specs, content)
}
