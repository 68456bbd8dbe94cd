// ABOUTME: Layout orders the table's columns and turns producer rows into cells in column order
// ABOUTME: The header row uses one color for every column name

package streamtable

import (
	"fmt"

	"github.com/mauromedda/streamtable/pkg/tui/color"
)

// Row is one producer record keyed by column name. The table never
// inspects or mutates a row after ingestion.
type Row map[string]any

// DefaultHeaderColor is used when a layout is built without one.
var DefaultHeaderColor = color.Named("white")

// Layout is immutable; swap it with Table.SetLayout.
type Layout struct {
	columns     []Column
	headerColor color.Ref
}

// NewLayout validates columns: at least one, each named, each with a
// positive width, no name used twice. A zero headerColor means white.
func NewLayout(columns []Column, headerColor color.Ref) (*Layout, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(columns))
	for i, col := range columns {
		if err := col.validate(); err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		if seen[col.Name] {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrInvalidConfig, col.Name)
		}
		seen[col.Name] = true
	}
	if headerColor.IsZero() {
		headerColor = DefaultHeaderColor
	}
	cols := make([]Column, len(columns))
	copy(cols, columns)
	return &Layout{columns: cols, headerColor: headerColor}, nil
}

// Columns returns a copy of the columns in display order.
func (l *Layout) Columns() []Column {
	out := make([]Column, len(l.columns))
	copy(out, l.columns)
	return out
}

func (l *Layout) HeaderColor() color.Ref { return l.headerColor }

// Width is the number of cells a full row occupies, separators included.
func (l *Layout) Width() int {
	w := 0
	for _, col := range l.columns {
		w += col.Width
	}
	return w + len(l.columns) - 1
}

// BuildCellsForRow returns one cell per column, in column order. Missing
// fields become empty cells.
func (l *Layout) BuildCellsForRow(row Row) []Cell {
	cells := make([]Cell, len(l.columns))
	for i, col := range l.columns {
		cells[i] = NewCell(row[col.Name])
	}
	return cells
}

// BuildHeaderRow returns one cell per column holding the column name.
func (l *Layout) BuildHeaderRow() []Cell {
	cells := make([]Cell, len(l.columns))
	for i, col := range l.columns {
		cells[i] = Scalar(col.Name, l.headerColor)
	}
	return cells
}

// formatRow fits each cell to its column.
func (l *Layout) formatRow(cells []Cell) [][]Segment {
	out := make([][]Segment, len(cells))
	for i, cell := range cells {
		out[i] = l.columns[i].FormatCell(cell)
	}
	return out
}
