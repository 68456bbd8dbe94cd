// ABOUTME: Column is a named, fixed-width field; FormatCell fits a Cell into it as colored segments
// ABOUTME: Scalars are cut with an ellipsis or padded; composites are cut at the overflowing part

package streamtable

import (
	"fmt"
	"strings"

	"github.com/mauromedda/streamtable/pkg/tui/color"
	"github.com/mauromedda/streamtable/pkg/tui/width"
)

// Column is immutable.
type Column struct {
	Name  string
	Width int
}

// Segment is a run of text drawn in one color.
type Segment struct {
	Text  string
	Color color.Ref
}

func (c Column) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: column name is empty", ErrInvalidConfig)
	}
	if c.Width <= 0 {
		return fmt.Errorf("%w: column %q: width must be positive, got %d", ErrInvalidConfig, c.Name, c.Width)
	}
	return nil
}

// FormatCell renders cell to exactly c.Width cells.
//
// A scalar longer than the column is cut to Width-1 cells plus an ellipsis;
// a shorter one is padded with spaces. Composite components keep their own
// text and color. The component that crosses the column edge is cut with an
// ellipsis, any after it are dropped, and a trailing uncolored segment pads
// a short composite.
func (c Column) FormatCell(cell Cell) []Segment {
	if !cell.IsComposite() {
		return []Segment{{Text: width.Fit(cell.value, c.Width), Color: cell.color}}
	}

	segs := make([]Segment, 0, len(cell.components)+1)
	used := 0
	for _, comp := range cell.components {
		room := c.Width - used
		if room <= 0 {
			break
		}
		w := width.VisibleWidth(comp.value)
		if w <= room {
			segs = append(segs, Segment{Text: comp.value, Color: comp.color})
			used += w
			continue
		}
		cut := width.Truncate(comp.value, room)
		segs = append(segs, Segment{Text: cut, Color: comp.color})
		used += width.VisibleWidth(cut)
		break
	}
	if used < c.Width {
		segs = append(segs, Segment{Text: strings.Repeat(" ", c.Width-used)})
	}
	return segs
}
