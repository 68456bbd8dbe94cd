// ABOUTME: Cell is one table entry: a scalar value with an optional color, or a composite of scalars
// ABOUTME: NewCell converts loosely typed producer payloads; unknown colors degrade to no color

package streamtable

import (
	"fmt"
	"strings"

	"github.com/mauromedda/streamtable/pkg/tui/color"
	"github.com/mauromedda/streamtable/pkg/tui/width"
)

// Cell is immutable once built. A composite cell's color is always empty;
// color lives on its components.
type Cell struct {
	value      string
	color      color.Ref
	components []Cell
}

// Colored is the typed form of a {value, color} payload entry. Color
// accepts anything color.ParseRef does: a base color name, or an index.
type Colored struct {
	Value any
	Color any
}

// Scalar returns a leaf cell. The text is sanitised for single-line display.
func Scalar(value string, c color.Ref) Cell {
	return Cell{value: width.Sanitize(value), color: c}
}

// Composite returns a cell drawn as the given parts side by side. Nested
// composites are flattened.
func Composite(parts ...Cell) Cell {
	var comps []Cell
	for _, p := range parts {
		if p.IsComposite() {
			comps = append(comps, p.components...)
			continue
		}
		comps = append(comps, p)
	}
	if comps == nil {
		comps = []Cell{}
	}
	return Cell{components: comps}
}

// NewCell wraps a payload value. Accepted forms:
//
//   - nil: empty text
//   - Cell: used as is
//   - Colored, or a map with "value" and "color" keys: colored scalar
//   - []any, []Colored, []string: composite, one component per element
//   - anything else: scalar formatted with fmt
func NewCell(v any) Cell {
	switch x := v.(type) {
	case nil:
		return Cell{}
	case Cell:
		return x
	case Colored:
		return coloredCell(x.Value, x.Color)
	case *Colored:
		if x == nil {
			return Cell{}
		}
		return coloredCell(x.Value, x.Color)
	case map[string]any:
		return coloredCell(x["value"], x["color"])
	case map[string]string:
		return coloredCell(x["value"], x["color"])
	case []any:
		parts := make([]Cell, len(x))
		for i, e := range x {
			parts[i] = NewCell(e)
		}
		return Composite(parts...)
	case []Colored:
		parts := make([]Cell, len(x))
		for i, e := range x {
			parts[i] = coloredCell(e.Value, e.Color)
		}
		return Composite(parts...)
	case []string:
		parts := make([]Cell, len(x))
		for i, e := range x {
			parts[i] = Scalar(e, color.Ref{})
		}
		return Composite(parts...)
	}
	return Scalar(text(v), color.Ref{})
}

func coloredCell(value, c any) Cell {
	ref, _ := color.ParseRef(c)
	return Scalar(text(value), ref)
}

func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

// Value returns the cell text; for a composite, its components' text joined.
func (c Cell) Value() string {
	if c.components == nil {
		return c.value
	}
	var b strings.Builder
	for _, comp := range c.components {
		b.WriteString(comp.value)
	}
	return b.String()
}

// Color returns the cell's color; the zero Ref for composites.
func (c Cell) Color() color.Ref {
	return c.color
}

// IsComposite reports whether c was built from components.
func (c Cell) IsComposite() bool {
	return c.components != nil
}

// Components returns a copy of a composite's parts, nil for a scalar.
func (c Cell) Components() []Cell {
	if c.components == nil {
		return nil
	}
	out := make([]Cell, len(c.components))
	copy(out, c.components)
	return out
}
