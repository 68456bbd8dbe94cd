// ABOUTME: Tests for NewCell payload conversion, composites and text sanitising

package streamtable

import (
	"testing"

	"github.com/mauromedda/streamtable/pkg/tui/color"
)

type stringer struct{ s string }

func (s stringer) String() string { return s.s }

func TestNewCell_Scalar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		in        any
		wantValue string
		wantColor color.Ref
	}{
		{name: "string", in: "Hello", wantValue: "Hello"},
		{name: "nil", in: nil, wantValue: ""},
		{name: "int", in: 42, wantValue: "42"},
		{name: "float", in: 1.5, wantValue: "1.5"},
		{name: "stringer", in: stringer{"ok"}, wantValue: "ok"},
		{name: "colored", in: Colored{Value: "Error", Color: "red"}, wantValue: "Error", wantColor: color.Named("red")},
		{name: "colored pointer", in: &Colored{Value: "x", Color: 196}, wantValue: "x", wantColor: color.Index(196)},
		{name: "map", in: map[string]any{"value": "Hi", "color": "blue"}, wantValue: "Hi", wantColor: color.Named("blue")},
		{name: "string map", in: map[string]string{"value": "Hi", "color": "12"}, wantValue: "Hi", wantColor: color.Index(12)},
		{name: "json number color", in: map[string]any{"value": 3, "color": float64(82)}, wantValue: "3", wantColor: color.Index(82)},
		{name: "map without color", in: map[string]any{"value": "plain"}, wantValue: "plain"},
		{name: "out of range index", in: Colored{Value: "v", Color: 300}, wantValue: "v"},
		{name: "control chars", in: "a\tb\x1b[31m\n", wantValue: "a b "},
		{name: "cell passthrough", in: Scalar("kept", color.Named("green")), wantValue: "kept", wantColor: color.Named("green")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := NewCell(tt.in)
			if c.IsComposite() {
				t.Fatalf("NewCell(%#v) is composite", tt.in)
			}
			if got := c.Value(); got != tt.wantValue {
				t.Errorf("Value() = %q, want %q", got, tt.wantValue)
			}
			if got := c.Color(); got != tt.wantColor {
				t.Errorf("Color() = %v, want %v", got, tt.wantColor)
			}
		})
	}
}

func TestNewCell_UnknownColorDrawsUncolored(t *testing.T) {
	t.Parallel()

	c := NewCell(Colored{Value: "odd", Color: "crimson"})
	if c.Value() != "odd" {
		t.Errorf("Value() = %q", c.Value())
	}
	if slot := c.Color().Slot(); slot != 0 {
		t.Errorf("unknown color resolved to slot %d, want 0", slot)
	}
}

func TestNewCell_Composite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		in         any
		wantValue  string
		wantColors []color.Ref
	}{
		{
			name:       "mixed list",
			in:         []any{Colored{Value: "ERR", Color: "red"}, ": ", map[string]any{"value": "disk", "color": "yellow"}},
			wantValue:  "ERR: disk",
			wantColors: []color.Ref{color.Named("red"), {}, color.Named("yellow")},
		},
		{
			name:       "colored slice",
			in:         []Colored{{Value: "a", Color: 1}, {Value: "b", Color: 2}},
			wantValue:  "ab",
			wantColors: []color.Ref{color.Index(1), color.Index(2)},
		},
		{
			name:       "string slice",
			in:         []string{"x", "y"},
			wantValue:  "xy",
			wantColors: []color.Ref{{}, {}},
		},
		{
			name:       "nested flattened",
			in:         []any{"a", []any{"b", "c"}},
			wantValue:  "abc",
			wantColors: []color.Ref{{}, {}, {}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := NewCell(tt.in)
			if !c.IsComposite() {
				t.Fatal("expected composite")
			}
			if !c.Color().IsZero() {
				t.Errorf("composite Color() = %v, want none", c.Color())
			}
			if got := c.Value(); got != tt.wantValue {
				t.Errorf("Value() = %q, want %q", got, tt.wantValue)
			}
			comps := c.Components()
			if len(comps) != len(tt.wantColors) {
				t.Fatalf("got %d components, want %d", len(comps), len(tt.wantColors))
			}
			for i, comp := range comps {
				if comp.Color() != tt.wantColors[i] {
					t.Errorf("component %d color = %v, want %v", i, comp.Color(), tt.wantColors[i])
				}
			}
		})
	}
}

func TestCell_ComponentsIsCopy(t *testing.T) {
	t.Parallel()

	c := Composite(Scalar("a", color.Ref{}), Scalar("b", color.Ref{}))
	comps := c.Components()
	comps[0] = Scalar("z", color.Ref{})
	if c.Value() != "ab" {
		t.Errorf("mutating Components() changed the cell: %q", c.Value())
	}
	if Scalar("s", color.Ref{}).Components() != nil {
		t.Error("scalar Components() should be nil")
	}
}

func TestComposite_Empty(t *testing.T) {
	t.Parallel()

	c := NewCell([]any{})
	if !c.IsComposite() || c.Value() != "" {
		t.Errorf("empty list = composite %v value %q", c.IsComposite(), c.Value())
	}
}
