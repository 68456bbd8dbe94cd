// ABOUTME: Converts a loaded File into streamtable.Config, validating names against known values
// ABOUTME: Misspelt colors and actions get a "did you mean" hint from fuzzy matching

package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/mauromedda/streamtable/pkg/streamtable"
	"github.com/mauromedda/streamtable/pkg/tui/color"
	"github.com/mauromedda/streamtable/pkg/tui/fuzzy"
)

// DefaultColumns is the layout used when the config names no columns.
func DefaultColumns() []streamtable.Column {
	return []streamtable.Column{
		{Name: "time", Width: 12},
		{Name: "level", Width: 5},
		{Name: "message", Width: 80},
	}
}

// TableConfig validates f and builds the table configuration.
func (f *File) TableConfig() (streamtable.Config, error) {
	var cfg streamtable.Config

	cols, err := f.columns()
	if err != nil {
		return cfg, err
	}
	cfg.Columns = cols

	if f.MaxRows < 0 {
		return cfg, fmt.Errorf("%w: max_rows must be positive, got %d", ErrInvalid, f.MaxRows)
	}
	cfg.MaxRows = f.MaxRows

	if cfg.HeaderColor, err = parseColor(f.HeaderColor); err != nil {
		return cfg, fmt.Errorf("header_color: %w", err)
	}

	if f.PollInterval != "" {
		d, err := time.ParseDuration(f.PollInterval)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("%w: poll_interval %q is not a positive duration", ErrInvalid, f.PollInterval)
		}
		cfg.PollInterval = d
	}

	if cfg.Keymap, err = f.keymap(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Layout builds just the layout, for hot-swapping a running table.
func (f *File) Layout() (*streamtable.Layout, error) {
	cols, err := f.columns()
	if err != nil {
		return nil, err
	}
	header, err := parseColor(f.HeaderColor)
	if err != nil {
		return nil, fmt.Errorf("header_color: %w", err)
	}
	l, err := streamtable.NewLayout(cols, header)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return l, nil
}

func (f *File) columns() ([]streamtable.Column, error) {
	if len(f.Columns) == 0 {
		return DefaultColumns(), nil
	}
	cols := make([]streamtable.Column, len(f.Columns))
	for i, c := range f.Columns {
		if c.Name == "" {
			return nil, fmt.Errorf("%w: columns[%d]: missing name", ErrInvalid, i)
		}
		if c.Width <= 0 {
			return nil, fmt.Errorf("%w: columns[%d] (%s): missing or non-positive width", ErrInvalid, i, c.Name)
		}
		cols[i] = streamtable.Column{Name: c.Name, Width: c.Width}
	}
	return cols, nil
}

// parseColor accepts a base color name or a palette index; "" is no color.
func parseColor(s string) (color.Ref, error) {
	if s == "" {
		return color.Ref{}, nil
	}
	ref, ok := color.ParseRef(s)
	if !ok {
		return color.Ref{}, fmt.Errorf("%w: %q is not a color or an index in 0..255", ErrInvalid, s)
	}
	if ref.Name() != "" && !color.IsBaseColor(ref.Name()) {
		return color.Ref{}, fmt.Errorf("%w: unknown color %q%s (available: %s)",
			ErrInvalid, s, suggest(s, color.BaseNames()), color.AvailableColors())
	}
	return ref, nil
}

func (f *File) keymap() (*streamtable.Keymap, error) {
	km := streamtable.DefaultKeymap()
	if len(f.Keybindings) == 0 {
		return km, nil
	}

	names := make([]string, 0, len(streamtable.Actions()))
	for _, a := range streamtable.Actions() {
		names = append(names, string(a))
	}

	actions := make([]string, 0, len(f.Keybindings))
	for name := range f.Keybindings {
		actions = append(actions, name)
	}
	slices.Sort(actions)

	for _, name := range actions {
		a, err := streamtable.ParseAction(name)
		if err != nil {
			return nil, fmt.Errorf("%w: keybindings: %w%s", ErrInvalid, err, suggest(name, names))
		}
		if err := km.Bind(a, f.Keybindings[name]...); err != nil {
			return nil, fmt.Errorf("%w: keybindings: %w", ErrInvalid, err)
		}
	}

	// A key bound twice would silently go to the earlier action.
	if conflicts := km.Conflicts(); len(conflicts) > 0 {
		msgs := make([]string, len(conflicts))
		for i, c := range conflicts {
			names := make([]string, len(c.Actions))
			for j, a := range c.Actions {
				names[j] = string(a)
			}
			msgs[i] = fmt.Sprintf("%q is bound to %s", c.Key, strings.Join(names, " and "))
		}
		return nil, fmt.Errorf("%w: keybindings: %s", ErrInvalid, strings.Join(msgs, "; "))
	}
	return km, nil
}

func suggest(input string, candidates []string) string {
	if s, ok := fuzzy.Closest(input, candidates); ok {
		return fmt.Sprintf(" (did you mean %q?)", s)
	}
	return ""
}
