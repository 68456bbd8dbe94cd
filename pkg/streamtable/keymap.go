// ABOUTME: Keymap binds key tokens ("q", "space", "down", "ctrl+c") to a closed set of table actions
// ABOUTME: O(1) key lookup, conflict detection, and status-line help derived from the bindings

package streamtable

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mauromedda/streamtable/pkg/tui/key"
)

// Action is something a key press can make the table do.
type Action string

const (
	ActionQuit            Action = "quit"
	ActionTogglePause     Action = "toggle_pause"
	ActionCursorUp        Action = "cursor_up"
	ActionCursorDown      Action = "cursor_down"
	ActionToggleSelection Action = "toggle_selection"
	ActionPageUp          Action = "page_up"
	ActionPageDown        Action = "page_down"
	ActionTop             Action = "top"
	ActionBottom          Action = "bottom"
)

// actionOrder is the canonical order; on a conflict the earlier action wins.
var actionOrder = []Action{
	ActionQuit,
	ActionTogglePause,
	ActionCursorUp,
	ActionCursorDown,
	ActionToggleSelection,
	ActionPageUp,
	ActionPageDown,
	ActionTop,
	ActionBottom,
}

var defaultBindings = map[Action][]string{
	ActionQuit:            {"q"},
	ActionTogglePause:     {"p"},
	ActionCursorUp:        {"up"},
	ActionCursorDown:      {"down"},
	ActionToggleSelection: {"space"},
	ActionPageUp:          {"pgup"},
	ActionPageDown:        {"pgdown"},
	ActionTop:             {"home"},
	ActionBottom:          {"end"},
}

// Actions returns every action in canonical order.
func Actions() []Action {
	return slices.Clone(actionOrder)
}

// ParseAction returns the action with the given name.
func ParseAction(name string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(name)))
	if slices.Contains(actionOrder, a) {
		return a, nil
	}
	return "", fmt.Errorf("unknown action %q", name)
}

// Conflict describes a key bound to more than one action.
type Conflict struct {
	Key     string
	Actions []Action
}

// Keymap is not safe for concurrent mutation; a table takes its own copy.
type Keymap struct {
	bindings map[Action][]key.Key
	lookup   map[key.Key]Action
}

// NewKeymap returns a keymap with nothing bound.
func NewKeymap() *Keymap {
	return &Keymap{
		bindings: make(map[Action][]key.Key),
		lookup:   make(map[key.Key]Action),
	}
}

// DefaultKeymap returns the stock bindings: q quits, p pauses, arrows move,
// space selects, page and home/end keys jump.
func DefaultKeymap() *Keymap {
	m := NewKeymap()
	for _, a := range actionOrder {
		if err := m.Bind(a, defaultBindings[a]...); err != nil {
			panic(fmt.Sprintf("streamtable: default binding for %s: %v", a, err))
		}
	}
	return m
}

// Bind replaces the keys bound to a. Binding no tokens unbinds a.
func (m *Keymap) Bind(a Action, tokens ...string) error {
	if !slices.Contains(actionOrder, a) {
		return fmt.Errorf("binding %q: unknown action", a)
	}
	keys := make([]key.Key, 0, len(tokens))
	for _, tok := range tokens {
		k, err := key.ParseToken(tok)
		if err != nil {
			return fmt.Errorf("binding %s: %w", a, err)
		}
		if !slices.Contains(keys, k) {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		delete(m.bindings, a)
	} else {
		m.bindings[a] = keys
	}
	m.buildLookup()
	return nil
}

func (m *Keymap) buildLookup() {
	m.lookup = make(map[key.Key]Action, len(m.bindings)*2)
	for _, a := range actionOrder {
		for _, k := range m.bindings[a] {
			if _, taken := m.lookup[k]; !taken {
				m.lookup[k] = a
			}
		}
	}
}

// Lookup returns the action bound to k.
func (m *Keymap) Lookup(k key.Key) (Action, bool) {
	a, ok := m.lookup[k]
	return a, ok
}

// Keys returns the keys bound to a.
func (m *Keymap) Keys(a Action) []key.Key {
	return slices.Clone(m.bindings[a])
}

// Tokens returns the canonical tokens bound to a.
func (m *Keymap) Tokens(a Action) []string {
	keys := m.bindings[a]
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.Token()
	}
	return out
}

// Conflicts lists keys bound to several actions, sorted by key token.
func (m *Keymap) Conflicts() []Conflict {
	byKey := make(map[key.Key][]Action)
	for _, a := range actionOrder {
		for _, k := range m.bindings[a] {
			byKey[k] = append(byKey[k], a)
		}
	}
	var out []Conflict
	for k, actions := range byKey {
		if len(actions) > 1 {
			out = append(out, Conflict{Key: k.Token(), Actions: actions})
		}
	}
	slices.SortFunc(out, func(a, b Conflict) int { return strings.Compare(a.Key, b.Key) })
	return out
}

// Clone returns an independent copy.
func (m *Keymap) Clone() *Keymap {
	c := NewKeymap()
	for a, keys := range m.bindings {
		c.bindings[a] = slices.Clone(keys)
	}
	c.buildLookup()
	return c
}

var helpPhrases = []struct {
	action Action
	phrase string
}{
	{ActionTogglePause, "to pause/unpause"},
	{ActionToggleSelection, "to select"},
	{ActionQuit, "to quit"},
}

// Help returns the status-line hint, e.g.
// "Press 'p' to pause/unpause, 'space' to select, 'q' to quit".
func (m *Keymap) Help() string {
	var parts []string
	for _, h := range helpPhrases {
		keys := m.bindings[h.action]
		if len(keys) == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("'%s' %s", keys[0].Token(), h.phrase))
	}
	if len(parts) == 0 {
		return ""
	}
	return "Press " + strings.Join(parts, ", ")
}
