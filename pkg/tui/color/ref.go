// ABOUTME: Ref is a color reference: one of the eight symbolic names or a raw palette index
// ABOUTME: Pair slots bind every palette index to (fg=index, bg=black); slot 0 means no color

package color

import (
	"fmt"
	"strconv"
)

type refKind uint8

const (
	refNone refKind = iota
	refNamed
	refIndexed
)

// Ref references a palette color. The zero value means "no color".
type Ref struct {
	kind  refKind
	name  string
	index uint8
}

// Named returns a reference to a symbolic color. The name is not validated:
// an unknown name resolves to no color at render time.
func Named(name string) Ref {
	return Ref{kind: refNamed, name: normalizeName(name)}
}

// Index returns a reference to a raw palette index.
func Index(i uint8) Ref {
	return Ref{kind: refIndexed, index: i}
}

// IsZero reports whether r carries no color at all.
func (r Ref) IsZero() bool {
	return r.kind == refNone
}

// Name returns the symbolic name, or "" for indexed and empty references.
func (r Ref) Name() string {
	return r.name
}

// Resolve returns the palette index r refers to. Symbolic names resolve to
// their standard index. ok is false for the zero Ref and for unknown names.
func (r Ref) Resolve() (index uint8, ok bool) {
	switch r.kind {
	case refIndexed:
		return r.index, true
	case refNamed:
		base, found := baseColors[r.name]
		if !found {
			return 0, false
		}
		return base[0], true
	}
	return 0, false
}

// Slot returns the pair slot used to draw r, or 0 when r does not resolve.
func (r Ref) Slot() int {
	idx, ok := r.Resolve()
	if !ok {
		return 0
	}
	return SlotFor(idx)
}

// String renders r the way it would be written in a config file.
func (r Ref) String() string {
	switch r.kind {
	case refNamed:
		return r.name
	case refIndexed:
		return strconv.Itoa(int(r.index))
	}
	return ""
}

// ParseRef converts a loosely typed payload value into a Ref. Strings become
// symbolic names, or indices when they are numeric. Integers and whole floats
// in [0,255] become indices. Anything else yields ok == false.
func ParseRef(v any) (Ref, bool) {
	switch c := v.(type) {
	case nil:
		return Ref{}, false
	case Ref:
		return c, !c.IsZero()
	case string:
		if c == "" {
			return Ref{}, false
		}
		if n, err := strconv.Atoi(c); err == nil {
			return indexFromInt(n)
		}
		return Named(c), true
	case int:
		return indexFromInt(c)
	case int64:
		return indexFromInt(int(c))
	case uint8:
		return Index(c), true
	case float64:
		if c != float64(int(c)) {
			return Ref{}, false
		}
		return indexFromInt(int(c))
	case fmt.Stringer:
		return ParseRef(c.String())
	}
	return Ref{}, false
}

func indexFromInt(n int) (Ref, bool) {
	if n < 0 || n >= PaletteSize {
		return Ref{}, false
	}
	return Index(uint8(n)), true
}

// Pair binds a display slot to a foreground and background palette index.
type Pair struct {
	Slot int
	Fg   uint8
	Bg   uint8
}

// SlotFor returns the pair slot for palette index i. Slot 0 is reserved.
func SlotFor(i uint8) int {
	return int(i) + 1
}

// Pairs returns one pair per palette index: slot i+1 draws index i on black.
func Pairs() []Pair {
	pairs := make([]Pair, PaletteSize)
	for i := range PaletteSize {
		pairs[i] = Pair{Slot: SlotFor(uint8(i)), Fg: uint8(i), Bg: Black}
	}
	return pairs
}
