// ABOUTME: Display-width measurement of cell text using grapheme clusters and East Asian widths
// ABOUTME: Small LRU memo for non-ASCII strings; ASCII is measured by length

package width

import (
	"container/list"
	"sync"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const memoSize = 1024

type memoEntry struct {
	text  string
	cells int
}

// memo is an LRU of measured widths. Table rows are re-rendered on every
// frame, so the same non-ASCII values are measured over and over.
type memo struct {
	mu    sync.Mutex
	items map[string]*list.Element
	order *list.List
	limit int
}

func newMemo(limit int) *memo {
	return &memo{
		items: make(map[string]*list.Element, limit),
		order: list.New(),
		limit: limit,
	}
}

func (m *memo) lookup(s string) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	elem, ok := m.items[s]
	if !ok {
		return 0, false
	}
	m.order.MoveToFront(elem)
	return elem.Value.(memoEntry).cells, true
}

func (m *memo) store(s string, cells int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[s]; ok {
		return
	}
	if m.order.Len() >= m.limit {
		if back := m.order.Back(); back != nil {
			m.order.Remove(back)
			delete(m.items, back.Value.(memoEntry).text)
		}
	}
	m.items[s] = m.order.PushFront(memoEntry{text: s, cells: cells})
}

var widths = newMemo(memoSize)

// VisibleWidth returns the number of terminal cells s occupies. Escape
// sequences count as zero; wide graphemes (CJK, emoji) count as two.
func VisibleWidth(s string) int {
	if s == "" {
		return 0
	}
	if isPlainASCII(s) {
		return len(s)
	}
	if w, ok := widths.lookup(s); ok {
		return w
	}
	w := measure(StripANSI(s))
	widths.store(s, w)
	return w
}

// isPlainASCII reports whether s holds only printable ASCII.
func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}

func measure(s string) int {
	w := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		w += graphemeWidth(cluster)
	}
	return w
}

// graphemeWidth is the width of the cluster's leading rune.
func graphemeWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(cluster)
	return runewidth.RuneWidth(r)
}
