// ABOUTME: VirtualSurface is an in-memory Surface: a grid of styled cells plus a scripted key queue
// ABOUTME: Tests read back what was drawn with Line, Cell and Lines

package terminal

import (
	"strings"
	"sync"

	"github.com/rivo/uniseg"

	"github.com/mauromedda/streamtable/pkg/tui/key"
	"github.com/mauromedda/streamtable/pkg/tui/width"
)

// Cell is one screen position on a VirtualSurface. The trailing half of a
// double-width character has empty Text.
type Cell struct {
	Text    string
	Slot    int
	Bold    bool
	Reverse bool
}

var blankCell = Cell{Text: " "}

// VirtualSurface implements Surface in memory.
type VirtualSurface struct {
	mu sync.Mutex

	width, height int
	grid          [][]Cell
	row, col      int

	pairs         map[int][2]uint8
	keys          []key.Key
	cursorVisible bool

	active    bool
	inits     int
	finis     int
	refreshes int

	initErr    error
	refreshErr error
}

// NewVirtualSurface returns a blank surface of the given size.
func NewVirtualSurface(width, height int) *VirtualSurface {
	v := &VirtualSurface{
		pairs:         make(map[int][2]uint8),
		cursorVisible: true,
	}
	v.resize(width, height)
	return v
}

func (v *VirtualSurface) resize(width, height int) {
	v.width, v.height = max(width, 0), max(height, 0)
	v.grid = make([][]Cell, v.height)
	for r := range v.grid {
		v.grid[r] = make([]Cell, v.width)
		for c := range v.grid[r] {
			v.grid[r][c] = blankCell
		}
	}
}

func (v *VirtualSurface) Init() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.initErr != nil {
		return v.initErr
	}
	v.active = true
	v.inits++
	return nil
}

func (v *VirtualSurface) Fini() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.active = false
	v.finis++
	return nil
}

func (v *VirtualSurface) InitPair(slot int, fg, bg uint8) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pairs[slot] = [2]uint8{fg, bg}
}

func (v *VirtualSurface) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()
	for r := range v.grid {
		for c := range v.grid[r] {
			v.grid[r][c] = blankCell
		}
	}
	v.row, v.col = 0, 0
}

func (v *VirtualSurface) MoveCursor(row, col int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.row, v.col = row, col
}

// WriteStyled places text at the cursor and advances it. Anything past the
// right edge is clipped.
func (v *VirtualSurface) WriteStyled(text string, slot int, bold, reverse bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.row < 0 || v.row >= v.height {
		return
	}
	line := v.grid[v.row]
	state := -1
	for text != "" {
		var cluster string
		cluster, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
		w := width.VisibleWidth(cluster)
		if w == 0 {
			continue
		}
		if v.col < 0 || v.col+w > v.width {
			v.col += w
			continue
		}
		line[v.col] = Cell{Text: cluster, Slot: slot, Bold: bold, Reverse: reverse}
		for i := 1; i < w; i++ {
			line[v.col+i] = Cell{Slot: slot, Bold: bold, Reverse: reverse}
		}
		v.col += w
	}
}

func (v *VirtualSurface) Refresh() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.refreshErr != nil {
		return v.refreshErr
	}
	v.refreshes++
	return nil
}

func (v *VirtualSurface) Size() (width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.width, v.height
}

func (v *VirtualSurface) ReadKey() (key.Key, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.keys) == 0 {
		return key.Key{}, false
	}
	k := v.keys[0]
	v.keys = v.keys[1:]
	return k, true
}

func (v *VirtualSurface) SetCursorVisible(visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cursorVisible = visible
}

// --- Test helpers (not part of Surface) ---

// Feed queues keys for ReadKey.
func (v *VirtualSurface) Feed(keys ...key.Key) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.keys = append(v.keys, keys...)
}

// Pending returns how many fed keys have not been read.
func (v *VirtualSurface) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.keys)
}

// SetSize resizes and blanks the grid.
func (v *VirtualSurface) SetSize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resize(width, height)
}

// Line returns row as text with trailing blanks trimmed.
func (v *VirtualSurface) Line(row int) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.line(row)
}

func (v *VirtualSurface) line(row int) string {
	if row < 0 || row >= v.height {
		return ""
	}
	var b strings.Builder
	for _, c := range v.grid[row] {
		b.WriteString(c.Text)
	}
	return strings.TrimRight(b.String(), " ")
}

// Lines returns every row as Line would.
func (v *VirtualSurface) Lines() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]string, v.height)
	for r := range out {
		out[r] = v.line(r)
	}
	return out
}

// CellAt returns the cell at row, col, or a blank cell when out of range.
func (v *VirtualSurface) CellAt(row, col int) Cell {
	v.mu.Lock()
	defer v.mu.Unlock()
	if row < 0 || row >= v.height || col < 0 || col >= v.width {
		return blankCell
	}
	return v.grid[row][col]
}

// Pair returns the colors bound to slot.
func (v *VirtualSurface) Pair(slot int) (fg, bg uint8, ok bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	p, ok := v.pairs[slot]
	return p[0], p[1], ok
}

// Active reports whether Init has been called without a matching Fini.
func (v *VirtualSurface) Active() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.active
}

// CursorVisible reports the last SetCursorVisible value.
func (v *VirtualSurface) CursorVisible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cursorVisible
}

// Refreshes returns how many Refresh calls succeeded.
func (v *VirtualSurface) Refreshes() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.refreshes
}

// Finis returns how many times Fini was called.
func (v *VirtualSurface) Finis() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.finis
}

// FailInit makes Init return err.
func (v *VirtualSurface) FailInit(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.initErr = err
}

// FailRefresh makes Refresh return err; nil clears it.
func (v *VirtualSurface) FailRefresh(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.refreshErr = err
}
