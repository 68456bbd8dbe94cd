// ABOUTME: Cursor and scroll offset over the row buffer with minimal-motion scrolling
// ABOUTME: The body height is the terminal height minus the header and status lines

package streamtable

// reservedLines are the header row and the status line.
const reservedLines = 2

type viewport struct {
	cursor int
	offset int
	paused bool
}

// bodyHeight returns how many rows fit between header and status line.
func bodyHeight(termHeight int) int {
	return termHeight - reservedLines
}

// adjust scrolls just enough to keep the cursor within h visible rows.
// A height below one is treated as one.
func (v *viewport) adjust(h int) {
	h = max(h, 1)
	switch {
	case v.cursor < v.offset:
		v.offset = v.cursor
	case v.cursor >= v.offset+h:
		v.offset = v.cursor - h + 1
	}
}

// up moves the cursor one row toward the newest row.
func (v *viewport) up(h int) bool {
	if v.cursor <= 0 {
		return false
	}
	v.cursor--
	v.adjust(h)
	return true
}

// down moves the cursor one row toward the oldest row.
func (v *viewport) down(size, h int) bool {
	if v.cursor >= size-1 {
		return false
	}
	v.cursor++
	v.adjust(h)
	return true
}

// jump moves the cursor to pos clamped to the buffer.
func (v *viewport) jump(pos, size, h int) {
	v.cursor = max(min(pos, size-1), 0)
	v.adjust(h)
}

// shift follows the rows under the cursor after n rows were inserted above
// them, staying within size rows.
func (v *viewport) shift(n, size, h int) {
	v.cursor += n
	v.offset += n
	v.clamp(size, h)
}

// clamp keeps cursor and offset valid after the buffer or screen changed.
// The offset never leaves blank body rows that older rows could fill.
func (v *viewport) clamp(size, h int) {
	last := max(size-1, 0)
	v.cursor = min(v.cursor, last)
	v.offset = min(v.offset, max(size-max(h, 1), 0))
	v.adjust(h)
}

func (v *viewport) reset() {
	v.cursor, v.offset = 0, 0
}
