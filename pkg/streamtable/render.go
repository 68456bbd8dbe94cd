// ABOUTME: Frame composition: bold header, highlighted body rows and a full-width status line
// ABOUTME: Callers hold t.mu; every draw ends with one Refresh

package streamtable

import (
	"fmt"
	"strings"

	"github.com/mauromedda/streamtable/pkg/tui/width"
)

// rowStyle is the highlight for one body row.
type rowStyle struct {
	bold    bool
	reverse bool
}

// styleFor applies the fixed precedence: current and selected is bold and
// reverse, current alone is reverse, selected alone is bold.
func styleFor(current, selected bool) rowStyle {
	return rowStyle{bold: selected, reverse: current}
}

// render draws the whole frame. It is a no-op without a surface.
func (t *Table) render() error {
	s := t.surface
	if s == nil {
		return nil
	}
	w, h := s.Size()
	t.termHeight = h
	body := t.bodyHeight()
	t.view.clamp(t.buf.len(), body)

	s.Clear()
	header := t.layout.formatRow(t.layout.BuildHeaderRow())
	t.drawRow(0, header, rowStyle{bold: true}, w)

	for i := 0; i < body; i++ {
		pos := t.view.offset + i
		if pos >= t.buf.len() {
			break
		}
		e := t.buf.at(pos)
		style := styleFor(pos == t.view.cursor, t.sel.contains(e.seq))
		cells := t.layout.formatRow(t.layout.BuildCellsForRow(e.row))
		t.drawRow(i+1, cells, style, w)
	}

	t.drawFooter(w, h)
	return s.Refresh()
}

// renderFooter redraws only the status line.
func (t *Table) renderFooter() error {
	s := t.surface
	if s == nil {
		return nil
	}
	w, h := s.Size()
	t.drawFooter(w, h)
	return s.Refresh()
}

// drawRow writes formatted cells left to right, one blank cell between
// columns, clipping at the screen edge.
func (t *Table) drawRow(y int, cells [][]Segment, style rowStyle, screenWidth int) {
	x := 0
	for _, segs := range cells {
		if x >= screenWidth {
			return
		}
		t.surface.MoveCursor(y, x)
		for _, seg := range segs {
			room := screenWidth - x
			if room <= 0 {
				return
			}
			text := seg.Text
			w := width.VisibleWidth(text)
			if w > room {
				text = width.Truncate(text, room)
				w = width.VisibleWidth(text)
			}
			t.surface.WriteStyled(text, seg.Color.Slot(), style.bold, style.reverse)
			x += w
		}
		x++
	}
}

func (t *Table) statusLine() string {
	state := StateRunning
	if t.view.paused {
		state = StatePaused
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Status: %s | %d rows selected", state, t.sel.len())
	// Once the input loop has died the key hints are useless; show why.
	if t.loopErr != nil {
		fmt.Fprintf(&b, " | %v", t.loopErr)
		return b.String()
	}
	if help := t.keymap.Help(); help != "" {
		b.WriteString(" | ")
		b.WriteString(help)
	}
	return b.String()
}

func (t *Table) drawFooter(w, h int) {
	if h < 1 || w < 1 {
		return
	}
	t.surface.MoveCursor(h-1, 0)
	t.surface.WriteStyled(width.Fit(t.statusLine(), w), 0, false, false)
}
