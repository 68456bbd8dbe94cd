// ABOUTME: ANSISurface draws on a Terminal with ANSI escapes styled through lipgloss
// ABOUTME: Writes are buffered and flushed on Refresh inside a synchronized-output block

package terminal

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mauromedda/streamtable/pkg/tui/color"
	"github.com/mauromedda/streamtable/pkg/tui/input"
	"github.com/mauromedda/streamtable/pkg/tui/key"
)

const (
	escAltScreenOn  = "\x1b[?1049h"
	escAltScreenOff = "\x1b[?1049l"
	escSyncStart    = "\x1b[?2026h"
	escSyncEnd      = "\x1b[?2026l"
	escClear        = "\x1b[2J"
	escCursorShow   = "\x1b[?25h"
	escCursorHide   = "\x1b[?25l"
	escReset        = "\x1b[0m"
)

// ANSISurface implements Surface for a real (or virtual) Terminal.
type ANSISurface struct {
	term     Terminal
	keys     *input.Reader
	renderer *lipgloss.Renderer

	buf   bytes.Buffer
	pairs [color.PaletteSize + 1]*color.Pair
	// styles caches one lipgloss style per (slot, bold, reverse).
	styles map[styleKey]lipgloss.Style

	// mu guards the size, which the resize callback updates.
	mu     sync.Mutex
	width  int
	height int

	active bool
}

type styleKey struct {
	slot    int
	bold    bool
	reverse bool
}

// NewANSISurface returns a surface drawing to t and reading keys from in.
// Colors are emitted as 256-color SGR sequences regardless of what the
// environment advertises.
func NewANSISurface(t Terminal, in io.Reader) *ANSISurface {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI256)
	return &ANSISurface{
		term:     t,
		keys:     input.NewReader(in, input.DefaultDepth),
		renderer: r,
		styles:   make(map[styleKey]lipgloss.Style),
	}
}

// Init enters raw mode and the alternate screen and starts reading keys.
func (s *ANSISurface) Init() error {
	if s.active {
		return nil
	}
	if err := s.term.EnterRawMode(); err != nil {
		return fmt.Errorf("initialising surface: %w", err)
	}
	w, h, err := s.term.Size()
	if err != nil {
		_ = s.term.ExitRawMode()
		return fmt.Errorf("initialising surface: %w", err)
	}
	s.setSize(w, h)
	s.term.OnResize(s.setSize)

	if _, err := s.term.Write([]byte(escAltScreenOn + escClear)); err != nil {
		_ = s.term.ExitRawMode()
		return fmt.Errorf("initialising surface: %w", err)
	}
	s.keys.Start()
	s.active = true
	return nil
}

// Fini leaves the alternate screen, shows the cursor and restores the
// terminal mode. It is safe to call more than once.
func (s *ANSISurface) Fini() error {
	if !s.active {
		return nil
	}
	s.active = false
	s.keys.Close()
	s.buf.Reset()

	_, werr := s.term.Write([]byte(escReset + escCursorShow + escAltScreenOff))
	rerr := s.term.ExitRawMode()
	if werr != nil {
		return fmt.Errorf("finalising surface: %w", werr)
	}
	if rerr != nil {
		return fmt.Errorf("finalising surface: %w", rerr)
	}
	return nil
}

// InitPair binds slot to fg on bg. Slots outside 1..256 are ignored.
func (s *ANSISurface) InitPair(slot int, fg, bg uint8) {
	if slot < 1 || slot > color.PaletteSize {
		return
	}
	s.pairs[slot] = &color.Pair{Slot: slot, Fg: fg, Bg: bg}
	for k := range s.styles {
		if k.slot == slot {
			delete(s.styles, k)
		}
	}
}

func (s *ANSISurface) Clear() {
	s.buf.WriteString(escClear)
}

// MoveCursor positions the cursor at a zero-based row and column.
func (s *ANSISurface) MoveCursor(row, col int) {
	fmt.Fprintf(&s.buf, "\x1b[%d;%dH", row+1, col+1)
}

// WriteStyled writes text at the cursor. Slot 0, or a slot never passed to
// InitPair, draws in the terminal's default colors.
func (s *ANSISurface) WriteStyled(text string, slot int, bold, reverse bool) {
	if text == "" {
		return
	}
	if slot == 0 && !bold && !reverse {
		s.buf.WriteString(text)
		return
	}
	s.buf.WriteString(s.style(slot, bold, reverse).Render(text))
}

func (s *ANSISurface) style(slot int, bold, reverse bool) lipgloss.Style {
	k := styleKey{slot: slot, bold: bold, reverse: reverse}
	if st, ok := s.styles[k]; ok {
		return st
	}
	st := s.renderer.NewStyle().Bold(bold).Reverse(reverse)
	if slot >= 1 && slot <= color.PaletteSize && s.pairs[slot] != nil {
		p := s.pairs[slot]
		st = st.
			Foreground(lipgloss.Color(strconv.Itoa(int(p.Fg)))).
			Background(lipgloss.Color(strconv.Itoa(int(p.Bg))))
	}
	s.styles[k] = st
	return st
}

// Refresh flushes buffered output as one synchronized frame.
func (s *ANSISurface) Refresh() error {
	if s.buf.Len() == 0 {
		return nil
	}
	frame := make([]byte, 0, s.buf.Len()+len(escSyncStart)+len(escSyncEnd))
	frame = append(frame, escSyncStart...)
	frame = append(frame, s.buf.Bytes()...)
	frame = append(frame, escSyncEnd...)
	s.buf.Reset()

	if _, err := s.term.Write(frame); err != nil {
		return fmt.Errorf("refreshing surface: %w", err)
	}
	return nil
}

// Size returns the most recently observed terminal size.
func (s *ANSISurface) Size() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *ANSISurface) setSize(width, height int) {
	s.mu.Lock()
	s.width, s.height = width, height
	s.mu.Unlock()
}

// ReadKey returns the next queued key without blocking.
func (s *ANSISurface) ReadKey() (key.Key, bool) {
	return s.keys.Next()
}

func (s *ANSISurface) SetCursorVisible(visible bool) {
	if visible {
		s.buf.WriteString(escCursorShow)
		return
	}
	s.buf.WriteString(escCursorHide)
}
