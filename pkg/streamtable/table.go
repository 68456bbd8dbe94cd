// ABOUTME: Table is a live, bounded, newest-first table drawn on a terminal Surface
// ABOUTME: One mutex guards buffer, viewport, selection and every surface call

package streamtable

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mauromedda/streamtable/pkg/tui/color"
	"github.com/mauromedda/streamtable/pkg/tui/terminal"
)

// DefaultPollInterval is how often the input loop checks for keys.
const DefaultPollInterval = 100 * time.Millisecond

// Config holds construction parameters. Only Columns is required.
type Config struct {
	Columns      []Column
	MaxRows      int           // 0 means DefaultMaxRows
	HeaderColor  color.Ref     // zero means white
	Keymap       *Keymap       // nil means DefaultKeymap
	PollInterval time.Duration // 0 means DefaultPollInterval
}

// State is the table's position in its pause state machine.
type State int

const (
	StateRunning State = iota
	StatePaused
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "RUNNING"
	case StatePaused:
		return "PAUSED"
	case StateStopped:
		return "STOPPED"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Table streams rows onto a terminal.Surface. Ingest may be called from any
// goroutine; the input loop started by Start is the only other writer.
type Table struct {
	mu      sync.Mutex
	layout  *Layout
	keymap  *Keymap
	poll    time.Duration
	buf     *rowBuffer
	view    viewport
	sel     selection
	surface terminal.Surface
	// termHeight is the surface height seen by the last render.
	termHeight int

	started   bool
	stopped   bool
	renderErr error
	loopErr   error

	exit atomic.Bool
	done chan struct{}
}

// New validates cfg and returns a table that draws nothing until Start.
func New(cfg Config) (*Table, error) {
	layout, err := NewLayout(cfg.Columns, cfg.HeaderColor)
	if err != nil {
		return nil, err
	}
	maxRows := cfg.MaxRows
	switch {
	case maxRows == 0:
		maxRows = DefaultMaxRows
	case maxRows < 0:
		return nil, fmt.Errorf("%w: max rows must be positive, got %d", ErrInvalidConfig, maxRows)
	}
	if cfg.PollInterval < 0 {
		return nil, fmt.Errorf("%w: poll interval must not be negative", ErrInvalidConfig)
	}
	poll := cfg.PollInterval
	if poll == 0 {
		poll = DefaultPollInterval
	}
	km := DefaultKeymap()
	if cfg.Keymap != nil {
		km = cfg.Keymap.Clone()
	}

	return &Table{
		layout: layout,
		keymap: km,
		poll:   poll,
		buf:    newRowBuffer(maxRows),
		sel:    newSelection(),
		done:   make(chan struct{}),
	}, nil
}

// Start takes over s: it initialises the surface, binds the 256 color
// pairs, hides the cursor, draws the first frame and starts the input loop.
// The loop ends on quit, on ctx cancellation, on Stop, or on an action
// failure; Done is closed when it has ended.
func (t *Table) Start(ctx context.Context, s terminal.Surface) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return ErrAlreadyStarted
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("starting table: %w", err)
	}
	for _, p := range color.Pairs() {
		s.InitPair(p.Slot, p.Fg, p.Bg)
	}
	s.SetCursorVisible(false)

	t.surface = s
	if err := t.render(); err != nil {
		t.surface = nil
		return errors.Join(fmt.Errorf("starting table: %w", err), s.Fini())
	}
	t.started = true
	go t.inputLoop(ctx)
	return nil
}

// Stop ends the input loop, waits for it, and releases the surface. It
// returns the surface's teardown error joined with the first render error
// hit while ingesting in the background. Calling Stop again returns nil.
func (t *Table) Stop() error {
	t.mu.Lock()
	if !t.started {
		t.mu.Unlock()
		return ErrNotStarted
	}
	if t.stopped {
		t.mu.Unlock()
		return nil
	}
	t.stopped = true
	t.mu.Unlock()

	t.exit.Store(true)
	<-t.done

	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.surface
	t.surface = nil
	var finiErr error
	if err := s.Fini(); err != nil {
		finiErr = fmt.Errorf("stopping table: %w", err)
	}
	return errors.Join(t.renderErr, finiErr)
}

// Done is closed once the input loop has ended.
func (t *Table) Done() <-chan struct{} {
	return t.done
}

// Err returns the failure that ended the input loop, if any.
func (t *Table) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loopErr
}

// Ingest prepends row, evicting the oldest row when the buffer is full. It
// does nothing before Start or after Stop. While paused the row is stored
// but the screen is left alone, and the cursor stays on the row it was on.
func (t *Table) Ingest(row Row) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.surface == nil {
		return
	}
	if t.buf.push(row) {
		t.sel.prune(t.buf.oldestSeq())
	}
	if t.view.paused {
		t.view.shift(1, t.buf.len(), t.bodyHeight())
		return
	}
	if err := t.render(); err != nil && t.renderErr == nil {
		t.renderErr = err
	}
}

// SetLayout swaps the layout and redraws immediately when started.
func (t *Table) SetLayout(l *Layout) error {
	if l == nil {
		return fmt.Errorf("%w: nil layout", ErrInvalidConfig)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.layout = l
	return t.render()
}

// Layout returns the current layout.
func (t *Table) Layout() *Layout {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.layout
}

// Keymap returns a copy of the table's bindings.
func (t *Table) Keymap() *Keymap {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.keymap.Clone()
}

// Render redraws the whole frame.
func (t *Table) Render() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.render()
}

// Rows returns a snapshot of the buffer, newest first.
func (t *Table) Rows() []Row {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buf.rows(0, t.buf.len())
}

// Len returns the number of buffered rows.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buf.len()
}

// Cursor returns the buffer position of the highlighted row.
func (t *Table) Cursor() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view.cursor
}

// Offset returns the buffer position drawn on the first body line.
func (t *Table) Offset() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view.offset
}

// Paused reports whether ingestion renders are suspended.
func (t *Table) Paused() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view.paused
}

// State reports Running, Paused, or Stopped once quit or Stop was seen.
func (t *Table) State() State {
	if t.exit.Load() {
		return StateStopped
	}
	if t.Paused() {
		return StatePaused
	}
	return StateRunning
}

// Selected returns the current positions of the selected rows, ascending.
func (t *Table) Selected() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sel.positions(t.buf)
}

// SelectedRows returns the selected rows, newest first.
func (t *Table) SelectedRows() []Row {
	t.mu.Lock()
	defer t.mu.Unlock()
	pos := t.sel.positions(t.buf)
	out := make([]Row, len(pos))
	for i, p := range pos {
		out[i] = t.buf.at(p).row
	}
	return out
}

// NavigateUp moves the cursor one row up and redraws. It is a no-op on
// the first row.
func (t *Table) NavigateUp() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.navigateUp()
}

// NavigateDown moves the cursor one row down and redraws. It is a no-op on
// the last row.
func (t *Table) NavigateDown() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.navigateDown()
}

// ToggleSelection flips the selection of the row under the cursor.
func (t *Table) ToggleSelection() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.toggleSelection()
}

// TogglePause switches between running and paused. Resuming moves the
// cursor and scroll back to the top and clears the selection.
func (t *Table) TogglePause() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.togglePause()
}

func (t *Table) bodyHeight() int {
	return bodyHeight(t.termHeight)
}

func (t *Table) navigateUp() error {
	if !t.view.up(t.bodyHeight()) {
		return nil
	}
	return t.render()
}

func (t *Table) navigateDown() error {
	if !t.view.down(t.buf.len(), t.bodyHeight()) {
		return nil
	}
	return t.render()
}

func (t *Table) toggleSelection() error {
	if t.buf.len() > 0 {
		t.sel.toggle(t.buf.seqAt(t.view.cursor))
	}
	return t.render()
}

func (t *Table) togglePause() error {
	if !t.view.paused {
		t.view.paused = true
		return t.renderFooter()
	}
	t.view.paused = false
	t.view.reset()
	t.sel.clear()
	return t.render()
}

// pause freezes the view if it is running.
func (t *Table) pause() error {
	if t.view.paused {
		return nil
	}
	return t.togglePause()
}

func (t *Table) jump(pos int) error {
	if t.buf.len() == 0 {
		return nil
	}
	t.view.jump(pos, t.buf.len(), t.bodyHeight())
	return t.render()
}
