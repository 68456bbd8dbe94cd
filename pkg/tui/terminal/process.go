// ABOUTME: ProcessTerminal implements Terminal over real file descriptors using golang.org/x/term
// ABOUTME: Raw mode is applied to the input fd; size is read from the output fd

package terminal

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"
)

// ProcessTerminal is a real terminal backed by an input and output file,
// normally os.Stdin and os.Stdout.
type ProcessTerminal struct {
	in  *os.File
	out *os.File

	mu       sync.Mutex
	oldState *term.State
	resizeFn func(width, height int)
	stopCh   chan struct{}
}

// NewProcessTerminal returns a ProcessTerminal reading keys from in and
// drawing to out.
func NewProcessTerminal(in, out *os.File) *ProcessTerminal {
	return &ProcessTerminal{in: in, out: out}
}

// EnterRawMode switches the input fd to raw mode, saving the previous state.
func (t *ProcessTerminal) EnterRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.oldState != nil {
		return nil
	}
	state, err := term.MakeRaw(int(t.in.Fd()))
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	t.oldState = state
	return nil
}

// ExitRawMode restores the saved state and stops resize notifications.
func (t *ProcessTerminal) ExitRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopCh != nil {
		close(t.stopCh)
		t.stopCh = nil
	}
	if t.oldState == nil {
		return nil
	}
	if err := term.Restore(int(t.in.Fd()), t.oldState); err != nil {
		return fmt.Errorf("exiting raw mode: %w", err)
	}
	t.oldState = nil
	return nil
}

// Size returns the current dimensions of the output terminal.
func (t *ProcessTerminal) Size() (width, height int, err error) {
	w, h, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("getting terminal size: %w", err)
	}
	return w, h, nil
}

// Write sends bytes to the output file.
func (t *ProcessTerminal) Write(p []byte) (int, error) {
	n, err := t.out.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to terminal: %w", err)
	}
	return n, nil
}

// OnResize registers a callback invoked with the new size whenever the
// terminal is resized, until ExitRawMode.
func (t *ProcessTerminal) OnResize(fn func(width, height int)) {
	t.mu.Lock()
	t.resizeFn = fn
	start := t.stopCh == nil
	if start {
		t.stopCh = make(chan struct{})
	}
	stop := t.stopCh
	t.mu.Unlock()

	if start {
		t.startResizeListener(stop)
	}
}

func (t *ProcessTerminal) notifyResize() {
	t.mu.Lock()
	fn := t.resizeFn
	t.mu.Unlock()
	if fn == nil {
		return
	}
	w, h, err := t.Size()
	if err != nil {
		return
	}
	fn(w, h)
}
