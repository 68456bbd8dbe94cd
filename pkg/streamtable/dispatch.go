// ABOUTME: Key dispatch and the polling input loop that drives the table's actions
// ABOUTME: A failing or panicking action is shown on the status line and ends the loop only

package streamtable

import (
	"context"
	"fmt"
	"time"

	"github.com/mauromedda/streamtable/pkg/tui/key"
)

// Dispatch runs the action bound to k. Unbound keys are ignored. A panic
// inside the action is returned as an error.
func (t *Table) Dispatch(k key.Key) (err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	defer catchPanic(&err)

	a, ok := t.keymap.Lookup(k)
	if !ok {
		return nil
	}
	return t.perform(a)
}

// Perform runs a directly, as if its key had been pressed.
func (t *Table) Perform(a Action) (err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	defer catchPanic(&err)
	return t.perform(a)
}

func (t *Table) perform(a Action) error {
	switch a {
	case ActionQuit:
		t.exit.Store(true)
		return nil
	case ActionTogglePause:
		return t.togglePause()
	case ActionCursorUp:
		return t.navigateUp()
	case ActionCursorDown:
		if err := t.pause(); err != nil {
			return err
		}
		return t.navigateDown()
	case ActionToggleSelection:
		return t.toggleSelection()
	case ActionPageUp:
		return t.jump(t.view.cursor - max(t.bodyHeight(), 1))
	case ActionPageDown:
		if err := t.pause(); err != nil {
			return err
		}
		return t.jump(t.view.cursor + max(t.bodyHeight(), 1))
	case ActionTop:
		return t.jump(0)
	case ActionBottom:
		if err := t.pause(); err != nil {
			return err
		}
		return t.jump(t.buf.len() - 1)
	}
	return fmt.Errorf("unknown action %q", a)
}

func catchPanic(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("panic: %v", r)
	}
}

// inputLoop polls for keys every t.poll until the exit flag is set, ctx is
// cancelled, or an action fails.
func (t *Table) inputLoop(ctx context.Context) {
	defer close(t.done)

	ticker := time.NewTicker(t.poll)
	defer ticker.Stop()

	for !t.exit.Load() {
		if err := t.drainKeys(); err != nil {
			t.fail(err)
			return
		}
		select {
		case <-ctx.Done():
			t.exit.Store(true)
			return
		case <-ticker.C:
		}
	}
}

// drainKeys dispatches every pending key, stopping early on quit.
func (t *Table) drainKeys() error {
	for !t.exit.Load() {
		k, ok, err := t.readKey()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := t.Dispatch(k); err != nil {
			return fmt.Errorf("key %s: %w", k, err)
		}
	}
	return nil
}

func (t *Table) readKey() (k key.Key, ok bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	defer catchPanic(&err)

	if t.surface == nil {
		return key.Key{}, false, nil
	}
	k, ok = t.surface.ReadKey()
	return k, ok, nil
}

// fail records err and shows it on the status line.
func (t *Table) fail(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.loopErr = fmt.Errorf("input loop: %w", err)
	_ = t.safeRenderFooter()
}

func (t *Table) safeRenderFooter() (err error) {
	defer catchPanic(&err)
	return t.renderFooter()
}
