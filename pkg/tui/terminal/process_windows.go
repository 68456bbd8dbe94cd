// ABOUTME: Windows stub for ProcessTerminal resize handling
// ABOUTME: There is no SIGWINCH; the size read at Init is kept

//go:build windows

package terminal

func (t *ProcessTerminal) startResizeListener(stop <-chan struct{}) {}
