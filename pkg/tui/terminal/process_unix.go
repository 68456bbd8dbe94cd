// ABOUTME: Unix SIGWINCH listener feeding ProcessTerminal resize callbacks
// ABOUTME: The listener goroutine exits when the stop channel closes

//go:build unix

package terminal

import (
	"os"
	"os/signal"
	"syscall"
)

func (t *ProcessTerminal) startResizeListener(stop <-chan struct{}) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)

	go func() {
		defer signal.Stop(sigCh)
		for {
			select {
			case <-stop:
				return
			case <-sigCh:
				t.notifyResize()
			}
		}
	}()
}
