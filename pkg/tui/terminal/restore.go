// ABOUTME: RestoreOnPanic and RecoverGoroutine hand the display back before a panic is reported
// ABOUTME: Deferred at the top of main and of goroutines that run while a Surface is initialised

package terminal

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

// Finisher is the part of a Surface needed to restore the terminal.
type Finisher interface {
	Fini() error
}

// panicOutput is where recovered panics are reported.
var panicOutput io.Writer = os.Stderr

// RestoreOnPanic should be deferred at the top of main. On panic it
// finalises the surface, prints the panic value and stack trace, then
// exits with code 1.
func RestoreOnPanic(f Finisher) {
	r := recover()
	if r == nil {
		return
	}
	_ = f.Fini()
	fmt.Fprintf(panicOutput, "\npanic: %v\n\n%s\n", r, debug.Stack())
	os.Exit(1)
}

// RecoverGoroutine should be deferred at the top of background goroutines
// that run while the surface is initialised. It does not exit, leaving
// shutdown to the main goroutine.
func RecoverGoroutine(f Finisher) {
	r := recover()
	if r == nil {
		return
	}
	_ = f.Fini()
	fmt.Fprintf(panicOutput, "\ngoroutine panic: %v\n\n%s\n", r, debug.Stack())
}
