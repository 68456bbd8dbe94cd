// ABOUTME: VirtualTerminal is a byte-level Terminal fake that records frames written to it
// ABOUTME: Used to test ANSISurface without a TTY; supports resize and write failure injection

package terminal

import (
	"bytes"
	"sync"
)

// VirtualTerminal is a fake Terminal for unit tests.
type VirtualTerminal struct {
	mu       sync.Mutex
	out      bytes.Buffer
	writes   int
	width    int
	height   int
	raw      bool
	resizeFn func(width, height int)

	// Fail errors returned by the next calls, when set.
	rawErr   error
	writeErr error
}

// NewVirtualTerminal returns a VirtualTerminal with the given dimensions.
func NewVirtualTerminal(width, height int) *VirtualTerminal {
	return &VirtualTerminal{width: width, height: height}
}

func (v *VirtualTerminal) EnterRawMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.rawErr != nil {
		return v.rawErr
	}
	v.raw = true
	return nil
}

func (v *VirtualTerminal) ExitRawMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.raw = false
	return nil
}

func (v *VirtualTerminal) Size() (width, height int, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.width, v.height, nil
}

func (v *VirtualTerminal) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.writeErr != nil {
		return 0, v.writeErr
	}
	v.writes++
	return v.out.Write(p)
}

func (v *VirtualTerminal) OnResize(fn func(width, height int)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resizeFn = fn
}

// Output returns everything written so far.
func (v *VirtualTerminal) Output() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.out.String()
}

// Writes returns how many successful Write calls were made.
func (v *VirtualTerminal) Writes() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.writes
}

// Reset clears recorded output.
func (v *VirtualTerminal) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.out.Reset()
	v.writes = 0
}

// IsRawMode reports whether raw mode is active.
func (v *VirtualTerminal) IsRawMode() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.raw
}

// FailRawMode makes EnterRawMode return err.
func (v *VirtualTerminal) FailRawMode(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rawErr = err
}

// FailWrites makes every following Write return err; nil clears it.
func (v *VirtualTerminal) FailWrites(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.writeErr = err
}

// SetSize updates the dimensions and runs the resize callback.
func (v *VirtualTerminal) SetSize(width, height int) {
	v.mu.Lock()
	v.width, v.height = width, height
	fn := v.resizeFn
	v.mu.Unlock()

	if fn != nil {
		fn(width, height)
	}
}
