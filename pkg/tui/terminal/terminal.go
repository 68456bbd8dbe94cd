// ABOUTME: Terminal is the raw device (raw mode, size, bytes out); Surface is the drawing capability
// ABOUTME: The table only talks to Surface, so tests swap in VirtualSurface

package terminal

import "github.com/mauromedda/streamtable/pkg/tui/key"

// Terminal abstracts low-level terminal operations: raw mode,
// size queries, output writing, and resize notifications.
type Terminal interface {
	EnterRawMode() error
	ExitRawMode() error
	Size() (width, height int, err error)
	Write(p []byte) (n int, err error)
	OnResize(fn func(width, height int))
}

// Surface is the character-cell display a table draws on. Implementations
// are not safe for concurrent use; callers serialise every call.
type Surface interface {
	// Init takes over the display. Fini gives it back.
	Init() error
	Fini() error

	// InitPair binds a color slot to a foreground/background palette pair.
	// Slot 0 always means "terminal default colors".
	InitPair(slot int, fg, bg uint8)

	Clear()
	MoveCursor(row, col int)
	WriteStyled(text string, slot int, bold, reverse bool)
	// Refresh makes everything written since the last Refresh visible.
	Refresh() error

	Size() (width, height int)
	// ReadKey returns the next pending key without blocking.
	ReadKey() (key.Key, bool)
	SetCursorVisible(visible bool)
}
