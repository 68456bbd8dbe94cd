// ABOUTME: Closed key token model: Key type plus ParseKey for raw terminal input
// ABOUTME: Printable runes, Ctrl+letter, Alt+rune and CSI/SS3 navigation sequences

package key

import (
	"fmt"
	"unicode/utf8"
)

// Key is one parsed keyboard event.
type Key struct {
	Type  KeyType
	Rune  rune // KeyRune only; lower-case letter when Ctrl is set
	Alt   bool
	Ctrl  bool
	Shift bool
}

// KeyType enumerates the symbolic keys the table understands.
type KeyType int

const (
	KeyRune      KeyType = iota // Printable character or Ctrl+letter
	KeyEnter                    // Enter / Return
	KeyTab                      // Tab
	KeyBackTab                  // Shift+Tab
	KeyBackspace                // Backspace / DEL (0x7F)
	KeyDelete                   // Delete key
	KeyUp                       // Arrow up
	KeyDown                     // Arrow down
	KeyLeft                     // Arrow left
	KeyRight                    // Arrow right
	KeyHome                     // Home
	KeyEnd                      // End
	KeyPageUp                   // Page Up
	KeyPageDown                 // Page Down
	KeyEscape                   // Escape
	KeyUnknown                  // Unrecognized input
)

// Rune returns a Key for a printable character.
func Rune(r rune) Key {
	return Key{Type: KeyRune, Rune: r}
}

// Ctrl returns a Key for Ctrl plus a letter.
func Ctrl(letter rune) Key {
	return Key{Type: KeyRune, Rune: letter, Ctrl: true}
}

// ParseKey parses one chunk of raw terminal input into a Key.
func ParseKey(data string) Key {
	if len(data) == 0 {
		return Key{Type: KeyUnknown}
	}

	if len(data) == 1 {
		return parseSingleByte(data[0])
	}

	if data[0] == 0x1b {
		return parseEscapeSequence(data)
	}

	r, size := utf8.DecodeRuneInString(data)
	if r == utf8.RuneError || size != len(data) {
		return Key{Type: KeyUnknown}
	}
	return Rune(r)
}

// parseSingleByte handles ASCII and C0 control bytes.
func parseSingleByte(b byte) Key {
	switch {
	case b == 0x0d || b == 0x0a:
		return Key{Type: KeyEnter}
	case b == 0x09:
		return Key{Type: KeyTab}
	case b == 0x7f || b == 0x08:
		return Key{Type: KeyBackspace}
	case b == 0x1b:
		return Key{Type: KeyEscape}
	case b >= 0x20 && b <= 0x7e:
		return Rune(rune(b))
	case b >= 0x01 && b <= 0x1a:
		return Ctrl(rune('a' + b - 1))
	}
	return Key{Type: KeyUnknown}
}

// parseEscapeSequence handles ESC-prefixed input.
func parseEscapeSequence(data string) Key {
	if k, ok := legacySequences[data]; ok {
		return k
	}

	// Alt+key: ESC followed by one printable byte.
	if len(data) == 2 && data[1] >= 0x20 && data[1] <= 0x7e {
		return Key{Type: KeyRune, Rune: rune(data[1]), Alt: true}
	}

	return Key{Type: KeyUnknown}
}

var keyTypeNames = map[KeyType]string{
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackTab:   "BackTab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyEscape:    "Escape",
	KeyUnknown:   "Unknown",
}

// String returns a human-readable label for status lines and logs.
func (k Key) String() string {
	if k.Type == KeyRune {
		s := string(k.Rune)
		if k.Rune == ' ' {
			s = "Space"
		}
		if k.Ctrl {
			s = fmt.Sprintf("Ctrl+%c", k.Rune-'a'+'A')
		}
		if k.Alt {
			s = "Alt+" + s
		}
		return s
	}
	if name, ok := keyTypeNames[k.Type]; ok {
		return name
	}
	return "Unknown"
}
