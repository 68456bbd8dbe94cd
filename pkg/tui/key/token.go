// ABOUTME: Canonical string tokens for keys ("q", "space", "down", "ctrl+c", "alt+x")
// ABOUTME: Token and ParseToken round-trip; tokens are the keys of keybinding tables

package key

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

var symbolicTokens = map[KeyType]string{
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdown",
	KeyEscape:    "escape",
}

var tokenAliases = map[string]string{
	"esc":      "escape",
	"return":   "enter",
	"pageup":   "pgup",
	"pagedown": "pgdown",
	"del":      "delete",
	"bs":       "backspace",
}

var symbolicTypes = func() map[string]KeyType {
	m := make(map[string]KeyType, len(symbolicTokens))
	for t, name := range symbolicTokens {
		m[name] = t
	}
	return m
}()

// Token returns the canonical token for k, or "" when k cannot be bound.
func (k Key) Token() string {
	var parts []string
	if k.Ctrl {
		parts = append(parts, "ctrl")
	}
	if k.Alt {
		parts = append(parts, "alt")
	}

	switch k.Type {
	case KeyRune:
		if k.Rune == ' ' {
			parts = append(parts, "space")
		} else {
			parts = append(parts, string(k.Rune))
		}
	case KeyBackTab:
		return "shift+tab"
	case KeyUnknown:
		return ""
	default:
		name, ok := symbolicTokens[k.Type]
		if !ok {
			return ""
		}
		if k.Shift {
			parts = append(parts, "shift")
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, "+")
}

// ParseToken parses a token such as "p", "space", "down" or "ctrl+c". A
// token that is exactly one character is always a literal rune, so "+"
// binds the plus key.
func ParseToken(tok string) (Key, error) {
	if tok == "" {
		return Key{}, fmt.Errorf("empty key token")
	}
	if utf8.RuneCountInString(tok) == 1 {
		r, _ := utf8.DecodeRuneInString(tok)
		return Rune(r), nil
	}

	parts := strings.Split(strings.ToLower(tok), "+")
	base := parts[len(parts)-1]
	var k Key
	for _, mod := range parts[:len(parts)-1] {
		switch mod {
		case "ctrl":
			k.Ctrl = true
		case "alt":
			k.Alt = true
		case "shift":
			k.Shift = true
		default:
			return Key{}, fmt.Errorf("key token %q: unknown modifier %q", tok, mod)
		}
	}

	if alias, ok := tokenAliases[base]; ok {
		base = alias
	}

	switch {
	case base == "space":
		k.Type, k.Rune = KeyRune, ' '
	case base == "tab" && k.Shift:
		return Key{Type: KeyBackTab, Shift: true}, nil
	case utf8.RuneCountInString(base) == 1:
		r, _ := utf8.DecodeRuneInString(base)
		if k.Shift {
			return Key{}, fmt.Errorf("key token %q: shift is implied by the character", tok)
		}
		k.Type, k.Rune = KeyRune, r
		if k.Ctrl && (r < 'a' || r > 'z') {
			return Key{}, fmt.Errorf("key token %q: ctrl only combines with letters", tok)
		}
	default:
		t, ok := symbolicTypes[base]
		if !ok {
			return Key{}, fmt.Errorf("key token %q: unknown key %q", tok, base)
		}
		k.Type = t
	}
	return k, nil
}
