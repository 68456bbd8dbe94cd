// ABOUTME: Tests for Sanitize, Truncate, PadRight and Fit
// ABOUTME: Every Fit result must occupy exactly the requested number of cells

package width

import (
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{name: "fits", input: "short", limit: 10, want: "short"},
		{name: "exact", input: "0123456789", limit: 10, want: "0123456789"},
		{name: "long", input: "A long message", limit: 10, want: "A long me…"},
		{name: "limit one", input: "abc", limit: 1, want: "…"},
		{name: "limit zero", input: "abc", limit: 0, want: ""},
		{name: "wide straddles", input: "日本語", limit: 4, want: "日…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Truncate(tt.input, tt.limit); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.limit, got, tt.want)
			}
		})
	}
}

func TestFit_ExactWidth(t *testing.T) {
	t.Parallel()

	inputs := []string{"", "x", "Short", "A long message", "日本語テキスト", "emoji 👋 here", "café au lait"}
	for _, s := range inputs {
		for cells := 1; cells <= 12; cells++ {
			got := Fit(s, cells)
			if w := VisibleWidth(got); w != cells {
				t.Errorf("Fit(%q, %d) = %q occupies %d cells", s, cells, got, w)
			}
			if VisibleWidth(s) > cells && !strings.Contains(got, Ellipsis) {
				t.Errorf("Fit(%q, %d) = %q lacks ellipsis", s, cells, got)
			}
		}
	}
}

func TestPadRight(t *testing.T) {
	t.Parallel()

	if got := PadRight("Short", 10); got != "Short     " {
		t.Errorf("PadRight = %q", got)
	}
	if got := PadRight("toolong", 3); got != "toolong" {
		t.Errorf("PadRight must not cut, got %q", got)
	}
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "hello", want: "hello"},
		{name: "escapes", input: "\x1b[31mred\x1b[0m", want: "red"},
		{name: "newline and tab", input: "a\nb\tc", want: "a b c"},
		{name: "bell dropped", input: "ding\x07", want: "ding"},
		{name: "nfc", input: "cafe\u0301", want: "caf\u00e9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
