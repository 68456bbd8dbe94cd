// ABOUTME: Column fitting: sanitise, truncate with ellipsis, and right-pad to an exact cell width
// ABOUTME: All widths are terminal cells, not bytes or runes

package width

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// Ellipsis marks text cut short by Truncate. It occupies one cell.
const Ellipsis = "…"

// Sanitize prepares arbitrary producer text for a single grid line: escape
// sequences are stripped, tabs and newlines become spaces, other control
// characters are dropped, and the result is NFC-normalised so composed and
// decomposed forms measure the same.
func Sanitize(s string) string {
	if isPlainASCII(s) {
		return s
	}
	s = StripANSI(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteByte(' ')
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	return norm.NFC.String(b.String())
}

// Truncate cuts s so it occupies at most limit cells. When anything is cut
// the result is the longest prefix fitting limit-1 cells followed by
// Ellipsis. A wide grapheme straddling the boundary is dropped whole, so the
// result may be one cell narrower than limit; Fit pads that back.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if VisibleWidth(s) <= limit {
		return s
	}
	if limit == 1 {
		return Ellipsis
	}

	target := limit - 1
	var b strings.Builder
	col := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		w := graphemeWidth(cluster)
		if col+w > target {
			break
		}
		b.WriteString(cluster)
		col += w
	}
	b.WriteString(Ellipsis)
	return b.String()
}

// PadRight appends spaces until s occupies exactly cells. Text already at
// or beyond cells is returned unchanged.
func PadRight(s string, cells int) string {
	gap := cells - VisibleWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// Fit returns s truncated or padded so it occupies exactly cells.
func Fit(s string, cells int) string {
	if cells <= 0 {
		return ""
	}
	return PadRight(Truncate(s, cells), cells)
}
