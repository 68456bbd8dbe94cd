// ABOUTME: 256-slot indexed palette: 16 standard colors, 6x6x6 cube, 24-step grayscale ramp
// ABOUTME: Pure functions deriving cube coordinates and named-hue shade lists

package color

import (
	"sort"
	"strings"
)

// Palette regions of the xterm 256-color model.
const (
	CubeStart   = 16
	CubeEnd     = 231
	GrayStart   = 232
	GrayEnd     = 255
	PaletteSize = 256
)

// Black is the palette index used as the background of every pair.
const Black uint8 = 0

// baseColors maps each symbolic name to its [standard, bright] indices.
var baseColors = map[string][2]uint8{
	"black":   {0, 8},
	"red":     {1, 9},
	"green":   {2, 10},
	"yellow":  {3, 11},
	"blue":    {4, 12},
	"magenta": {5, 13},
	"cyan":    {6, 14},
	"white":   {7, 15},
}

// primaryChannel maps the three primaries to their (r, g, b) channel position.
var primaryChannel = map[string]int{
	"red":   0,
	"green": 1,
	"blue":  2,
}

// secondaryHues are exact equality-and-dominance predicates over cube coordinates.
var secondaryHues = map[string]func(r, g, b uint8) bool{
	"yellow":  func(r, g, b uint8) bool { return r == g && r > b },
	"cyan":    func(r, g, b uint8) bool { return g == b && g > r },
	"magenta": func(r, g, b uint8) bool { return r == b && r > g },
}

// CubeRGB decomposes a color cube index (16-231) into r, g, b intensities in [0,5].
// Indices outside the cube return (0, 0, 0).
func CubeRGB(index uint8) (r, g, b uint8) {
	if index < CubeStart || index > CubeEnd {
		return 0, 0, 0
	}
	n := index - CubeStart
	return n / 36, (n % 36) / 6, n % 6
}

// CubeIndex is the inverse of CubeRGB. Components above 5 are clamped.
func CubeIndex(r, g, b uint8) uint8 {
	r, g, b = min(r, 5), min(g, 5), min(b, 5)
	return CubeStart + 36*r + 6*g + b
}

// dominantChannel returns the position of the largest channel. On a tie the
// later channel wins, so (5,0,5) is blue and (0,0,0) is blue.
func dominantChannel(r, g, b uint8) int {
	best, at := r, 0
	if g >= best {
		best, at = g, 1
	}
	if b >= best {
		at = 2
	}
	return at
}

// CubeShades returns every cube index whose hue matches name, in ascending
// order. Primaries match on the dominant channel; yellow, cyan and magenta
// match their exact predicates. Unknown names yield nil.
func CubeShades(name string) []uint8 {
	name = normalizeName(name)

	var match func(r, g, b uint8) bool
	if ch, ok := primaryChannel[name]; ok {
		match = func(r, g, b uint8) bool { return dominantChannel(r, g, b) == ch }
	} else if pred, ok := secondaryHues[name]; ok {
		match = pred
	} else {
		return nil
	}

	var out []uint8
	for i := CubeStart; i <= CubeEnd; i++ {
		r, g, b := CubeRGB(uint8(i))
		if match(r, g, b) {
			out = append(out, uint8(i))
		}
	}
	return out
}

// ShadesFor returns the standard and bright indices of a base color followed
// by its cube shades. Unknown names yield nil.
func ShadesFor(name string) []uint8 {
	name = normalizeName(name)
	base, ok := baseColors[name]
	if !ok {
		return nil
	}
	return append([]uint8{base[0], base[1]}, CubeShades(name)...)
}

// IsBaseColor reports whether name is one of the eight symbolic colors.
func IsBaseColor(name string) bool {
	_, ok := baseColors[normalizeName(name)]
	return ok
}

// BaseNames returns the eight symbolic color names sorted alphabetically.
func BaseNames() []string {
	names := make([]string, 0, len(baseColors))
	for n := range baseColors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// AvailableColors returns the base color names as a comma-separated list.
func AvailableColors() string {
	return strings.Join(BaseNames(), ", ")
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
