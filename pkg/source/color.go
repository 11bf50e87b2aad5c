package source

import (
	"image/color"
	"strconv"
	"strings"

	errs "github.com/matzehuels/stitchrow/pkg/errors"
)

// NormalizeHex lower-cases a hex color and expands the #rgb short form.
// Values that are not hex colors are returned trimmed and lower-cased so
// they can still be compared.
func NormalizeHex(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) == 4 && s[0] == '#' {
		return string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	return s
}

// ParseHex parses a #rgb or #rrggbb color.
func ParseHex(s string) (color.RGBA, error) {
	n := NormalizeHex(s)
	if len(n) != 7 || n[0] != '#' {
		return color.RGBA{}, errs.New(errs.ErrCodeInvalidInput, "invalid color %q", s)
	}
	v, err := strconv.ParseUint(n[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// SameColor reports whether two color strings name the same hex color.
func SameColor(a, b string) bool {
	return NormalizeHex(a) == NormalizeHex(b)
}
