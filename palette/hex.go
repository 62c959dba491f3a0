package palette

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/sokinpui/recolor/model"
)

// validHexRegex accepts exactly "#rgb" and "#rrggbb", in any case.
var validHexRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ParseHex validates a "#rgb" or "#rrggbb" string and returns its normalized
// "#rrggbb" lower-case form.
func ParseHex(s string) (model.HexColor, error) {
	s = strings.TrimSpace(s)
	if !validHexRegex.MatchString(s) {
		return "", fmt.Errorf("%w: %q", model.ErrInvalidHex, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", model.ErrInvalidHex, s, err)
	}
	return c.Hex(), nil
}

// Normalize expands shorthand and lower-cases a hex color. Values that are
// not valid hex colors are only lower-cased.
func Normalize(s string) model.HexColor {
	if hex, err := ParseHex(s); err == nil {
		return hex
	}
	return strings.ToLower(s)
}

// ShortHex returns the 3-digit form of a color when every channel has two
// identical digits, e.g. "#aabbcc" -> "#abc".
func ShortHex(hex model.HexColor) (string, bool) {
	h := Normalize(hex)
	if len(h) != 7 || h[0] != '#' {
		return "", false
	}
	if h[1] != h[2] || h[3] != h[4] || h[5] != h[6] {
		return "", false
	}
	return string([]byte{'#', h[1], h[3], h[5]}), true
}

// Luminance returns 0.299*R + 0.587*G + 0.114*B over the 0-255 channels.
// Invalid colors have luminance 0.
func Luminance(hex model.HexColor) float64 {
	return float64(luma(hex)) / 1000
}

// luma is Luminance scaled by 1000 so that sorting compares integers.
func luma(hex model.HexColor) int {
	c, err := colorful.Hex(Normalize(hex))
	if err != nil {
		return 0
	}
	r, g, b := c.RGB255()
	return 299*int(r) + 587*int(g) + 114*int(b)
}

func isHexDigit(b byte) bool {
	return ('0' <= b && b <= '9') || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}
