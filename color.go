package celpaint

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is a straight (non-premultiplied) 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA(c).RGBA()
}

// NRGBA returns c as a color.NRGBA.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA(c)
}

// FromColor converts any color.Color to a straight-alpha Color.
func FromColor(c color.Color) Color {
	return Color(color.NRGBAModel.Convert(c).(color.NRGBA))
}

// Matches reports whether c is within tolerance of ref. Tolerance 0 requires
// all four channels to be equal; otherwise every channel, alpha included,
// may differ by at most tolerance.
func (c Color) Matches(ref Color, tolerance uint8) bool {
	if tolerance == 0 {
		return c == ref
	}
	t := int(tolerance)
	return absDiff(c.R, ref.R) <= t &&
		absDiff(c.G, ref.G) <= t &&
		absDiff(c.B, ref.B) <= t &&
		absDiff(c.A, ref.A) <= t
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// Hex formats c as "#RRGGBBAA".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// ParseHex parses "RGB", "RGBA", "RRGGBB" or "RRGGBBAA", with or without a
// leading '#'. Missing alpha means opaque.
func ParseHex(hex string) (Color, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")

	var digits []uint8
	for i := 0; i < len(s); i++ {
		d, ok := hexDigit(s[i])
		if !ok {
			return Color{}, fmt.Errorf("celpaint: invalid hex color %q", hex)
		}
		digits = append(digits, d)
	}

	switch len(digits) {
	case 3, 4: // RGB, RGBA
		c := Color{R: digits[0] * 17, G: digits[1] * 17, B: digits[2] * 17, A: 255}
		if len(digits) == 4 {
			c.A = digits[3] * 17
		}
		return c, nil
	case 6, 8: // RRGGBB, RRGGBBAA
		c := Color{
			R: digits[0]<<4 | digits[1],
			G: digits[2]<<4 | digits[3],
			B: digits[4]<<4 | digits[5],
			A: 255,
		}
		if len(digits) == 8 {
			c.A = digits[6]<<4 | digits[7]
		}
		return c, nil
	default:
		return Color{}, fmt.Errorf("celpaint: invalid hex color %q", hex)
	}
}

// MustHex is like ParseHex but panics on malformed input.
func MustHex(hex string) Color {
	c, err := ParseHex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// ClampTolerance converts an integer tolerance from an external source.
// Values outside [0, 255] become 0.
func ClampTolerance(v int) uint8 {
	if v < 0 || v > 255 {
		return 0
	}
	return uint8(v)
}

// ParseTolerance parses a decimal tolerance. Non-numeric or out-of-range
// input yields 0.
func ParseTolerance(s string) uint8 {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return ClampTolerance(v)
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(255, 255, 255)
	Red         = RGB(255, 0, 0)
	Green       = RGB(0, 255, 0)
	Blue        = RGB(0, 0, 255)
	Yellow      = RGB(255, 255, 0)
	Transparent = Color{}
)
