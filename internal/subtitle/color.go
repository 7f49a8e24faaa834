package subtitle

import (
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// fallback for unreadable color fields
var White = colorful.Color{R: 1, G: 1, B: 1}

var (
	Black = colorful.Color{}
	Red   = colorful.Color{R: 1}
)

// reads an &HAABBGGRR color. short values are left padded with zeros,
// alpha is dropped. anything unreadable is White.
func ParseASSColor(s string) colorful.Color {
	s = strings.TrimSpace(s)
	if len(s) < 2 || !strings.EqualFold(s[:2], "&H") {
		return White
	}

	hex := strings.TrimSuffix(s[2:], "&")
	if hex == "" || len(hex) > 8 {
		return White
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return White
	}

	r := uint8(v & 0xFF)
	g := uint8((v >> 8) & 0xFF)
	b := uint8((v >> 16) & 0xFF)

	return RGB(r, g, b)
}

// writes &H00BBGGRR with alpha fixed to 00
func FormatASSColor(c colorful.Color) string {
	r, g, b := c.Clamped().RGB255()
	return fmt.Sprintf("&H00%02X%02X%02X", b, g, r)
}

// builds a normalized color from 0-255 channels
func RGB(r, g, b uint8) colorful.Color {
	return colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}
}
