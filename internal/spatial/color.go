package spatial

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// FallbackColor is returned by BlendColor when there is nothing to blend.
const FallbackColor = "#808080"

// ParseHexColor parses "#rgb" or "#rrggbb" (leading '#' optional).
func ParseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// HexColor encodes a color as lowercase "#rrggbb".
func HexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// BlendColor returns the per-channel arithmetic mean of the given colors.
// A single color is returned unchanged; an empty (or wholly unparseable)
// input yields FallbackColor.
func BlendColor(colors []string) string {
	if len(colors) == 1 {
		return colors[0]
	}

	var r, g, b float64
	n := 0
	for _, c := range colors {
		rgba, err := ParseHexColor(c)
		if err != nil {
			continue
		}
		r += float64(rgba.R)
		g += float64(rgba.G)
		b += float64(rgba.B)
		n++
	}
	if n == 0 {
		return FallbackColor
	}

	return HexColor(color.RGBA{
		R: uint8(math.Round(r / float64(n))),
		G: uint8(math.Round(g / float64(n))),
		B: uint8(math.Round(b / float64(n))),
		A: 0xff,
	})
}
