package imaging

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Luminance weights applied to red, green and blue.
const (
	lumaRed   = 0.212671
	lumaGreen = 0.715160
	lumaBlue  = 0.072169
)

// DefaultBorderColor is the fill used when padding a cropped page.
var DefaultBorderColor = color.NRGBA{R: 255, G: 127, B: 255, A: 255}

// Luminance approximates perceptual brightness of an 8-bit RGB triple.
//
// The weighted sum is truncated to an integer, so a difference of two
// luminance values is always a whole number.
func Luminance(r, g, b uint8) int {
	return int(lumaRed*float64(r) + lumaGreen*float64(g) + lumaBlue*float64(b))
}

// ParseHexColor parses "#RRGGBB" or "#RGB" (the leading '#' is optional) into
// an opaque color.
func ParseHexColor(hex string) (color.NRGBA, error) {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] != '#' {
		hex = "#" + hex
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// HexColor formats the RGB part of a color as "#rrggbb".
func HexColor(c color.NRGBA) string {
	cf, _ := colorful.MakeColor(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
	return cf.Hex()
}
