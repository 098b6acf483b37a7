package imaging

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette is an ordered, fixed list of opaque RGB colors.
//
// Palettes are used for nearest-color mapping. Order matters: when two entries
// are equally close to a pixel, the earlier entry wins.
type Palette []color.RGBA

// gameBoyPalette holds the four greens of the original GameBoy screen,
// darkest first.
var gameBoyPalette = Palette{
	{R: 15, G: 56, B: 15, A: 255},
	{R: 48, G: 98, B: 48, A: 255},
	{R: 139, G: 172, B: 15, A: 255},
	{R: 155, G: 188, B: 15, A: 255},
}

// GameBoyPalette returns the 4-entry GameBoy palette.
//
// A fresh copy is returned on every call so that callers can never alter the
// palette seen by other pipeline runs.
func GameBoyPalette() Palette {
	p := make(Palette, len(gameBoyPalette))
	copy(p, gameBoyPalette)
	return p
}

// ColorDistance returns the Euclidean distance between two colors in RGB space.
//
// Alpha is ignored. The result ranges from 0 (identical) to about 441.67
// (black vs white).
func ColorDistance(c1, c2 color.RGBA) float64 {
	return math.Sqrt(float64(sqDistance(c1, c2)))
}

// sqDistance returns the squared Euclidean RGB distance between two colors.
func sqDistance(c1, c2 color.RGBA) int {
	dr := int(c1.R) - int(c2.R)
	dg := int(c1.G) - int(c2.G)
	db := int(c1.B) - int(c2.B)
	return dr*dr + dg*dg + db*db
}

// NearestPaletteColor returns the palette entry closest to c.
//
// Parameters:
//   - c: The color to match. Alpha is ignored.
//   - p: The palette to search. Must not be empty.
//
// Returns the entry with the smallest ColorDistance. Ties are resolved in
// favor of the entry that appears first in the palette. The returned color
// always has A set to 255.
func NearestPaletteColor(c color.RGBA, p Palette) color.RGBA {
	best := 0
	bestDist := math.Inf(1)
	for i, pc := range p {
		d := ColorDistance(c, pc)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	out := p[best]
	out.A = 255
	return out
}

// ParsePalette converts a list of hex color strings ("#RRGGBB" or "RRGGBB")
// into a Palette, preserving order.
func ParsePalette(hexes []string) (Palette, error) {
	if len(hexes) == 0 {
		return nil, fmt.Errorf("%w: palette is empty", ErrInvalidParameter)
	}
	p := make(Palette, 0, len(hexes))
	for _, h := range hexes {
		if len(h) > 0 && h[0] != '#' {
			h = "#" + h
		}
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("%w: palette color %q: %v", ErrInvalidParameter, h, err)
		}
		r, g, b := c.RGB255()
		p = append(p, color.RGBA{R: r, G: g, B: b, A: 255})
	}
	return p, nil
}

// HexString formats the RGB part of c as a lower-case "#rrggbb" string.
func HexString(c color.RGBA) string {
	c.A = 255
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}
