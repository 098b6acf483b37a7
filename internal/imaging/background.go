package imaging

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/pixel-art-mcp/internal/detection"
)

// RemoveBackground makes the detected background transparent.
//
// The background color is the most frequent exact RGB value in the four
// corner squares (see detection.BackgroundColor). Every pixel whose squared
// RGB distance to it is at most tolerance² gets alpha 0; its RGB is left as
// is. All other pixels keep their alpha, which is 255 for opaque input.
//
// A pixel that matches the background exactly is always removed, whatever
// the tolerance.
func RemoveBackground(img image.Image, tolerance int) *image.NRGBA {
	out := imaging.Clone(img)
	bg, ok := detection.BackgroundColor(out)
	if !ok {
		return out
	}

	limit := tolerance * tolerance
	for i := 0; i+3 < len(out.Pix); i += 4 {
		if sqDistance(rgbaAt(out.Pix, i), bg) <= limit {
			out.Pix[i+3] = 0
		}
	}
	return out
}
