package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// DefaultPreviewWidth is the width previews are shrunk to before pixelating.
const DefaultPreviewWidth = 128

// Preview produces a quick low-resolution pixelation of img.
//
// The source is box-shrunk to width pixels wide (keeping the aspect ratio,
// at least 1 pixel high) and the pixel size is scaled by the same ratio,
// never below 1. Alpha preservation is turned off; background removal and
// color modes still apply.
func Preview(img image.Image, width int, p Params) (*image.NRGBA, error) {
	if err := validateImage(img); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if width <= 0 {
		width = DefaultPreviewWidth
	}

	b := img.Bounds()
	ratio := float64(width) / float64(b.Dx())
	height := max(1, int(float64(b.Dy())*ratio))
	small := imaging.Resize(img, width, height, imaging.Box)

	p.PixelSize = PreviewPixelSize(b, width, p.PixelSize)
	p.KeepAlpha = false
	return Pixelate(small, p)
}

// PreviewPixelSize returns the block size Preview uses for a source with
// bounds b. Vector output of a preview must be cut on this grid.
func PreviewPixelSize(b image.Rectangle, width, pixelSize int) int {
	if width <= 0 {
		width = DefaultPreviewWidth
	}
	if b.Dx() <= 0 {
		return max(1, pixelSize)
	}
	ratio := float64(width) / float64(b.Dx())
	return max(1, int(float64(pixelSize)*ratio))
}
