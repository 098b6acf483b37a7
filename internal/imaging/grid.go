package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// PixelateGrid turns an image into flat-colored pixelSize x pixelSize blocks.
//
// The source is area-averaged down to (w/pixelSize, h/pixelSize), clamped to at
// least 1x1, and then scaled back up by exactly pixelSize with nearest-neighbor
// replication so every block is a single color. When w or h is not a multiple
// of pixelSize the ragged remainder is lost: a 20x20 input with pixelSize 8
// comes back 16x16.
func PixelateGrid(img image.Image, pixelSize int) (*image.NRGBA, error) {
	if err := validateImage(img); err != nil {
		return nil, err
	}
	if pixelSize < 1 {
		return nil, fmt.Errorf("%w: pixel size %d must be at least 1", ErrInvalidParameter, pixelSize)
	}

	bounds := img.Bounds()
	smallW := max(1, bounds.Dx()/pixelSize)
	smallH := max(1, bounds.Dy()/pixelSize)

	small := imaging.Resize(img, smallW, smallH, imaging.Box)
	return imaging.Resize(small, smallW*pixelSize, smallH*pixelSize, imaging.NearestNeighbor), nil
}

// GridSize returns the number of whole blocks that fit along each axis of a
// w x h image.
func GridSize(w, h, pixelSize int) (cols, rows int) {
	if pixelSize < 1 {
		return 0, 0
	}
	return w / pixelSize, h / pixelSize
}
