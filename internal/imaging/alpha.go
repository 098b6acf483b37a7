package imaging

import (
	"fmt"
	"image"
	"sync"

	"github.com/disintegration/imaging"
)

// pixelateWithAlpha runs the pipeline on the color and alpha channels
// separately and merges them.
//
// Color and alpha go through PixelateGrid concurrently so both end up on the
// same block grid; only the color half goes through the color stage.
func pixelateWithAlpha(img image.Image, p Params) (*image.NRGBA, error) {
	rgb, mask := splitAlpha(img)

	var (
		wg                 sync.WaitGroup
		colorGrid          *image.NRGBA
		alphaGrid          *image.Gray
		colorErr, alphaErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		colorGrid, colorErr = PixelateGrid(rgb, p.PixelSize)
		if colorErr == nil {
			colorGrid = ApplyColorMode(colorGrid, p)
		}
	}()
	go func() {
		defer wg.Done()
		alphaGrid, alphaErr = pixelateAlpha(mask, p.PixelSize)
	}()
	wg.Wait()

	if colorErr != nil {
		return nil, colorErr
	}
	if alphaErr != nil {
		return nil, alphaErr
	}
	return mergeAlpha(colorGrid, alphaGrid)
}

// splitAlpha separates img into an opaque color image and its alpha mask.
// Colors are straight (not premultiplied), so fully transparent pixels keep
// whatever RGB the source type can represent.
func splitAlpha(img image.Image) (*image.NRGBA, *image.Gray) {
	rgb := imaging.Clone(img)
	mask := image.NewGray(rgb.Rect)
	for i, j := 3, 0; i < len(rgb.Pix); i, j = i+4, j+1 {
		mask.Pix[j] = rgb.Pix[i]
		rgb.Pix[i] = 255
	}
	return rgb, mask
}

// pixelateAlpha runs a mask through PixelateGrid. The mask is widened to
// gray RGB for resampling and narrowed back to one channel afterwards.
func pixelateAlpha(mask *image.Gray, pixelSize int) (*image.Gray, error) {
	grid, err := PixelateGrid(mask, pixelSize)
	if err != nil {
		return nil, err
	}
	out := image.NewGray(grid.Rect)
	for i, j := 0, 0; j < len(out.Pix); i, j = i+4, j+1 {
		out.Pix[j] = grid.Pix[i]
	}
	return out, nil
}

// mergeAlpha pairs every pixel of rgb with the matching mask value.
func mergeAlpha(rgb *image.NRGBA, mask *image.Gray) (*image.NRGBA, error) {
	if rgb.Rect.Size() != mask.Rect.Size() {
		return nil, fmt.Errorf("%w: color %v and alpha %v sizes differ",
			ErrInvalidImage, rgb.Rect.Size(), mask.Rect.Size())
	}
	out := imaging.Clone(rgb)
	for i, j := 3, 0; i < len(out.Pix); i, j = i+4, j+1 {
		out.Pix[i] = mask.Pix[j]
	}
	return out, nil
}
