package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

var (
	// ErrInvalidImage is returned for nil or empty input images.
	ErrInvalidImage = errors.New("invalid image")
	// ErrInvalidParameter is returned for out-of-range parameters such as a
	// pixel size below 1.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrEncodingFailure is returned when an output adapter cannot serialize
	// an image.
	ErrEncodingFailure = errors.New("encoding failure")
)

// Params configures a single Pixelate run.
//
// A Params value is read-only for the duration of the run; nothing in the
// pipeline keeps a reference to it afterwards.
type Params struct {
	// PixelSize is the block edge length in source pixels. Must be >= 1.
	PixelSize int

	// Mode selects the color stage.
	Mode ColorMode

	// NumColors is the color count for the N-color modes. When zero those
	// modes leave colors untouched. Use Mode.DefaultColors to fill it in.
	NumColors int

	// KeepAlpha preserves the source alpha channel, pixelated on the same
	// block grid as the colors. Ignored for sources without alpha.
	KeepAlpha bool

	// RemoveBackground punches the detected background color out to full
	// transparency.
	RemoveBackground bool

	// BgTolerance is the RGB distance within which a pixel counts as
	// background. Must be >= 0.
	BgTolerance int

	// Palette is the target palette for ModePalette.
	Palette Palette

	// Quantizer picks the clustering algorithm for quantizing modes.
	// The zero value selects median cut.
	Quantizer QuantizerKind
}

func (p Params) quantizer() Quantizer {
	return NewQuantizer(p.Quantizer)
}

// Validate checks the parameters that Pixelate refuses to run with.
func (p Params) Validate() error {
	if p.PixelSize < 1 {
		return fmt.Errorf("%w: pixel size %d must be at least 1", ErrInvalidParameter, p.PixelSize)
	}
	if p.BgTolerance < 0 {
		return fmt.Errorf("%w: background tolerance %d must not be negative", ErrInvalidParameter, p.BgTolerance)
	}
	return nil
}

// Pixelate converts an image to pixel art.
//
// Parameters:
//   - img: The decoded source image. Must have positive width and height.
//   - p: Block size, color mode and optional alpha/background handling.
//
// Returns:
//   - *image.NRGBA: A new image. When w or h is not a multiple of p.PixelSize
//     the result is smaller than the source (see PixelateGrid).
//   - error: ErrInvalidImage or ErrInvalidParameter. No partial result is
//     returned on error.
//
// # Pipeline
//
//  1. Grid: area-average into blocks (PixelateGrid)
//  2. Color: the stage selected by p.Mode (ApplyColorMode)
//  3. Alpha: when p.KeepAlpha is set and the source has an alpha channel, the
//     alpha mask is pixelated alongside the colors and merged back in
//  4. Background: when p.RemoveBackground is set, pixels close to the corner
//     color become fully transparent (RemoveBackground)
//
// Without alpha preservation the result is fully opaque.
func Pixelate(img image.Image, p Params) (*image.NRGBA, error) {
	if err := validateImage(img); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var (
		result *image.NRGBA
		err    error
	)
	if p.KeepAlpha && hasAlphaChannel(img) {
		result, err = pixelateWithAlpha(img, p)
	} else {
		var grid *image.NRGBA
		grid, err = PixelateGrid(flattenOpaque(img), p.PixelSize)
		if err == nil {
			result = ApplyColorMode(grid, p)
		}
	}
	if err != nil {
		return nil, err
	}

	if p.RemoveBackground {
		result = RemoveBackground(result, p.BgTolerance)
	}
	return result, nil
}

// validateImage rejects nil and zero-area images.
func validateImage(img image.Image) error {
	if img == nil {
		return fmt.Errorf("%w: image is nil", ErrInvalidImage)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d must be positive", ErrInvalidImage, b.Dx(), b.Dy())
	}
	return nil
}

// hasAlphaChannel reports whether the image type carries an alpha channel.
//
// Like LoadImageInfo this goes by the concrete type. The PNG decoder hands
// back *image.RGBA even for plain RGB files, so images whose pixels are all
// opaque are treated as having no alpha. Paletted images count when their
// palette contains a non-opaque entry.
func hasAlphaChannel(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return false
	}
	switch m := img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64, *image.Alpha, *image.Alpha16:
		return true
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true
			}
		}
	}
	return false
}

// flattenOpaque copies the straight (non-premultiplied) RGB values of img
// into a new image with every alpha set to 255.
func flattenOpaque(img image.Image) *image.NRGBA {
	out := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 255
	}
	return out
}

// rgbaAt reads the NRGBA pixel starting at offset i of pix.
func rgbaAt(pix []uint8, i int) color.RGBA {
	return color.RGBA{R: pix[i], G: pix[i+1], B: pix[i+2], A: pix[i+3]}
}
