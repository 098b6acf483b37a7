package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/disintegration/imaging"
)

// smoothKernel is a mild 3x3 low-pass filter with a heavier center weight.
var smoothKernel = [9]float64{
	1, 1, 1,
	1, 5, 1,
	1, 1, 1,
}

// Style describes a cartoon stylization: color boosts, a fixed-size
// quantization and an outline overlay.
type Style struct {
	Smooth     bool    // Low-pass the input before boosting colors
	Saturation float64 // Saturation multiplier, 1 = unchanged
	Contrast   float64 // Multiplier for the distance from mid gray, 1 = unchanged
	Brightness float64 // Channel multiplier, 1 = unchanged
	Colors     int     // Quantization color count, 0 skips quantization
	Outline    OutlineOptions
}

// DaveStyle is the vivid stylization: strong color boosts, 32 colors and
// pure black outlines at a low edge threshold.
func DaveStyle() Style {
	return Style{
		Smooth:     true,
		Saturation: 1.8,
		Contrast:   1.4,
		Brightness: 1.05,
		Colors:     32,
		Outline: OutlineOptions{
			Threshold: 20,
			Variant:   OutlineBlack,
		},
	}
}

// DiverStyle is the softer stylization: moderate boosts, 32 colors and
// outlines darkened to a quarter of the underlying color.
func DiverStyle() Style {
	return Style{
		Saturation: 1.5,
		Contrast:   1.3,
		Brightness: 1,
		Colors:     32,
		Outline: OutlineOptions{
			Threshold: 30,
			Variant:   OutlineDarken,
		},
	}
}

// Stylize applies s to img. Every step produces a new image; img itself is
// left untouched.
func Stylize(img *image.NRGBA, s Style, q Quantizer) *image.NRGBA {
	var cur image.Image = img
	if s.Smooth {
		cur = Smooth(cur)
	}
	if s.Saturation != 1 && s.Saturation > 0 {
		cur = adjust.Saturation(cur, s.Saturation-1)
	}
	if s.Contrast != 1 && s.Contrast > 0 {
		cur = adjust.Contrast(cur, s.Contrast-1)
	}
	if s.Brightness != 1 && s.Brightness > 0 {
		cur = adjust.Brightness(cur, s.Brightness-1)
	}

	out := imaging.Clone(cur)
	if s.Colors > 0 {
		out = Quantize(out, s.Colors, q)
	}
	return Outline(out, s.Outline)
}

// Smooth applies the 3x3 low-pass filter. Border pixels reuse their nearest
// in-bounds neighbors.
func Smooth(img image.Image) *image.NRGBA {
	return imaging.Convolve3x3(img, smoothKernel, &imaging.ConvolveOptions{Normalize: true})
}
