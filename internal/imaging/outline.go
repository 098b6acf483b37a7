package imaging

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/pixel-art-mcp/internal/detection"
)

// OutlineVariant selects how outline pixels are painted.
type OutlineVariant int

const (
	// OutlineBlack paints outline pixels pure black.
	OutlineBlack OutlineVariant = iota
	// OutlineDarken keeps the hue of outline pixels at a quarter of their
	// brightness.
	OutlineDarken
)

// OutlineOptions configures Outline.
type OutlineOptions struct {
	// Threshold is the edge strength (0-255) a pixel must exceed to become
	// part of the outline.
	Threshold int

	// Variant selects black or darkened outlines.
	Variant OutlineVariant

	// Operator selects the edge kernel. The zero value is the Laplacian.
	Operator detection.Operator
}

// Outline overlays outlines on the color boundaries of img.
//
// The result has the same size as img. Only pixels whose edge strength
// exceeds opts.Threshold change; alpha is preserved for every pixel.
func Outline(img *image.NRGBA, opts OutlineOptions) *image.NRGBA {
	out := imaging.Clone(img)
	mask := detection.EdgeMask(out, opts.Threshold, opts.Operator)

	for j, edge := range mask {
		if !edge {
			continue
		}
		i := j * 4
		switch opts.Variant {
		case OutlineDarken:
			out.Pix[i] /= 4
			out.Pix[i+1] /= 4
			out.Pix[i+2] /= 4
		default:
			out.Pix[i], out.Pix[i+1], out.Pix[i+2] = 0, 0, 0
		}
	}
	return out
}
