package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/cenkalti/dominantcolor"
	"github.com/disintegration/imaging"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// Quantizer chooses at most k representative colors for an image.
//
// Implementations aim to cover as many of the image's pixels as possible with
// the chosen colors. Exact output is not stable across implementations.
type Quantizer interface {
	Palette(img image.Image, k int) color.Palette
}

// QuantizerKind names one of the built-in quantizers.
type QuantizerKind int

const (
	// QuantizerMedianCut splits the color histogram by median cut and keeps
	// the most frequent color of each bucket.
	QuantizerMedianCut QuantizerKind = iota
	// QuantizerKMeans clusters sampled pixels with k-means.
	QuantizerKMeans
	// QuantizerDominant ranks colors by weighted dominance.
	QuantizerDominant
)

// ParseQuantizerKind maps "mediancut", "kmeans" or "dominant" to a kind.
// Anything else selects median cut.
func ParseQuantizerKind(name string) QuantizerKind {
	switch name {
	case "kmeans":
		return QuantizerKMeans
	case "dominant":
		return QuantizerDominant
	}
	return QuantizerMedianCut
}

// NewQuantizer returns the quantizer for kind.
func NewQuantizer(kind QuantizerKind) Quantizer {
	switch kind {
	case QuantizerKMeans:
		return kmeansQuantizer{maxSamples: 12000}
	case QuantizerDominant:
		return dominantQuantizer{}
	}
	return medianCutQuantizer{}
}

// Quantize reduces img to at most k colors chosen by q and maps every pixel
// to its nearest chosen color. Alpha is carried over unchanged.
func Quantize(img *image.NRGBA, k int, q Quantizer) *image.NRGBA {
	if k <= 0 {
		return imaging.Clone(img)
	}
	p := q.Palette(img, k)
	if len(p) == 0 {
		return imaging.Clone(img)
	}
	if len(p) > k {
		p = p[:k]
	}

	b := img.Bounds()
	pm := image.NewPaletted(b, p)
	draw.Draw(pm, b, img, b.Min, draw.Src)

	out := imaging.Clone(pm)
	src := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = src.Pix[i]
	}
	return out
}

type medianCutQuantizer struct{}

func (medianCutQuantizer) Palette(img image.Image, k int) color.Palette {
	q := quantize.MedianCutQuantizer{}
	return q.Quantize(make(color.Palette, 0, k), img)
}

type kmeansQuantizer struct {
	maxSamples int
}

func (q kmeansQuantizer) Palette(img image.Image, k int) color.Palette {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()

	// Subsample large images to keep the clustering tractable.
	step := 1
	if width*height > q.maxSamples {
		step = int(math.Sqrt(float64(width*height)/float64(q.maxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, min(width*height, q.maxSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			dataset = append(dataset, clusters.Coordinates{
				float64(c.R), float64(c.G), float64(c.B),
			})
		}
	}
	if len(dataset) == 0 {
		return nil
	}

	cc, err := kmeans.New().Partition(dataset, min(k, len(dataset)))
	if err != nil {
		return nil
	}

	p := make(color.Palette, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		p = append(p, color.RGBA{
			R: clampChannel(c.Center[0]),
			G: clampChannel(c.Center[1]),
			B: clampChannel(c.Center[2]),
			A: 255,
		})
	}
	return p
}

type dominantQuantizer struct{}

func (dominantQuantizer) Palette(img image.Image, k int) color.Palette {
	found := dominantcolor.FindWeight(img, k)
	p := make(color.Palette, 0, len(found))
	for _, c := range found {
		rgba := c.RGBA
		rgba.A = 255
		p = append(p, rgba)
	}
	return p
}

// clampChannel rounds v and clamps it into the 0-255 range.
func clampChannel(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
