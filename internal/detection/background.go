package detection

import (
	"image"
	"image/color"
)

// CornerSize returns the edge length of the square sampled at each corner of
// a w x h image: one twelfth of the shorter side, at least 1.
func CornerSize(w, h int) int {
	return max(1, min(w, h)/12)
}

// CornerSamples returns the pixels of the four corner squares in a fixed
// order: top-left, top-right, bottom-left, bottom-right.
//
// Each square is read starting at its corner pixel and moving inward, row by
// row, so the first sample of every square is the image corner itself.
// Alpha is dropped; only exact RGB values matter for background detection.
func CornerSamples(img image.Image) []color.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}
	n := CornerSize(w, h)

	corners := []struct{ x0, y0, dx, dy int }{
		{b.Min.X, b.Min.Y, 1, 1},
		{b.Max.X - 1, b.Min.Y, -1, 1},
		{b.Min.X, b.Max.Y - 1, 1, -1},
		{b.Max.X - 1, b.Max.Y - 1, -1, -1},
	}

	samples := make([]color.RGBA, 0, 4*n*n)
	for _, c := range corners {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				nc := color.NRGBAModel.Convert(img.At(c.x0+i*c.dx, c.y0+j*c.dy)).(color.NRGBA)
				samples = append(samples, color.RGBA{R: nc.R, G: nc.G, B: nc.B, A: 255})
			}
		}
	}
	return samples
}

// BackgroundColor estimates the background as the most frequent exact RGB
// value among the corner samples.
//
// When several colors share the highest count, the one encountered first in
// CornerSamples order wins. ok is false for empty images.
func BackgroundColor(img image.Image) (bg color.RGBA, ok bool) {
	samples := CornerSamples(img)
	if len(samples) == 0 {
		return color.RGBA{}, false
	}

	counts := make(map[color.RGBA]int)
	order := make([]color.RGBA, 0)
	for _, c := range samples {
		if counts[c] == 0 {
			order = append(order, c)
		}
		counts[c]++
	}

	best := order[0]
	for _, c := range order[1:] {
		if counts[c] > counts[best] {
			best = c
		}
	}
	return best, true
}
