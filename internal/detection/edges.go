package detection

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Operator selects the edge-strength kernel.
type Operator int

const (
	// OperatorLaplacian sums each pixel's difference from its eight
	// neighbors, per channel, then takes the luminance of the result.
	OperatorLaplacian Operator = iota
	// OperatorSobel computes the Sobel gradient magnitude of the luminance.
	OperatorSobel
)

var (
	smoothKernel = [9]float64{
		1, 1, 1,
		1, 5, 1,
		1, 1, 1,
	}
	laplacianKernel = [9]float64{
		-1, -1, -1,
		-1, 8, -1,
		-1, -1, -1,
	}
	sobelX = [9]float64{
		-1, 0, 1,
		-2, 0, 2,
		-1, 0, 1,
	}
	sobelY = [9]float64{
		-1, -2, -1,
		0, 0, 0,
		1, 2, 1,
	}
)

// EdgeStrength returns a single-channel edge-strength map the size of img.
//
// The image is first low-passed with a 3x3 smoothing kernel to suppress
// quantization noise inside flat blocks, then run through the edge operator.
// Values are 0 (flat) to 255 (strong edge). Border pixels treat the image as
// extended by its outermost row and column.
func EdgeStrength(img image.Image, op Operator) *image.Gray {
	smoothed := imaging.Convolve3x3(img, smoothKernel, &imaging.ConvolveOptions{Normalize: true})

	switch op {
	case OperatorSobel:
		return sobelMagnitude(smoothed)
	default:
		return luminance(imaging.Convolve3x3(smoothed, laplacianKernel, &imaging.ConvolveOptions{}))
	}
}

// EdgeMask thresholds the edge-strength map: an entry is true when the edge
// strength of the pixel strictly exceeds threshold.
//
// The mask is row-major, one entry per pixel.
func EdgeMask(img image.Image, threshold int, op Operator) []bool {
	edges := EdgeStrength(img, op)
	mask := make([]bool, len(edges.Pix))
	for i, v := range edges.Pix {
		mask[i] = int(v) > threshold
	}
	return mask
}

// luminance converts an NRGBA image to grayscale using ITU-R BT.601 weights
// (0.299*R + 0.587*G + 0.114*B).
func luminance(img *image.NRGBA) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for i, j := 0, 0; j < len(out.Pix); i, j = i+4, j+1 {
		out.Pix[j] = grayValue(img.Pix[i], img.Pix[i+1], img.Pix[i+2])
	}
	return out
}

// grayValue computes BT.601 luminance, rounded to nearest.
func grayValue(r, g, b uint8) uint8 {
	return uint8(0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b) + 0.5)
}

// sobelMagnitude computes sqrt(Gx² + Gy²) over the luminance of img, scaled
// back into the 0-255 range.
func sobelMagnitude(img *image.NRGBA) *image.Gray {
	gray := luminance(img)
	width, height := gray.Rect.Dx(), gray.Rect.Dy()
	out := image.NewGray(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					v := float64(gray.Pix[py*gray.Stride+px])
					k := (ky+1)*3 + kx + 1
					gx += v * sobelX[k]
					gy += v * sobelY[k]
				}
			}
			mag := math.Sqrt(gx*gx + gy*gy)
			out.Pix[y*out.Stride+x] = uint8(math.Min(mag, 255))
		}
	}
	return out
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
