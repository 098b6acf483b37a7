package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveBackground(t *testing.T) {
	img := createShapeImage(32, 8, 24, color.NRGBA{200, 10, 10, 255})

	out := RemoveBackground(img, 10)

	assert.Equal(t, color.NRGBA{255, 255, 255, 0}, out.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{255, 255, 255, 0}, out.NRGBAAt(31, 5))
	assert.Equal(t, color.NRGBA{200, 10, 10, 255}, out.NRGBAAt(16, 16))
	assert.Equal(t, uint8(255), img.NRGBAAt(0, 0).A, "input must not be modified")
}

func TestRemoveBackground_Tolerance(t *testing.T) {
	// Near-white stripe at squared distance 75 from the white background.
	img := createShapeImage(24, 0, 0, color.NRGBA{})
	for x := 0; x < 24; x++ {
		img.SetNRGBA(x, 12, color.NRGBA{250, 250, 250, 255})
	}

	tests := []struct {
		name      string
		tolerance int
		wantAlpha uint8
	}{
		{"within tolerance", 10, 0},
		{"just within tolerance", 9, 0},
		{"outside tolerance", 8, 255},
		{"zero tolerance", 0, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RemoveBackground(img, tt.tolerance)
			assert.Equal(t, tt.wantAlpha, out.NRGBAAt(5, 12).A)
			assert.Equal(t, uint8(0), out.NRGBAAt(5, 0).A, "exact background is always removed")
		})
	}
}

func TestRemoveBackground_Empty(t *testing.T) {
	out := RemoveBackground(image.NewNRGBA(image.Rect(0, 0, 0, 0)), 10)
	assert.Equal(t, 0, out.Bounds().Dx())
}
