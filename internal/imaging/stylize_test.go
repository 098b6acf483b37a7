package imaging

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyles(t *testing.T) {
	dave := DaveStyle()
	assert.True(t, dave.Smooth)
	assert.Equal(t, 1.8, dave.Saturation)
	assert.Equal(t, 1.4, dave.Contrast)
	assert.Equal(t, 1.05, dave.Brightness)
	assert.Equal(t, 32, dave.Colors)
	assert.Equal(t, 20, dave.Outline.Threshold)
	assert.Equal(t, OutlineBlack, dave.Outline.Variant)

	diver := DiverStyle()
	assert.False(t, diver.Smooth)
	assert.Equal(t, 1.5, diver.Saturation)
	assert.Equal(t, 1.3, diver.Contrast)
	assert.Equal(t, 32, diver.Colors)
	assert.Equal(t, 30, diver.Outline.Threshold)
	assert.Equal(t, OutlineDarken, diver.Outline.Variant)
}

func TestStylize_SolidImageStaysSolid(t *testing.T) {
	c := color.NRGBA{100, 150, 200, 255}
	img := createSplitImage(16, c, c)

	for name, s := range map[string]Style{"dave": DaveStyle(), "diver": DiverStyle()} {
		t.Run(name, func(t *testing.T) {
			out := Stylize(img, s, NewQuantizer(QuantizerMedianCut))
			require.Equal(t, img.Bounds(), out.Bounds())

			first := out.NRGBAAt(0, 0)
			assert.NotEqual(t, color.NRGBA{0, 0, 0, 255}, first, "no outline on a solid image")
			for y := 0; y < 16; y++ {
				for x := 0; x < 16; x++ {
					require.Equal(t, first, out.NRGBAAt(x, y), "pixel (%d,%d)", x, y)
				}
			}
		})
	}
}

func TestStylize_DaveOutlinesBoundary(t *testing.T) {
	img := createSplitImage(32, color.NRGBA{255, 0, 0, 255}, color.NRGBA{0, 0, 255, 255})

	out := Stylize(img, DaveStyle(), NewQuantizer(QuantizerMedianCut))

	black := 0
	for y := 0; y < 32; y++ {
		for x := 14; x < 18; x++ {
			if out.NRGBAAt(x, y) == (color.NRGBA{0, 0, 0, 255}) {
				black++
			}
		}
	}
	assert.Greater(t, black, 0, "expected black outline pixels along the boundary")
	assert.NotEqual(t, color.NRGBA{0, 0, 0, 255}, out.NRGBAAt(2, 16))
	assert.NotEqual(t, color.NRGBA{0, 0, 0, 255}, out.NRGBAAt(29, 16))
	assert.LessOrEqual(t, distinctColors(out), 33)
}

func TestStylize_DoesNotModifyInput(t *testing.T) {
	img := createGradientImage(24, 24)
	before := append([]uint8(nil), img.Pix...)

	Stylize(img, DaveStyle(), NewQuantizer(QuantizerMedianCut))
	Stylize(img, DiverStyle(), NewQuantizer(QuantizerMedianCut))
	assert.Equal(t, before, img.Pix)
}

func TestSmooth_SolidUnchanged(t *testing.T) {
	c := color.NRGBA{12, 34, 56, 255}
	img := createSplitImage(8, c, c)

	assert.Equal(t, img.Pix, Smooth(img).Pix)
}

// Expected values follow bild's HSL saturation and its lookup-table contrast
// and brightness curves. Float rounding may land one step either way.
func TestStylize_ColorBoosts(t *testing.T) {
	src := color.NRGBA{150, 120, 100, 255}
	noOutline := OutlineOptions{Threshold: 255}

	tests := []struct {
		name  string
		style Style
		want  color.NRGBA
	}{
		{"saturation", Style{Saturation: 1.8, Contrast: 1, Brightness: 1}, color.NRGBA{170, 116, 80, 255}},
		{"contrast", Style{Saturation: 1, Contrast: 1.4, Brightness: 1}, color.NRGBA{159, 117, 89, 255}},
		{"brightness", Style{Saturation: 1, Contrast: 1, Brightness: 1.05}, color.NRGBA{157, 126, 105, 255}},
		{"dave", Style{Smooth: true, Saturation: 1.8, Contrast: 1.4, Brightness: 1.05}, color.NRGBA{196, 116, 63, 255}},
		{"diver", Style{Saturation: 1.5, Contrast: 1.3, Brightness: 1}, color.NRGBA{173, 115, 76, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.style.Outline = noOutline
			out := Stylize(createSplitImage(8, src, src), tt.style, NewQuantizer(QuantizerMedianCut))

			got := out.NRGBAAt(4, 4)
			assert.InDelta(t, tt.want.R, got.R, 1, "red")
			assert.InDelta(t, tt.want.G, got.G, 1, "green")
			assert.InDelta(t, tt.want.B, got.B, 1, "blue")
			assert.Equal(t, uint8(255), got.A)
		})
	}
}

// The preset styles keep their boosts: the channel spread widens and the
// warm tone moves away from mid gray.
func TestStylize_PresetsBoostColor(t *testing.T) {
	src := color.NRGBA{150, 120, 100, 255}
	spread := func(c color.NRGBA) int {
		return int(max(c.R, c.G, c.B)) - int(min(c.R, c.G, c.B))
	}

	for name, s := range map[string]Style{"dave": DaveStyle(), "diver": DiverStyle()} {
		t.Run(name, func(t *testing.T) {
			s.Colors = 0
			s.Outline.Threshold = 255
			got := Stylize(createSplitImage(8, src, src), s, nil).NRGBAAt(4, 4)

			assert.Greater(t, spread(got), spread(src)+40)
			assert.Greater(t, got.R, src.R, "red moves away from mid gray")
			assert.Less(t, got.B, src.B, "blue moves away from mid gray")
		})
	}
}
