package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		name   string
		want   ColorMode
		wantOK bool
	}{
		{"full", ModeFull, true},
		{"64color", ModeColors64, true},
		{"32color", ModeColors32, true},
		{"16color", ModeColors16, true},
		{"8color", ModeColors8, true},
		{"gameboy", ModeGameBoy, true},
		{"bw", ModeBW, true},
		{"dave", ModeDave, true},
		{"diver", ModeDiver, true},
		{"palette", ModePalette, true},
		{"", ModeFull, false},
		{"GameBoy", ModeFull, false},
		{"4color", ModeFull, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseColorMode(tt.name)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.name, got.String())
			}
		})
	}
}

func TestColorMode_DefaultColors(t *testing.T) {
	assert.Equal(t, 64, ModeColors64.DefaultColors())
	assert.Equal(t, 32, ModeColors32.DefaultColors())
	assert.Equal(t, 16, ModeColors16.DefaultColors())
	assert.Equal(t, 8, ModeColors8.DefaultColors())
	assert.Equal(t, 0, ModeFull.DefaultColors())
	assert.Equal(t, 0, ModeBW.DefaultColors(), "grayscale keeps every gray level")
	assert.Equal(t, 0, ModeGameBoy.DefaultColors())
	assert.Equal(t, 0, ColorMode(42).DefaultColors())
	assert.Equal(t, "full", ColorMode(42).String())
}

func TestColorModes_ReturnsCopy(t *testing.T) {
	modes := ColorModes()
	require.Len(t, modes, 10)
	assert.Equal(t, "full", modes[0].Name)

	modes[0].Name = "changed"
	assert.Equal(t, "full", ColorModes()[0].Name)
}

func TestApplyColorMode_KeepsDimensions(t *testing.T) {
	img, err := PixelateGrid(createGradientImage(40, 24), 4)
	require.NoError(t, err)

	for _, info := range ColorModes() {
		t.Run(info.Name, func(t *testing.T) {
			out := ApplyColorMode(img, Params{PixelSize: 4, Mode: info.Mode, NumColors: info.Colors})
			assert.Equal(t, img.Bounds(), out.Bounds())
		})
	}
}

func TestApplyColorMode_FullIsCopy(t *testing.T) {
	img := createGradientImage(8, 8)

	out := ApplyColorMode(img, Params{Mode: ModeFull})
	assert.Equal(t, img.Pix, out.Pix)

	out.Pix[0] = ^out.Pix[0]
	assert.NotEqual(t, img.Pix[0], out.Pix[0], "output must not share the input buffer")
}

func TestApplyColorMode_PaletteWithoutEntries(t *testing.T) {
	img := createGradientImage(8, 8)

	out := ApplyColorMode(img, Params{Mode: ModePalette})
	assert.Equal(t, img.Pix, out.Pix)
}

func TestMapToPalette(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{10, 10, 10, 255})
	img.SetNRGBA(1, 0, color.NRGBA{240, 250, 230, 77})

	p := Palette{{0, 0, 0, 255}, {255, 255, 255, 255}}
	out := MapToPalette(img, p)

	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, out.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{255, 255, 255, 77}, out.NRGBAAt(1, 0), "alpha is carried over")
}
