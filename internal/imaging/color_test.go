package imaging

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestColorDistance(t *testing.T) {
	tests := []struct {
		name   string
		c1, c2 color.RGBA
		want   float64
	}{
		{"identical", color.RGBA{10, 20, 30, 255}, color.RGBA{10, 20, 30, 255}, 0},
		{"one channel", color.RGBA{0, 0, 0, 255}, color.RGBA{3, 0, 0, 255}, 3},
		{"3-4-5", color.RGBA{0, 0, 0, 255}, color.RGBA{3, 4, 0, 255}, 5},
		{"black to white", color.RGBA{0, 0, 0, 255}, color.RGBA{255, 255, 255, 255}, math.Sqrt(3 * 255 * 255)},
		{"alpha ignored", color.RGBA{1, 2, 3, 0}, color.RGBA{1, 2, 3, 255}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ColorDistance(tt.c1, tt.c2)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ColorDistance: got %f, want %f", got, tt.want)
			}
			if back := ColorDistance(tt.c2, tt.c1); back != got {
				t.Errorf("ColorDistance not symmetric: %f vs %f", got, back)
			}
		})
	}
}

func TestNearestPaletteColor(t *testing.T) {
	gb := GameBoyPalette()

	tests := []struct {
		name string
		in   color.RGBA
		want color.RGBA
	}{
		{"black goes darkest", color.RGBA{0, 0, 0, 255}, gb[0]},
		{"white goes lightest", color.RGBA{255, 255, 255, 255}, gb[3]},
		{"exact entry", gb[1], gb[1]},
		{"near third", color.RGBA{140, 170, 20, 255}, gb[2]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NearestPaletteColor(tt.in, gb); got != tt.want {
				t.Errorf("NearestPaletteColor(%v): got %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNearestPaletteColor_TieKeepsFirst(t *testing.T) {
	p := Palette{
		{R: 0, G: 0, B: 0, A: 255},
		{R: 20, G: 0, B: 0, A: 255},
		{R: 0, G: 0, B: 0, A: 255},
	}
	got := NearestPaletteColor(color.RGBA{10, 0, 0, 255}, p)
	if got != p[0] {
		t.Errorf("tie: got %v, want first entry %v", got, p[0])
	}
}

func TestGameBoyPalette_IsCopy(t *testing.T) {
	p := GameBoyPalette()
	p[0] = color.RGBA{1, 1, 1, 255}

	if GameBoyPalette()[0] != (color.RGBA{15, 56, 15, 255}) {
		t.Error("modifying a returned palette changed the shared GameBoy palette")
	}
	if len(GameBoyPalette()) != 4 {
		t.Errorf("GameBoy palette length: got %d, want 4", len(GameBoyPalette()))
	}
}

func TestParsePalette(t *testing.T) {
	p, err := ParsePalette([]string{"#ff0000", "00FF00", "#0000ff"})
	if err != nil {
		t.Fatalf("ParsePalette failed: %v", err)
	}
	want := Palette{
		{255, 0, 0, 255},
		{0, 255, 0, 255},
		{0, 0, 255, 255},
	}
	if len(p) != len(want) {
		t.Fatalf("length: got %d, want %d", len(p), len(want))
	}
	for i := range want {
		if p[i] != want[i] {
			t.Errorf("entry %d: got %v, want %v", i, p[i], want[i])
		}
	}
}

func TestParsePalette_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input []string
	}{
		{"empty", nil},
		{"not hex", []string{"#zzzzzz"}},
		{"too short", []string{"#12"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePalette(tt.input)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("got %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestHexString(t *testing.T) {
	tests := []struct {
		c    color.RGBA
		want string
	}{
		{color.RGBA{255, 128, 64, 255}, "#ff8040"},
		{color.RGBA{0, 0, 0, 255}, "#000000"},
		{color.RGBA{15, 56, 15, 255}, "#0f380f"},
		{color.RGBA{1, 2, 3, 0}, "#010203"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := HexString(tt.c); got != tt.want {
				t.Errorf("HexString: got %s, want %s", got, tt.want)
			}
		})
	}
}
