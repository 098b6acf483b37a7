package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// ColorMode selects how block colors are transformed after the grid pass.
type ColorMode int

const (
	// ModeFull keeps the averaged block colors as they are.
	ModeFull ColorMode = iota
	// ModeColors64 quantizes to 64 colors.
	ModeColors64
	// ModeColors32 quantizes to 32 colors.
	ModeColors32
	// ModeColors16 quantizes to 16 colors.
	ModeColors16
	// ModeColors8 quantizes to 8 colors.
	ModeColors8
	// ModeGameBoy maps every block to the 4-color GameBoy palette.
	ModeGameBoy
	// ModeBW converts to luminance, kept as an achromatic RGB image.
	ModeBW
	// ModeDave is the vivid cartoon stylization with black outlines.
	ModeDave
	// ModeDiver is the softer stylization with darkened outlines.
	ModeDiver
	// ModePalette maps every block to a caller-supplied palette.
	ModePalette
)

// ModeInfo describes one entry of the color mode table.
type ModeInfo struct {
	Mode   ColorMode `json:"-"`
	Name   string    `json:"name"`
	Label  string    `json:"label"`
	Colors int       `json:"colors,omitempty"` // Default color count, 0 if not a quantizing mode
}

var modeTable = []ModeInfo{
	{ModeFull, "full", "Full color", 0},
	{ModeColors64, "64color", "64 colors", 64},
	{ModeColors32, "32color", "32 colors", 32},
	{ModeColors16, "16color", "16 colors", 16},
	{ModeColors8, "8color", "8 colors", 8},
	{ModeGameBoy, "gameboy", "GameBoy", 0},
	{ModeBW, "bw", "Black & white", 0},
	{ModeDave, "dave", "Dave (cartoon)", 32},
	{ModeDiver, "diver", "Diver (soft outline)", 32},
	{ModePalette, "palette", "Custom palette", 0},
}

// ColorModes returns the table of supported color modes in display order.
func ColorModes() []ModeInfo {
	out := make([]ModeInfo, len(modeTable))
	copy(out, modeTable)
	return out
}

// ParseColorMode maps a mode name such as "16color" to its ColorMode.
//
// Unknown names return ModeFull and ok == false. Callers that want the
// permissive behavior of treating unknown modes as full color can ignore ok.
func ParseColorMode(name string) (mode ColorMode, ok bool) {
	for _, m := range modeTable {
		if m.Name == name {
			return m.Mode, true
		}
	}
	return ModeFull, false
}

// String returns the mode's table name.
func (m ColorMode) String() string {
	for _, info := range modeTable {
		if info.Mode == m {
			return info.Name
		}
	}
	return "full"
}

// DefaultColors returns the color count the mode table associates with m.
//
// Numeric modes rely on the caller to pass this through Params.NumColors;
// the pipeline itself does not fill it in.
func (m ColorMode) DefaultColors() int {
	for _, info := range modeTable {
		if info.Mode == m {
			return info.Colors
		}
	}
	return 0
}

// quantizes reports whether m is one of the N-color modes.
func (m ColorMode) quantizes() bool {
	switch m {
	case ModeColors64, ModeColors32, ModeColors16, ModeColors8:
		return true
	}
	return false
}

// ApplyColorMode runs the color stage selected by p.Mode on an opaque image.
//
// The input is never modified. Modes that cannot run with the given
// parameters fall back to returning an unchanged copy:
//   - N-color modes with p.NumColors <= 0
//   - ModePalette with an empty p.Palette
//   - values outside the ColorMode enumeration
func ApplyColorMode(img *image.NRGBA, p Params) *image.NRGBA {
	switch {
	case p.Mode == ModeFull:
		return imaging.Clone(img)
	case p.Mode == ModeDave:
		return Stylize(img, DaveStyle(), p.quantizer())
	case p.Mode == ModeDiver:
		return Stylize(img, DiverStyle(), p.quantizer())
	case p.Mode == ModeBW:
		return imaging.Grayscale(img)
	case p.Mode == ModeGameBoy:
		return MapToPalette(img, GameBoyPalette())
	case p.Mode == ModePalette && len(p.Palette) > 0:
		return MapToPalette(img, p.Palette)
	case p.Mode.quantizes() && p.NumColors > 0:
		return Quantize(img, p.NumColors, p.quantizer())
	}
	return imaging.Clone(img)
}

// MapToPalette replaces every pixel with its nearest palette entry.
//
// Alpha is carried over unchanged.
func MapToPalette(img *image.NRGBA, p Palette) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	src := imaging.Clone(img)

	// Blocks repeat the same color many times, so remember earlier lookups.
	seen := make(map[[3]uint8][3]uint8)
	for i := 0; i+3 < len(src.Pix); i += 4 {
		key := [3]uint8{src.Pix[i], src.Pix[i+1], src.Pix[i+2]}
		mapped, ok := seen[key]
		if !ok {
			c := NearestPaletteColor(rgbaAt(src.Pix, i), p)
			mapped = [3]uint8{c.R, c.G, c.B}
			seen[key] = mapped
		}
		out.Pix[i], out.Pix[i+1], out.Pix[i+2] = mapped[0], mapped[1], mapped[2]
		out.Pix[i+3] = src.Pix[i+3]
	}
	return out
}
