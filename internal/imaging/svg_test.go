package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createBlockImage builds a 4x4 image of four 2x2 blocks.
func createBlockImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	blocks := []color.NRGBA{
		{255, 0, 0, 255},     // top-left
		{0, 255, 0, 0},       // top-right, transparent
		{0, 0, 255, 128},     // bottom-left, translucent
		{255, 255, 255, 255}, // bottom-right
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, blocks[(y/2)*2+x/2])
		}
	}
	return img
}

func TestToVectorDocument(t *testing.T) {
	got, err := ToVectorDocument(createBlockImage(), 2)
	require.NoError(t, err)

	want := strings.Join([]string{
		`<svg xmlns="http://www.w3.org/2000/svg" width="4" height="4" shape-rendering="crispEdges">`,
		`<rect x="0" y="0" width="2" height="2" fill="#ff0000"/>`,
		`<rect x="0" y="2" width="2" height="2" fill="#0000ff" opacity="0.50"/>`,
		`<rect x="2" y="2" width="2" height="2" fill="#ffffff"/>`,
		`</svg>`,
	}, "\n")
	assert.Equal(t, want, got)
}

func TestBuildVectorDocument_DropsRaggedStrip(t *testing.T) {
	img := createGradientImage(5, 7)

	doc, err := BuildVectorDocument(img, 2)
	require.NoError(t, err)

	assert.Equal(t, 5, doc.Width)
	assert.Equal(t, 7, doc.Height)
	require.Len(t, doc.Rects, 2*3)
	for _, r := range doc.Rects {
		assert.True(t, r.X+r.Size <= 4 && r.Y+r.Size <= 6, "rect %+v reaches the ragged strip", r)
	}
}

func TestBuildVectorDocument_EmptyDocument(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))

	got, err := ToVectorDocument(img, 2)
	require.NoError(t, err)
	assert.Equal(t,
		`<svg xmlns="http://www.w3.org/2000/svg" width="4" height="4" shape-rendering="crispEdges">`+"\n\n</svg>",
		got)
}

func TestBuildVectorDocument_Errors(t *testing.T) {
	_, err := BuildVectorDocument(nil, 2)
	assert.True(t, errors.Is(err, ErrInvalidImage), "got %v", err)

	_, err = BuildVectorDocument(createBlockImage(), 0)
	assert.True(t, errors.Is(err, ErrInvalidParameter), "got %v", err)
}

// Painting every rect back onto a blank canvas reproduces the opaque blocks.
func TestBuildVectorDocument_Rasterizes(t *testing.T) {
	src := createGradientImage(48, 32)
	img, err := Pixelate(src, Params{PixelSize: 8, Mode: ModeGameBoy})
	require.NoError(t, err)

	doc, err := BuildVectorDocument(img, 8)
	require.NoError(t, err)
	require.Len(t, doc.Rects, 6*4)

	canvas := image.NewNRGBA(image.Rect(0, 0, doc.Width, doc.Height))
	for _, r := range doc.Rects {
		for y := r.Y; y < r.Y+r.Size; y++ {
			for x := r.X; x < r.X+r.Size; x++ {
				canvas.SetNRGBA(x, y, color.NRGBA{r.Color.R, r.Color.G, r.Color.B, r.Color.A})
			}
		}
	}
	assert.Equal(t, img.Pix, canvas.Pix)
}

func TestVectorDocument_WriteTo(t *testing.T) {
	doc, err := BuildVectorDocument(createBlockImage(), 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := doc.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, doc.String(), buf.String())
}
