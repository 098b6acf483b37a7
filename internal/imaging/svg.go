package imaging

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"
)

// VectorRect is one block of a VectorDocument.
type VectorRect struct {
	X, Y  int        // Top-left corner in canvas pixels
	Size  int        // Edge length (the pixel size)
	Color color.RGBA // Fill color; A < 255 is written as an opacity attribute
}

// VectorDocument is a scalable vector rendition of a pixelated image: one
// square per block plus the canvas size.
type VectorDocument struct {
	Width  int
	Height int
	Rects  []VectorRect
}

// BuildVectorDocument emits one square per whole block of img.
//
// The image is divided into (w/pixelSize) x (h/pixelSize) cells; a ragged
// strip along the right or bottom edge is dropped. Each cell takes the color
// of its top-left pixel. Fully transparent cells are skipped.
func BuildVectorDocument(img image.Image, pixelSize int) (*VectorDocument, error) {
	if err := validateImage(img); err != nil {
		return nil, err
	}
	if pixelSize < 1 {
		return nil, fmt.Errorf("%w: pixel size %d must be at least 1", ErrInvalidParameter, pixelSize)
	}

	b := img.Bounds()
	cols, rows := GridSize(b.Dx(), b.Dy(), pixelSize)
	doc := &VectorDocument{
		Width:  b.Dx(),
		Height: b.Dy(),
		Rects:  make([]VectorRect, 0, cols*rows),
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x, y := col*pixelSize, row*pixelSize
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			doc.Rects = append(doc.Rects, VectorRect{
				X:     x,
				Y:     y,
				Size:  pixelSize,
				Color: color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A},
			})
		}
	}
	return doc, nil
}

// WriteTo writes the document as SVG markup, one rect per line.
func (d *VectorDocument) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" shape-rendering="crispEdges">`,
		d.Width, d.Height)
	sb.WriteByte('\n')
	for i, r := range d.Rects {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"`,
			r.X, r.Y, r.Size, r.Size, HexString(r.Color))
		if r.Color.A < 255 {
			fmt.Fprintf(&sb, ` opacity="%.2f"`, float64(r.Color.A)/255)
		}
		sb.WriteString("/>")
	}
	sb.WriteString("\n</svg>")

	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

// String returns the SVG markup.
func (d *VectorDocument) String() string {
	var sb strings.Builder
	_, _ = d.WriteTo(&sb)
	return sb.String()
}

// ToVectorDocument renders a pixelated image as an SVG string.
func ToVectorDocument(img image.Image, pixelSize int) (string, error) {
	doc, err := BuildVectorDocument(img, pixelSize)
	if err != nil {
		return "", err
	}
	return doc.String(), nil
}
