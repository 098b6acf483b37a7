package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Export formats understood by Render.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// RenderResult contains a pixelated image encoded for transport.
type RenderResult struct {
	Format     string `json:"format"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	DataBase64 string `json:"data"`
	MimeType   string `json:"mime_type"`
}

// ToRasterBytes encodes img losslessly as PNG.
func ToRasterBytes(img image.Image) ([]byte, error) {
	if err := validateImage(img); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("%w: failed to encode png: %v", ErrEncodingFailure, err)
	}
	return buf.Bytes(), nil
}

// Render encodes a pixelated image as base64 PNG or SVG.
//
// Parameters:
//   - img: The pixelated image, usually the output of Pixelate.
//   - format: FormatPNG or FormatSVG. Anything else falls back to PNG.
//   - pixelSize: The block size used to pixelate img; only used for SVG.
func Render(img image.Image, format string, pixelSize int) (*RenderResult, error) {
	var (
		data []byte
		mime string
		err  error
	)
	switch format {
	case FormatSVG:
		var doc string
		doc, err = ToVectorDocument(img, pixelSize)
		data, mime = []byte(doc), "image/svg+xml"
	default:
		format = FormatPNG
		data, err = ToRasterBytes(img)
		mime = "image/png"
	}
	if err != nil {
		return nil, err
	}

	return &RenderResult{
		Format:     format,
		Width:      img.Bounds().Dx(),
		Height:     img.Bounds().Dy(),
		DataBase64: base64.StdEncoding.EncodeToString(data),
		MimeType:   mime,
	}, nil
}
