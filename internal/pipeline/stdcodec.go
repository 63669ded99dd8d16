package pipeline

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"skeleton-workbench/internal/models"
)

// StdCodec decodes and encodes through image.Decode and the x/image
// codecs. It serves as the fallback when OpenCV is unavailable or rejects a
// file.
type StdCodec struct {
	JPEGQuality int
}

func NewStdCodec() *StdCodec {
	return &StdCodec{JPEGQuality: 95}
}

func (c *StdCodec) Name() string {
	return "stdlib"
}

func (c *StdCodec) Decode(data []byte) (*models.Image, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image with standard library: %w", err)
	}

	img := FromGoImage(src)
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("decoded %s image: %w", format, err)
	}
	return img, nil
}

func (c *StdCodec) Encode(ext string, img *models.Image) ([]byte, error) {
	src, err := ToGoImage(img)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch strings.ToLower(ext) {
	case ".png":
		err = png.Encode(&buf, src)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(&buf, src, &jpeg.Options{Quality: c.JPEGQuality})
	case ".bmp":
		err = bmp.Encode(&buf, src)
	case ".tif", ".tiff":
		err = tiff.Encode(&buf, src, nil)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", ext, err)
	}
	return buf.Bytes(), nil
}

// FromGoImage copies any image.Image into a 4-channel non-premultiplied
// RGBA buffer.
func FromGoImage(src image.Image) *models.Image {
	bounds := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)

	return &models.Image{
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Channels: 4,
		Pixels:   dst.Pix,
	}
}

// ToGoImage views an RGB or RGBA buffer as an *image.NRGBA. RGB buffers are
// expanded with opaque alpha.
func ToGoImage(img *models.Image) (*image.NRGBA, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}

	dst := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	switch img.Channels {
	case 4:
		copy(dst.Pix, img.Pixels)
	default:
		for p, i := 0, 0; i+img.Channels <= len(img.Pixels); p, i = p+4, i+img.Channels {
			copy(dst.Pix[p:p+3], img.Pixels[i:i+3])
			dst.Pix[p+3] = 255
		}
	}
	return dst, nil
}
