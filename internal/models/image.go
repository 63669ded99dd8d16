package models

import (
	"fmt"
)

// Image is a caller-owned, row-major pixel buffer of Width*Height*Channels
// bytes. Loaded images are always normalized to 4 channels (RGBA).
type Image struct {
	Width    int
	Height   int
	Channels int
	Pixels   []byte
	Path     string
}

// RGB is a normalized colour triple in [0,1].
type RGB struct {
	R float32
	G float32
	B float32
}

// NewImage allocates a zeroed buffer.
func NewImage(width, height, channels int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid dimensions: %dx%d", width, height)
	}
	if channels < 3 {
		return nil, fmt.Errorf("at least 3 channels per pixel required, got %d", channels)
	}

	return &Image{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pixels:   make([]byte, width*height*channels),
	}, nil
}

// Validate checks that the buffer length agrees with the declared geometry.
func (img *Image) Validate() error {
	if img == nil {
		return fmt.Errorf("image is nil")
	}
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("invalid dimensions: %dx%d", img.Width, img.Height)
	}
	if img.Channels < 3 {
		return fmt.Errorf("at least 3 channels per pixel required, got %d", img.Channels)
	}
	if want := img.Width * img.Height * img.Channels; len(img.Pixels) != want {
		return fmt.Errorf("pixel buffer holds %d bytes, expected %d", len(img.Pixels), want)
	}
	return nil
}

func (img *Image) Stride() int {
	return img.Width * img.Channels
}

// Offset returns the byte index of channel 0 of pixel (x, y).
func (img *Image) Offset(x, y int) int {
	return y*img.Stride() + x*img.Channels
}

func (img *Image) Clone() *Image {
	pixels := make([]byte, len(img.Pixels))
	copy(pixels, img.Pixels)
	return &Image{
		Width:    img.Width,
		Height:   img.Height,
		Channels: img.Channels,
		Pixels:   pixels,
		Path:     img.Path,
	}
}
