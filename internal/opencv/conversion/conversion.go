// Package conversion moves pixels between gocv matrices (BGR order) and the
// workbench's RGBA image buffers.
package conversion

import (
	"fmt"

	"gocv.io/x/gocv"

	"skeleton-workbench/internal/models"
	"skeleton-workbench/internal/opencv/safe"
)

// ToImage converts a 3-channel BGR Mat into a 4-channel RGBA image with
// opaque alpha.
func ToImage(src *safe.Mat) (*models.Image, error) {
	if err := safe.ValidateColorConversion(src, gocv.ColorBGRToRGBA); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	dst := gocv.NewMat()
	defer dst.Close()

	gocv.CvtColor(src.GetMat(), &dst, gocv.ColorBGRToRGBA)
	if dst.Empty() {
		return nil, fmt.Errorf("BGR to RGBA conversion produced an empty Mat")
	}

	img := &models.Image{
		Width:    dst.Cols(),
		Height:   dst.Rows(),
		Channels: dst.Channels(),
		Pixels:   dst.ToBytes(),
	}
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("converted image: %w", err)
	}
	return img, nil
}

// FromImage converts an RGB or RGBA image into a 3-channel BGR Mat, the
// layout gocv encoders expect. Alpha is dropped.
func FromImage(img *models.Image) (*safe.Mat, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}

	var (
		matType gocv.MatType
		code    gocv.ColorConversionCode
	)
	switch img.Channels {
	case 3:
		matType, code = gocv.MatTypeCV8UC3, gocv.ColorRGBToBGR
	case 4:
		matType, code = gocv.MatTypeCV8UC4, gocv.ColorRGBAToBGR
	default:
		return nil, fmt.Errorf("unsupported channel count: %d", img.Channels)
	}

	src, err := safe.NewMatFromBytes(img.Height, img.Width, matType, img.Pixels, "image_source")
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if err := safe.ValidateColorConversion(src, code); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	dst := gocv.NewMat()
	defer dst.Close()

	gocv.CvtColor(src.GetMat(), &dst, code)

	return safe.NewMatFromMat(dst, "image_bgr")
}
