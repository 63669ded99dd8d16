// Package codec decodes and encodes image files through OpenCV.
package codec

import (
	"fmt"
	"strings"

	"gocv.io/x/gocv"

	"skeleton-workbench/internal/models"
	"skeleton-workbench/internal/opencv/conversion"
	"skeleton-workbench/internal/opencv/safe"
)

// OpenCV implements the pipeline's decoder and encoder on top of gocv.
type OpenCV struct{}

func New() *OpenCV {
	return &OpenCV{}
}

func (c *OpenCV) Name() string {
	return "opencv"
}

// Decode reads any format OpenCV understands into an RGBA image.
func (c *OpenCV) Decode(data []byte) (*models.Image, error) {
	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image with OpenCV: %w", err)
	}

	safeMat, err := safe.NewMatFromMat(mat, "loaded_image")
	mat.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to create safe Mat: %w", err)
	}
	defer safeMat.Close()

	return conversion.ToImage(safeMat)
}

// Encode serializes img in the format named by ext (".png", ".jpg", ...).
func (c *OpenCV) Encode(ext string, img *models.Image) ([]byte, error) {
	fileExt, err := fileExtFor(ext)
	if err != nil {
		return nil, err
	}

	mat, err := conversion.FromImage(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer mat.Close()

	buf, err := gocv.IMEncode(fileExt, mat.GetMat())
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s with OpenCV: %w", ext, err)
	}
	defer buf.Close()

	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}

func fileExtFor(ext string) (gocv.FileExt, error) {
	switch ext = strings.ToLower(ext); ext {
	case ".png", ".bmp", ".tif", ".tiff", ".webp":
		return gocv.FileExt(ext), nil
	case ".jpg", ".jpeg":
		return gocv.JPEGFileExt, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", ext)
	}
}
