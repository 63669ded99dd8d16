package pipeline

import (
	"context"
	"errors"

	"skeleton-workbench/internal/models"
)

var (
	ErrNoImage             = errors.New("no image loaded")
	ErrDescriptorTooLarge  = errors.New("descriptor exceeds buffer size")
	ErrUnsupportedFormat   = errors.New("unsupported image format")
	ErrAlgorithmNotCapable = errors.New("algorithm does not support operation")
)

// Common interfaces used across pipeline components
type Logger interface {
	Debug(component string, message string, fields map[string]interface{})
	Info(component string, message string, fields map[string]interface{})
	Warning(component string, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
}

type TimingTracker interface {
	StartTiming(operation string) context.Context
	EndTiming(ctx context.Context)
}

// Decoder turns encoded file bytes into an RGBA image.
type Decoder interface {
	Name() string
	Decode(data []byte) (*models.Image, error)
}

// Encoder serializes an image in the format named by a file extension.
type Encoder interface {
	Name() string
	Encode(ext string, img *models.Image) ([]byte, error)
}

// Uploader is the renderer's descriptor buffer.
type Uploader interface {
	Upload(offset int, data []byte) error
}
