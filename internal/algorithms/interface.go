package algorithms

import (
	"skeleton-workbench/internal/models"
	"skeleton-workbench/internal/processing/histogram"
)

// Algorithm is a parameter-block producer for one renderer operator.
// Submit serializes the whole descriptor; ContinuousSubmit serializes the
// leading part that changes while the operator is previewed, and may be
// empty.
type Algorithm interface {
	GetName() string
	GetDefaultParameters() map[string]interface{}
	GetParameterRanges() map[string]models.ParameterRange
	ValidateParameters(params map[string]interface{}) error
	ApplyParameters(params map[string]interface{}) error
	Submit() []byte
	ContinuousSubmit() []byte
}

// HistogramPreparer derives its descriptor from the current histogram.
type HistogramPreparer interface {
	PrepareFromHistogram(h *histogram.Histogram)
}

// ImagePreparer derives its descriptor from the pixel buffer.
type ImagePreparer interface {
	PrepareFromImage(img *models.Image) error
}

// KernelPreparer loads its descriptor from a kernel file.
type KernelPreparer interface {
	PrepareFromFile(path string) error
}
