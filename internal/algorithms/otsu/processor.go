// Package otsu derives the global binarization threshold that maximizes the
// between-class variance of an image's RGB-mean histogram.
package otsu

import (
	"skeleton-workbench/internal/algorithms/descriptor"
	"skeleton-workbench/internal/models"
	"skeleton-workbench/internal/processing/histogram"
)

const Name = "Otsu"

// Descriptor is uploaded as a single float.
type Descriptor struct {
	Threshold float32
}

type Processor struct {
	Descriptor Descriptor
}

func NewProcessor() *Processor {
	return &Processor{}
}

func (p *Processor) GetName() string {
	return Name
}

func (p *Processor) GetDefaultParameters() map[string]interface{} {
	return map[string]interface{}{}
}

func (p *Processor) GetParameterRanges() map[string]models.ParameterRange {
	return map[string]models.ParameterRange{}
}

func (p *Processor) ValidateParameters(params map[string]interface{}) error {
	return models.ValidateParameters(p.GetParameterRanges(), params)
}

func (p *Processor) ApplyParameters(params map[string]interface{}) error {
	return p.ValidateParameters(params)
}

// PrepareFromHistogram stores the threshold of h.
func (p *Processor) PrepareFromHistogram(h *histogram.Histogram) {
	p.Descriptor.Threshold = Threshold(h)
}

func (p *Processor) Submit() []byte {
	return descriptor.NewBlock(4).Float32(p.Descriptor.Threshold).Bytes()
}

// ContinuousSubmit uploads nothing: the threshold only changes on prepare.
func (p *Processor) ContinuousSubmit() []byte {
	return nil
}
