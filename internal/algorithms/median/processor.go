// Package median holds the median filter descriptor.
package median

import (
	"skeleton-workbench/internal/algorithms/descriptor"
	"skeleton-workbench/internal/models"
)

const Name = "Median"

const (
	ParamKernelSize   = "kernel_size"
	DefaultKernelSize = 1
)

// Descriptor holds the window radius; the window side is 2*KernelSize+1.
type Descriptor struct {
	KernelSize int32
}

type Processor struct {
	Descriptor Descriptor
}

func NewProcessor() *Processor {
	return &Processor{Descriptor: Descriptor{KernelSize: DefaultKernelSize}}
}

func (p *Processor) GetName() string {
	return Name
}

func (p *Processor) GetDefaultParameters() map[string]interface{} {
	return map[string]interface{}{ParamKernelSize: DefaultKernelSize}
}

func (p *Processor) GetParameterRanges() map[string]models.ParameterRange {
	return map[string]models.ParameterRange{
		ParamKernelSize: {Min: 1, Max: 3},
	}
}

func (p *Processor) ValidateParameters(params map[string]interface{}) error {
	return models.ValidateParameters(p.GetParameterRanges(), params)
}

func (p *Processor) ApplyParameters(params map[string]interface{}) error {
	if err := p.ValidateParameters(params); err != nil {
		return err
	}
	if v, ok := params[ParamKernelSize].(int); ok {
		p.Descriptor.KernelSize = int32(v)
	}
	return nil
}

func (p *Processor) Submit() []byte {
	return descriptor.NewBlock(4).Int32(p.Descriptor.KernelSize).Bytes()
}

func (p *Processor) ContinuousSubmit() []byte {
	return p.Submit()
}
