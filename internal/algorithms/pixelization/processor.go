// Package pixelization holds the pixelization descriptor and the compute
// dispatch size derived from it: one work group per kernel-sized block.
package pixelization

import (
	"skeleton-workbench/internal/algorithms/descriptor"
	"skeleton-workbench/internal/models"
)

const Name = "Pixelization"

const (
	ParamKernelSize   = "kernel_size"
	DefaultKernelSize = 10
)

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
		ParamKernelSize: {Min: 2, Max: 100},
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

// DispatchGroups returns the number of blocks covering a width x height
// image, rounding partial blocks up.
func (p *Processor) DispatchGroups(width, height int) (x, y int) {
	k := int(p.Descriptor.KernelSize)
	return (width + k - 1) / k, (height + k - 1) / k
}

func (p *Processor) Submit() []byte {
	return descriptor.NewBlock(4).Int32(p.Descriptor.KernelSize).Bytes()
}

func (p *Processor) ContinuousSubmit() []byte {
	return p.Submit()
}
