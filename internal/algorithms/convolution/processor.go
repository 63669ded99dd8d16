// Package convolution loads kernel definition files and packs the loaded
// kernel into the convolution descriptor.
package convolution

import (
	"skeleton-workbench/internal/algorithms/descriptor"
	"skeleton-workbench/internal/models"
)

const Name = "Convolution"

const (
	ParamGrayscale = "grayscale"
	ParamGradient  = "gradient"
)

const maxSide = 2*MaxKernelRadius + 1

// Descriptor carries the loaded kernel in a fixed 21x21 block; only the
// first Side*Side entries are meaningful.
type Descriptor struct {
	KernelSize   int32
	Grayscale    bool
	Gradient     bool
	Coefficients [maxSide * maxSide]float32
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
	return map[string]interface{}{
		ParamGrayscale: false,
		ParamGradient:  false,
	}
}

func (p *Processor) GetParameterRanges() map[string]models.ParameterRange {
	return map[string]models.ParameterRange{}
}

func (p *Processor) ValidateParameters(params map[string]interface{}) error {
	return models.ValidateParameters(p.GetParameterRanges(), params)
}

func (p *Processor) ApplyParameters(params map[string]interface{}) error {
	if err := p.ValidateParameters(params); err != nil {
		return err
	}
	if v, ok := params[ParamGrayscale].(bool); ok {
		p.Descriptor.Grayscale = v
	}
	if v, ok := params[ParamGradient].(bool); ok {
		p.Descriptor.Gradient = v
	}
	return nil
}

// PrepareFromFile loads the kernel at path. On error the descriptor keeps
// the previous kernel.
func (p *Processor) PrepareFromFile(path string) error {
	kernel, err := LoadKernelFile(path)
	if err != nil {
		return err
	}
	p.SetKernel(kernel)
	return nil
}

// SetKernel copies kernel into the descriptor and clears the unused tail.
func (p *Processor) SetKernel(kernel Kernel) {
	p.Descriptor.KernelSize = int32(kernel.Radius)
	p.Descriptor.Coefficients = [maxSide * maxSide]float32{}
	copy(p.Descriptor.Coefficients[:], kernel.Coefficients)
}

// Kernel returns the kernel currently held by the descriptor.
func (p *Processor) Kernel() Kernel {
	k := Kernel{Radius: int(p.Descriptor.KernelSize)}
	n := k.Side() * k.Side()
	k.Coefficients = append([]float32(nil), p.Descriptor.Coefficients[:n]...)
	return k
}

func (p *Processor) Submit() []byte {
	d := &p.Descriptor
	return descriptor.NewBlock(16 + len(d.Coefficients)*4).
		Int32(d.KernelSize).
		Bool(d.Grayscale).
		Bool(d.Gradient).
		Align(16).
		Float32s(d.Coefficients[:]).
		Bytes()
}

func (p *Processor) ContinuousSubmit() []byte {
	return p.Submit()
}
