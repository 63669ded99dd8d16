// Package localbin holds the local-adaptive binarization descriptor. The
// threshold of each pixel is derived from the mean and standard deviation of
// its kernel window by one of three equations.
package localbin

import (
	"fmt"

	"skeleton-workbench/internal/algorithms/descriptor"
	"skeleton-workbench/internal/models"
)

const Name = "Local Binarization"

// Equation selects the local threshold formula.
type Equation int32

const (
	Niblack Equation = iota
	Sauvola
	Phansalkar
)

func (e Equation) String() string {
	switch e {
	case Niblack:
		return "niblack"
	case Sauvola:
		return "sauvola"
	case Phansalkar:
		return "phansalkar"
	default:
		return fmt.Sprintf("equation(%d)", int32(e))
	}
}

const (
	ParamKernelSize           = "kernel_size"
	ParamEquation             = "equation"
	ParamRatio                = "ratio"
	ParamStandardDeviationDiv = "standard_deviation_div"
	ParamPow                  = "pow"
	ParamQ                    = "q"
)

type Descriptor struct {
	KernelSize           int32
	Equation             Equation
	Ratio                float32
	StandardDeviationDiv float32
	Pow                  float32
	Q                    float32
}

type Processor struct {
	Descriptor Descriptor
}

func NewProcessor() *Processor {
	return &Processor{Descriptor: Descriptor{
		KernelSize:           5,
		Equation:             Niblack,
		Ratio:                0.5,
		StandardDeviationDiv: 0.5,
		Pow:                  2,
		Q:                    10,
	}}
}

func (p *Processor) GetName() string {
	return Name
}

func (p *Processor) GetDefaultParameters() map[string]interface{} {
	return map[string]interface{}{
		ParamKernelSize:           5,
		ParamEquation:             int(Niblack),
		ParamRatio:                0.5,
		ParamStandardDeviationDiv: 0.5,
		ParamPow:                  2.0,
		ParamQ:                    10.0,
	}
}

func (p *Processor) GetParameterRanges() map[string]models.ParameterRange {
	return map[string]models.ParameterRange{
		ParamKernelSize:           {Min: 1, Max: 20},
		ParamEquation:             {Options: []interface{}{int(Niblack), int(Sauvola), int(Phansalkar)}},
		ParamRatio:                {Min: 0.0, Max: 1.0},
		ParamStandardDeviationDiv: {Min: 0.0, Max: 10.0},
		ParamPow:                  {Min: 0.0, Max: 10.0},
		ParamQ:                    {Min: 0.0, Max: 10.0},
	}
}

func (p *Processor) ValidateParameters(params map[string]interface{}) error {
	return models.ValidateParameters(p.GetParameterRanges(), params)
}

func (p *Processor) ApplyParameters(params map[string]interface{}) error {
	if err := p.ValidateParameters(params); err != nil {
		return err
	}

	d := &p.Descriptor
	if v, ok := params[ParamKernelSize].(int); ok {
		d.KernelSize = int32(v)
	}
	if v, ok := params[ParamEquation].(int); ok {
		d.Equation = Equation(v)
	}
	setFloat(params, ParamRatio, &d.Ratio)
	setFloat(params, ParamStandardDeviationDiv, &d.StandardDeviationDiv)
	setFloat(params, ParamPow, &d.Pow)
	setFloat(params, ParamQ, &d.Q)
	return nil
}

func setFloat(params map[string]interface{}, name string, dst *float32) {
	if v, ok := params[name].(float64); ok {
		*dst = float32(v)
	}
}

func (p *Processor) Submit() []byte {
	d := &p.Descriptor
	return descriptor.NewBlock(24).
		Int32(d.KernelSize).
		Int32(int32(d.Equation)).
		Float32(d.Ratio).
		Float32(d.StandardDeviationDiv).
		Float32(d.Pow).
		Float32(d.Q).
		Bytes()
}

func (p *Processor) ContinuousSubmit() []byte {
	return p.Submit()
}
