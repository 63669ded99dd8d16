// Package stretching extracts the per-channel intensity extrema used for
// contrast stretching.
package stretching

import (
	"skeleton-workbench/internal/algorithms/descriptor"
	"skeleton-workbench/internal/models"
)

const Name = "Stretching"

const (
	ParamGlobalMaxR = "global_max_r"
	ParamGlobalMaxG = "global_max_g"
	ParamGlobalMaxB = "global_max_b"
)

// Descriptor maps [LocalMin, LocalMax] onto [0, GlobalMax] per channel.
type Descriptor struct {
	LocalMin  models.RGB
	LocalMax  models.RGB
	GlobalMax models.RGB
}

type Processor struct {
	Descriptor Descriptor
}

func NewProcessor() *Processor {
	return &Processor{Descriptor: Descriptor{
		LocalMax:  models.RGB{R: 1, G: 1, B: 1},
		GlobalMax: models.RGB{R: 1, G: 1, B: 1},
	}}
}

func (p *Processor) GetName() string {
	return Name
}

func (p *Processor) GetDefaultParameters() map[string]interface{} {
	return map[string]interface{}{
		ParamGlobalMaxR: 1.0,
		ParamGlobalMaxG: 1.0,
		ParamGlobalMaxB: 1.0,
	}
}

func (p *Processor) GetParameterRanges() map[string]models.ParameterRange {
	unit := models.ParameterRange{Min: 0.0, Max: 1.0}
	return map[string]models.ParameterRange{
		ParamGlobalMaxR: unit,
		ParamGlobalMaxG: unit,
		ParamGlobalMaxB: unit,
	}
}

func (p *Processor) ValidateParameters(params map[string]interface{}) error {
	return models.ValidateParameters(p.GetParameterRanges(), params)
}

func (p *Processor) ApplyParameters(params map[string]interface{}) error {
	if err := p.ValidateParameters(params); err != nil {
		return err
	}
	if v, ok := params[ParamGlobalMaxR].(float64); ok {
		p.Descriptor.GlobalMax.R = float32(v)
	}
	if v, ok := params[ParamGlobalMaxG].(float64); ok {
		p.Descriptor.GlobalMax.G = float32(v)
	}
	if v, ok := params[ParamGlobalMaxB].(float64); ok {
		p.Descriptor.GlobalMax.B = float32(v)
	}
	return nil
}

// PrepareFromImage stores the extrema of img as the local range.
func (p *Processor) PrepareFromImage(img *models.Image) error {
	if err := img.Validate(); err != nil {
		return err
	}
	p.Descriptor.LocalMin, p.Descriptor.LocalMax = Extract(img.Pixels, img.Channels)
	return nil
}

// Extract scans the first three channels of every pixel and returns their
// minima and maxima scaled to [0,1]. pixels must hold at least one pixel.
func Extract(pixels []byte, channels int) (min, max models.RGB) {
	lo := [3]byte{255, 255, 255}
	var hi [3]byte

	for i := 0; i+channels <= len(pixels); i += channels {
		for c := 0; c < 3; c++ {
			v := pixels[i+c]
			if v < lo[c] {
				lo[c] = v
			}
			if v > hi[c] {
				hi[c] = v
			}
		}
	}

	return toRGB(lo), toRGB(hi)
}

func toRGB(v [3]byte) models.RGB {
	return models.RGB{
		R: float32(v[0]) / 255,
		G: float32(v[1]) / 255,
		B: float32(v[2]) / 255,
	}
}

func vec3(c models.RGB) [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

func (p *Processor) Submit() []byte {
	d := &p.Descriptor
	return descriptor.NewBlock(48).
		Vec3(vec3(d.LocalMin)).
		Vec3(vec3(d.LocalMax)).
		Vec3(vec3(d.GlobalMax)).
		Bytes()
}

// ContinuousSubmit uploads the whole block; GlobalMax is edited live.
func (p *Processor) ContinuousSubmit() []byte {
	return p.Submit()
}
