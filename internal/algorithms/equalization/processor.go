// Package equalization derives the per-channel cumulative distributions the
// renderer uses to equalize an image's histogram.
package equalization

import (
	"skeleton-workbench/internal/algorithms/descriptor"
	"skeleton-workbench/internal/models"
	"skeleton-workbench/internal/processing/histogram"
)

const Name = "Equalization"

const (
	ParamRange   = "range"
	DefaultRange = 256
)

var channels = [3]histogram.Channel{histogram.ChannelR, histogram.ChannelG, histogram.ChannelB}

// Descriptor holds, for R, G and B, the distributant table and its floor:
// the first strictly positive entry, or 0 when there is none.
type Descriptor struct {
	Range        int32
	Floor        [3]float32
	Distributant [3][histogram.Levels]float32
}

type Processor struct {
	Descriptor Descriptor
}

func NewProcessor() *Processor {
	return &Processor{Descriptor: Descriptor{Range: DefaultRange}}
}

func (p *Processor) GetName() string {
	return Name
}

func (p *Processor) GetDefaultParameters() map[string]interface{} {
	return map[string]interface{}{
		ParamRange: DefaultRange,
	}
}

func (p *Processor) GetParameterRanges() map[string]models.ParameterRange {
	return map[string]models.ParameterRange{
		ParamRange: {Min: 1, Max: 256},
	}
}

func (p *Processor) ValidateParameters(params map[string]interface{}) error {
	return models.ValidateParameters(p.GetParameterRanges(), params)
}

func (p *Processor) ApplyParameters(params map[string]interface{}) error {
	if err := p.ValidateParameters(params); err != nil {
		return err
	}
	if r, ok := params[ParamRange].(int); ok {
		p.Descriptor.Range = int32(r)
	}
	return nil
}

// PrepareFromHistogram fills the three distributant tables and floors.
func (p *Processor) PrepareFromHistogram(h *histogram.Histogram) {
	for i, ch := range channels {
		p.Descriptor.Distributant[i] = h.Distributant(ch)
		p.Descriptor.Floor[i] = Floor(&p.Descriptor.Distributant[i])
	}
}

// Floor returns the first strictly positive value of a distributant, or 0.
func Floor(distributant *[histogram.Levels]float32) float32 {
	for _, v := range distributant {
		if v > 0 {
			return v
		}
	}
	return 0
}

// Submit lays out range, the three floors and the three tables.
func (p *Processor) Submit() []byte {
	d := &p.Descriptor
	b := descriptor.NewBlock(16 + 3*histogram.Levels*4).
		Int32(d.Range).
		Float32s(d.Floor[:])
	for i := range d.Distributant {
		b.Float32s(d.Distributant[i][:])
	}
	return b.Bytes()
}

// ContinuousSubmit uploads only the range, the leading field of the block.
func (p *Processor) ContinuousSubmit() []byte {
	return descriptor.NewBlock(4).Int32(p.Descriptor.Range).Bytes()
}
