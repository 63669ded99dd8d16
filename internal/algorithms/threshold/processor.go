// Package threshold holds the manual binarization descriptor: a fixed cut
// applied to one channel or to the RGB mean.
package threshold

import (
	"skeleton-workbench/internal/algorithms/descriptor"
	"skeleton-workbench/internal/models"
	"skeleton-workbench/internal/processing/histogram"
)

const Name = "Threshold"

const (
	ParamThreshold = "threshold"
	ParamChannel   = "channel"

	DefaultThreshold = 0.5
)

type Descriptor struct {
	Threshold float32
	Channel   histogram.Channel
}

type Processor struct {
	Descriptor Descriptor
}

func NewProcessor() *Processor {
	return &Processor{Descriptor: Descriptor{
		Threshold: DefaultThreshold,
		Channel:   histogram.ChannelAll,
	}}
}

func (p *Processor) GetName() string {
	return Name
}

func (p *Processor) GetDefaultParameters() map[string]interface{} {
	return map[string]interface{}{
		ParamThreshold: DefaultThreshold,
		ParamChannel:   int(histogram.ChannelAll),
	}
}

func (p *Processor) GetParameterRanges() map[string]models.ParameterRange {
	return map[string]models.ParameterRange{
		ParamThreshold: {Min: 0.0, Max: 1.0},
		ParamChannel: {Options: []interface{}{
			int(histogram.ChannelAll),
			int(histogram.ChannelR),
			int(histogram.ChannelG),
			int(histogram.ChannelB),
		}},
	}
}

func (p *Processor) ValidateParameters(params map[string]interface{}) error {
	return models.ValidateParameters(p.GetParameterRanges(), params)
}

func (p *Processor) ApplyParameters(params map[string]interface{}) error {
	if err := p.ValidateParameters(params); err != nil {
		return err
	}
	if v, ok := params[ParamThreshold].(float64); ok {
		p.Descriptor.Threshold = float32(v)
	}
	if v, ok := params[ParamChannel].(int); ok {
		p.Descriptor.Channel = histogram.Channel(v)
	}
	return nil
}

func (p *Processor) Submit() []byte {
	return descriptor.NewBlock(8).
		Float32(p.Descriptor.Threshold).
		Int32(int32(p.Descriptor.Channel)).
		Bytes()
}

// ContinuousSubmit uploads the whole block: both fields are edited live.
func (p *Processor) ContinuousSubmit() []byte {
	return p.Submit()
}
