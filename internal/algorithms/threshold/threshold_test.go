package threshold

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skeleton-workbench/internal/processing/histogram"
)

func TestDefaults(t *testing.T) {
	p := NewProcessor()
	assert.Equal(t, float32(0.5), p.Descriptor.Threshold)
	assert.Equal(t, histogram.ChannelAll, p.Descriptor.Channel)
}

func TestApplyParameters(t *testing.T) {
	tests := []struct {
		name    string
		params  map[string]interface{}
		wantErr bool
	}{
		{"threshold", map[string]interface{}{ParamThreshold: 0.25}, false},
		{"channel", map[string]interface{}{ParamChannel: int(histogram.ChannelB)}, false},
		{"threshold above one", map[string]interface{}{ParamThreshold: 1.01}, true},
		{"negative threshold", map[string]interface{}{ParamThreshold: -0.1}, true},
		{"unknown channel", map[string]interface{}{ParamChannel: 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProcessor()
			err := p.ApplyParameters(tt.params)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, NewProcessor().Descriptor, p.Descriptor)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSubmitLayout(t *testing.T) {
	p := NewProcessor()
	require.NoError(t, p.ApplyParameters(map[string]interface{}{
		ParamThreshold: 0.75,
		ParamChannel:   int(histogram.ChannelG),
	}))

	full := p.Submit()
	require.Len(t, full, 8)
	assert.Equal(t, float32(0.75), math.Float32frombits(binary.LittleEndian.Uint32(full)))
	assert.Equal(t, uint32(histogram.ChannelG), binary.LittleEndian.Uint32(full[4:]))
	assert.Equal(t, full, p.ContinuousSubmit())
}
