package equalization

import (
	"encoding/binary"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skeleton-workbench/internal/algorithms/descriptor"
	"skeleton-workbench/internal/processing/histogram"
)

func prepared(t *testing.T, data []byte) (*Processor, *histogram.Histogram) {
	t.Helper()
	h := histogram.New()
	h.Clear()
	h.Set(data, 4)

	p := NewProcessor()
	p.PrepareFromHistogram(h)
	return p, h
}

func TestDistributantsAreMonotoneAndEndAtOne(t *testing.T) {
	data := make([]byte, 4*500)
	rand.New(rand.NewSource(3)).Read(data)
	p, _ := prepared(t, data)

	for c := range p.Descriptor.Distributant {
		table := p.Descriptor.Distributant[c]
		for i := 1; i < histogram.Levels; i++ {
			require.GreaterOrEqual(t, table[i], table[i-1])
		}
		assert.InDelta(t, 1.0, table[histogram.Levels-1], 1e-6)
	}
}

func TestFloorIsDistributantAtFirstOccupiedLevel(t *testing.T) {
	data := []byte{
		40, 0, 200, 255,
		40, 9, 210, 255,
		90, 9, 220, 255,
		90, 9, 230, 255,
	}
	p, h := prepared(t, data)

	for c, ch := range channels {
		first := -1
		for level, n := range h.Counts(ch) {
			if n > 0 {
				first = level
				break
			}
		}
		require.GreaterOrEqual(t, first, 0)
		assert.Equal(t, p.Descriptor.Distributant[c][first], p.Descriptor.Floor[c])
	}
	assert.InDelta(t, 0.5, p.Descriptor.Floor[0], 1e-7)
	assert.InDelta(t, 0.25, p.Descriptor.Floor[1], 1e-7)
	assert.InDelta(t, 0.25, p.Descriptor.Floor[2], 1e-7)
}

func TestFloorOfEmptyDistributantIsZero(t *testing.T) {
	var table [histogram.Levels]float32
	assert.Zero(t, Floor(&table))
}

func TestRangeParameter(t *testing.T) {
	p := NewProcessor()
	assert.Equal(t, int32(DefaultRange), p.Descriptor.Range)

	require.NoError(t, p.ApplyParameters(map[string]interface{}{ParamRange: 64}))
	assert.Equal(t, int32(64), p.Descriptor.Range)

	assert.Error(t, p.ApplyParameters(map[string]interface{}{ParamRange: 0}))
	assert.Error(t, p.ApplyParameters(map[string]interface{}{ParamRange: 257}))
	assert.Equal(t, int32(64), p.Descriptor.Range)
}

func TestSubmitLayout(t *testing.T) {
	p, _ := prepared(t, []byte{0, 128, 255, 255, 255, 128, 0, 255})
	require.NoError(t, p.ApplyParameters(map[string]interface{}{ParamRange: 200}))

	full := p.Submit()
	require.Len(t, full, 16+3*256*4)
	assert.LessOrEqual(t, len(full), descriptor.MaxSize)
	assert.Equal(t, int32(200), int32(binary.LittleEndian.Uint32(full[0:])))

	floatAt := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(full[off:]))
	}
	assert.Equal(t, p.Descriptor.Floor[0], floatAt(4))
	assert.Equal(t, p.Descriptor.Floor[2], floatAt(12))
	assert.Equal(t, p.Descriptor.Distributant[0][0], floatAt(16))
	assert.Equal(t, p.Descriptor.Distributant[1][128], floatAt(16+1024+128*4))
	assert.Equal(t, p.Descriptor.Distributant[2][255], floatAt(16+2048+255*4))

	delta := p.ContinuousSubmit()
	assert.Equal(t, full[:4], delta)
}
