package median

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKernelSizeRange(t *testing.T) {
	p := NewProcessor()
	assert.Equal(t, int32(DefaultKernelSize), p.Descriptor.KernelSize)

	require.NoError(t, p.ApplyParameters(map[string]interface{}{ParamKernelSize: 3}))
	assert.Equal(t, int32(3), p.Descriptor.KernelSize)

	assert.Error(t, p.ApplyParameters(map[string]interface{}{ParamKernelSize: 4}))
	assert.Error(t, p.ApplyParameters(map[string]interface{}{ParamKernelSize: 0}))
	assert.Equal(t, int32(3), p.Descriptor.KernelSize)
}

func TestSubmit(t *testing.T) {
	p := NewProcessor()
	require.NoError(t, p.ApplyParameters(map[string]interface{}{ParamKernelSize: 2}))

	full := p.Submit()
	require.Len(t, full, 4)
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(full))
	assert.Equal(t, full, p.ContinuousSubmit())
}
