package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMedianConfig() *ProcessingConfiguration {
	pc := NewProcessingConfiguration()
	pc.Register("Median", map[string]interface{}{
		"kernel_size": 1,
	}, map[string]ParameterRange{
		"kernel_size": {Min: 1, Max: 3},
	})
	return pc
}

func TestSetAlgorithmParameterValidatesRange(t *testing.T) {
	pc := newMedianConfig()

	require.NoError(t, pc.SetAlgorithmParameter("Median", "kernel_size", 3))

	err := pc.SetAlgorithmParameter("Median", "kernel_size", 4)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "kernel_size", verr.Parameter)

	params, err := pc.GetAlgorithmParameters("Median")
	require.NoError(t, err)
	assert.Equal(t, 3, params.Parameters["kernel_size"])
}

func TestSetAlgorithmParameterRejectsWrongType(t *testing.T) {
	pc := newMedianConfig()
	assert.Error(t, pc.SetAlgorithmParameter("Median", "kernel_size", 2.0))
	assert.Error(t, pc.SetAlgorithmParameter("Median", "radius", 2))
	assert.Error(t, pc.SetAlgorithmParameter("Mode", "kernel_size", 2))
}

func TestResetAlgorithmToDefaults(t *testing.T) {
	pc := newMedianConfig()
	require.NoError(t, pc.SetAlgorithmParameter("Median", "kernel_size", 2))
	require.NoError(t, pc.ResetAlgorithmToDefaults("Median"))

	params, err := pc.GetAlgorithmParameters("Median")
	require.NoError(t, err)
	assert.Equal(t, 1, params.Parameters["kernel_size"])
}

func TestGetAlgorithmParametersReturnsCopy(t *testing.T) {
	pc := newMedianConfig()
	params, err := pc.GetAlgorithmParameters("Median")
	require.NoError(t, err)

	params.Parameters["kernel_size"] = 99

	again, err := pc.GetAlgorithmParameters("Median")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Parameters["kernel_size"])
}

func TestValidateParameterOptions(t *testing.T) {
	ranges := map[string]ParameterRange{
		"equation": {Options: []interface{}{0, 1, 2}},
		"ratio":    {Min: 0.0, Max: 1.0},
	}
	assert.NoError(t, ValidateParameter(ranges, "equation", 2))
	assert.Error(t, ValidateParameter(ranges, "equation", 3))
	assert.NoError(t, ValidateParameter(ranges, "ratio", 0.25))
	assert.Error(t, ValidateParameter(ranges, "ratio", 1.5))
	assert.NoError(t, ValidateParameter(ranges, "unranged", "anything"))
}

func TestParseParameterValue(t *testing.T) {
	v, err := ParseParameterValue(0, " 12 ")
	require.NoError(t, err)
	assert.Equal(t, 12, v)

	v, err = ParseParameterValue(0.0, "0.5")
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)

	v, err = ParseParameterValue(false, "true")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	_, err = ParseParameterValue(0, "x")
	assert.Error(t, err)
}

func TestImageValidate(t *testing.T) {
	img, err := NewImage(3, 2, 4)
	require.NoError(t, err)
	assert.NoError(t, img.Validate())
	assert.Equal(t, 12, img.Stride())
	assert.Equal(t, 16, img.Offset(1, 1))

	img.Pixels = img.Pixels[:len(img.Pixels)-1]
	assert.Error(t, img.Validate())

	_, err = NewImage(3, 2, 1)
	assert.Error(t, err)
}
