package convolution

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const crossKernel = "1\n0 1 0\n1 1 1\n0 1 0\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadKernelNormalizesPositiveSum(t *testing.T) {
	kernel, err := LoadKernel(strings.NewReader(crossKernel))
	require.NoError(t, err)

	assert.Equal(t, 1, kernel.Radius)
	assert.Equal(t, 3, kernel.Side())
	require.Len(t, kernel.Coefficients, 9)

	for i, want := range []float32{0, 1, 0, 1, 1, 1, 0, 1, 0} {
		assert.InDelta(t, want/5, kernel.Coefficients[i], 1e-7, "coefficient %d", i)
	}
	assert.InDelta(t, 0.2, kernel.At(1, 1), 1e-7)
	assert.Zero(t, kernel.At(0, 0))
}

func TestLoadKernelKeepsNonPositiveSum(t *testing.T) {
	laplacian := "1\n0 -1 0\n-1 4 -1\n0 -1 0\n"
	kernel, err := LoadKernel(strings.NewReader(laplacian))
	require.NoError(t, err)
	assert.Equal(t, []float32{0, -1, 0, -1, 4, -1, 0, -1, 0}, kernel.Coefficients)

	negative := "0\n-2\n"
	kernel, err = LoadKernel(strings.NewReader(negative))
	require.NoError(t, err)
	assert.Equal(t, []float32{-2}, kernel.Coefficients)
}

func TestLoadKernelTrimsRadiusLine(t *testing.T) {
	kernel, err := LoadKernel(strings.NewReader("  0 \r\n 3.5\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, kernel.Radius)
	assert.Equal(t, []float32{1}, kernel.Coefficients)
}

func TestLoadKernelErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"radius too large", "11\n", ErrKernelSize},
		{"negative radius", "-1\n", ErrKernelSize},
		{"empty input", "", ErrKernelFormat},
		{"radius not a number", "one\n1\n", ErrKernelFormat},
		{"missing rows", "1\n0 1 0\n", ErrKernelFormat},
		{"short row", "1\n0 1 0\n1 1\n0 1 0\n", ErrKernelFormat},
		{"bad coefficient", "1\n0 1 0\n1 x 1\n0 1 0\n", ErrKernelFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadKernel(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadKernelAcceptsMaximumRadius(t *testing.T) {
	var b strings.Builder
	b.WriteString("10\n")
	row := strings.TrimSpace(strings.Repeat("1 ", 21))
	for i := 0; i < 21; i++ {
		b.WriteString(row + "\n")
	}

	kernel, err := LoadKernel(strings.NewReader(b.String()))
	require.NoError(t, err)
	require.Len(t, kernel.Coefficients, 441)
	assert.InDelta(t, 1.0/441, kernel.Coefficients[440], 1e-7)
}

func TestPrepareFromFileKeepsKernelOnError(t *testing.T) {
	dir := t.TempDir()
	valid := writeFile(t, dir, "cross.ftr", crossKernel)
	tooLarge := writeFile(t, dir, "large.ftr", "11\n")
	negative := writeFile(t, dir, "negative.ftr", "-1\n")

	p := NewProcessor()
	require.NoError(t, p.PrepareFromFile(valid))
	before := p.Descriptor

	err := p.PrepareFromFile(tooLarge)
	assert.ErrorIs(t, err, ErrKernelSize)
	assert.Contains(t, err.Error(), "large.ftr")

	assert.ErrorIs(t, p.PrepareFromFile(negative), ErrKernelSize)
	assert.Error(t, p.PrepareFromFile(filepath.Join(dir, "missing.ftr")))

	assert.Equal(t, before, p.Descriptor)
	assert.Equal(t, 1, p.Kernel().Radius)
}

func TestSetKernelClearsPreviousCoefficients(t *testing.T) {
	p := NewProcessor()
	p.SetKernel(Kernel{Radius: 1, Coefficients: []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}})
	p.SetKernel(Kernel{Radius: 0, Coefficients: []float32{1}})

	assert.Equal(t, float32(1), p.Descriptor.Coefficients[0])
	assert.Zero(t, p.Descriptor.Coefficients[1])
	assert.Equal(t, Kernel{Radius: 0, Coefficients: []float32{1}}, p.Kernel())
}

func TestSubmitLayout(t *testing.T) {
	p := NewProcessor()
	kernel, err := LoadKernel(strings.NewReader(crossKernel))
	require.NoError(t, err)
	p.SetKernel(kernel)
	require.NoError(t, p.ApplyParameters(map[string]interface{}{ParamGradient: true}))

	full := p.Submit()
	require.Len(t, full, 16+441*4)
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(full[0:]))
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(full[4:]))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(full[8:]))
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(full[12:]))

	center := math.Float32frombits(binary.LittleEndian.Uint32(full[16+4*4:]))
	assert.InDelta(t, 0.2, center, 1e-7)
	assert.Equal(t, full, p.ContinuousSubmit())
}

func TestListFilters(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sharpen.ftr", crossKernel)
	writeFile(t, dir, "Blur.FTR", crossKernel)
	writeFile(t, dir, "notes.txt", "")
	writeFile(t, dir, "ftr", "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.ftr"), 0o755))

	filters, err := ListFilters(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "Blur.FTR"),
		filepath.Join(dir, "sharpen.ftr"),
	}, filters)

	_, err = ListFilters(filepath.Join(dir, "absent"))
	assert.Error(t, err)
}
