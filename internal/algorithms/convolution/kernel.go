package convolution

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// MaxKernelRadius bounds the radius line of a kernel file; the largest
// kernel is 21x21.
const MaxKernelRadius = 10

// FilterExtension is the extension of kernel files, matched
// case-insensitively.
const FilterExtension = ".ftr"

var (
	ErrKernelSize   = errors.New("kernel radius out of range")
	ErrKernelFormat = errors.New("malformed kernel file")
)

// Kernel is a square convolution kernel stored row-major.
type Kernel struct {
	Radius       int
	Coefficients []float32
}

// Side is the kernel width and height, 2*Radius+1.
func (k Kernel) Side() int {
	return 2*k.Radius + 1
}

// At returns the coefficient at column x, row y.
func (k Kernel) At(x, y int) float32 {
	return k.Coefficients[y*k.Side()+x]
}

// LoadKernel parses a kernel definition: a radius line followed by
// 2*radius+1 lines of 2*radius+1 whitespace-separated floats. Coefficients
// are divided by their sum when the sum is positive; kernels summing to zero
// or less (edge detectors) are returned as written.
func LoadKernel(r io.Reader) (Kernel, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return Kernel{}, fmt.Errorf("failed to read kernel radius: %w", err)
		}
		return Kernel{}, fmt.Errorf("%w: missing radius line", ErrKernelFormat)
	}

	radius, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return Kernel{}, fmt.Errorf("%w: invalid radius: %v", ErrKernelFormat, err)
	}
	if radius < 0 || radius > MaxKernelRadius {
		return Kernel{}, fmt.Errorf("%w: %d not in [0, %d]", ErrKernelSize, radius, MaxKernelRadius)
	}

	kernel := Kernel{Radius: radius}
	side := kernel.Side()
	kernel.Coefficients = make([]float32, 0, side*side)

	for row := 0; row < side; row++ {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return Kernel{}, fmt.Errorf("failed to read kernel row %d: %w", row, err)
			}
			return Kernel{}, fmt.Errorf("%w: expected %d rows, got %d", ErrKernelFormat, side, row)
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) != side {
			return Kernel{}, fmt.Errorf("%w: row %d has %d values, expected %d", ErrKernelFormat, row, len(fields), side)
		}
		for col, field := range fields {
			v, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return Kernel{}, fmt.Errorf("%w: row %d column %d: %v", ErrKernelFormat, row, col, err)
			}
			kernel.Coefficients = append(kernel.Coefficients, float32(v))
		}
	}

	if sum := lo.Sum(kernel.Coefficients); sum > 0 {
		for i := range kernel.Coefficients {
			kernel.Coefficients[i] /= sum
		}
	}

	return kernel, nil
}

// LoadKernelFile opens path and parses it with LoadKernel.
func LoadKernelFile(path string) (Kernel, error) {
	f, err := os.Open(path)
	if err != nil {
		return Kernel{}, fmt.Errorf("failed to open kernel file: %w", err)
	}
	defer f.Close()

	kernel, err := LoadKernel(f)
	if err != nil {
		return Kernel{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return kernel, nil
}

// ListFilters returns the paths of the kernel files directly inside dir,
// sorted by name.
func ListFilters(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list filters: %w", err)
	}

	filters := lo.FilterMap(entries, func(entry os.DirEntry, _ int) (string, bool) {
		if !entry.Type().IsRegular() {
			return "", false
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), FilterExtension) {
			return "", false
		}
		return filepath.Join(dir, entry.Name()), true
	})
	sort.Strings(filters)

	return filters, nil
}
