// Package skeleton reduces the ink of a binary image to a one pixel wide,
// 8-connected skeleton.
//
// Both variants read the caller's buffer through a working bitmap (channel
// 0 == Ink is foreground), iterate until a pass changes nothing and paint
// the result back: skeleton pixels become Ink in R, G and B, everything
// else Background. Independent images may be thinned concurrently.
package skeleton

import (
	"errors"
	"fmt"
	"strings"

	"skeleton-workbench/internal/models"
	"skeleton-workbench/internal/processing/neighbors"
)

var ErrUnknownVariant = errors.New("unknown skeletonization variant")

type Variant int

const (
	// KMM is the two-phase contour/corner table algorithm.
	KMM Variant = iota
	// K3M is the six-phase border table algorithm.
	K3M
)

func (v Variant) String() string {
	switch v {
	case KMM:
		return "kmm"
	case K3M:
		return "k3m"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

func ParseVariant(name string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "kmm":
		return KMM, nil
	case "k3m":
		return K3M, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
}

// Result describes one skeletonization run.
type Result struct {
	Variant    Variant
	Passes     int
	Foreground int
	Skeleton   int
}

// Removed is the number of ink pixels deleted by the run.
func (r Result) Removed() int {
	return r.Foreground - r.Skeleton
}

// Skeletonize thins img in place.
func Skeletonize(img *models.Image, variant Variant) (Result, error) {
	if err := img.Validate(); err != nil {
		return Result{}, fmt.Errorf("skeletonize: %w", err)
	}

	bitmap := Extract(img)
	s := neighbors.NewSampler(img.Width, img.Height)
	result := Result{Variant: variant, Foreground: countForeground(bitmap)}

	switch variant {
	case KMM:
		result.Passes = kmm(bitmap, s)
	case K3M:
		result.Passes = k3m(bitmap, s)
	default:
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownVariant, int(variant))
	}

	result.Skeleton = countForeground(bitmap)
	WriteBack(img, bitmap)
	return result, nil
}
