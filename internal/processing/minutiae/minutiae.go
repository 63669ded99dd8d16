// Package minutiae classifies skeleton pixels by crossing number: the count
// of ink 8-neighbours of each ink pixel.
package minutiae

import (
	"fmt"

	"skeleton-workbench/internal/models"
	"skeleton-workbench/internal/processing/neighbors"
	"skeleton-workbench/internal/processing/skeleton"
)

type Class int

const (
	Point Class = iota
	RidgeEnding
	ContinuingRidge
	Bifurcation
	Crossing

	numClasses
)

var labels = [numClasses]string{
	"points",
	"ridge_ending_points",
	"continuing_ridge_points",
	"bifurcation_points",
	"crossing_points",
}

// Marker colours painted over classified pixels, as R, G, B.
var markers = [numClasses][3]uint8{
	{255, 0, 0},
	{0, 255, 0},
	{0, 0, 255},
	{255, 0, 255},
	{0, 255, 255},
}

// Classes lists the classes in report order.
func Classes() []Class {
	return []Class{Point, RidgeEnding, ContinuingRidge, Bifurcation, Crossing}
}

// Label is the report key of the class.
func (c Class) Label() string {
	if c < 0 || c >= numClasses {
		return fmt.Sprintf("class(%d)", int(c))
	}
	return labels[c]
}

func (c Class) String() string { return c.Label() }

// Marker is the RGB colour the class is painted with.
func (c Class) Marker() [3]uint8 {
	return markers[c]
}

// Classify counts the minutiae of the skeleton in img and paints every
// classified pixel, together with its ink neighbours, in the marker colour
// of its class. Pixels with more than four ink neighbours are neither
// counted nor painted.
//
// Classification reads a snapshot taken before painting, so marker colours
// never change the class of a pixel visited later.
func Classify(img *models.Image) (Report, error) {
	if err := img.Validate(); err != nil {
		return Report{}, fmt.Errorf("classify minutiae: %w", err)
	}

	bitmap := skeleton.Extract(img)
	s := neighbors.NewSampler(img.Width, img.Height)

	var report Report
	for j, v := range bitmap {
		if v == 0 {
			continue
		}

		p := s.Sample(bitmap, j)
		n := p.Count()
		if n >= int(numClasses) {
			continue
		}

		class := Class(n)
		report.Counts[class]++

		paint(img, j, class.Marker())
		for d := neighbors.NW; d <= neighbors.SE; d++ {
			if !p[d] {
				continue
			}
			if k, ok := s.Neighbor(j, d); ok {
				paint(img, k, class.Marker())
			}
		}
	}

	return report, nil
}

func paint(img *models.Image, pixel int, rgb [3]uint8) {
	i := pixel * img.Channels
	img.Pixels[i+0] = rgb[0]
	img.Pixels[i+1] = rgb[1]
	img.Pixels[i+2] = rgb[2]
}
