package otsu

import (
	"skeleton-workbench/internal/processing/histogram"
)

// ThresholdIndex returns the level 0..255 that maximizes the between-class
// variance of the RGB-mean histogram.
//
// Candidates are scanned upward and only a strictly greater variance wins,
// so the first maximum is kept and candidates whose variance is NaN (an
// empty class) never win. When the winning variance continues unchanged
// over a run of empty bins, the middle of that run is returned: every
// split inside the gap separates the same two classes.
//
// The histogram must hold samples; with none the result is 0.
func ThresholdIndex(h *histogram.Histogram) int {
	variance := BetweenClassVariance(h)
	counts := h.Counts(histogram.ChannelAll)

	best := 0
	bestVariance := -1.0
	for i, v := range variance {
		if v > bestVariance {
			best = i
			bestVariance = v
		}
	}

	if bestVariance < 0 {
		return 0
	}

	// class 1 is never empty at best, so the run stops before level 255
	end := best
	for counts[end+1] == 0 {
		end++
	}

	return (best + end) / 2
}

// Threshold is ThresholdIndex normalized to [0,1].
func Threshold(h *histogram.Histogram) float32 {
	return float32(ThresholdIndex(h)) / 255
}

// BetweenClassVariance returns w0*w1*(mean0-mean1)^2 for every split i,
// where class 0 holds the levels 0..i. Splits leaving a class empty yield
// NaN.
func BetweenClassVariance(h *histogram.Histogram) [histogram.Levels]float64 {
	var out [histogram.Levels]float64
	counts := h.Counts(histogram.ChannelAll)

	var total, totalMoment uint64
	for i, c := range counts {
		total += uint64(c)
		totalMoment += uint64(c) * uint64(i)
	}
	n := float64(total)

	var cumulative, moment uint64
	for i, c := range counts {
		cumulative += uint64(c)
		moment += uint64(c) * uint64(i)

		weight0 := float64(cumulative) / n
		weight1 := float64(total-cumulative) / n
		mean0 := float64(moment) / float64(cumulative)
		mean1 := float64(totalMoment-moment) / float64(total-cumulative)

		d := mean0 - mean1
		out[i] = weight0 * weight1 * d * d
	}
	return out
}
