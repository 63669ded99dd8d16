// Package histogram accumulates per-channel and RGB-mean intensity counts
// from interleaved pixel buffers.
package histogram

const Levels = 256

// Channel selects which counter array a derived statistic is computed from.
type Channel int

const (
	ChannelAll Channel = iota
	ChannelR
	ChannelG
	ChannelB
)

func (c Channel) String() string {
	switch c {
	case ChannelR:
		return "r"
	case ChannelG:
		return "g"
	case ChannelB:
		return "b"
	default:
		return "all"
	}
}

// Histogram is not safe for concurrent use: Set must not overlap with any
// read of the same instance.
type Histogram struct {
	MeanSums [Levels]uint32
	RSums    [Levels]uint32
	GSums    [Levels]uint32
	BSums    [Levels]uint32

	sampleCount int
}

func New() *Histogram {
	return &Histogram{}
}

// Clear zeroes every counter and the sample count.
func (h *Histogram) Clear() {
	*h = Histogram{}
}

// Set accumulates the pixels of data, read in strides of channels bytes.
// Only the first three bytes of each pixel are read; the mean bucket is the
// truncated average (r+g+b)/3. A trailing partial pixel is ignored.
//
// channels must be at least 3. Set does not clear previous counts, callers
// are expected to Clear first.
func (h *Histogram) Set(data []byte, channels int) {
	pixels := len(data) / channels
	for p := 0; p < pixels; p++ {
		i := p * channels
		r, g, b := data[i], data[i+1], data[i+2]

		h.RSums[r]++
		h.GSums[g]++
		h.BSums[b]++
		h.MeanSums[(int(r)+int(g)+int(b))/3]++
	}
	h.sampleCount = pixels
}

// SampleCount is the number of pixels counted by the last Set.
func (h *Histogram) SampleCount() int {
	return h.sampleCount
}

// Counts returns the counter array for the channel.
func (h *Histogram) Counts(channel Channel) *[Levels]uint32 {
	switch channel {
	case ChannelR:
		return &h.RSums
	case ChannelG:
		return &h.GSums
	case ChannelB:
		return &h.BSums
	default:
		return &h.MeanSums
	}
}

// Distributant returns the cumulative distribution of the channel: entry i
// is the share of samples with a value <= i.
//
// With a zero sample count every entry is NaN; calling before Set is a
// caller error.
func (h *Histogram) Distributant(channel Channel) [Levels]float32 {
	var out [Levels]float32
	counts := h.Counts(channel)
	total := float64(h.sampleCount)

	var running uint64
	for i, c := range counts {
		running += uint64(c)
		out[i] = float32(float64(running) / total)
	}
	return out
}

// Normalize returns the per-level share of samples (no cumulative sum).
// Same precondition as Distributant.
func (h *Histogram) Normalize(channel Channel) [Levels]float32 {
	var out [Levels]float32
	counts := h.Counts(channel)
	total := float64(h.sampleCount)

	for i, c := range counts {
		out[i] = float32(float64(c) / total)
	}
	return out
}
