package histogram

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sum(counts *[Levels]uint32) int {
	total := 0
	for _, c := range counts {
		total += int(c)
	}
	return total
}

func TestSetCountsEveryPixelOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, channels := range []int{3, 4, 5} {
		data := make([]byte, 97*channels)
		rng.Read(data)

		h := New()
		h.Clear()
		h.Set(data, channels)

		require.Equal(t, 97, h.SampleCount())
		for _, ch := range []Channel{ChannelAll, ChannelR, ChannelG, ChannelB} {
			assert.Equal(t, 97, sum(h.Counts(ch)), "channels=%d channel=%s", channels, ch)
		}
	}
}

func TestSetIgnoresTrailingPartialPixel(t *testing.T) {
	data := []byte{10, 20, 30, 255, 40, 50}
	h := New()
	h.Set(data, 4)

	assert.Equal(t, 1, h.SampleCount())
	assert.Equal(t, uint32(1), h.RSums[10])
	assert.Equal(t, uint32(0), h.RSums[40])
}

func TestSetMeanBucketTruncates(t *testing.T) {
	h := New()
	h.Set([]byte{1, 1, 2, 0}, 4)
	assert.Equal(t, uint32(1), h.MeanSums[1])

	h.Clear()
	h.Set([]byte{255, 255, 254, 9}, 4)
	assert.Equal(t, uint32(1), h.MeanSums[254])
	assert.Equal(t, 1, h.SampleCount())
}

func TestSetNeverReadsPastThirdChannel(t *testing.T) {
	h := New()
	h.Set([]byte{0, 0, 0, 200, 0, 0, 0, 100}, 4)
	assert.Equal(t, uint32(2), h.MeanSums[0])
}

func TestClearResetsEverything(t *testing.T) {
	h := New()
	h.Set([]byte{1, 2, 3, 4, 5, 6}, 3)
	h.Clear()

	assert.Zero(t, h.SampleCount())
	for _, ch := range []Channel{ChannelAll, ChannelR, ChannelG, ChannelB} {
		assert.Zero(t, sum(h.Counts(ch)))
	}
}

func TestDistributantIsMonotoneAndEndsAtOne(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	data := make([]byte, 1000*4)
	rng.Read(data)

	h := New()
	h.Set(data, 4)

	for _, ch := range []Channel{ChannelAll, ChannelR, ChannelG, ChannelB} {
		cdf := h.Distributant(ch)
		for i := 1; i < Levels; i++ {
			require.GreaterOrEqual(t, cdf[i], cdf[i-1], "channel %s index %d", ch, i)
		}
		assert.InDelta(t, 1.0, cdf[Levels-1], 1e-6)
	}
}

func TestNormalizeIsPerLevelShare(t *testing.T) {
	h := New()
	h.Set([]byte{
		0, 0, 0,
		0, 0, 0,
		0, 0, 0,
		90, 90, 90,
	}, 3)

	pmf := h.Normalize(ChannelAll)
	assert.InDelta(t, 0.75, pmf[0], 1e-7)
	assert.InDelta(t, 0.25, pmf[90], 1e-7)
	assert.Zero(t, pmf[1])

	cdf := h.Distributant(ChannelR)
	assert.InDelta(t, 0.75, cdf[89], 1e-7)
	assert.InDelta(t, 1.0, cdf[90], 1e-7)
}

func TestDistributantWithoutSamplesIsNaN(t *testing.T) {
	h := New()
	cdf := h.Distributant(ChannelAll)
	assert.True(t, math.IsNaN(float64(cdf[0])))
}
