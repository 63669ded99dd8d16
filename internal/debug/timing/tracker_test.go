package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeTracker() (*Tracker, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	tt := NewTracker(nil)
	tt.now = clock.now
	return tt, clock
}

func TestTrackerRecordsDurations(t *testing.T) {
	tt, clock := newFakeTracker()

	for _, d := range []time.Duration{10 * time.Millisecond, 30 * time.Millisecond} {
		ctx := tt.StartTiming("skeletonize")
		clock.advance(d)
		tt.EndTiming(ctx)
	}

	assert.Equal(t, []time.Duration{10 * time.Millisecond, 30 * time.Millisecond}, tt.GetTimings("skeletonize"))
	assert.Equal(t, 20*time.Millisecond, tt.GetAverageTime("skeletonize"))
	assert.Zero(t, tt.GetAverageTime("load"))
	assert.Nil(t, tt.GetTimings("load"))
}

func TestTrackerSummaries(t *testing.T) {
	tt, clock := newFakeTracker()

	for _, op := range []string{"load", "histogram", "load"} {
		ctx := tt.StartTiming(op)
		clock.advance(5 * time.Millisecond)
		tt.EndTiming(ctx)
	}

	summaries := tt.Summaries()
	require.Len(t, summaries, 2)
	assert.Equal(t, "histogram", summaries[0].Operation)
	assert.Equal(t, Summary{
		Operation: "load",
		Count:     2,
		Total:     10 * time.Millisecond,
		Average:   5 * time.Millisecond,
		Max:       5 * time.Millisecond,
	}, summaries[1])
}

func TestTrackerDisabledAndReset(t *testing.T) {
	tt, clock := newFakeTracker()

	tt.SetEnabled(false)
	ctx := tt.StartTiming("load")
	clock.advance(time.Millisecond)
	tt.EndTiming(ctx)
	assert.Empty(t, tt.Summaries())

	tt.SetEnabled(true)
	tt.EndTiming(tt.StartTiming("load"))
	tt.EndTiming(tt.StartTiming("save"))
	tt.Reset("load")
	assert.Nil(t, tt.GetTimings("load"))
	assert.Len(t, tt.GetTimings("save"), 1)

	tt.Reset("")
	assert.Empty(t, tt.Summaries())
}
