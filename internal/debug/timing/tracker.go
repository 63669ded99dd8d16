// Package timing records how long workbench operations take.
package timing

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"

	"skeleton-workbench/internal/logger"
)

type timingKey struct{}

type timingInfo struct {
	operation string
	start     time.Time
}

// Summary aggregates the recorded durations of one operation.
type Summary struct {
	Operation string
	Count     int
	Total     time.Duration
	Average   time.Duration
	Max       time.Duration
}

type Tracker struct {
	timings map[string][]time.Duration
	mu      sync.RWMutex
	log     logger.Logger
	enabled bool
	now     func() time.Time
}

// NewTracker returns an enabled tracker. Completed operations are logged at
// debug level when log is not nil.
func NewTracker(log logger.Logger) *Tracker {
	if log == nil {
		log = logger.Nop()
	}
	return &Tracker{
		timings: make(map[string][]time.Duration),
		log:     log,
		enabled: true,
		now:     time.Now,
	}
}

func (tt *Tracker) StartTiming(operation string) context.Context {
	tt.mu.RLock()
	enabled := tt.enabled
	tt.mu.RUnlock()

	if !enabled {
		return context.Background()
	}

	return context.WithValue(context.Background(), timingKey{}, timingInfo{
		operation: operation,
		start:     tt.now(),
	})
}

func (tt *Tracker) EndTiming(ctx context.Context) {
	info, ok := ctx.Value(timingKey{}).(timingInfo)
	if !ok {
		return
	}

	duration := tt.now().Sub(info.start)

	tt.mu.Lock()
	tt.timings[info.operation] = append(tt.timings[info.operation], duration)
	tt.mu.Unlock()

	tt.log.Debug("Timing", "operation completed", map[string]interface{}{
		"operation":   info.operation,
		"duration_ms": float64(duration.Microseconds()) / 1000,
	})
}

func (tt *Tracker) GetTimings(operation string) []time.Duration {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	timings := tt.timings[operation]
	if timings == nil {
		return nil
	}

	result := make([]time.Duration, len(timings))
	copy(result, timings)
	return result
}

func (tt *Tracker) GetAverageTime(operation string) time.Duration {
	timings := tt.GetTimings(operation)
	if len(timings) == 0 {
		return 0
	}
	return lo.Sum(timings) / time.Duration(len(timings))
}

// Summaries returns one entry per recorded operation, sorted by name.
func (tt *Tracker) Summaries() []Summary {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	summaries := make([]Summary, 0, len(tt.timings))
	for operation, timings := range tt.timings {
		total := lo.Sum(timings)
		summaries = append(summaries, Summary{
			Operation: operation,
			Count:     len(timings),
			Total:     total,
			Average:   total / time.Duration(len(timings)),
			Max:       lo.Max(timings),
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Operation < summaries[j].Operation
	})
	return summaries
}

func (tt *Tracker) SetEnabled(enabled bool) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.enabled = enabled
}

func (tt *Tracker) Reset(operation string) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	if operation == "" {
		tt.timings = make(map[string][]time.Duration)
	} else {
		delete(tt.timings, operation)
	}
}
