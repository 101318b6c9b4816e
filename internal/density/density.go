// Package density aggregates task load over fixed-width time buckets to
// surface busy periods.
package density

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/taskpilot/internal/task"
)

// ErrInvalidConfig is returned for unusable bucket or range settings.
var ErrInvalidConfig = errors.New("invalid density configuration")

// Mode selects what a single task contributes.
type Mode string

const (
	ModeUnit   Mode = "unit"   // every task carries a load of 1
	ModeWeight Mode = "weight" // tasks carry their priority weight
)

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeUnit, ModeWeight:
		return m, nil
	case "priority":
		return ModeWeight, nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, s)
	}
}

// Options configures Analyze.
type Options struct {
	BucketWidth   time.Duration
	RangeStart    time.Time
	RangeEnd      time.Time
	Mode          Mode
	BusyThreshold float64 // buckets with a load above this are busy
}

// Bucket is one slice of the time axis and the load that falls in it.
type Bucket struct {
	Start time.Time
	End   time.Time
	Load  float64
	Busy  bool
}

func (o Options) validate() error {
	if o.BucketWidth <= 0 {
		return fmt.Errorf("%w: bucket width must be positive, got %s", ErrInvalidConfig, o.BucketWidth)
	}
	if o.RangeEnd.Before(o.RangeStart) {
		return fmt.Errorf("%w: range end is before range start", ErrInvalidConfig)
	}
	switch o.Mode {
	case "", ModeUnit, ModeWeight:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, o.Mode)
	}
	return nil
}

func (o Options) load(t *task.Task) float64 {
	if o.Mode == ModeWeight {
		return t.Weight
	}
	return 1
}

// Analyze partitions [RangeStart, RangeEnd) into buckets and spreads each
// task's load over the buckets its clipped interval overlaps, proportionally
// to the overlap. Tasks outside the range contribute nothing.
func Analyze(tasks []*task.Task, opts Options) ([]Bucket, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	for _, t := range tasks {
		if err := t.CheckInterval(); err != nil {
			return nil, err
		}
	}

	buckets := makeBuckets(opts)
	if len(buckets) == 0 {
		return buckets, nil
	}

	for _, t := range tasks {
		start, end, ok := task.Clip(t.Start, t.Deadline, opts.RangeStart, opts.RangeEnd)
		if !ok {
			continue
		}
		load := opts.load(t)

		first := bucketIndex(opts, start)
		if start.Equal(end) {
			buckets[first].Load += load
			continue
		}

		span := float64(end.Sub(start))
		for i := first; i < len(buckets) && buckets[i].Start.Before(end); i++ {
			overlap := task.Overlap(start, end, buckets[i].Start, buckets[i].End)
			buckets[i].Load += load * float64(overlap) / span
		}
	}

	for i := range buckets {
		buckets[i].Busy = buckets[i].Load > opts.BusyThreshold
	}
	return buckets, nil
}

func makeBuckets(opts Options) []Bucket {
	total := opts.RangeEnd.Sub(opts.RangeStart)
	n := int(total / opts.BucketWidth)
	if total%opts.BucketWidth != 0 {
		n++
	}

	buckets := make([]Bucket, n)
	for i := range buckets {
		start := opts.RangeStart.Add(time.Duration(i) * opts.BucketWidth)
		end := start.Add(opts.BucketWidth)
		if end.After(opts.RangeEnd) {
			end = opts.RangeEnd
		}
		buckets[i] = Bucket{Start: start, End: end}
	}
	return buckets
}

func bucketIndex(opts Options, at time.Time) int {
	return int(at.Sub(opts.RangeStart) / opts.BucketWidth)
}

// Busy returns the buckets flagged as busy.
func Busy(buckets []Bucket) []Bucket {
	var out []Bucket
	for _, b := range buckets {
		if b.Busy {
			out = append(out, b)
		}
	}
	return out
}

// Peak returns the bucket with the highest load; the earliest wins ties.
func Peak(buckets []Bucket) (Bucket, bool) {
	if len(buckets) == 0 {
		return Bucket{}, false
	}
	peak := buckets[0]
	for _, b := range buckets[1:] {
		if b.Load > peak.Load {
			peak = b
		}
	}
	return peak, true
}

// Total returns the sum of all bucket loads.
func Total(buckets []Bucket) float64 {
	var sum float64
	for _, b := range buckets {
		sum += b.Load
	}
	return sum
}
