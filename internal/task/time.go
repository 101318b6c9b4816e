package task

import "time"

// Overlaps returns true if [start1, end1) and [start2, end2) share a positive
// amount of time: start1 < end2 AND start2 < end1.
func Overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && start2.Before(end1)
}

// Overlap returns how much of [start1, end1) falls inside [start2, end2).
// Returns 0 if there is no overlap.
func Overlap(start1, end1, start2, end2 time.Time) time.Duration {
	overlapStart := start1
	if start2.After(overlapStart) {
		overlapStart = start2
	}
	overlapEnd := end1
	if end2.Before(overlapEnd) {
		overlapEnd = end2
	}
	if !overlapEnd.After(overlapStart) {
		return 0
	}
	return overlapEnd.Sub(overlapStart)
}

// Clip restricts [start, end) to [lo, hi). ok is false when nothing remains,
// except for a zero-length interval whose instant lies inside [lo, hi).
func Clip(start, end, lo, hi time.Time) (clipStart, clipEnd time.Time, ok bool) {
	if start.Equal(end) {
		if !start.Before(lo) && start.Before(hi) {
			return start, end, true
		}
		return time.Time{}, time.Time{}, false
	}
	clipStart, clipEnd = start, end
	if lo.After(clipStart) {
		clipStart = lo
	}
	if hi.Before(clipEnd) {
		clipEnd = hi
	}
	if !clipEnd.After(clipStart) {
		return time.Time{}, time.Time{}, false
	}
	return clipStart, clipEnd, true
}
