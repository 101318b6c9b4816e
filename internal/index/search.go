package index

import "time"

// LowerBound returns the first position in a sorted sequence of n values
// whose value is not before target. at(i) returns the i-th value.
//
// The search runs over the closed interval [lo, hi] with the midpoint rounded
// down. On an exact hit it scans left to the start of the equal run.
func LowerBound(n int, at func(int) time.Time, target time.Time) int {
	i, found := search(n, at, target)
	if !found {
		return i
	}
	for i > 0 && at(i-1).Equal(target) {
		i--
	}
	return i
}

// UpperBound returns the first position whose value is after target.
// On an exact hit it scans right past the end of the equal run.
func UpperBound(n int, at func(int) time.Time, target time.Time) int {
	i, found := search(n, at, target)
	if !found {
		return i
	}
	for i < n && at(i).Equal(target) {
		i++
	}
	return i
}

// search returns the position of some element equal to target, or the
// insertion point with found=false.
func search(n int, at func(int) time.Time, target time.Time) (pos int, found bool) {
	lo, hi := 0, n-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		switch v := at(mid); {
		case v.Equal(target):
			return mid, true
		case v.Before(target):
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return lo, false
}
