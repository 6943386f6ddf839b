package leave

import "time"

// Overlaps reports whether two inclusive date ranges share at least one
// calendar day. Ranges that only touch at a boundary day overlap, since
// both requests claim that day.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	// a starts inside b, a ends inside b, or a fully contains b
	return !aEnd.Before(bStart) && !aStart.After(bEnd)
}

// DaysInclusive counts calendar days in an inclusive range: a request
// with start == end is a one-day leave.
func DaysInclusive(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}
