package leave_test

import (
	"testing"
	"time"

	"farmstaff/internal/leave"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		aStart   time.Time
		aEnd     time.Time
		bStart   time.Time
		bEnd     time.Time
		expected bool
	}{
		{"identical ranges", day(5), day(10), day(5), day(10), true},
		{"a contains b", day(1), day(20), day(5), day(10), true},
		{"b contains a", day(5), day(10), day(1), day(20), true},
		{"partial overlap left", day(1), day(7), day(5), day(10), true},
		{"partial overlap right", day(8), day(15), day(5), day(10), true},
		{"touching at start boundary", day(10), day(12), day(5), day(10), true},
		{"touching at end boundary", day(1), day(5), day(5), day(10), true},
		{"single day inside", day(7), day(7), day(5), day(10), true},
		{"disjoint before", day(1), day(4), day(5), day(10), false},
		{"disjoint after", day(11), day(15), day(5), day(10), false},
		{"adjacent day before", day(1), day(4), day(5), day(10), false},
		{"adjacent day after", day(11), day(11), day(5), day(10), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := leave.Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd)
			assert.Equal(t, tc.expected, got)

			// Overlap is symmetric.
			assert.Equal(t, got, leave.Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd))
		})
	}
}

func TestDaysInclusive(t *testing.T) {
	assert.Equal(t, 1, leave.DaysInclusive(day(5), day(5)))
	assert.Equal(t, 2, leave.DaysInclusive(day(5), day(6)))
	assert.Equal(t, 10, leave.DaysInclusive(day(1), day(10)))

	// Month boundary.
	start := time.Date(2026, 6, 29, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 4, leave.DaysInclusive(start, end))
}
