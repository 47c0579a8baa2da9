package attendance

import (
	"fmt"
	"time"
)

// ClassifyClockIn grades a clock-in against the configured work start on
// the same calendar day. A clock-in at or before start+tolerance is
// present, anything after is late.
func ClassifyClockIn(clockIn time.Time, workStart string, tolerance time.Duration) (Status, error) {
	start, err := time.Parse("15:04", workStart)
	if err != nil {
		return "", fmt.Errorf("parse work start %q: %w", workStart, err)
	}

	deadline := time.Date(
		clockIn.Year(), clockIn.Month(), clockIn.Day(),
		start.Hour(), start.Minute(), 0, 0, clockIn.Location(),
	).Add(tolerance)

	if clockIn.After(deadline) {
		return StatusLate, nil
	}
	return StatusPresent, nil
}

// WorkedHours is the decimal hour span between clock-in and clock-out.
func WorkedHours(in, out time.Time) float64 {
	return out.Sub(in).Hours()
}

// ExpectedWorkdays counts Monday through Friday dates in the month, up to
// and including ref when ref falls inside that month. Future days of the
// current month never count against the employee.
func ExpectedWorkdays(year int, month time.Month, ref time.Time) int {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, ref.Location()).Day()
	if ref.Year() == year && ref.Month() == month && ref.Day() < last {
		last = ref.Day()
	}

	count := 0
	for d := 1; d <= last; d++ {
		wd := time.Date(year, month, d, 0, 0, 0, 0, ref.Location()).Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}
