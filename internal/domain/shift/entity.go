package shift

import "time"

type Shift struct {
	ID        string
	Name      string
	StartTime string // "15:04"
	EndTime   string
	Color     *string
	CreatedAt time.Time
}

// Assignment binds an employee to a shift over a date range. A nil
// EffectiveTo means open-ended.
type Assignment struct {
	ID            string
	EmployeeID    string
	ShiftID       string
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
	CreatedAt     time.Time

	// DTO
	ShiftName    *string
	EmployeeName *string
}

// Overlaps reports whether two date ranges intersect, treating a nil end
// as unbounded.
func Overlaps(aFrom time.Time, aTo *time.Time, bFrom time.Time, bTo *time.Time) bool {
	if aTo != nil && aTo.Before(bFrom) {
		return false
	}
	if bTo != nil && bTo.Before(aFrom) {
		return false
	}
	return true
}
