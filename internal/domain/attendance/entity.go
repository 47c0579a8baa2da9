package attendance

import (
	"time"
)

// Mode is the attendance context a clock event was submitted under.
type Mode string

const (
	ModeOffice      Mode = "office"
	ModeRemote      Mode = "remote"
	ModeClientVisit Mode = "client_visit"
)

// Status classifies a day's attendance record.
type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
	StatusExcused Status = "excused"
)

// Kind distinguishes the two clock events bounding a workday.
type Kind string

const (
	KindIn  Kind = "in"
	KindOut Kind = "out"
)

// Attendance is the single record per (employee, date).
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time

	ClockIn          *time.Time
	ClockInMode      *Mode
	ClockInLatitude  *float64
	ClockInLongitude *float64
	ClockInEvidence  *string

	ClockOut          *time.Time
	ClockOutMode      *Mode
	ClockOutLatitude  *float64
	ClockOutLongitude *float64
	ClockOutEvidence  *string

	TotalHours   *float64
	Status       Status
	Note         *string
	FaceVerified *bool

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}

// ValidMode reports whether s names a known mode.
func ValidMode(s string) bool {
	switch Mode(s) {
	case ModeOffice, ModeRemote, ModeClientVisit:
		return true
	}
	return false
}
