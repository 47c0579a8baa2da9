package attendance

import "errors"

var (
	ErrAttendanceNotFound   = errors.New("attendance record not found")
	ErrAlreadyClockedIn     = errors.New("already clocked in today")
	ErrNotClockedIn         = errors.New("no clock-in found for today")
	ErrAlreadyClockedOut    = errors.New("already clocked out today")
	ErrOutsideGeofence      = errors.New("location is outside every office geofence")
	ErrMissingClientAddress = errors.New("client address is required for client visits")
	ErrClockBusy            = errors.New("another clock request is in progress")
)
