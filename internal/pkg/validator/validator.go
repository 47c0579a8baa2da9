package validator

import (
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) IsEmpty() bool {
	return len(v) == 0
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var uuidRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[1-7][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// UUID validation
func IsValidUUID(uuid string) bool {
	return uuidRegex.MatchString(strings.ToLower(uuid))
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// Clock-time validation ("HH:MM")
func IsValidClockTime(timeStr string) (time.Time, bool) {
	t, err := time.Parse("15:04", timeStr)
	return t, err == nil
}

// Month validation ("YYYY-MM")
func IsValidMonth(monthStr string) (time.Time, bool) {
	t, err := time.Parse("2006-01", monthStr)
	return t, err == nil
}

// Coordinate validation
func IsValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func IsValidLongitude(lon float64) bool {
	return lon >= -180 && lon <= 180
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
