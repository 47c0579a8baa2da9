package attendance

import (
	"time"

	"github.com/haergo/workforce-backend-go/internal/pkg/validator"
)

type ClockRequest struct {
	Kind          string    `json:"type"`
	Mode          string    `json:"mode"`
	Latitude      *float64  `json:"latitude"`
	Longitude     *float64  `json:"longitude"`
	EvidenceRef   *string   `json:"evidence_ref"`
	ClientAddress *string   `json:"client_address"`
	Note          *string   `json:"note"`
	Embedding     []float64 `json:"face_embedding"`
}

// Validate checks shape only. Geofence, face matching and state
// transitions are the service's job.
func (r *ClockRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Kind != string(KindIn) && r.Kind != string(KindOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be 'in' or 'out'",
		})
	}

	if !ValidMode(r.Mode) {
		errs = append(errs, validator.ValidationError{
			Field:   "mode",
			Message: "mode must be one of: office, remote, client_visit",
		})
	}

	// Every clock event carries photo evidence and a location, whatever
	// the mode.
	if r.EvidenceRef == nil || validator.IsEmpty(*r.EvidenceRef) {
		errs = append(errs, validator.ValidationError{
			Field:   "evidence_ref",
			Message: "photo evidence is required",
		})
	}

	if r.Latitude == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude is required",
		})
	} else if !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if r.Longitude == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude is required",
		})
	} else if !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if !errs.IsEmpty() {
		return errs
	}
	return nil
}

type HistoryFilter struct {
	EmployeeID string
	StartDate  *string
	EndDate    *string
	Limit      int
	Offset     int
}

type StatsFilter struct {
	EmployeeID string
	Month      string // "2006-01"
}

type AttendanceResponse struct {
	ID           string   `json:"id"`
	EmployeeID   string   `json:"employee_id"`
	EmployeeName *string  `json:"employee_name,omitempty"`
	Date         string   `json:"date"`
	ClockIn      *string  `json:"clock_in"`
	ClockInMode  *Mode    `json:"clock_in_mode"`
	ClockOut     *string  `json:"clock_out"`
	ClockOutMode *Mode    `json:"clock_out_mode"`
	TotalHours   *float64 `json:"total_hours"`
	Status       Status   `json:"status"`
	Note         *string  `json:"note,omitempty"`
	FaceVerified *bool    `json:"face_verified,omitempty"`
}

type StatsResponse struct {
	Month            string  `json:"month"`
	ExpectedWorkdays int     `json:"expected_workdays"`
	Present          int     `json:"present"`
	Late             int     `json:"late"`
	Absent           int     `json:"absent"`
	Excused          int     `json:"excused"`
	Percentage       float64 `json:"attendance_percentage"`
}

// ToResponse flattens an entity for the HTTP layer. Timestamps are
// rendered in the record's own location.
func ToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		Date:         a.Date.Format("2006-01-02"),
		ClockInMode:  a.ClockInMode,
		ClockOutMode: a.ClockOutMode,
		TotalHours:   a.TotalHours,
		Status:       a.Status,
		Note:         a.Note,
		FaceVerified: a.FaceVerified,
	}
	if a.ClockIn != nil {
		s := a.ClockIn.Format(time.RFC3339)
		resp.ClockIn = &s
	}
	if a.ClockOut != nil {
		s := a.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &s
	}
	return resp
}
