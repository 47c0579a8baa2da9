package overtime

import (
	"time"

	"github.com/haergo/workforce-backend-go/internal/pkg/validator"
)

type SubmitRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if _, ok := validator.IsValidClockTime(r.StartTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}
	if _, ok := validator.IsValidClockTime(r.EndTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if !errs.IsEmpty() {
		return errs
	}
	return nil
}

type DecideRequest struct {
	Outcome      string  `json:"outcome"`
	RejectReason *string `json:"reject_reason"`
}

type ListFilter struct {
	EmployeeID *string
	Status     *RequestStatus
	Limit      int
	Offset     int
}

type RequestResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	HourCount    float64 `json:"hour_count"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	DecidedBy    *string `json:"decided_by,omitempty"`
	DecidedAt    *string `json:"decided_at,omitempty"`
	RejectReason *string `json:"reject_reason,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

func ToResponse(r Request) RequestResponse {
	resp := RequestResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Date:         r.Date.Format("2006-01-02"),
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		HourCount:    r.HourCount,
		Reason:       r.Reason,
		Status:       string(r.Status),
		DecidedBy:    r.DecidedBy,
		RejectReason: r.RejectReason,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
	if r.DecidedAt != nil {
		s := r.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &s
	}
	return resp
}
