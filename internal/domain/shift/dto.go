package shift

import (
	"time"

	"github.com/haergo/workforce-backend-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	Name      string  `json:"name"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Color     *string `json:"color"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
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

	if !errs.IsEmpty() {
		return errs
	}
	return nil
}

type AssignRequest struct {
	EmployeeID    string  `json:"employee_id"`
	ShiftID       string  `json:"shift_id"`
	EffectiveFrom string  `json:"effective_from"`
	EffectiveTo   *string `json:"effective_to"`
}

func (r *AssignRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}
	if !validator.IsValidUUID(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id must be a valid UUID",
		})
	}
	if _, ok := validator.IsValidDate(r.EffectiveFrom); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "effective_from",
			Message: "effective_from must be in YYYY-MM-DD format",
		})
	}
	if r.EffectiveTo != nil {
		if _, ok := validator.IsValidDate(*r.EffectiveTo); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "effective_to",
				Message: "effective_to must be in YYYY-MM-DD format",
			})
		}
	}

	if !errs.IsEmpty() {
		return errs
	}
	return nil
}

type ShiftResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Color     *string `json:"color,omitempty"`
	CreatedAt string  `json:"created_at"`
}

type AssignmentResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	ShiftID       string  `json:"shift_id"`
	ShiftName     *string `json:"shift_name,omitempty"`
	EffectiveFrom string  `json:"effective_from"`
	EffectiveTo   *string `json:"effective_to"`
}

func ToShiftResponse(s Shift) ShiftResponse {
	return ShiftResponse{
		ID:        s.ID,
		Name:      s.Name,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Color:     s.Color,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
	}
}

func ToAssignmentResponse(a Assignment) AssignmentResponse {
	resp := AssignmentResponse{
		ID:            a.ID,
		EmployeeID:    a.EmployeeID,
		EmployeeName:  a.EmployeeName,
		ShiftID:       a.ShiftID,
		ShiftName:     a.ShiftName,
		EffectiveFrom: a.EffectiveFrom.Format("2006-01-02"),
	}
	if a.EffectiveTo != nil {
		s := a.EffectiveTo.Format("2006-01-02")
		resp.EffectiveTo = &s
	}
	return resp
}
