package leave

import (
	"time"

	"github.com/haergo/workforce-backend-go/internal/pkg/validator"
)

type SubmitRequest struct {
	LeaveType     string  `json:"leave_type"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Reason        string  `json:"reason"`
	AttachmentURL *string `json:"attachment_url"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
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
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	LeaveType     string  `json:"leave_type"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	DayCount      int     `json:"day_count"`
	Reason        string  `json:"reason"`
	AttachmentURL *string `json:"attachment_url,omitempty"`
	Status        string  `json:"status"`
	DecidedBy     *string `json:"decided_by,omitempty"`
	DecidedAt     *string `json:"decided_at,omitempty"`
	RejectReason  *string `json:"reject_reason,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

type BalanceResponse struct {
	LeaveType string `json:"leave_type"`
	Year      int    `json:"year"`
	Allotted  int    `json:"allotted"`
	Used      int    `json:"used"`
	Held      int    `json:"held"`
	Available int    `json:"available"`
}

type TypeResponse struct {
	Code               string `json:"code"`
	Name               string `json:"name"`
	Allotted           int    `json:"allotted"`
	DeductsQuota       bool   `json:"deducts_quota"`
	ApprovalLevel      string `json:"approval_level"`
	MinLeadDays        int    `json:"min_lead_days"`
	MaxDays            int    `json:"max_days"`
	RequiresAttachment bool   `json:"requires_attachment"`
}

func ToResponse(r Request) RequestResponse {
	resp := RequestResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		EmployeeName:  r.EmployeeName,
		LeaveType:     r.LeaveType,
		StartDate:     r.StartDate.Format("2006-01-02"),
		EndDate:       r.EndDate.Format("2006-01-02"),
		DayCount:      r.DayCount,
		Reason:        r.Reason,
		AttachmentURL: r.AttachmentURL,
		Status:        string(r.Status),
		DecidedBy:     r.DecidedBy,
		RejectReason:  r.RejectReason,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
	}
	if r.DecidedAt != nil {
		s := r.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &s
	}
	return resp
}
