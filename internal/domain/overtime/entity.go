package overtime

import "time"

type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusRejected  RequestStatus = "rejected"
	StatusCancelled RequestStatus = "cancelled"
)

type Request struct {
	ID           string
	EmployeeID   string
	Date         time.Time
	StartTime    string // "15:04"
	EndTime      string
	HourCount    float64
	Reason       string
	Status       RequestStatus
	DecidedBy    *string
	DecidedAt    *time.Time
	RejectReason *string
	CreatedAt    time.Time

	// DTO
	EmployeeName *string
}

// Hours computes the fractional hour span between start and end on the
// same day. End must be strictly after start.
func Hours(start, end string) (float64, error) {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return 0, err
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return 0, err
	}
	if !e.After(s) {
		return 0, ErrInvalidTimeRange
	}
	return e.Sub(s).Hours(), nil
}
