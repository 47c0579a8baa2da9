package leave

import (
	"time"

	"github.com/haergo/workforce-backend-go/internal/domain/approval"
)

// RequestStatus is the leave request lifecycle state. All states except
// pending are terminal.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusRejected  RequestStatus = "rejected"
	StatusCancelled RequestStatus = "cancelled"
)

// TypePolicy configures one leave type. Allotted is the yearly quota for
// quota-deducting types; types with DeductsQuota false ignore it.
type TypePolicy struct {
	Code               string
	Name               string
	Allotted           int
	DeductsQuota       bool
	ApprovalLevel      approval.Level
	MinLeadDays        int
	MaxDays            int
	RequiresAttachment bool
}

// Balance is the per-employee, per-type, per-year ledger row. The
// invariant Used + Held <= Allotted is enforced under row lock.
type Balance struct {
	ID         string
	EmployeeID string
	LeaveType  string
	Year       int
	Allotted   int
	Used       int
	Held       int
	UpdatedAt  time.Time
}

// Available is the balance remaining after settled and held days.
func (b Balance) Available() int {
	return b.Allotted - b.Used - b.Held
}

type Request struct {
	ID            string
	EmployeeID    string
	LeaveType     string
	StartDate     time.Time
	EndDate       time.Time
	DayCount      int
	Reason        string
	AttachmentURL *string
	Status        RequestStatus
	DecidedBy     *string
	DecidedAt     *time.Time
	RejectReason  *string
	CreatedAt     time.Time

	// DTO
	EmployeeName *string
}

// WorkingDays counts Monday through Friday dates in [start, end]
// inclusive.
func WorkingDays(start, end time.Time) int {
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}
