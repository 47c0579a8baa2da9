package leave

import (
	"context"
	"time"
)

type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (*Request, error)
	List(ctx context.Context, filter ListFilter) ([]Request, error)
	ListPendingByTypes(ctx context.Context, typeCodes []string) ([]Request, error)
	// HasActiveOverlap reports whether a pending or approved request for
	// the employee intersects [start, end].
	HasActiveOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
	// TransitionFromPending moves the request out of pending and records
	// the decision. Reports false when the request was not pending, which
	// makes concurrent decisions lose cleanly.
	TransitionFromPending(ctx context.Context, id string, to RequestStatus, decidedBy *string, decidedAt time.Time, rejectReason *string) (bool, error)
	// ListApprovedCovering returns approved requests of any employee whose
	// range covers the given date.
	ListApprovedCovering(ctx context.Context, date time.Time) ([]Request, error)
	// HasApprovedCovering reports whether the employee has an approved
	// request covering the given date.
	HasApprovedCovering(ctx context.Context, employeeID string, date time.Time) (bool, error)
}

type BalanceRepository interface {
	// GetOrCreateForUpdate returns the ledger row under a row lock,
	// inserting it with the given allotment when missing. Callers must be
	// inside a transaction.
	GetOrCreateForUpdate(ctx context.Context, employeeID, leaveType string, year, allotted int) (Balance, error)
	UpdateCounts(ctx context.Context, id string, used, held int) error
	ListByEmployee(ctx context.Context, employeeID string, year int) ([]Balance, error)
}
