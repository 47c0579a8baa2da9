package overtime

import (
	"context"
	"time"
)

type OvertimeRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (*Request, error)
	List(ctx context.Context, filter ListFilter) ([]Request, error)
	ListPending(ctx context.Context) ([]Request, error)
	TransitionFromPending(ctx context.Context, id string, to RequestStatus, decidedBy *string, decidedAt time.Time, rejectReason *string) (bool, error)
}
