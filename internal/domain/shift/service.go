package shift

import (
	"context"

	"github.com/haergo/workforce-backend-go/internal/domain/user"
)

type ShiftService interface {
	CreateShift(ctx context.Context, actor user.Actor, req CreateShiftRequest) (ShiftResponse, error)
	ListShifts(ctx context.Context) ([]ShiftResponse, error)
	DeleteShift(ctx context.Context, actor user.Actor, shiftID string) error

	Assign(ctx context.Context, actor user.Actor, req AssignRequest) (AssignmentResponse, error)
	ListAssignments(ctx context.Context, actor user.Actor, employeeID *string) ([]AssignmentResponse, error)
}
