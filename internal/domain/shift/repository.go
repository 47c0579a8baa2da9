package shift

import (
	"context"
	"time"
)

type ShiftRepository interface {
	CreateShift(ctx context.Context, s Shift) (Shift, error)
	GetShiftByID(ctx context.Context, id string) (*Shift, error)
	ListShifts(ctx context.Context) ([]Shift, error)
	DeleteShift(ctx context.Context, id string) error

	CreateAssignment(ctx context.Context, a Assignment) (Assignment, error)
	ListAssignments(ctx context.Context, employeeID *string) ([]Assignment, error)
	// HasOverlappingAssignment reports whether the employee already has an
	// assignment intersecting [from, to], with a nil to meaning unbounded.
	HasOverlappingAssignment(ctx context.Context, employeeID string, from time.Time, to *time.Time) (bool, error)
	CountAssignmentsByShift(ctx context.Context, shiftID string) (int, error)
}
