package shift

import "errors"

var (
	ErrShiftNotFound         = errors.New("shift not found")
	ErrShiftInUse            = errors.New("shift still has active assignments")
	ErrInvalidTimeRange      = errors.New("shift end time must differ from start time")
	ErrInvalidEffectiveRange = errors.New("effective_to must not be before effective_from")
	ErrOverlappingAssignment = errors.New("employee already has an assignment covering this range")
)
