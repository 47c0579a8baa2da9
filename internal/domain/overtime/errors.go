package overtime

import "errors"

var (
	ErrRequestNotFound  = errors.New("overtime request not found")
	ErrInvalidTimeRange = errors.New("end time must be after start time")
	ErrNotPending       = errors.New("request is not pending")
)
