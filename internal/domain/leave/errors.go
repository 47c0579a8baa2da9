package leave

import "errors"

var (
	ErrRequestNotFound     = errors.New("leave request not found")
	ErrUnknownLeaveType    = errors.New("unknown leave type")
	ErrInvalidRange        = errors.New("end date must not be before start date")
	ErrNoWorkingDays       = errors.New("requested range contains no working days")
	ErrExceedsMaxDays      = errors.New("request exceeds the maximum days for this leave type")
	ErrLeadTimeViolation   = errors.New("request does not meet the minimum lead time")
	ErrOverlappingRequest  = errors.New("an active leave request already covers part of this range")
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	ErrMissingAttachment   = errors.New("this leave type requires a supporting attachment")
	ErrNotPending          = errors.New("request is not pending")
	ErrMissingReason       = errors.New("a rejection reason is required")
)
