package user

import "errors"

var (
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrApproverAccessRequired = errors.New("approver access required")
	ErrHRAccessRequired       = errors.New("HR access required")
	ErrNotLinkedToEmployee    = errors.New("account is not linked to an employee record")
)
