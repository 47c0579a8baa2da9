package response

import (
	"errors"
	"net/http"

	"github.com/haergo/workforce-backend-go/internal/domain/approval"
	"github.com/haergo/workforce-backend-go/internal/domain/attendance"
	"github.com/haergo/workforce-backend-go/internal/domain/employee"
	"github.com/haergo/workforce-backend-go/internal/domain/face"
	"github.com/haergo/workforce-backend-go/internal/domain/leave"
	"github.com/haergo/workforce-backend-go/internal/domain/overtime"
	"github.com/haergo/workforce-backend-go/internal/domain/shift"
	"github.com/haergo/workforce-backend-go/internal/domain/user"
	"github.com/haergo/workforce-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Shape problems are
// 422, state conflicts 409, policy violations 400, authority problems
// 403, lookups 404; anything unrecognized is a 500.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Access errors
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrApproverAccessRequired),
		errors.Is(err, user.ErrHRAccessRequired),
		errors.Is(err, user.ErrNotLinkedToEmployee),
		errors.Is(err, approval.ErrUnauthorized):
		Forbidden(w, err.Error())

	// Attendance errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyClockedIn),
		errors.Is(err, attendance.ErrNotClockedIn),
		errors.Is(err, attendance.ErrAlreadyClockedOut),
		errors.Is(err, attendance.ErrClockBusy):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrOutsideGeofence),
		errors.Is(err, attendance.ErrMissingClientAddress):
		BadRequest(w, err.Error(), nil)

	// Face errors
	case errors.Is(err, face.ErrNoTemplateRegistered):
		NotFound(w, err.Error())
	case errors.Is(err, face.ErrInvalidEmbedding),
		errors.Is(err, face.ErrFaceMismatch):
		BadRequest(w, err.Error(), nil)

	// Leave errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrOverlappingRequest),
		errors.Is(err, leave.ErrNotPending):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrUnknownLeaveType),
		errors.Is(err, leave.ErrInvalidRange),
		errors.Is(err, leave.ErrNoWorkingDays),
		errors.Is(err, leave.ErrExceedsMaxDays),
		errors.Is(err, leave.ErrLeadTimeViolation),
		errors.Is(err, leave.ErrInsufficientBalance),
		errors.Is(err, leave.ErrMissingAttachment),
		errors.Is(err, leave.ErrMissingReason):
		BadRequest(w, err.Error(), nil)

	// Overtime errors
	case errors.Is(err, overtime.ErrRequestNotFound):
		NotFound(w, "Overtime request not found")
	case errors.Is(err, overtime.ErrNotPending):
		Conflict(w, err.Error())
	case errors.Is(err, overtime.ErrInvalidTimeRange):
		BadRequest(w, err.Error(), nil)

	// Shift errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrShiftInUse),
		errors.Is(err, shift.ErrOverlappingAssignment):
		Conflict(w, err.Error())
	case errors.Is(err, shift.ErrInvalidTimeRange),
		errors.Is(err, shift.ErrInvalidEffectiveRange):
		BadRequest(w, err.Error(), nil)

	// Employee errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
