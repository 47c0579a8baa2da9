package shift

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/haergo/workforce-backend-go/internal/domain/employee"
	"github.com/haergo/workforce-backend-go/internal/domain/shift"
	"github.com/haergo/workforce-backend-go/internal/domain/user"
	"github.com/haergo/workforce-backend-go/internal/pkg/database"
)

type Service struct {
	shiftRepository    shift.ShiftRepository
	employeeRepository employee.EmployeeRepository
	txRunner           database.TxRunner
	logger             *slog.Logger
	now                func() time.Time
}

func NewService(
	shiftRepository shift.ShiftRepository,
	employeeRepository employee.EmployeeRepository,
	txRunner database.TxRunner,
	logger *slog.Logger,
) *Service {
	return &Service{
		shiftRepository:    shiftRepository,
		employeeRepository: employeeRepository,
		txRunner:           txRunner,
		logger:             logger,
		now:                time.Now,
	}
}

// CreateShift defines a named working window. HR only.
func (s *Service) CreateShift(ctx context.Context, actor user.Actor, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if !actor.Role.IsHRLevel() {
		return shift.ShiftResponse{}, user.ErrHRAccessRequired
	}
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}
	if req.StartTime == req.EndTime {
		return shift.ShiftResponse{}, shift.ErrInvalidTimeRange
	}

	created, err := s.shiftRepository.CreateShift(ctx, shift.Shift{
		ID:        uuid.NewString(),
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Color:     req.Color,
		CreatedAt: s.now(),
	})
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("create shift: %w", err)
	}

	s.logger.InfoContext(ctx, "shift created", "shift_id", created.ID, "name", created.Name)
	return shift.ToShiftResponse(created), nil
}

func (s *Service) ListShifts(ctx context.Context) ([]shift.ShiftResponse, error) {
	shifts, err := s.shiftRepository.ListShifts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, shift.ToShiftResponse(sh))
	}
	return responses, nil
}

// DeleteShift removes a shift definition. Shifts with assignments cannot
// be deleted.
func (s *Service) DeleteShift(ctx context.Context, actor user.Actor, shiftID string) error {
	if !actor.Role.IsHRLevel() {
		return user.ErrHRAccessRequired
	}

	return s.txRunner.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := s.shiftRepository.GetShiftByID(ctx, shiftID)
		if err != nil {
			return fmt.Errorf("get shift: %w", err)
		}
		if existing == nil {
			return shift.ErrShiftNotFound
		}

		count, err := s.shiftRepository.CountAssignmentsByShift(ctx, shiftID)
		if err != nil {
			return fmt.Errorf("count shift assignments: %w", err)
		}
		if count > 0 {
			return shift.ErrShiftInUse
		}

		if err := s.shiftRepository.DeleteShift(ctx, shiftID); err != nil {
			return fmt.Errorf("delete shift: %w", err)
		}

		s.logger.InfoContext(ctx, "shift deleted", "shift_id", shiftID)
		return nil
	})
}

// Assign binds an employee to a shift over a date range. Overlapping
// assignments for the same employee are rejected inside the transaction
// that creates the new one.
func (s *Service) Assign(ctx context.Context, actor user.Actor, req shift.AssignRequest) (shift.AssignmentResponse, error) {
	if !actor.Role.IsHRLevel() {
		return shift.AssignmentResponse{}, user.ErrHRAccessRequired
	}
	if err := req.Validate(); err != nil {
		return shift.AssignmentResponse{}, err
	}

	from, _ := time.Parse("2006-01-02", req.EffectiveFrom)
	var to *time.Time
	if req.EffectiveTo != nil {
		parsed, _ := time.Parse("2006-01-02", *req.EffectiveTo)
		if parsed.Before(from) {
			return shift.AssignmentResponse{}, shift.ErrInvalidEffectiveRange
		}
		to = &parsed
	}

	var assignment shift.Assignment
	err := s.txRunner.RunInTx(ctx, func(ctx context.Context) error {
		emp, err := s.employeeRepository.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return fmt.Errorf("get employee: %w", err)
		}
		if emp == nil {
			return employee.ErrEmployeeNotFound
		}

		sh, err := s.shiftRepository.GetShiftByID(ctx, req.ShiftID)
		if err != nil {
			return fmt.Errorf("get shift: %w", err)
		}
		if sh == nil {
			return shift.ErrShiftNotFound
		}

		overlap, err := s.shiftRepository.HasOverlappingAssignment(ctx, req.EmployeeID, from, to)
		if err != nil {
			return fmt.Errorf("check overlapping assignments: %w", err)
		}
		if overlap {
			return shift.ErrOverlappingAssignment
		}

		assignment, err = s.shiftRepository.CreateAssignment(ctx, shift.Assignment{
			ID:            uuid.NewString(),
			EmployeeID:    req.EmployeeID,
			ShiftID:       req.ShiftID,
			EffectiveFrom: from,
			EffectiveTo:   to,
			CreatedAt:     s.now(),
		})
		if err != nil {
			return fmt.Errorf("create assignment: %w", err)
		}
		return nil
	})
	if err != nil {
		return shift.AssignmentResponse{}, err
	}

	s.logger.InfoContext(ctx, "shift assigned",
		"assignment_id", assignment.ID,
		"employee_id", req.EmployeeID,
		"shift_id", req.ShiftID,
	)
	return shift.ToAssignmentResponse(assignment), nil
}

// ListAssignments shows an employee their own assignments; approver roles
// may pass any employee, or none for all.
func (s *Service) ListAssignments(ctx context.Context, actor user.Actor, employeeID *string) ([]shift.AssignmentResponse, error) {
	if actor.Role == user.RoleEmployee {
		if actor.EmployeeID == "" {
			return nil, user.ErrNotLinkedToEmployee
		}
		employeeID = &actor.EmployeeID
	}

	assignments, err := s.shiftRepository.ListAssignments(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	responses := make([]shift.AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, shift.ToAssignmentResponse(assignment))
	}
	return responses, nil
}
