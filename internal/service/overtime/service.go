package overtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/haergo/workforce-backend-go/internal/domain/approval"
	"github.com/haergo/workforce-backend-go/internal/domain/overtime"
	"github.com/haergo/workforce-backend-go/internal/domain/user"
	"github.com/haergo/workforce-backend-go/internal/pkg/database"
	"github.com/haergo/workforce-backend-go/internal/pkg/metrics"
	"github.com/haergo/workforce-backend-go/internal/pkg/validator"
)

// Overtime is always manager-level; no type catalog exists for it.
const approvalLevel = approval.LevelManager

type Service struct {
	overtimeRepository overtime.OvertimeRepository
	txRunner           database.TxRunner
	logger             *slog.Logger
	now                func() time.Time
}

func NewService(
	overtimeRepository overtime.OvertimeRepository,
	txRunner database.TxRunner,
	logger *slog.Logger,
) *Service {
	return &Service{
		overtimeRepository: overtimeRepository,
		txRunner:           txRunner,
		logger:             logger,
		now:                time.Now,
	}
}

// WithClock overrides the time source. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Submit(ctx context.Context, actor user.Actor, req overtime.SubmitRequest) (overtime.RequestResponse, error) {
	if actor.EmployeeID == "" {
		return overtime.RequestResponse{}, user.ErrNotLinkedToEmployee
	}
	if err := req.Validate(); err != nil {
		return overtime.RequestResponse{}, err
	}

	hours, err := overtime.Hours(req.StartTime, req.EndTime)
	if err != nil {
		return overtime.RequestResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	request := overtime.Request{
		ID:         uuid.NewString(),
		EmployeeID: actor.EmployeeID,
		Date:       date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		HourCount:  hours,
		Reason:     req.Reason,
		Status:     overtime.StatusPending,
		CreatedAt:  s.now(),
	}

	err = s.txRunner.RunInTx(ctx, func(ctx context.Context) error {
		created, err := s.overtimeRepository.Create(ctx, request)
		if err != nil {
			return fmt.Errorf("create overtime request: %w", err)
		}
		request = created
		return nil
	})
	if err != nil {
		return overtime.RequestResponse{}, err
	}

	s.logger.InfoContext(ctx, "overtime request submitted",
		"request_id", request.ID,
		"employee_id", actor.EmployeeID,
		"hours", hours,
	)
	return overtime.ToResponse(request), nil
}

// Decide approves or rejects a pending overtime request. Unlike leave,
// a rejection reason is optional here.
func (s *Service) Decide(ctx context.Context, actor user.Actor, requestID string, req overtime.DecideRequest) (overtime.RequestResponse, error) {
	if !approval.ValidOutcome(req.Outcome) {
		return overtime.RequestResponse{}, validator.ValidationErrors{{
			Field:   "outcome",
			Message: "outcome must be 'approve' or 'reject'",
		}}
	}
	if !approval.CanDecide(actor.Role, approvalLevel) {
		return overtime.RequestResponse{}, approval.ErrUnauthorized
	}

	var result overtime.Request
	err := s.txRunner.RunInTx(ctx, func(ctx context.Context) error {
		request, err := s.overtimeRepository.GetByID(ctx, requestID)
		if err != nil {
			return fmt.Errorf("get overtime request: %w", err)
		}
		if request == nil {
			return overtime.ErrRequestNotFound
		}

		to := overtime.StatusApproved
		if approval.Outcome(req.Outcome) == approval.OutcomeReject {
			to = overtime.StatusRejected
		}

		now := s.now()
		decidedBy := actor.UserID
		transitioned, err := s.overtimeRepository.TransitionFromPending(ctx, requestID, to, &decidedBy, now, req.RejectReason)
		if err != nil {
			return fmt.Errorf("transition overtime request: %w", err)
		}
		if !transitioned {
			return overtime.ErrNotPending
		}

		result = *request
		result.Status = to
		result.DecidedBy = &decidedBy
		result.DecidedAt = &now
		result.RejectReason = req.RejectReason
		return nil
	})
	if err != nil {
		return overtime.RequestResponse{}, err
	}

	metrics.RequestDecisions.WithLabelValues("overtime", req.Outcome).Inc()
	s.logger.InfoContext(ctx, "overtime request decided",
		"request_id", requestID,
		"outcome", req.Outcome,
		"decided_by", actor.UserID,
	)
	return overtime.ToResponse(result), nil
}

func (s *Service) Cancel(ctx context.Context, actor user.Actor, requestID string) (overtime.RequestResponse, error) {
	var result overtime.Request
	err := s.txRunner.RunInTx(ctx, func(ctx context.Context) error {
		request, err := s.overtimeRepository.GetByID(ctx, requestID)
		if err != nil {
			return fmt.Errorf("get overtime request: %w", err)
		}
		if request == nil {
			return overtime.ErrRequestNotFound
		}
		if request.EmployeeID != actor.EmployeeID {
			return approval.ErrUnauthorized
		}

		now := s.now()
		transitioned, err := s.overtimeRepository.TransitionFromPending(ctx, requestID, overtime.StatusCancelled, nil, now, nil)
		if err != nil {
			return fmt.Errorf("transition overtime request: %w", err)
		}
		if !transitioned {
			return overtime.ErrNotPending
		}

		result = *request
		result.Status = overtime.StatusCancelled
		result.DecidedAt = &now
		return nil
	})
	if err != nil {
		return overtime.RequestResponse{}, err
	}

	s.logger.InfoContext(ctx, "overtime request cancelled",
		"request_id", requestID,
		"employee_id", actor.EmployeeID,
	)
	return overtime.ToResponse(result), nil
}

func (s *Service) GetByID(ctx context.Context, actor user.Actor, requestID string) (overtime.RequestResponse, error) {
	request, err := s.overtimeRepository.GetByID(ctx, requestID)
	if err != nil {
		return overtime.RequestResponse{}, fmt.Errorf("get overtime request: %w", err)
	}
	if request == nil {
		return overtime.RequestResponse{}, overtime.ErrRequestNotFound
	}
	if request.EmployeeID != actor.EmployeeID && !actor.Role.IsApprover() {
		return overtime.RequestResponse{}, approval.ErrUnauthorized
	}
	return overtime.ToResponse(*request), nil
}

func (s *Service) List(ctx context.Context, actor user.Actor, filter overtime.ListFilter) ([]overtime.RequestResponse, error) {
	if actor.Role == user.RoleEmployee || filter.EmployeeID == nil {
		if actor.EmployeeID == "" {
			return nil, user.ErrNotLinkedToEmployee
		}
		filter.EmployeeID = &actor.EmployeeID
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}

	requests, err := s.overtimeRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list overtime requests: %w", err)
	}

	responses := make([]overtime.RequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, overtime.ToResponse(request))
	}
	return responses, nil
}

func (s *Service) ListPendingForApprover(ctx context.Context, actor user.Actor) ([]overtime.RequestResponse, error) {
	if !actor.Role.IsApprover() {
		return nil, user.ErrApproverAccessRequired
	}

	requests, err := s.overtimeRepository.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending overtime requests: %w", err)
	}

	responses := make([]overtime.RequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, overtime.ToResponse(request))
	}
	return responses, nil
}
