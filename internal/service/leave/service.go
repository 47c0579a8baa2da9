package leave

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/haergo/workforce-backend-go/internal/domain/approval"
	"github.com/haergo/workforce-backend-go/internal/domain/leave"
	"github.com/haergo/workforce-backend-go/internal/domain/user"
	"github.com/haergo/workforce-backend-go/internal/pkg/database"
	"github.com/haergo/workforce-backend-go/internal/pkg/metrics"
	"github.com/haergo/workforce-backend-go/internal/pkg/validator"
)

type Service struct {
	requestRepository leave.RequestRepository
	balanceRepository leave.BalanceRepository
	txRunner          database.TxRunner
	policies          map[string]leave.TypePolicy
	logger            *slog.Logger
	now               func() time.Time
}

func NewService(
	requestRepository leave.RequestRepository,
	balanceRepository leave.BalanceRepository,
	txRunner database.TxRunner,
	policies map[string]leave.TypePolicy,
	logger *slog.Logger,
) *Service {
	return &Service{
		requestRepository: requestRepository,
		balanceRepository: balanceRepository,
		txRunner:          txRunner,
		policies:          policies,
		logger:            logger,
		now:               time.Now,
	}
}

// WithClock overrides the time source. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Submit validates a leave request against its type policy and, for
// quota-deducting types, places a hold on the balance in the same
// transaction that creates the request.
func (s *Service) Submit(ctx context.Context, actor user.Actor, req leave.SubmitRequest) (leave.RequestResponse, error) {
	if actor.EmployeeID == "" {
		return leave.RequestResponse{}, user.ErrNotLinkedToEmployee
	}
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	policy, ok := s.policies[req.LeaveType]
	if !ok {
		return leave.RequestResponse{}, leave.ErrUnknownLeaveType
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	if end.Before(start) {
		return leave.RequestResponse{}, leave.ErrInvalidRange
	}

	days := leave.WorkingDays(start, end)
	if days == 0 {
		return leave.RequestResponse{}, leave.ErrNoWorkingDays
	}
	if days > policy.MaxDays {
		return leave.RequestResponse{}, leave.ErrExceedsMaxDays
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if leadDays := int(start.Sub(today).Hours() / 24); leadDays < policy.MinLeadDays {
		return leave.RequestResponse{}, leave.ErrLeadTimeViolation
	}

	if policy.RequiresAttachment && (req.AttachmentURL == nil || *req.AttachmentURL == "") {
		return leave.RequestResponse{}, leave.ErrMissingAttachment
	}

	request := leave.Request{
		ID:            uuid.NewString(),
		EmployeeID:    actor.EmployeeID,
		LeaveType:     policy.Code,
		StartDate:     start,
		EndDate:       end,
		DayCount:      days,
		Reason:        req.Reason,
		AttachmentURL: req.AttachmentURL,
		Status:        leave.StatusPending,
		CreatedAt:     now,
	}

	err := s.txRunner.RunInTx(ctx, func(ctx context.Context) error {
		overlap, err := s.requestRepository.HasActiveOverlap(ctx, actor.EmployeeID, start, end)
		if err != nil {
			return fmt.Errorf("check overlapping requests: %w", err)
		}
		if overlap {
			return leave.ErrOverlappingRequest
		}

		if policy.DeductsQuota {
			balance, err := s.balanceRepository.GetOrCreateForUpdate(ctx, actor.EmployeeID, policy.Code, start.Year(), policy.Allotted)
			if err != nil {
				return fmt.Errorf("lock leave balance: %w", err)
			}
			if days > balance.Available() {
				return leave.ErrInsufficientBalance
			}
			if err := s.balanceRepository.UpdateCounts(ctx, balance.ID, balance.Used, balance.Held+days); err != nil {
				return fmt.Errorf("hold leave balance: %w", err)
			}
		}

		created, err := s.requestRepository.Create(ctx, request)
		if err != nil {
			return fmt.Errorf("create leave request: %w", err)
		}
		request = created
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	s.logger.InfoContext(ctx, "leave request submitted",
		"request_id", request.ID,
		"employee_id", actor.EmployeeID,
		"leave_type", policy.Code,
		"days", days,
	)
	return leave.ToResponse(request), nil
}

// Decide approves or rejects a pending request. Approval commits the
// held days into used; rejection releases them. The transition and the
// ledger move share one transaction, and the pending check happens as a
// conditional update so concurrent deciders cannot both win.
func (s *Service) Decide(ctx context.Context, actor user.Actor, requestID string, req leave.DecideRequest) (leave.RequestResponse, error) {
	if !approval.ValidOutcome(req.Outcome) {
		return leave.RequestResponse{}, validator.ValidationErrors{{
			Field:   "outcome",
			Message: "outcome must be 'approve' or 'reject'",
		}}
	}
	outcome := approval.Outcome(req.Outcome)
	if outcome == approval.OutcomeReject && (req.RejectReason == nil || *req.RejectReason == "") {
		return leave.RequestResponse{}, leave.ErrMissingReason
	}

	var result leave.Request
	err := s.txRunner.RunInTx(ctx, func(ctx context.Context) error {
		request, err := s.requestRepository.GetByID(ctx, requestID)
		if err != nil {
			return fmt.Errorf("get leave request: %w", err)
		}
		if request == nil {
			return leave.ErrRequestNotFound
		}

		policy, ok := s.policies[request.LeaveType]
		if !ok {
			return leave.ErrUnknownLeaveType
		}
		if !approval.CanDecide(actor.Role, policy.ApprovalLevel) {
			return approval.ErrUnauthorized
		}

		to := leave.StatusApproved
		if outcome == approval.OutcomeReject {
			to = leave.StatusRejected
		}

		now := s.now()
		decidedBy := actor.UserID
		transitioned, err := s.requestRepository.TransitionFromPending(ctx, requestID, to, &decidedBy, now, req.RejectReason)
		if err != nil {
			return fmt.Errorf("transition leave request: %w", err)
		}
		if !transitioned {
			return leave.ErrNotPending
		}

		if policy.DeductsQuota {
			if err := s.settleHold(ctx, *request, policy, to == leave.StatusApproved); err != nil {
				return err
			}
		}

		result = *request
		result.Status = to
		result.DecidedBy = &decidedBy
		result.DecidedAt = &now
		result.RejectReason = req.RejectReason
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	metrics.RequestDecisions.WithLabelValues("leave", req.Outcome).Inc()
	s.logger.InfoContext(ctx, "leave request decided",
		"request_id", requestID,
		"outcome", req.Outcome,
		"decided_by", actor.UserID,
	)
	return leave.ToResponse(result), nil
}

// settleHold moves held days to used on approval, or releases them.
func (s *Service) settleHold(ctx context.Context, request leave.Request, policy leave.TypePolicy, approved bool) error {
	balance, err := s.balanceRepository.GetOrCreateForUpdate(ctx, request.EmployeeID, policy.Code, request.StartDate.Year(), policy.Allotted)
	if err != nil {
		return fmt.Errorf("lock leave balance: %w", err)
	}

	held := balance.Held - request.DayCount
	if held < 0 {
		held = 0
	}
	used := balance.Used
	if approved {
		used += request.DayCount
	}
	if err := s.balanceRepository.UpdateCounts(ctx, balance.ID, used, held); err != nil {
		return fmt.Errorf("settle leave balance: %w", err)
	}
	return nil
}

// Cancel lets the owner withdraw a still-pending request, releasing any
// held balance.
func (s *Service) Cancel(ctx context.Context, actor user.Actor, requestID string) (leave.RequestResponse, error) {
	var result leave.Request
	err := s.txRunner.RunInTx(ctx, func(ctx context.Context) error {
		request, err := s.requestRepository.GetByID(ctx, requestID)
		if err != nil {
			return fmt.Errorf("get leave request: %w", err)
		}
		if request == nil {
			return leave.ErrRequestNotFound
		}
		if request.EmployeeID != actor.EmployeeID && !actor.Role.IsHRLevel() {
			return approval.ErrUnauthorized
		}

		now := s.now()
		transitioned, err := s.requestRepository.TransitionFromPending(ctx, requestID, leave.StatusCancelled, nil, now, nil)
		if err != nil {
			return fmt.Errorf("transition leave request: %w", err)
		}
		if !transitioned {
			return leave.ErrNotPending
		}

		if policy, ok := s.policies[request.LeaveType]; ok && policy.DeductsQuota {
			if err := s.settleHold(ctx, *request, policy, false); err != nil {
				return err
			}
		}

		result = *request
		result.Status = leave.StatusCancelled
		result.DecidedAt = &now
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	s.logger.InfoContext(ctx, "leave request cancelled",
		"request_id", requestID,
		"employee_id", actor.EmployeeID,
	)
	return leave.ToResponse(result), nil
}

func (s *Service) GetByID(ctx context.Context, actor user.Actor, requestID string) (leave.RequestResponse, error) {
	request, err := s.requestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("get leave request: %w", err)
	}
	if request == nil {
		return leave.RequestResponse{}, leave.ErrRequestNotFound
	}
	if request.EmployeeID != actor.EmployeeID && !actor.Role.IsApprover() {
		return leave.RequestResponse{}, approval.ErrUnauthorized
	}
	return leave.ToResponse(*request), nil
}

func (s *Service) List(ctx context.Context, actor user.Actor, filter leave.ListFilter) ([]leave.RequestResponse, error) {
	if actor.Role == user.RoleEmployee || filter.EmployeeID == nil {
		if actor.EmployeeID == "" {
			return nil, user.ErrNotLinkedToEmployee
		}
		filter.EmployeeID = &actor.EmployeeID
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}

	requests, err := s.requestRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list leave requests: %w", err)
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, leave.ToResponse(request))
	}
	return responses, nil
}

// ListPendingForApprover returns pending requests whose type's approval
// level the actor may decide.
func (s *Service) ListPendingForApprover(ctx context.Context, actor user.Actor) ([]leave.RequestResponse, error) {
	levels := approval.DecidableLevels(actor.Role)
	if len(levels) == 0 {
		return nil, user.ErrApproverAccessRequired
	}

	decidable := make(map[approval.Level]bool, len(levels))
	for _, level := range levels {
		decidable[level] = true
	}

	var typeCodes []string
	for code, policy := range s.policies {
		if decidable[policy.ApprovalLevel] {
			typeCodes = append(typeCodes, code)
		}
	}
	sort.Strings(typeCodes)

	requests, err := s.requestRepository.ListPendingByTypes(ctx, typeCodes)
	if err != nil {
		return nil, fmt.Errorf("list pending leave requests: %w", err)
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, leave.ToResponse(request))
	}
	return responses, nil
}

// GetBalances reports the ledger for every quota-deducting type,
// synthesizing untouched rows from the policy allotment.
func (s *Service) GetBalances(ctx context.Context, actor user.Actor, employeeID string, year int) ([]leave.BalanceResponse, error) {
	if actor.Role == user.RoleEmployee || employeeID == "" {
		if actor.EmployeeID == "" {
			return nil, user.ErrNotLinkedToEmployee
		}
		employeeID = actor.EmployeeID
	}
	if year == 0 {
		year = s.now().Year()
	}

	rows, err := s.balanceRepository.ListByEmployee(ctx, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("list leave balances: %w", err)
	}

	byType := make(map[string]leave.Balance, len(rows))
	for _, row := range rows {
		byType[row.LeaveType] = row
	}

	var responses []leave.BalanceResponse
	for _, policy := range s.sortedPolicies() {
		if !policy.DeductsQuota {
			continue
		}
		balance, ok := byType[policy.Code]
		if !ok {
			balance = leave.Balance{LeaveType: policy.Code, Year: year, Allotted: policy.Allotted}
		}
		responses = append(responses, leave.BalanceResponse{
			LeaveType: balance.LeaveType,
			Year:      year,
			Allotted:  balance.Allotted,
			Used:      balance.Used,
			Held:      balance.Held,
			Available: balance.Available(),
		})
	}
	return responses, nil
}

func (s *Service) ListTypes(ctx context.Context) []leave.TypeResponse {
	var responses []leave.TypeResponse
	for _, policy := range s.sortedPolicies() {
		responses = append(responses, leave.TypeResponse{
			Code:               policy.Code,
			Name:               policy.Name,
			Allotted:           policy.Allotted,
			DeductsQuota:       policy.DeductsQuota,
			ApprovalLevel:      string(policy.ApprovalLevel),
			MinLeadDays:        policy.MinLeadDays,
			MaxDays:            policy.MaxDays,
			RequiresAttachment: policy.RequiresAttachment,
		})
	}
	return responses
}

func (s *Service) sortedPolicies() []leave.TypePolicy {
	codes := make([]string, 0, len(s.policies))
	for code := range s.policies {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	policies := make([]leave.TypePolicy, 0, len(codes))
	for _, code := range codes {
		policies = append(policies, s.policies[code])
	}
	return policies
}
