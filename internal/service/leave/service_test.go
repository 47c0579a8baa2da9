package leave

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haergo/workforce-backend-go/internal/domain/approval"
	"github.com/haergo/workforce-backend-go/internal/domain/leave"
	"github.com/haergo/workforce-backend-go/internal/domain/user"
	"github.com/haergo/workforce-backend-go/internal/fixtures"
	"github.com/haergo/workforce-backend-go/internal/pkg/validator"
)

type fakeTxRunner struct{}

func (fakeTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRequestRepo struct {
	requests map[string]*leave.Request
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]*leave.Request)}
}

func (r *fakeRequestRepo) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	cp := req
	r.requests[req.ID] = &cp
	return req, nil
}

func (r *fakeRequestRepo) GetByID(ctx context.Context, id string) (*leave.Request, error) {
	if req, ok := r.requests[id]; ok {
		cp := *req
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeRequestRepo) List(ctx context.Context, filter leave.ListFilter) ([]leave.Request, error) {
	var out []leave.Request
	for _, req := range r.requests {
		if filter.EmployeeID != nil && req.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		out = append(out, *req)
	}
	return out, nil
}

func (r *fakeRequestRepo) ListPendingByTypes(ctx context.Context, typeCodes []string) ([]leave.Request, error) {
	codes := make(map[string]bool, len(typeCodes))
	for _, code := range typeCodes {
		codes[code] = true
	}
	var out []leave.Request
	for _, req := range r.requests {
		if req.Status == leave.StatusPending && codes[req.LeaveType] {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) HasActiveOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	for _, req := range r.requests {
		if req.EmployeeID != employeeID {
			continue
		}
		if req.Status != leave.StatusPending && req.Status != leave.StatusApproved {
			continue
		}
		if !req.StartDate.After(end) && !req.EndDate.Before(start) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRequestRepo) TransitionFromPending(ctx context.Context, id string, to leave.RequestStatus, decidedBy *string, decidedAt time.Time, rejectReason *string) (bool, error) {
	req, ok := r.requests[id]
	if !ok || req.Status != leave.StatusPending {
		return false, nil
	}
	req.Status = to
	req.DecidedBy = decidedBy
	req.DecidedAt = &decidedAt
	req.RejectReason = rejectReason
	return true, nil
}

func (r *fakeRequestRepo) ListApprovedCovering(ctx context.Context, date time.Time) ([]leave.Request, error) {
	var out []leave.Request
	for _, req := range r.requests {
		if req.Status == leave.StatusApproved && !date.Before(req.StartDate) && !date.After(req.EndDate) {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) HasApprovedCovering(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	for _, req := range r.requests {
		if req.EmployeeID == employeeID && req.Status == leave.StatusApproved &&
			!date.Before(req.StartDate) && !date.After(req.EndDate) {
			return true, nil
		}
	}
	return false, nil
}

type fakeBalanceRepo struct {
	balances map[string]*leave.Balance // employeeID|leaveType|year
	nextID   int
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{balances: make(map[string]*leave.Balance)}
}

func balanceKey(employeeID, leaveType string, year int) string {
	return employeeID + "|" + leaveType + "|" + strconv.Itoa(year)
}

func (r *fakeBalanceRepo) GetOrCreateForUpdate(ctx context.Context, employeeID, leaveType string, year, allotted int) (leave.Balance, error) {
	key := balanceKey(employeeID, leaveType, year)
	if balance, ok := r.balances[key]; ok {
		return *balance, nil
	}
	r.nextID++
	balance := &leave.Balance{
		ID:         "bal-" + strconv.Itoa(r.nextID),
		EmployeeID: employeeID,
		LeaveType:  leaveType,
		Year:       year,
		Allotted:   allotted,
	}
	r.balances[key] = balance
	return *balance, nil
}

func (r *fakeBalanceRepo) UpdateCounts(ctx context.Context, id string, used, held int) error {
	for _, balance := range r.balances {
		if balance.ID == id {
			balance.Used = used
			balance.Held = held
			return nil
		}
	}
	return nil
}

func (r *fakeBalanceRepo) ListByEmployee(ctx context.Context, employeeID string, year int) ([]leave.Balance, error) {
	var out []leave.Balance
	for _, balance := range r.balances {
		if balance.EmployeeID == employeeID && balance.Year == year {
			out = append(out, *balance)
		}
	}
	return out, nil
}

type fixture struct {
	svc         *Service
	requestRepo *fakeRequestRepo
	balanceRepo *fakeBalanceRepo
}

// Monday 2025-03-03; the default request below starts a week later.
var fixedNow = time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		requestRepo: newFakeRequestRepo(),
		balanceRepo: newFakeBalanceRepo(),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.svc = NewService(f.requestRepo, f.balanceRepo, fakeTxRunner{}, fixtures.LeaveTypes(), logger).
		WithClock(func() time.Time { return fixedNow })
	return f
}

func (f *fixture) balance(employeeID, leaveType string, year int) *leave.Balance {
	return f.balanceRepo.balances[balanceKey(employeeID, leaveType, year)]
}

var (
	owner   = user.Actor{UserID: "u-1", EmployeeID: "emp-1", Role: user.RoleEmployee}
	manager = user.Actor{UserID: "u-2", EmployeeID: "emp-2", Role: user.RoleManager}
	hr      = user.Actor{UserID: "u-3", EmployeeID: "emp-3", Role: user.RoleHR}
)

// annualRequest spans Mon 2025-03-10 through Wed 2025-03-12, three
// working days.
func annualRequest() leave.SubmitRequest {
	return leave.SubmitRequest{
		LeaveType: "annual",
		StartDate: "2025-03-10",
		EndDate:   "2025-03-12",
		Reason:    "family trip",
	}
}

func TestSubmitHoldsBalance(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Submit(context.Background(), owner, annualRequest())
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 3, resp.DayCount)

	balance := f.balance("emp-1", "annual", 2025)
	require.NotNil(t, balance)
	assert.Equal(t, 0, balance.Used)
	assert.Equal(t, 3, balance.Held)
	assert.Equal(t, 9, balance.Available())
}

func TestSubmitPolicyViolations(t *testing.T) {
	t.Run("unknown type", func(t *testing.T) {
		f := newFixture(t)
		req := annualRequest()
		req.LeaveType = "sabbatical"
		_, err := f.svc.Submit(context.Background(), owner, req)
		assert.ErrorIs(t, err, leave.ErrUnknownLeaveType)
	})

	t.Run("end before start", func(t *testing.T) {
		f := newFixture(t)
		req := annualRequest()
		req.StartDate, req.EndDate = req.EndDate, req.StartDate
		_, err := f.svc.Submit(context.Background(), owner, req)
		assert.ErrorIs(t, err, leave.ErrInvalidRange)
	})

	t.Run("weekend only", func(t *testing.T) {
		f := newFixture(t)
		req := annualRequest()
		req.StartDate, req.EndDate = "2025-03-08", "2025-03-09"
		_, err := f.svc.Submit(context.Background(), owner, req)
		assert.ErrorIs(t, err, leave.ErrNoWorkingDays)
	})

	t.Run("exceeds max days", func(t *testing.T) {
		f := newFixture(t)
		req := annualRequest()
		req.EndDate = "2025-03-31" // 16 working days
		_, err := f.svc.Submit(context.Background(), owner, req)
		assert.ErrorIs(t, err, leave.ErrExceedsMaxDays)
	})

	t.Run("lead time too short", func(t *testing.T) {
		f := newFixture(t)
		req := annualRequest()
		req.StartDate, req.EndDate = "2025-03-04", "2025-03-04"
		_, err := f.svc.Submit(context.Background(), owner, req)
		assert.ErrorIs(t, err, leave.ErrLeadTimeViolation)
	})

	t.Run("sick leave without attachment", func(t *testing.T) {
		f := newFixture(t)
		req := leave.SubmitRequest{
			LeaveType: "sick",
			StartDate: "2025-03-03",
			EndDate:   "2025-03-04",
			Reason:    "flu",
		}
		_, err := f.svc.Submit(context.Background(), owner, req)
		assert.ErrorIs(t, err, leave.ErrMissingAttachment)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		f := newFixture(t)
		balance, err := f.balanceRepo.GetOrCreateForUpdate(context.Background(), "emp-1", "annual", 2025, 12)
		require.NoError(t, err)
		require.NoError(t, f.balanceRepo.UpdateCounts(context.Background(), balance.ID, 10, 0))

		_, err = f.svc.Submit(context.Background(), owner, annualRequest())
		assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
	})

	t.Run("overlapping request", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Submit(context.Background(), owner, annualRequest())
		require.NoError(t, err)

		req := annualRequest()
		req.StartDate, req.EndDate = "2025-03-12", "2025-03-14"
		_, err = f.svc.Submit(context.Background(), owner, req)
		assert.ErrorIs(t, err, leave.ErrOverlappingRequest)
	})
}

func TestDecideApproveCommitsHold(t *testing.T) {
	f := newFixture(t)
	submitted, err := f.svc.Submit(context.Background(), owner, annualRequest())
	require.NoError(t, err)

	resp, err := f.svc.Decide(context.Background(), manager, submitted.ID, leave.DecideRequest{Outcome: "approve"})
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
	require.NotNil(t, resp.DecidedBy)
	assert.Equal(t, manager.UserID, *resp.DecidedBy)

	balance := f.balance("emp-1", "annual", 2025)
	assert.Equal(t, 3, balance.Used)
	assert.Equal(t, 0, balance.Held)
	assert.Equal(t, 9, balance.Available())
}

func TestDecideRejectReleasesHold(t *testing.T) {
	f := newFixture(t)
	submitted, err := f.svc.Submit(context.Background(), owner, annualRequest())
	require.NoError(t, err)

	reason := "project deadline"
	resp, err := f.svc.Decide(context.Background(), manager, submitted.ID, leave.DecideRequest{Outcome: "reject", RejectReason: &reason})
	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)

	balance := f.balance("emp-1", "annual", 2025)
	assert.Equal(t, 0, balance.Used)
	assert.Equal(t, 0, balance.Held)
}

func TestDecideValidations(t *testing.T) {
	f := newFixture(t)
	submitted, err := f.svc.Submit(context.Background(), owner, annualRequest())
	require.NoError(t, err)

	_, err = f.svc.Decide(context.Background(), manager, submitted.ID, leave.DecideRequest{Outcome: "maybe"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = f.svc.Decide(context.Background(), manager, submitted.ID, leave.DecideRequest{Outcome: "reject"})
	assert.ErrorIs(t, err, leave.ErrMissingReason)

	_, err = f.svc.Decide(context.Background(), manager, "nope", leave.DecideRequest{Outcome: "approve"})
	assert.ErrorIs(t, err, leave.ErrRequestNotFound)
}

func TestDecideAuthority(t *testing.T) {
	f := newFixture(t)
	// Maternity requires HR-level approval.
	submitted, err := f.svc.Submit(context.Background(), owner, leave.SubmitRequest{
		LeaveType: "maternity",
		StartDate: "2025-03-24",
		EndDate:   "2025-04-18",
		Reason:    "maternity",
	})
	require.NoError(t, err)

	_, err = f.svc.Decide(context.Background(), manager, submitted.ID, leave.DecideRequest{Outcome: "approve"})
	assert.ErrorIs(t, err, approval.ErrUnauthorized)

	resp, err := f.svc.Decide(context.Background(), hr, submitted.ID, leave.DecideRequest{Outcome: "approve"})
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
}

func TestDecideAlreadyDecided(t *testing.T) {
	f := newFixture(t)
	submitted, err := f.svc.Submit(context.Background(), owner, annualRequest())
	require.NoError(t, err)

	_, err = f.svc.Decide(context.Background(), manager, submitted.ID, leave.DecideRequest{Outcome: "approve"})
	require.NoError(t, err)

	_, err = f.svc.Decide(context.Background(), manager, submitted.ID, leave.DecideRequest{Outcome: "approve"})
	assert.ErrorIs(t, err, leave.ErrNotPending)

	// The ledger only moved once.
	balance := f.balance("emp-1", "annual", 2025)
	assert.Equal(t, 3, balance.Used)
	assert.Equal(t, 0, balance.Held)
}

func TestCancel(t *testing.T) {
	t.Run("owner releases hold", func(t *testing.T) {
		f := newFixture(t)
		submitted, err := f.svc.Submit(context.Background(), owner, annualRequest())
		require.NoError(t, err)

		resp, err := f.svc.Cancel(context.Background(), owner, submitted.ID)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)

		balance := f.balance("emp-1", "annual", 2025)
		assert.Equal(t, 0, balance.Used)
		assert.Equal(t, 0, balance.Held)
	})

	t.Run("other employee forbidden", func(t *testing.T) {
		f := newFixture(t)
		submitted, err := f.svc.Submit(context.Background(), owner, annualRequest())
		require.NoError(t, err)

		other := user.Actor{UserID: "u-9", EmployeeID: "emp-9", Role: user.RoleEmployee}
		_, err = f.svc.Cancel(context.Background(), other, submitted.ID)
		assert.ErrorIs(t, err, approval.ErrUnauthorized)
	})

	t.Run("hr may cancel on behalf", func(t *testing.T) {
		f := newFixture(t)
		submitted, err := f.svc.Submit(context.Background(), owner, annualRequest())
		require.NoError(t, err)

		_, err = f.svc.Cancel(context.Background(), hr, submitted.ID)
		assert.NoError(t, err)
	})

	t.Run("decided request stays put", func(t *testing.T) {
		f := newFixture(t)
		submitted, err := f.svc.Submit(context.Background(), owner, annualRequest())
		require.NoError(t, err)
		_, err = f.svc.Decide(context.Background(), manager, submitted.ID, leave.DecideRequest{Outcome: "approve"})
		require.NoError(t, err)

		_, err = f.svc.Cancel(context.Background(), owner, submitted.ID)
		assert.ErrorIs(t, err, leave.ErrNotPending)
	})
}

func TestCancelThenResubmitSameRange(t *testing.T) {
	f := newFixture(t)
	submitted, err := f.svc.Submit(context.Background(), owner, annualRequest())
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), owner, submitted.ID)
	require.NoError(t, err)

	// The cancelled request no longer blocks the range or the balance.
	resubmitted, err := f.svc.Submit(context.Background(), owner, annualRequest())
	require.NoError(t, err)
	assert.Equal(t, "pending", resubmitted.Status)
	assert.NotEqual(t, submitted.ID, resubmitted.ID)

	balance := f.balance("emp-1", "annual", 2025)
	assert.Equal(t, 0, balance.Used)
	assert.Equal(t, 3, balance.Held)
}

// TestBalanceInvariantUnderRandomSequences hammers the ledger with random
// submit/approve/reject/cancel sequences and checks used + held never
// exceeds the allotment and never goes negative.
func TestBalanceInvariantUnderRandomSequences(t *testing.T) {
	f := newFixture(t)
	rng := rand.New(rand.NewSource(42))

	checkInvariant := func(step int) {
		t.Helper()
		for _, balance := range f.balanceRepo.balances {
			assert.GreaterOrEqual(t, balance.Used, 0, "step %d", step)
			assert.GreaterOrEqual(t, balance.Held, 0, "step %d", step)
			assert.LessOrEqual(t, balance.Used+balance.Held, balance.Allotted, "step %d", step)
		}
	}

	var pending []string
	week := 0
	for step := 0; step < 150; step++ {
		switch rng.Intn(3) {
		case 0:
			if week >= 40 {
				break
			}
			// Each submission gets its own future week so ranges never
			// collide; insufficient balance is an expected outcome.
			start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 7*week)
			week++
			days := 1 + rng.Intn(3)
			req := leave.SubmitRequest{
				LeaveType: "annual",
				StartDate: start.Format("2006-01-02"),
				EndDate:   start.AddDate(0, 0, days-1).Format("2006-01-02"),
				Reason:    "sequence",
			}
			resp, err := f.svc.Submit(context.Background(), owner, req)
			if err == nil {
				pending = append(pending, resp.ID)
			} else {
				require.ErrorIs(t, err, leave.ErrInsufficientBalance)
			}
		case 1:
			if len(pending) == 0 {
				break
			}
			i := rng.Intn(len(pending))
			decide := leave.DecideRequest{Outcome: "approve"}
			if rng.Intn(2) == 0 {
				reason := "sequence"
				decide = leave.DecideRequest{Outcome: "reject", RejectReason: &reason}
			}
			_, err := f.svc.Decide(context.Background(), manager, pending[i], decide)
			require.NoError(t, err)
			pending = append(pending[:i], pending[i+1:]...)
		case 2:
			if len(pending) == 0 {
				break
			}
			i := rng.Intn(len(pending))
			_, err := f.svc.Cancel(context.Background(), owner, pending[i])
			require.NoError(t, err)
			pending = append(pending[:i], pending[i+1:]...)
		}
		checkInvariant(step)
	}
}

func TestGetByIDAccess(t *testing.T) {
	f := newFixture(t)
	submitted, err := f.svc.Submit(context.Background(), owner, annualRequest())
	require.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), owner, submitted.ID)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), manager, submitted.ID)
	assert.NoError(t, err)

	other := user.Actor{UserID: "u-9", EmployeeID: "emp-9", Role: user.RoleEmployee}
	_, err = f.svc.GetByID(context.Background(), other, submitted.ID)
	assert.ErrorIs(t, err, approval.ErrUnauthorized)
}

func TestListScopesEmployeesToSelf(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Submit(context.Background(), owner, annualRequest())
	require.NoError(t, err)

	otherID := "emp-9"
	responses, err := f.svc.List(context.Background(), owner, leave.ListFilter{EmployeeID: &otherID})
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "emp-1", responses[0].EmployeeID)
}

func TestListPendingForApprover(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Submit(context.Background(), owner, annualRequest())
	require.NoError(t, err)
	_, err = f.svc.Submit(context.Background(), owner, leave.SubmitRequest{
		LeaveType: "marriage",
		StartDate: "2025-03-24",
		EndDate:   "2025-03-26",
		Reason:    "wedding",
	})
	require.NoError(t, err)

	// Managers only see manager-level types.
	pending, err := f.svc.ListPendingForApprover(context.Background(), manager)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "annual", pending[0].LeaveType)

	// HR decides both levels.
	pending, err = f.svc.ListPendingForApprover(context.Background(), hr)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	_, err = f.svc.ListPendingForApprover(context.Background(), owner)
	assert.ErrorIs(t, err, user.ErrApproverAccessRequired)
}

func TestGetBalancesSynthesizesUntouchedTypes(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Submit(context.Background(), owner, annualRequest())
	require.NoError(t, err)

	balances, err := f.svc.GetBalances(context.Background(), owner, "", 2025)
	require.NoError(t, err)
	require.Len(t, balances, 2) // annual and personal deduct quota

	byType := make(map[string]leave.BalanceResponse, len(balances))
	for _, balance := range balances {
		byType[balance.LeaveType] = balance
	}
	assert.Equal(t, 3, byType["annual"].Held)
	assert.Equal(t, 9, byType["annual"].Available)
	assert.Equal(t, 3, byType["personal"].Allotted)
	assert.Equal(t, 3, byType["personal"].Available)
}

func TestListTypesSorted(t *testing.T) {
	f := newFixture(t)
	types := f.svc.ListTypes(context.Background())
	require.Len(t, types, 6)
	assert.Equal(t, "annual", types[0].Code)
	assert.Equal(t, "sick", types[5].Code)
}
