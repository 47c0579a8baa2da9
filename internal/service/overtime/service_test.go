package overtime

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haergo/workforce-backend-go/internal/domain/approval"
	"github.com/haergo/workforce-backend-go/internal/domain/overtime"
	"github.com/haergo/workforce-backend-go/internal/domain/user"
	"github.com/haergo/workforce-backend-go/internal/pkg/validator"
)

type fakeTxRunner struct{}

func (fakeTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeOvertimeRepo struct {
	requests map[string]*overtime.Request
}

func newFakeOvertimeRepo() *fakeOvertimeRepo {
	return &fakeOvertimeRepo{requests: make(map[string]*overtime.Request)}
}

func (r *fakeOvertimeRepo) Create(ctx context.Context, req overtime.Request) (overtime.Request, error) {
	cp := req
	r.requests[req.ID] = &cp
	return req, nil
}

func (r *fakeOvertimeRepo) GetByID(ctx context.Context, id string) (*overtime.Request, error) {
	if req, ok := r.requests[id]; ok {
		cp := *req
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeOvertimeRepo) List(ctx context.Context, filter overtime.ListFilter) ([]overtime.Request, error) {
	var out []overtime.Request
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

func (r *fakeOvertimeRepo) ListPending(ctx context.Context) ([]overtime.Request, error) {
	var out []overtime.Request
	for _, req := range r.requests {
		if req.Status == overtime.StatusPending {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *fakeOvertimeRepo) TransitionFromPending(ctx context.Context, id string, to overtime.RequestStatus, decidedBy *string, decidedAt time.Time, rejectReason *string) (bool, error) {
	req, ok := r.requests[id]
	if !ok || req.Status != overtime.StatusPending {
		return false, nil
	}
	req.Status = to
	req.DecidedBy = decidedBy
	req.DecidedAt = &decidedAt
	req.RejectReason = rejectReason
	return true, nil
}

var (
	owner   = user.Actor{UserID: "u-1", EmployeeID: "emp-1", Role: user.RoleEmployee}
	manager = user.Actor{UserID: "u-2", EmployeeID: "emp-2", Role: user.RoleManager}
)

func newService(t *testing.T) (*Service, *fakeOvertimeRepo) {
	t.Helper()
	repo := newFakeOvertimeRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(repo, fakeTxRunner{}, logger).
		WithClock(func() time.Time { return time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC) })
	return svc, repo
}

func submitRequest() overtime.SubmitRequest {
	return overtime.SubmitRequest{
		Date:      "2025-03-04",
		StartTime: "18:00",
		EndTime:   "21:30",
		Reason:    "release prep",
	}
}

func TestSubmit(t *testing.T) {
	svc, _ := newService(t)

	resp, err := svc.Submit(context.Background(), owner, submitRequest())
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.InDelta(t, 3.5, resp.HourCount, 0.001)
	assert.Equal(t, "2025-03-04", resp.Date)
}

func TestSubmitRejectsReversedTimes(t *testing.T) {
	svc, _ := newService(t)

	req := submitRequest()
	req.StartTime, req.EndTime = req.EndTime, req.StartTime
	_, err := svc.Submit(context.Background(), owner, req)
	assert.ErrorIs(t, err, overtime.ErrInvalidTimeRange)
}

func TestSubmitRequiresEmployeeLink(t *testing.T) {
	svc, _ := newService(t)

	actor := user.Actor{UserID: "u-9", Role: user.RoleEmployee}
	_, err := svc.Submit(context.Background(), actor, submitRequest())
	assert.ErrorIs(t, err, user.ErrNotLinkedToEmployee)
}

func TestDecide(t *testing.T) {
	t.Run("approve", func(t *testing.T) {
		svc, _ := newService(t)
		submitted, err := svc.Submit(context.Background(), owner, submitRequest())
		require.NoError(t, err)

		resp, err := svc.Decide(context.Background(), manager, submitted.ID, overtime.DecideRequest{Outcome: "approve"})
		require.NoError(t, err)
		assert.Equal(t, "approved", resp.Status)
		require.NotNil(t, resp.DecidedBy)
		assert.Equal(t, manager.UserID, *resp.DecidedBy)
	})

	t.Run("reject without reason is allowed", func(t *testing.T) {
		svc, _ := newService(t)
		submitted, err := svc.Submit(context.Background(), owner, submitRequest())
		require.NoError(t, err)

		resp, err := svc.Decide(context.Background(), manager, submitted.ID, overtime.DecideRequest{Outcome: "reject"})
		require.NoError(t, err)
		assert.Equal(t, "rejected", resp.Status)
	})

	t.Run("invalid outcome", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.Decide(context.Background(), manager, "any", overtime.DecideRequest{Outcome: "defer"})
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})

	t.Run("employee cannot decide", func(t *testing.T) {
		svc, _ := newService(t)
		submitted, err := svc.Submit(context.Background(), owner, submitRequest())
		require.NoError(t, err)

		_, err = svc.Decide(context.Background(), owner, submitted.ID, overtime.DecideRequest{Outcome: "approve"})
		assert.ErrorIs(t, err, approval.ErrUnauthorized)
	})

	t.Run("already decided", func(t *testing.T) {
		svc, _ := newService(t)
		submitted, err := svc.Submit(context.Background(), owner, submitRequest())
		require.NoError(t, err)

		_, err = svc.Decide(context.Background(), manager, submitted.ID, overtime.DecideRequest{Outcome: "approve"})
		require.NoError(t, err)
		_, err = svc.Decide(context.Background(), manager, submitted.ID, overtime.DecideRequest{Outcome: "reject"})
		assert.ErrorIs(t, err, overtime.ErrNotPending)
	})

	t.Run("not found", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.Decide(context.Background(), manager, "nope", overtime.DecideRequest{Outcome: "approve"})
		assert.ErrorIs(t, err, overtime.ErrRequestNotFound)
	})
}

func TestCancel(t *testing.T) {
	t.Run("owner", func(t *testing.T) {
		svc, _ := newService(t)
		submitted, err := svc.Submit(context.Background(), owner, submitRequest())
		require.NoError(t, err)

		resp, err := svc.Cancel(context.Background(), owner, submitted.ID)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		svc, _ := newService(t)
		submitted, err := svc.Submit(context.Background(), owner, submitRequest())
		require.NoError(t, err)

		_, err = svc.Cancel(context.Background(), manager, submitted.ID)
		assert.ErrorIs(t, err, approval.ErrUnauthorized)
	})

	t.Run("decided request stays put", func(t *testing.T) {
		svc, _ := newService(t)
		submitted, err := svc.Submit(context.Background(), owner, submitRequest())
		require.NoError(t, err)
		_, err = svc.Decide(context.Background(), manager, submitted.ID, overtime.DecideRequest{Outcome: "approve"})
		require.NoError(t, err)

		_, err = svc.Cancel(context.Background(), owner, submitted.ID)
		assert.ErrorIs(t, err, overtime.ErrNotPending)
	})
}

func TestListScopesEmployeesToSelf(t *testing.T) {
	svc, repo := newService(t)
	_, err := svc.Submit(context.Background(), owner, submitRequest())
	require.NoError(t, err)

	other := overtime.Request{ID: "req-other", EmployeeID: "emp-9", Status: overtime.StatusPending}
	repo.requests[other.ID] = &other

	otherID := "emp-9"
	responses, err := svc.List(context.Background(), owner, overtime.ListFilter{EmployeeID: &otherID})
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "emp-1", responses[0].EmployeeID)
}

func TestListPendingForApprover(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Submit(context.Background(), owner, submitRequest())
	require.NoError(t, err)

	pending, err := svc.ListPendingForApprover(context.Background(), manager)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	_, err = svc.ListPendingForApprover(context.Background(), owner)
	assert.ErrorIs(t, err, user.ErrApproverAccessRequired)
}

func TestGetByIDAccess(t *testing.T) {
	svc, _ := newService(t)
	submitted, err := svc.Submit(context.Background(), owner, submitRequest())
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), owner, submitted.ID)
	assert.NoError(t, err)

	other := user.Actor{UserID: "u-9", EmployeeID: "emp-9", Role: user.RoleEmployee}
	_, err = svc.GetByID(context.Background(), other, submitted.ID)
	assert.ErrorIs(t, err, approval.ErrUnauthorized)
}
