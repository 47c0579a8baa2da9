package shift

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haergo/workforce-backend-go/internal/domain/employee"
	"github.com/haergo/workforce-backend-go/internal/domain/shift"
	"github.com/haergo/workforce-backend-go/internal/domain/user"
)

type fakeTxRunner struct{}

func (fakeTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeShiftRepo struct {
	shifts      map[string]*shift.Shift
	assignments map[string]*shift.Assignment
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{
		shifts:      make(map[string]*shift.Shift),
		assignments: make(map[string]*shift.Assignment),
	}
}

func (r *fakeShiftRepo) CreateShift(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	cp := s
	r.shifts[s.ID] = &cp
	return s, nil
}

func (r *fakeShiftRepo) GetShiftByID(ctx context.Context, id string) (*shift.Shift, error) {
	if s, ok := r.shifts[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeShiftRepo) ListShifts(ctx context.Context) ([]shift.Shift, error) {
	var out []shift.Shift
	for _, s := range r.shifts {
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeShiftRepo) DeleteShift(ctx context.Context, id string) error {
	delete(r.shifts, id)
	return nil
}

func (r *fakeShiftRepo) CreateAssignment(ctx context.Context, a shift.Assignment) (shift.Assignment, error) {
	cp := a
	r.assignments[a.ID] = &cp
	return a, nil
}

func (r *fakeShiftRepo) ListAssignments(ctx context.Context, employeeID *string) ([]shift.Assignment, error) {
	var out []shift.Assignment
	for _, a := range r.assignments {
		if employeeID != nil && a.EmployeeID != *employeeID {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeShiftRepo) HasOverlappingAssignment(ctx context.Context, employeeID string, from time.Time, to *time.Time) (bool, error) {
	for _, a := range r.assignments {
		if a.EmployeeID != employeeID {
			continue
		}
		if shift.Overlaps(a.EffectiveFrom, a.EffectiveTo, from, to) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeShiftRepo) CountAssignmentsByShift(ctx context.Context, shiftID string) (int, error) {
	count := 0
	for _, a := range r.assignments {
		if a.ShiftID == shiftID {
			count++
		}
	}
	return count, nil
}

type fakeEmployeeRepo struct {
	employees map[string]*employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (*employee.Employee, error) {
	if emp, ok := r.employees[id]; ok {
		cp := *emp
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range r.employees {
		out = append(out, *emp)
	}
	return out, nil
}

const employeeID = "7f3b9a2e-1c44-4e8a-9d2f-0b5e6c7d8a90"

var (
	hr     = user.Actor{UserID: "u-1", Role: user.RoleHR}
	worker = user.Actor{UserID: "u-2", EmployeeID: employeeID, Role: user.RoleEmployee}
)

func newFixture(t *testing.T) (*Service, *fakeShiftRepo) {
	t.Helper()
	shiftRepo := newFakeShiftRepo()
	empRepo := &fakeEmployeeRepo{employees: map[string]*employee.Employee{
		employeeID: {ID: employeeID, FullName: "A Worker", Status: employee.StatusActive},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(shiftRepo, empRepo, fakeTxRunner{}, logger), shiftRepo
}

func createShift(t *testing.T, svc *Service) shift.ShiftResponse {
	t.Helper()
	created, err := svc.CreateShift(context.Background(), hr, shift.CreateShiftRequest{
		Name:      "Night",
		StartTime: "22:00",
		EndTime:   "06:00",
	})
	require.NoError(t, err)
	return created
}

func assignReq(shiftID string) shift.AssignRequest {
	return shift.AssignRequest{
		EmployeeID:    employeeID,
		ShiftID:       shiftID,
		EffectiveFrom: "2025-04-01",
	}
}

func TestCreateShift(t *testing.T) {
	svc, _ := newFixture(t)

	created := createShift(t, svc)
	assert.Equal(t, "Night", created.Name)

	shifts, err := svc.ListShifts(context.Background())
	require.NoError(t, err)
	assert.Len(t, shifts, 1)
}

func TestCreateShiftRequiresHR(t *testing.T) {
	svc, _ := newFixture(t)

	_, err := svc.CreateShift(context.Background(), worker, shift.CreateShiftRequest{
		Name: "Night", StartTime: "22:00", EndTime: "06:00",
	})
	assert.ErrorIs(t, err, user.ErrHRAccessRequired)
}

func TestCreateShiftRejectsZeroLengthWindow(t *testing.T) {
	svc, _ := newFixture(t)

	_, err := svc.CreateShift(context.Background(), hr, shift.CreateShiftRequest{
		Name: "Broken", StartTime: "09:00", EndTime: "09:00",
	})
	assert.ErrorIs(t, err, shift.ErrInvalidTimeRange)
}

func TestDeleteShift(t *testing.T) {
	t.Run("unassigned shift", func(t *testing.T) {
		svc, repo := newFixture(t)
		created := createShift(t, svc)

		require.NoError(t, svc.DeleteShift(context.Background(), hr, created.ID))
		assert.Empty(t, repo.shifts)
	})

	t.Run("assigned shift is kept", func(t *testing.T) {
		svc, _ := newFixture(t)
		created := createShift(t, svc)
		_, err := svc.Assign(context.Background(), hr, assignReq(created.ID))
		require.NoError(t, err)

		err = svc.DeleteShift(context.Background(), hr, created.ID)
		assert.ErrorIs(t, err, shift.ErrShiftInUse)
	})

	t.Run("unknown shift", func(t *testing.T) {
		svc, _ := newFixture(t)
		err := svc.DeleteShift(context.Background(), hr, "missing")
		assert.ErrorIs(t, err, shift.ErrShiftNotFound)
	})
}

func TestAssign(t *testing.T) {
	t.Run("open ended", func(t *testing.T) {
		svc, _ := newFixture(t)
		created := createShift(t, svc)

		assignment, err := svc.Assign(context.Background(), hr, assignReq(created.ID))
		require.NoError(t, err)
		assert.Equal(t, "2025-04-01", assignment.EffectiveFrom)
		assert.Nil(t, assignment.EffectiveTo)
	})

	t.Run("overlap rejected", func(t *testing.T) {
		svc, _ := newFixture(t)
		created := createShift(t, svc)
		_, err := svc.Assign(context.Background(), hr, assignReq(created.ID))
		require.NoError(t, err)

		second := assignReq(created.ID)
		second.EffectiveFrom = "2025-05-01"
		_, err = svc.Assign(context.Background(), hr, second)
		assert.ErrorIs(t, err, shift.ErrOverlappingAssignment)
	})

	t.Run("bounded ranges may follow each other", func(t *testing.T) {
		svc, _ := newFixture(t)
		created := createShift(t, svc)

		first := assignReq(created.ID)
		firstEnd := "2025-04-30"
		first.EffectiveTo = &firstEnd
		_, err := svc.Assign(context.Background(), hr, first)
		require.NoError(t, err)

		second := assignReq(created.ID)
		second.EffectiveFrom = "2025-05-01"
		_, err = svc.Assign(context.Background(), hr, second)
		assert.NoError(t, err)
	})

	t.Run("effective_to before effective_from", func(t *testing.T) {
		svc, _ := newFixture(t)
		created := createShift(t, svc)

		req := assignReq(created.ID)
		to := "2025-03-01"
		req.EffectiveTo = &to
		_, err := svc.Assign(context.Background(), hr, req)
		assert.ErrorIs(t, err, shift.ErrInvalidEffectiveRange)
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc, _ := newFixture(t)
		created := createShift(t, svc)

		req := assignReq(created.ID)
		req.EmployeeID = "0e0e0e0e-0e0e-4e0e-8e0e-0e0e0e0e0e0e"
		_, err := svc.Assign(context.Background(), hr, req)
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("unknown shift", func(t *testing.T) {
		svc, _ := newFixture(t)

		_, err := svc.Assign(context.Background(), hr, assignReq("1a2b3c4d-5e6f-4a01-8b23-456789abcdef"))
		assert.ErrorIs(t, err, shift.ErrShiftNotFound)
	})
}

func TestListAssignmentsScopesEmployeesToSelf(t *testing.T) {
	svc, repo := newFixture(t)
	created := createShift(t, svc)
	_, err := svc.Assign(context.Background(), hr, assignReq(created.ID))
	require.NoError(t, err)

	other := shift.Assignment{
		ID: "a-other", EmployeeID: "emp-other", ShiftID: created.ID,
		EffectiveFrom: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	repo.assignments[other.ID] = &other

	otherID := "emp-other"
	assignments, err := svc.ListAssignments(context.Background(), worker, &otherID)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, employeeID, assignments[0].EmployeeID)

	// Approvers see everything when no employee is given.
	assignments, err = svc.ListAssignments(context.Background(), hr, nil)
	require.NoError(t, err)
	assert.Len(t, assignments, 2)
}
