package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/haergo/workforce-backend-go/internal/domain/leave"
	"github.com/haergo/workforce-backend-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepository{db: db}
}

const leaveRequestColumns = `
	r.id, r.employee_id, r.leave_type, r.start_date, r.end_date, r.day_count,
	r.reason, r.attachment_url, r.status, r.decided_by, r.decided_at, r.reject_reason,
	r.created_at, e.full_name`

func scanLeaveRequest(row pgx.Row) (leave.Request, error) {
	var req leave.Request
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.LeaveType, &req.StartDate, &req.EndDate, &req.DayCount,
		&req.Reason, &req.AttachmentURL, &req.Status, &req.DecidedBy, &req.DecidedAt, &req.RejectReason,
		&req.CreatedAt, &req.EmployeeName,
	)
	return req, err
}

func (r *leaveRequestRepository) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type, start_date, end_date, day_count,
			reason, attachment_url, status, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
	`

	_, err := q.Exec(ctx, query,
		req.ID, req.EmployeeID, req.LeaveType, req.StartDate, req.EndDate, req.DayCount,
		req.Reason, req.AttachmentURL, req.Status, req.CreatedAt,
	)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return req, nil
}

func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (*leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM leave_requests r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.id = $1
	`, leaveRequestColumns)

	req, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get leave request: %w", err)
	}

	return &req, nil
}

func (r *leaveRequestRepository) List(ctx context.Context, filter leave.ListFilter) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	var args []any

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("r.employee_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("r.status = $%d", len(args)))
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM leave_requests r
		JOIN employees e ON e.id = r.employee_id
		WHERE %s
		ORDER BY r.created_at DESC
		LIMIT $%d OFFSET $%d
	`, leaveRequestColumns, strings.Join(conditions, " AND "), len(args)-1, len(args))

	return r.queryMany(ctx, q, query, args...)
}

func (r *leaveRequestRepository) ListPendingByTypes(ctx context.Context, typeCodes []string) ([]leave.Request, error) {
	if len(typeCodes) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM leave_requests r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.status = 'pending' AND r.leave_type = ANY($1)
		ORDER BY r.created_at ASC
	`, leaveRequestColumns)

	return r.queryMany(ctx, q, query, typeCodes)
}

func (r *leaveRequestRepository) HasActiveOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $3
			  AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check overlapping leave: %w", err)
	}

	return exists, nil
}

func (r *leaveRequestRepository) TransitionFromPending(ctx context.Context, id string, to leave.RequestStatus, decidedBy *string, decidedAt time.Time, rejectReason *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	// The status predicate makes concurrent decisions race safely: only
	// one update sees a pending row.
	query := `
		UPDATE leave_requests
		SET status = $2, decided_by = $3, decided_at = $4, reject_reason = $5
		WHERE id = $1 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, id, to, decidedBy, decidedAt, rejectReason)
	if err != nil {
		return false, fmt.Errorf("failed to transition leave request: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *leaveRequestRepository) ListApprovedCovering(ctx context.Context, date time.Time) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM leave_requests r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.status = 'approved' AND r.start_date <= $1 AND r.end_date >= $1
	`, leaveRequestColumns)

	return r.queryMany(ctx, q, query, date)
}

func (r *leaveRequestRepository) HasApprovedCovering(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1
			  AND status = 'approved'
			  AND start_date <= $2
			  AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check approved leave: %w", err)
	}

	return exists, nil
}

func (r *leaveRequestRepository) queryMany(ctx context.Context, q database.Querier, query string, args ...any) ([]leave.Request, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
