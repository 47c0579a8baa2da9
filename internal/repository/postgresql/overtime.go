package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/haergo/workforce-backend-go/internal/domain/overtime"
	"github.com/haergo/workforce-backend-go/internal/pkg/database"
)

type overtimeRepository struct {
	db *database.DB
}

func NewOvertimeRepository(db *database.DB) overtime.OvertimeRepository {
	return &overtimeRepository{db: db}
}

const overtimeColumns = `
	r.id, r.employee_id, r.date, r.start_time, r.end_time, r.hour_count,
	r.reason, r.status, r.decided_by, r.decided_at, r.reject_reason,
	r.created_at, e.full_name`

func scanOvertimeRequest(row pgx.Row) (overtime.Request, error) {
	var req overtime.Request
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.Date, &req.StartTime, &req.EndTime, &req.HourCount,
		&req.Reason, &req.Status, &req.DecidedBy, &req.DecidedAt, &req.RejectReason,
		&req.CreatedAt, &req.EmployeeName,
	)
	return req, err
}

func (r *overtimeRepository) Create(ctx context.Context, req overtime.Request) (overtime.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO overtime_requests (
			id, employee_id, date, start_time, end_time, hour_count, reason, status, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
	`

	_, err := q.Exec(ctx, query,
		req.ID, req.EmployeeID, req.Date, req.StartTime, req.EndTime, req.HourCount,
		req.Reason, req.Status, req.CreatedAt,
	)
	if err != nil {
		return overtime.Request{}, fmt.Errorf("failed to create overtime request: %w", err)
	}

	return req, nil
}

func (r *overtimeRepository) GetByID(ctx context.Context, id string) (*overtime.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM overtime_requests r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.id = $1
	`, overtimeColumns)

	req, err := scanOvertimeRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get overtime request: %w", err)
	}

	return &req, nil
}

func (r *overtimeRepository) List(ctx context.Context, filter overtime.ListFilter) ([]overtime.Request, error) {
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
		FROM overtime_requests r
		JOIN employees e ON e.id = r.employee_id
		WHERE %s
		ORDER BY r.created_at DESC
		LIMIT $%d OFFSET $%d
	`, overtimeColumns, strings.Join(conditions, " AND "), len(args)-1, len(args))

	return r.queryMany(ctx, q, query, args...)
}

func (r *overtimeRepository) ListPending(ctx context.Context) ([]overtime.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM overtime_requests r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.status = 'pending'
		ORDER BY r.created_at ASC
	`, overtimeColumns)

	return r.queryMany(ctx, q, query)
}

func (r *overtimeRepository) TransitionFromPending(ctx context.Context, id string, to overtime.RequestStatus, decidedBy *string, decidedAt time.Time, rejectReason *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE overtime_requests
		SET status = $2, decided_by = $3, decided_at = $4, reject_reason = $5
		WHERE id = $1 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, id, to, decidedBy, decidedAt, rejectReason)
	if err != nil {
		return false, fmt.Errorf("failed to transition overtime request: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *overtimeRepository) queryMany(ctx context.Context, q database.Querier, query string, args ...any) ([]overtime.Request, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime requests: %w", err)
	}
	defer rows.Close()

	var requests []overtime.Request
	for rows.Next() {
		req, err := scanOvertimeRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan overtime request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
