package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/haergo/workforce-backend-go/internal/domain/shift"
	"github.com/haergo/workforce-backend-go/internal/pkg/database"
)

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

func (r *shiftRepository) CreateShift(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (id, name, start_time, end_time, color, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if _, err := q.Exec(ctx, query, s.ID, s.Name, s.StartTime, s.EndTime, s.Color, s.CreatedAt); err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return s, nil
}

func (r *shiftRepository) GetShiftByID(ctx context.Context, id string) (*shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, start_time, end_time, color, created_at
		FROM shifts
		WHERE id = $1
	`

	var s shift.Shift
	err := q.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.StartTime, &s.EndTime, &s.Color, &s.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shift: %w", err)
	}

	return &s, nil
}

func (r *shiftRepository) ListShifts(ctx context.Context) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, start_time, end_time, color, created_at
		FROM shifts
		ORDER BY start_time ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		var s shift.Shift
		if err := rows.Scan(&s.ID, &s.Name, &s.StartTime, &s.EndTime, &s.Color, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}

func (r *shiftRepository) DeleteShift(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

func (r *shiftRepository) CreateAssignment(ctx context.Context, a shift.Assignment) (shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_assignments (id, employee_id, shift_id, effective_from, effective_to, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if _, err := q.Exec(ctx, query, a.ID, a.EmployeeID, a.ShiftID, a.EffectiveFrom, a.EffectiveTo, a.CreatedAt); err != nil {
		return shift.Assignment{}, fmt.Errorf("failed to create shift assignment: %w", err)
	}

	return a, nil
}

func (r *shiftRepository) ListAssignments(ctx context.Context, employeeID *string) ([]shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.employee_id, a.shift_id, a.effective_from, a.effective_to, a.created_at,
		       s.name, e.full_name
		FROM shift_assignments a
		JOIN shifts s ON s.id = a.shift_id
		JOIN employees e ON e.id = a.employee_id
		WHERE ($1::uuid IS NULL OR a.employee_id = $1)
		ORDER BY a.effective_from DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift assignments: %w", err)
	}
	defer rows.Close()

	var assignments []shift.Assignment
	for rows.Next() {
		var a shift.Assignment
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.ShiftID, &a.EffectiveFrom, &a.EffectiveTo, &a.CreatedAt,
			&a.ShiftName, &a.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shift assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (r *shiftRepository) HasOverlappingAssignment(ctx context.Context, employeeID string, from time.Time, to *time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	// A nil end bound means open-ended on either side of the comparison.
	query := `
		SELECT EXISTS (
			SELECT 1 FROM shift_assignments
			WHERE employee_id = $1
			  AND (effective_to IS NULL OR effective_to >= $2)
			  AND ($3::date IS NULL OR effective_from <= $3)
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, from, to).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check overlapping assignments: %w", err)
	}

	return exists, nil
}

func (r *shiftRepository) CountAssignmentsByShift(ctx context.Context, shiftID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM shift_assignments WHERE shift_id = $1`, shiftID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count shift assignments: %w", err)
	}

	return count, nil
}
