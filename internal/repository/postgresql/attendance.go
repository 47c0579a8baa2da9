package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/haergo/workforce-backend-go/internal/domain/attendance"
	"github.com/haergo/workforce-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date,
	a.clock_in, a.clock_in_mode, a.clock_in_latitude, a.clock_in_longitude, a.clock_in_evidence,
	a.clock_out, a.clock_out_mode, a.clock_out_latitude, a.clock_out_longitude, a.clock_out_evidence,
	a.total_hours, a.status, a.note, a.face_verified,
	a.created_at, a.updated_at, e.full_name`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date,
		&att.ClockIn, &att.ClockInMode, &att.ClockInLatitude, &att.ClockInLongitude, &att.ClockInEvidence,
		&att.ClockOut, &att.ClockOutMode, &att.ClockOutLatitude, &att.ClockOutLongitude, &att.ClockOutEvidence,
		&att.TotalHours, &att.Status, &att.Note, &att.FaceVerified,
		&att.CreatedAt, &att.UpdatedAt, &att.EmployeeName,
	)
	return att, err
}

func (r *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			id, employee_id, date,
			clock_in, clock_in_mode, clock_in_latitude, clock_in_longitude, clock_in_evidence,
			status, note, face_verified, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
	`

	_, err := q.Exec(ctx, query,
		att.ID, att.EmployeeID, att.Date,
		att.ClockIn, att.ClockInMode, att.ClockInLatitude, att.ClockInLongitude, att.ClockInEvidence,
		att.Status, att.Note, att.FaceVerified, att.CreatedAt, att.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

func (r *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances SET
			clock_in = $2, clock_in_mode = $3, clock_in_latitude = $4, clock_in_longitude = $5, clock_in_evidence = $6,
			clock_out = $7, clock_out_mode = $8, clock_out_latitude = $9, clock_out_longitude = $10, clock_out_evidence = $11,
			total_hours = $12, status = $13, note = $14, face_verified = $15,
			updated_at = $16
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		att.ID,
		att.ClockIn, att.ClockInMode, att.ClockInLatitude, att.ClockInLongitude, att.ClockInEvidence,
		att.ClockOut, att.ClockOutMode, att.ClockOutLatitude, att.ClockOutLongitude, att.ClockOutEvidence,
		att.TotalHours, att.Status, att.Note, att.FaceVerified,
		att.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1 AND a.date = $2
	`, attendanceColumns)

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}

	return &att, nil
}

func (r *attendanceRepository) ListHistory(ctx context.Context, filter attendance.HistoryFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"a.employee_id = $1"}
	args := []any{filter.EmployeeID}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", len(args)))
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.date DESC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, strings.Join(conditions, " AND "), len(args)-1, len(args))

	return r.queryMany(ctx, q, query, args...)
}

func (r *attendanceRepository) ListByDate(ctx context.Context, date string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.date = $1
		ORDER BY e.full_name ASC
	`, attendanceColumns)

	return r.queryMany(ctx, q, query, date)
}

func (r *attendanceRepository) ListByMonth(ctx context.Context, employeeID, month string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1 AND to_char(a.date, 'YYYY-MM') = $2
		ORDER BY a.date ASC
	`, attendanceColumns)

	return r.queryMany(ctx, q, query, employeeID, month)
}

func (r *attendanceRepository) CreateIfAbsent(ctx context.Context, att attendance.Attendance) (bool, error) {
	q := GetQuerier(ctx, r.db)

	// Relies on the unique index over (employee_id, date).
	query := `
		INSERT INTO attendances (id, employee_id, date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id, date) DO NOTHING
	`

	tag, err := q.Exec(ctx, query, att.ID, att.EmployeeID, att.Date, att.Status, att.CreatedAt, att.UpdatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to insert attendance: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *attendanceRepository) queryMany(ctx context.Context, q database.Querier, query string, args ...any) ([]attendance.Attendance, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	return records, rows.Err()
}
