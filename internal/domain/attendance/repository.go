package attendance

import "context"

type AttendanceRepository interface {
	Create(ctx context.Context, att Attendance) (Attendance, error)
	Update(ctx context.Context, att Attendance) error
	GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*Attendance, error)
	ListHistory(ctx context.Context, filter HistoryFilter) ([]Attendance, error)
	ListByDate(ctx context.Context, date string) ([]Attendance, error)
	ListByMonth(ctx context.Context, employeeID, month string) ([]Attendance, error)
	// CreateIfAbsent inserts att unless a record for the same employee and
	// date already exists. Reports whether a row was written.
	CreateIfAbsent(ctx context.Context, att Attendance) (bool, error)
}
