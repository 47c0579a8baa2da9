package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/haergo/workforce-backend-go/internal/domain/attendance"
)

// AttendanceJobs wires the absence sweep into the scheduler.
type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	logger            *slog.Logger
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, logger *slog.Logger) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		logger:            logger,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_employees", 1*time.Hour, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees sweeps yesterday's attendance shortly after
// midnight. The hour gate keeps the hourly tick cheap; the sweep itself
// is idempotent so a retry after a missed window is safe.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	if time.Now().Hour() != 0 {
		return nil
	}

	yesterday := time.Now().AddDate(0, 0, -1)
	marked, err := j.attendanceService.MarkAbsentees(ctx, yesterday)
	if err != nil {
		return err
	}

	if marked > 0 {
		j.logger.InfoContext(ctx, "absence sweep marked employees",
			"count", marked,
			"date", yesterday.Format("2006-01-02"),
		)
	}
	return nil
}
