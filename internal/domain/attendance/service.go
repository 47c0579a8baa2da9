package attendance

import (
	"context"
	"time"

	"github.com/haergo/workforce-backend-go/internal/domain/user"
)

type AttendanceService interface {
	Clock(ctx context.Context, actor user.Actor, req ClockRequest) (AttendanceResponse, error)
	GetToday(ctx context.Context, actor user.Actor) (*AttendanceResponse, error)
	GetHistory(ctx context.Context, actor user.Actor, filter HistoryFilter) ([]AttendanceResponse, error)
	GetTeam(ctx context.Context, actor user.Actor, date string) ([]AttendanceResponse, error)
	GetStats(ctx context.Context, actor user.Actor, filter StatsFilter) (StatsResponse, error)
	// MarkAbsentees writes absent records for active employees with no
	// attendance on the given date. Weekend dates are a no-op.
	MarkAbsentees(ctx context.Context, date time.Time) (int, error)
}
