package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/haergo/workforce-backend-go/internal/config"
	"github.com/haergo/workforce-backend-go/internal/domain/attendance"
	"github.com/haergo/workforce-backend-go/internal/domain/employee"
	"github.com/haergo/workforce-backend-go/internal/domain/face"
	"github.com/haergo/workforce-backend-go/internal/domain/leave"
	"github.com/haergo/workforce-backend-go/internal/domain/user"
	"github.com/haergo/workforce-backend-go/internal/pkg/database"
	"github.com/haergo/workforce-backend-go/internal/pkg/geo"
	"github.com/haergo/workforce-backend-go/internal/pkg/lock"
	"github.com/haergo/workforce-backend-go/internal/pkg/metrics"
)

const clockLockTTL = 10 * time.Second

type Service struct {
	attendanceRepository   attendance.AttendanceRepository
	employeeRepository     employee.EmployeeRepository
	faceTemplateRepository face.FaceTemplateRepository
	leaveRequestRepository leave.RequestRepository
	txRunner               database.TxRunner
	locker                 lock.Locker
	workHours              config.WorkHoursConfig
	offices                []config.OfficeLocation
	faceConfig             config.FaceConfig
	logger                 *slog.Logger
	now                    func() time.Time
}

func NewService(
	attendanceRepository attendance.AttendanceRepository,
	employeeRepository employee.EmployeeRepository,
	faceTemplateRepository face.FaceTemplateRepository,
	leaveRequestRepository leave.RequestRepository,
	txRunner database.TxRunner,
	locker lock.Locker,
	workHours config.WorkHoursConfig,
	offices []config.OfficeLocation,
	faceConfig config.FaceConfig,
	logger *slog.Logger,
) *Service {
	return &Service{
		attendanceRepository:   attendanceRepository,
		employeeRepository:     employeeRepository,
		faceTemplateRepository: faceTemplateRepository,
		leaveRequestRepository: leaveRequestRepository,
		txRunner:               txRunner,
		locker:                 locker,
		workHours:              workHours,
		offices:                offices,
		faceConfig:             faceConfig,
		logger:                 logger,
		now:                    time.Now,
	}
}

// WithClock overrides the time source. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Clock records a clock-in or clock-out for the acting employee. The
// whole operation runs under a per-employee-per-day lock so duplicate
// submissions cannot both pass the state checks.
func (s *Service) Clock(ctx context.Context, actor user.Actor, req attendance.ClockRequest) (attendance.AttendanceResponse, error) {
	if actor.EmployeeID == "" {
		return attendance.AttendanceResponse{}, user.ErrNotLinkedToEmployee
	}
	if err := req.Validate(); err != nil {
		metrics.ClockRejections.WithLabelValues("validation").Inc()
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	dateStr := now.Format("2006-01-02")

	key := fmt.Sprintf("clock:%s:%s", actor.EmployeeID, dateStr)
	token, err := s.locker.Acquire(ctx, key, clockLockTTL)
	if err != nil {
		if err == lock.ErrHeld {
			metrics.ClockRejections.WithLabelValues("busy").Inc()
			return attendance.AttendanceResponse{}, attendance.ErrClockBusy
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("acquire clock lock: %w", err)
	}
	defer func() {
		if relErr := s.locker.Release(ctx, key, token); relErr != nil {
			s.logger.WarnContext(ctx, "failed to release clock lock", "key", key, "error", relErr)
		}
	}()

	var result attendance.Attendance
	err = s.txRunner.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := s.attendanceRepository.GetByEmployeeAndDate(ctx, actor.EmployeeID, dateStr)
		if err != nil {
			return fmt.Errorf("get today's attendance: %w", err)
		}

		if err := s.validateLocation(req); err != nil {
			return err
		}

		faceVerified, err := s.verifyFace(ctx, actor.EmployeeID, req.Embedding)
		if err != nil {
			return err
		}

		switch attendance.Kind(req.Kind) {
		case attendance.KindIn:
			result, err = s.clockIn(ctx, actor.EmployeeID, existing, req, faceVerified, now)
		case attendance.KindOut:
			result, err = s.clockOut(ctx, existing, req, now)
		}
		return err
	})
	if err != nil {
		s.countRejection(err)
		return attendance.AttendanceResponse{}, err
	}

	metrics.ClockEvents.WithLabelValues(req.Kind, string(result.Status)).Inc()
	s.logger.InfoContext(ctx, "clock event recorded",
		"employee_id", actor.EmployeeID,
		"kind", req.Kind,
		"mode", req.Mode,
		"status", result.Status,
	)
	return attendance.ToResponse(result), nil
}

func (s *Service) clockIn(ctx context.Context, employeeID string, existing *attendance.Attendance, req attendance.ClockRequest, faceVerified *bool, now time.Time) (attendance.Attendance, error) {
	if existing != nil && existing.ClockIn != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
	}

	status, err := attendance.ClassifyClockIn(now, s.workHours.Start, s.workHours.LateTolerance)
	if err != nil {
		return attendance.Attendance{}, err
	}

	// Approved leave covering today takes precedence over present/late.
	onLeave, err := s.leaveRequestRepository.HasApprovedCovering(ctx, employeeID, now)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("check approved leave: %w", err)
	}
	if onLeave {
		status = attendance.StatusExcused
	}

	mode := attendance.Mode(req.Mode)
	att := attendance.Attendance{
		ID:               uuid.NewString(),
		EmployeeID:       employeeID,
		Date:             time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		ClockIn:          &now,
		ClockInMode:      &mode,
		ClockInLatitude:  req.Latitude,
		ClockInLongitude: req.Longitude,
		ClockInEvidence:  req.EvidenceRef,
		Status:           status,
		Note:             req.Note,
		FaceVerified:     faceVerified,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if existing != nil {
		// A swept record exists without a clock-in; fill it in place.
		att.ID = existing.ID
		att.CreatedAt = existing.CreatedAt
		if err := s.attendanceRepository.Update(ctx, att); err != nil {
			return attendance.Attendance{}, fmt.Errorf("update attendance: %w", err)
		}
		return att, nil
	}

	created, err := s.attendanceRepository.Create(ctx, att)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("create attendance: %w", err)
	}
	return created, nil
}

func (s *Service) clockOut(ctx context.Context, existing *attendance.Attendance, req attendance.ClockRequest, now time.Time) (attendance.Attendance, error) {
	if existing == nil || existing.ClockIn == nil {
		return attendance.Attendance{}, attendance.ErrNotClockedIn
	}
	if existing.ClockOut != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyClockedOut
	}

	mode := attendance.Mode(req.Mode)
	hours := attendance.WorkedHours(*existing.ClockIn, now)

	att := *existing
	att.ClockOut = &now
	att.ClockOutMode = &mode
	att.ClockOutLatitude = req.Latitude
	att.ClockOutLongitude = req.Longitude
	att.ClockOutEvidence = req.EvidenceRef
	att.TotalHours = &hours
	att.UpdatedAt = now
	if req.Note != nil {
		att.Note = req.Note
	}

	if err := s.attendanceRepository.Update(ctx, att); err != nil {
		return attendance.Attendance{}, fmt.Errorf("update attendance: %w", err)
	}
	return att, nil
}

// validateLocation enforces the per-mode evidence rules that depend on
// runtime configuration rather than request shape.
func (s *Service) validateLocation(req attendance.ClockRequest) error {
	switch attendance.Mode(req.Mode) {
	case attendance.ModeOffice:
		if !s.withinAnyOffice(*req.Latitude, *req.Longitude) {
			return attendance.ErrOutsideGeofence
		}
	case attendance.ModeClientVisit:
		if req.ClientAddress == nil || *req.ClientAddress == "" {
			return attendance.ErrMissingClientAddress
		}
	}
	return nil
}

func (s *Service) withinAnyOffice(lat, lon float64) bool {
	for _, office := range s.offices {
		if geo.HaversineDistance(lat, lon, office.Latitude, office.Longitude) <= office.RadiusM {
			return true
		}
	}
	return false
}

// verifyFace compares the submitted embedding with the stored template.
// In strict mode a missing template, missing embedding or mismatch blocks
// the clock event; otherwise the outcome is recorded on the attendance
// row and the event proceeds.
func (s *Service) verifyFace(ctx context.Context, employeeID string, embedding []float64) (*bool, error) {
	if len(embedding) == 0 {
		if s.faceConfig.Strict {
			return nil, face.ErrInvalidEmbedding
		}
		return nil, nil
	}
	if len(embedding) != face.EmbeddingDim {
		return nil, face.ErrInvalidEmbedding
	}

	tpl, err := s.faceTemplateRepository.GetByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("get face template: %w", err)
	}
	if tpl == nil {
		if s.faceConfig.Strict {
			return nil, face.ErrNoTemplateRegistered
		}
		return nil, nil
	}

	match := face.Distance(tpl.Embedding, embedding) <= s.faceConfig.MatchThreshold
	if !match && s.faceConfig.Strict {
		return nil, face.ErrFaceMismatch
	}
	return &match, nil
}

func (s *Service) countRejection(err error) {
	switch err {
	case attendance.ErrAlreadyClockedIn, attendance.ErrAlreadyClockedOut:
		metrics.ClockRejections.WithLabelValues("duplicate").Inc()
	case attendance.ErrNotClockedIn:
		metrics.ClockRejections.WithLabelValues("not_clocked_in").Inc()
	case attendance.ErrOutsideGeofence:
		metrics.ClockRejections.WithLabelValues("geofence").Inc()
	case attendance.ErrMissingClientAddress:
		metrics.ClockRejections.WithLabelValues("client_address").Inc()
	case face.ErrFaceMismatch, face.ErrNoTemplateRegistered, face.ErrInvalidEmbedding:
		metrics.ClockRejections.WithLabelValues("face").Inc()
	}
}

func (s *Service) GetToday(ctx context.Context, actor user.Actor) (*attendance.AttendanceResponse, error) {
	if actor.EmployeeID == "" {
		return nil, user.ErrNotLinkedToEmployee
	}

	dateStr := s.now().Format("2006-01-02")
	record, err := s.attendanceRepository.GetByEmployeeAndDate(ctx, actor.EmployeeID, dateStr)
	if err != nil {
		return nil, fmt.Errorf("get today's attendance: %w", err)
	}
	if record == nil {
		return nil, nil
	}

	resp := attendance.ToResponse(*record)
	return &resp, nil
}

// GetHistory lists attendance records. Employees only ever see their own
// history regardless of the requested filter.
func (s *Service) GetHistory(ctx context.Context, actor user.Actor, filter attendance.HistoryFilter) ([]attendance.AttendanceResponse, error) {
	if actor.Role == user.RoleEmployee || filter.EmployeeID == "" {
		if actor.EmployeeID == "" {
			return nil, user.ErrNotLinkedToEmployee
		}
		filter.EmployeeID = actor.EmployeeID
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 31
	}

	records, err := s.attendanceRepository.ListHistory(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list attendance history: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, attendance.ToResponse(record))
	}
	return responses, nil
}

// GetTeam returns every employee's record for one date. Approver roles only.
func (s *Service) GetTeam(ctx context.Context, actor user.Actor, date string) ([]attendance.AttendanceResponse, error) {
	if !actor.Role.IsApprover() {
		return nil, user.ErrApproverAccessRequired
	}
	if date == "" {
		date = s.now().Format("2006-01-02")
	}

	records, err := s.attendanceRepository.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list team attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, attendance.ToResponse(record))
	}
	return responses, nil
}

// GetStats aggregates one employee's month. The denominator counts
// weekdays up to today for the current month, the full month otherwise.
func (s *Service) GetStats(ctx context.Context, actor user.Actor, filter attendance.StatsFilter) (attendance.StatsResponse, error) {
	if actor.Role == user.RoleEmployee || filter.EmployeeID == "" {
		if actor.EmployeeID == "" {
			return attendance.StatsResponse{}, user.ErrNotLinkedToEmployee
		}
		filter.EmployeeID = actor.EmployeeID
	}

	now := s.now()
	month := filter.Month
	if month == "" {
		month = now.Format("2006-01")
	}
	parsed, err := time.Parse("2006-01", month)
	if err != nil {
		return attendance.StatsResponse{}, fmt.Errorf("parse month %q: %w", month, err)
	}

	records, err := s.attendanceRepository.ListByMonth(ctx, filter.EmployeeID, month)
	if err != nil {
		return attendance.StatsResponse{}, fmt.Errorf("list month attendance: %w", err)
	}

	stats := attendance.StatsResponse{
		Month:            month,
		ExpectedWorkdays: attendance.ExpectedWorkdays(parsed.Year(), parsed.Month(), now),
	}
	for _, record := range records {
		switch record.Status {
		case attendance.StatusPresent:
			stats.Present++
		case attendance.StatusLate:
			stats.Late++
		case attendance.StatusAbsent:
			stats.Absent++
		case attendance.StatusExcused:
			stats.Excused++
		}
	}
	if stats.ExpectedWorkdays > 0 {
		pct := float64(stats.Present+stats.Late) / float64(stats.ExpectedWorkdays) * 100
		stats.Percentage = math.Round(pct*10) / 10
	}
	return stats, nil
}

// MarkAbsentees inserts a record for every active employee without one on
// the given date. Employees covered by an approved leave request are
// marked excused, the rest absent. Safe to run repeatedly.
func (s *Service) MarkAbsentees(ctx context.Context, date time.Time) (int, error) {
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return 0, nil
	}

	marked := 0
	err := s.txRunner.RunInTx(ctx, func(ctx context.Context) error {
		actives, err := s.employeeRepository.ListActive(ctx)
		if err != nil {
			return fmt.Errorf("list active employees: %w", err)
		}

		onLeave := make(map[string]bool)
		approved, err := s.leaveRequestRepository.ListApprovedCovering(ctx, date)
		if err != nil {
			return fmt.Errorf("list approved leave: %w", err)
		}
		for _, req := range approved {
			onLeave[req.EmployeeID] = true
		}

		day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		now := s.now()
		for _, emp := range actives {
			status := attendance.StatusAbsent
			if onLeave[emp.ID] {
				status = attendance.StatusExcused
			}

			inserted, err := s.attendanceRepository.CreateIfAbsent(ctx, attendance.Attendance{
				ID:         uuid.NewString(),
				EmployeeID: emp.ID,
				Date:       day,
				Status:     status,
				CreatedAt:  now,
				UpdatedAt:  now,
			})
			if err != nil {
				return fmt.Errorf("mark %s for employee %s: %w", status, emp.ID, err)
			}
			if inserted {
				marked++
				metrics.AbsenceSweepMarked.WithLabelValues(string(status)).Inc()
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "absence sweep finished",
		"date", date.Format("2006-01-02"),
		"marked", marked,
	)
	return marked, nil
}
