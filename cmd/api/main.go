package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/haergo/workforce-backend-go/internal/config"
	"github.com/haergo/workforce-backend-go/internal/fixtures"
	appHTTP "github.com/haergo/workforce-backend-go/internal/handler/http"
	"github.com/haergo/workforce-backend-go/internal/pkg/cron"
	"github.com/haergo/workforce-backend-go/internal/pkg/database"
	"github.com/haergo/workforce-backend-go/internal/pkg/jwt"
	"github.com/haergo/workforce-backend-go/internal/pkg/lock"
	"github.com/haergo/workforce-backend-go/internal/repository/postgresql"
	attendanceService "github.com/haergo/workforce-backend-go/internal/service/attendance"
	faceService "github.com/haergo/workforce-backend-go/internal/service/face"
	leaveService "github.com/haergo/workforce-backend-go/internal/service/leave"
	overtimeService "github.com/haergo/workforce-backend-go/internal/service/overtime"
	shiftService "github.com/haergo/workforce-backend-go/internal/service/shift"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "workforce-backend"),
	)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	faceTemplateRepo := postgresql.NewFaceTemplateRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	overtimeRepo := postgresql.NewOvertimeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	var locker lock.Locker
	if cfg.Redis.Addr != "" {
		redisLock := lock.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if !redisLock.Healthy(context.Background()) {
			log.Fatal("Redis configured but unreachable: ", cfg.Redis.Addr)
		}
		locker = redisLock
		logger.Info("using redis clock lock", "addr", cfg.Redis.Addr)
	} else {
		locker = lock.NewInMemory()
		logger.Info("using in-memory clock lock")
	}

	attendanceSvc := attendanceService.NewService(
		attendanceRepo,
		employeeRepo,
		faceTemplateRepo,
		leaveRequestRepo,
		db,
		locker,
		cfg.WorkHours,
		cfg.Offices,
		cfg.Face,
		logger,
	)
	faceSvc := faceService.NewService(faceTemplateRepo, cfg.Face.MatchThreshold, logger)
	leaveSvc := leaveService.NewService(leaveRequestRepo, leaveBalanceRepo, db, fixtures.LeaveTypes(), logger)
	overtimeSvc := overtimeService.NewService(overtimeRepo, db, logger)
	shiftSvc := shiftService.NewService(shiftRepo, employeeRepo, db, logger)

	scheduler := cron.NewScheduler(logger)
	cron.NewAttendanceJobs(attendanceSvc, logger).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(jwtService, appHTTP.Handlers{
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Face:       appHTTP.NewFaceHandler(faceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Overtime:   appHTTP.NewOvertimeHandler(overtimeSvc),
		Shift:      appHTTP.NewShiftHandler(shiftSvc),
		Settings:   appHTTP.NewSettingsHandler(cfg.WorkHours, cfg.Offices),
	}, cfg.App.Env)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("server listening", "addr", addr, "env", cfg.App.Env)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server failed: ", err)
	}
}
