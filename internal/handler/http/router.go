package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/haergo/workforce-backend-go/internal/handler/http/middleware"
	"github.com/haergo/workforce-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Attendance AttendanceHandler
	Face       FaceHandler
	Leave      LeaveHandler
	Overtime   OvertimeHandler
	Shift      ShiftHandler
	Settings   SettingsHandler
}

func NewRouter(jwtService jwt.Service, h Handlers, appEnv string) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workforce-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", appEnv),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Handle("/metrics", promhttp.Handler())

	limiter := middleware.NewTokenBucket(60, 60)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(limiter.Handler)
		r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
		r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

		r.Route("/attendance", func(r chi.Router) {
			r.Post("/clock", h.Attendance.Clock)
			r.Get("/today", h.Attendance.GetToday)
			r.Get("/history", h.Attendance.GetHistory)
			r.Get("/stats", h.Attendance.GetStats)
			r.Get("/settings", h.Settings.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireApprover)
				r.Get("/team", h.Attendance.GetTeam)
			})
		})

		r.Route("/face", func(r chi.Router) {
			r.Post("/register", h.Face.Register)
			r.Post("/verify", h.Face.Verify)
			r.Get("/check", h.Face.Status)
		})

		r.Route("/leave", func(r chi.Router) {
			r.Get("/types", h.Leave.ListTypes)
			r.Get("/balance", h.Leave.GetBalances)

			r.Route("/requests", func(r chi.Router) {
				r.Post("/", h.Leave.Submit)
				r.Get("/", h.Leave.List)
				r.Get("/{id}", h.Leave.Get)
				r.Delete("/{id}", h.Leave.Cancel)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireApprover)
					r.Post("/{id}/decision", h.Leave.Decide)
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireApprover)
				r.Get("/pending", h.Leave.ListPending)
			})
		})

		r.Route("/overtime", func(r chi.Router) {
			r.Route("/requests", func(r chi.Router) {
				r.Post("/", h.Overtime.Submit)
				r.Get("/", h.Overtime.List)
				r.Get("/{id}", h.Overtime.Get)
				r.Delete("/{id}", h.Overtime.Cancel)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireApprover)
					r.Post("/{id}/decision", h.Overtime.Decide)
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireApprover)
				r.Get("/pending", h.Overtime.ListPending)
			})
		})

		r.Route("/shifts", func(r chi.Router) {
			r.Get("/", h.Shift.List)
			r.Get("/assignments", h.Shift.ListAssignments)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireHR)
				r.Post("/", h.Shift.Create)
				r.Delete("/{id}", h.Shift.Delete)
				r.Post("/assignments", h.Shift.Assign)
			})
		})
	})

	return r
}
