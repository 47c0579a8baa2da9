package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/haergo/workforce-backend-go/internal/domain/attendance"
	"github.com/haergo/workforce-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Clock(w http.ResponseWriter, r *http.Request)
	GetToday(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
	GetTeam(w http.ResponseWriter, r *http.Request)
	GetStats(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Clock implements AttendanceHandler.
func (h *attendanceHandlerImpl) Clock(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.ClockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.Clock(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock event recorded", result)
}

// GetToday implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetToday(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetHistory implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetHistory(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := attendance.HistoryFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
	}
	if v := r.URL.Query().Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := r.URL.Query().Get("end_date"); v != "" {
		filter.EndDate = &v
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		filter.Limit, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		filter.Offset, _ = strconv.Atoi(v)
	}

	result, err := h.attendanceService.GetHistory(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetTeam implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetTeam(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetTeam(r.Context(), actor, r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetStats implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := attendance.StatsFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Month:      r.URL.Query().Get("month"),
	}

	result, err := h.attendanceService.GetStats(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
