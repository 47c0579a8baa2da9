package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/haergo/workforce-backend-go/internal/domain/overtime"
	"github.com/haergo/workforce-backend-go/internal/handler/http/response"
)

type OvertimeHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
}

type overtimeHandlerImpl struct {
	overtimeService overtime.OvertimeService
}

func NewOvertimeHandler(overtimeService overtime.OvertimeService) OvertimeHandler {
	return &overtimeHandlerImpl{
		overtimeService: overtimeService,
	}
}

// Submit implements OvertimeHandler.
func (h *overtimeHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req overtime.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.overtimeService.Submit(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime request submitted", result)
}

// Decide implements OvertimeHandler.
func (h *overtimeHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req overtime.DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.overtimeService.Decide(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime request decided", result)
}

// Cancel implements OvertimeHandler.
func (h *overtimeHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.overtimeService.Cancel(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime request cancelled", result)
}

// Get implements OvertimeHandler.
func (h *overtimeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.overtimeService.GetByID(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements OvertimeHandler.
func (h *overtimeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var filter overtime.ListFilter
	if v := r.URL.Query().Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status := overtime.RequestStatus(v)
		filter.Status = &status
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		filter.Limit, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		filter.Offset, _ = strconv.Atoi(v)
	}

	result, err := h.overtimeService.List(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListPending implements OvertimeHandler.
func (h *overtimeHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.overtimeService.ListPendingForApprover(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
