package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/haergo/workforce-backend-go/internal/domain/leave"
	"github.com/haergo/workforce-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	GetBalances(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService: leaveService,
	}
}

// Submit implements LeaveHandler.
func (h *leaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.leaveService.Submit(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", result)
}

// Decide implements LeaveHandler.
func (h *leaveHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.leaveService.Decide(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request decided", result)
}

// Cancel implements LeaveHandler.
func (h *leaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.Cancel(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled", result)
}

// Get implements LeaveHandler.
func (h *leaveHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.GetByID(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements LeaveHandler.
func (h *leaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var filter leave.ListFilter
	if v := r.URL.Query().Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status := leave.RequestStatus(v)
		filter.Status = &status
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		filter.Limit, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		filter.Offset, _ = strconv.Atoi(v)
	}

	result, err := h.leaveService.List(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListPending implements LeaveHandler.
func (h *leaveHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.ListPendingForApprover(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetBalances implements LeaveHandler.
func (h *leaveHandlerImpl) GetBalances(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	year := 0
	if v := r.URL.Query().Get("year"); v != "" {
		year, _ = strconv.Atoi(v)
	}

	result, err := h.leaveService.GetBalances(r.Context(), actor, r.URL.Query().Get("employee_id"), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListTypes implements LeaveHandler.
func (h *leaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.leaveService.ListTypes(r.Context()))
}
