package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/haergo/workforce-backend-go/internal/domain/shift"
	"github.com/haergo/workforce-backend-go/internal/handler/http/response"
)

type ShiftHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Assign(w http.ResponseWriter, r *http.Request)
	ListAssignments(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService shift.ShiftService
}

func NewShiftHandler(shiftService shift.ShiftService) ShiftHandler {
	return &shiftHandlerImpl{
		shiftService: shiftService,
	}
}

// Create implements ShiftHandler.
func (h *shiftHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req shift.CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.shiftService.CreateShift(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift created", result)
}

// List implements ShiftHandler.
func (h *shiftHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.shiftService.ListShifts(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete implements ShiftHandler.
func (h *shiftHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.shiftService.DeleteShift(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift deleted", nil)
}

// Assign implements ShiftHandler.
func (h *shiftHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req shift.AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.shiftService.Assign(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift assigned", result)
}

// ListAssignments implements ShiftHandler.
func (h *shiftHandlerImpl) ListAssignments(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var employeeID *string
	if v := r.URL.Query().Get("employee_id"); v != "" {
		employeeID = &v
	}

	result, err := h.shiftService.ListAssignments(r.Context(), actor, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
