package http

import (
	"encoding/json"
	"net/http"

	"github.com/haergo/workforce-backend-go/internal/domain/face"
	"github.com/haergo/workforce-backend-go/internal/domain/user"
	"github.com/haergo/workforce-backend-go/internal/handler/http/response"
)

type FaceHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Verify(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
}

type faceHandlerImpl struct {
	faceService face.FaceService
}

func NewFaceHandler(faceService face.FaceService) FaceHandler {
	return &faceHandlerImpl{
		faceService: faceService,
	}
}

// Register implements FaceHandler.
func (h *faceHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if actor.EmployeeID == "" {
		response.HandleError(w, user.ErrNotLinkedToEmployee)
		return
	}

	var req face.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.faceService.Register(r.Context(), actor.EmployeeID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Face template registered", nil)
}

// Verify implements FaceHandler.
func (h *faceHandlerImpl) Verify(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if actor.EmployeeID == "" {
		response.HandleError(w, user.ErrNotLinkedToEmployee)
		return
	}

	var req face.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.faceService.Verify(r.Context(), actor.EmployeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Status implements FaceHandler.
func (h *faceHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if actor.EmployeeID == "" {
		response.HandleError(w, user.ErrNotLinkedToEmployee)
		return
	}

	result, err := h.faceService.Status(r.Context(), actor.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
