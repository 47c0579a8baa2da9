package http

import (
	"net/http"

	"github.com/haergo/workforce-backend-go/internal/config"
	"github.com/haergo/workforce-backend-go/internal/handler/http/response"
)

type SettingsHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	workHours config.WorkHoursConfig
	offices   []config.OfficeLocation
}

func NewSettingsHandler(workHours config.WorkHoursConfig, offices []config.OfficeLocation) SettingsHandler {
	return &settingsHandlerImpl{
		workHours: workHours,
		offices:   offices,
	}
}

type settingsResponse struct {
	WorkHours struct {
		Start                string `json:"start"`
		End                  string `json:"end"`
		LateToleranceMinutes int    `json:"late_tolerance_minutes"`
	} `json:"work_hours"`
	Offices []config.OfficeLocation `json:"offices"`
}

// Get returns the attendance settings clients need to build the clock
// screen: office geofences and the working window.
func (h *settingsHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	var resp settingsResponse
	resp.WorkHours.Start = h.workHours.Start
	resp.WorkHours.End = h.workHours.End
	resp.WorkHours.LateToleranceMinutes = int(h.workHours.LateTolerance.Minutes())
	resp.Offices = h.offices

	response.Success(w, resp)
}
