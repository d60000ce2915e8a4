package handler

import (
	"errors"
	"net/http"

	"health-booking-api/internal/delivery/http/middleware"
	"health-booking-api/internal/usecase"
	"health-booking-api/pkg/response"

	"github.com/gorilla/mux"
)

type HealthIndexHandler struct {
	healthIndexUsecase usecase.HealthIndexUsecase
}

func NewHealthIndexHandler(healthIndexUsecase usecase.HealthIndexUsecase) *HealthIndexHandler {
	return &HealthIndexHandler{healthIndexUsecase: healthIndexUsecase}
}

// GetPatientIndex serves a patient's own health index. The path patient
// must match the authenticated principal.
func (h *HealthIndexHandler) GetPatientIndex(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	pathPatient := mux.Vars(r)["patientId"]
	if pathPatient == "" || pathPatient != patientID {
		response.Forbidden(w, "forbidden")
		return
	}

	items, err := h.healthIndexUsecase.GetPatientIndex(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "unable to load health index")
		return
	}

	response.Items(w, items)
}

// GetSummary serves a patient's records to the treating doctor.
func (h *HealthIndexHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	patientID := mux.Vars(r)["patientId"]
	appointmentID := r.URL.Query().Get("appointmentId")
	if patientID == "" || appointmentID == "" {
		response.BadRequest(w, "missing identifiers")
		return
	}

	items, err := h.healthIndexUsecase.GetSummaryForDoctor(r.Context(), doctorID, patientID, appointmentID)
	if err != nil {
		if errors.Is(err, usecase.ErrSummaryForbidden) {
			response.Forbidden(w, "forbidden")
			return
		}
		response.InternalServerError(w, "unable to load health summary")
		return
	}

	response.Items(w, items)
}
