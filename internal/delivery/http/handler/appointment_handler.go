package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"health-booking-api/internal/delivery/dto"
	"health-booking-api/internal/delivery/http/middleware"
	"health-booking-api/internal/usecase"
	"health-booking-api/pkg/response"
	"health-booking-api/pkg/validator"

	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.BadRequest(w, h.validator.FormatValidationError(err))
		return
	}

	result, err := h.appointmentUsecase.Create(r.Context(), patientID, &req)
	if err != nil {
		h.writeError(w, err, "unable to create appointment")
		return
	}

	response.JSON(w, http.StatusCreated, result)
}

func (h *AppointmentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.doctorTransition(w, r, h.appointmentUsecase.Confirm, "unable to confirm appointment")
}

func (h *AppointmentHandler) Decline(w http.ResponseWriter, r *http.Request) {
	h.doctorTransition(w, r, h.appointmentUsecase.Decline, "unable to decline appointment")
}

func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	appointmentID := mux.Vars(r)["appointmentId"]
	if appointmentID == "" {
		response.BadRequest(w, "appointmentId required")
		return
	}

	result, err := h.appointmentUsecase.Cancel(r.Context(), patientID, appointmentID)
	if err != nil {
		h.writeError(w, err, "unable to cancel appointment")
		return
	}

	response.JSON(w, http.StatusOK, result)
}

func (h *AppointmentHandler) ListForDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	items, err := h.appointmentUsecase.ListForDoctor(r.Context(), doctorID, r.URL.Query().Get("since"))
	if err != nil {
		response.InternalServerError(w, "unable to load appointments")
		return
	}

	response.Items(w, items)
}

func (h *AppointmentHandler) ListForPatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	items, err := h.appointmentUsecase.ListForPatient(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "unable to load appointments")
		return
	}

	response.Items(w, items)
}

type transitionFunc func(ctx context.Context, actorID, appointmentID string) (*dto.StatusResponse, error)

func (h *AppointmentHandler) doctorTransition(w http.ResponseWriter, r *http.Request, transition transitionFunc, failureMessage string) {
	doctorID, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	appointmentID := mux.Vars(r)["appointmentId"]
	if appointmentID == "" {
		response.BadRequest(w, "appointmentId required")
		return
	}

	result, err := transition(r.Context(), doctorID, appointmentID)
	if err != nil {
		h.writeError(w, err, failureMessage)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// writeError maps usecase failures onto the error taxonomy.
func (h *AppointmentHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	var validationErr *usecase.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.BadRequest(w, validationErr.Error())
	case errors.Is(err, usecase.ErrSlotInPast):
		response.BadRequest(w, err.Error())
	case errors.Is(err, usecase.ErrSlotUnpublished):
		response.BadRequest(w, err.Error())
	case errors.Is(err, usecase.ErrDoctorNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, usecase.ErrAppointmentNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, usecase.ErrNotOwner):
		response.Forbidden(w, "forbidden")
	case errors.Is(err, usecase.ErrSlotTaken):
		response.Conflict(w, err.Error())
	case errors.Is(err, usecase.ErrInvalidState):
		response.Conflict(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
