package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"health-booking-api/internal/delivery/dto"
	"health-booking-api/internal/delivery/http/middleware"
	"health-booking-api/internal/usecase"
	"health-booking-api/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAppointmentUsecase returns canned results per method.
type stubAppointmentUsecase struct {
	createErr     error
	transitionErr error
}

func (s *stubAppointmentUsecase) Create(ctx context.Context, patientID string, req *dto.CreateAppointmentRequest) (*dto.CreateAppointmentResponse, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &dto.CreateAppointmentResponse{AppointmentID: "appt-1", Status: "PENDING"}, nil
}

func (s *stubAppointmentUsecase) Confirm(ctx context.Context, doctorID, appointmentID string) (*dto.StatusResponse, error) {
	if s.transitionErr != nil {
		return nil, s.transitionErr
	}
	return &dto.StatusResponse{Status: "CONFIRMED"}, nil
}

func (s *stubAppointmentUsecase) Decline(ctx context.Context, doctorID, appointmentID string) (*dto.StatusResponse, error) {
	if s.transitionErr != nil {
		return nil, s.transitionErr
	}
	return &dto.StatusResponse{Status: "DECLINED"}, nil
}

func (s *stubAppointmentUsecase) Cancel(ctx context.Context, patientID, appointmentID string) (*dto.StatusResponse, error) {
	if s.transitionErr != nil {
		return nil, s.transitionErr
	}
	return &dto.StatusResponse{Status: "CANCELLED"}, nil
}

func (s *stubAppointmentUsecase) ListForDoctor(ctx context.Context, doctorID, since string) ([]dto.AppointmentResponse, error) {
	return []dto.AppointmentResponse{}, nil
}

func (s *stubAppointmentUsecase) ListForPatient(ctx context.Context, patientID string) ([]dto.AppointmentResponse, error) {
	return []dto.AppointmentResponse{}, nil
}

func withPrincipal(r *http.Request, principal string) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.PrincipalKey, principal)
	return r.WithContext(ctx)
}

func createRequestBody() string {
	return `{"doctorId":"dr@example.com","slotISO":"2030-01-07T09:00:00Z","vitals":{"heightCm":175,"weightKg":70,"temperatureC":36.8}}`
}

func TestCreateReturns201(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentUsecase{}, validator.NewValidator())

	r := withPrincipal(httptest.NewRequest("POST", "/api/v1/appointments", strings.NewReader(createRequestBody())), "alice@example.com")
	w := httptest.NewRecorder()
	h.Create(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp dto.CreateAppointmentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "appt-1", resp.AppointmentID)
	assert.Equal(t, "PENDING", resp.Status)
}

func TestCreateWithoutPrincipalReturns401(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentUsecase{}, validator.NewValidator())

	r := httptest.NewRequest("POST", "/api/v1/appointments", strings.NewReader(createRequestBody()))
	w := httptest.NewRecorder()
	h.Create(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateRejectsMalformedBody(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentUsecase{}, validator.NewValidator())

	r := withPrincipal(httptest.NewRequest("POST", "/api/v1/appointments", strings.NewReader("{broken")), "alice@example.com")
	w := httptest.NewRecorder()
	h.Create(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateRejectsMissingRequiredFields(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentUsecase{}, validator.NewValidator())

	r := withPrincipal(httptest.NewRequest("POST", "/api/v1/appointments", strings.NewReader(`{"slotISO":"2030-01-07T09:00:00Z"}`)), "alice@example.com")
	w := httptest.NewRecorder()
	h.Create(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", usecase.NewValidationError("Missing vital: heightCm"), http.StatusBadRequest},
		{"past slot", usecase.ErrSlotInPast, http.StatusBadRequest},
		{"unpublished slot", usecase.ErrSlotUnpublished, http.StatusBadRequest},
		{"unknown doctor", usecase.ErrDoctorNotFound, http.StatusNotFound},
		{"slot taken", usecase.ErrSlotTaken, http.StatusConflict},
		{"store failure", assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewAppointmentHandler(&stubAppointmentUsecase{createErr: tc.err}, validator.NewValidator())

			r := withPrincipal(httptest.NewRequest("POST", "/api/v1/appointments", strings.NewReader(createRequestBody())), "alice@example.com")
			w := httptest.NewRecorder()
			h.Create(w, r)

			assert.Equal(t, tc.wantStatus, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestConfirmTransitionErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", usecase.ErrAppointmentNotFound, http.StatusNotFound},
		{"not owner", usecase.ErrNotOwner, http.StatusForbidden},
		{"terminal state", usecase.ErrInvalidState, http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewAppointmentHandler(&stubAppointmentUsecase{transitionErr: tc.err}, validator.NewValidator())

			r := withPrincipal(httptest.NewRequest("POST", "/api/v1/appointments/appt-1/confirm", nil), "dr@example.com")
			r = mux.SetURLVars(r, map[string]string{"appointmentId": "appt-1"})
			w := httptest.NewRecorder()
			h.Confirm(w, r)

			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestCancelReturnsCancelledStatus(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentUsecase{}, validator.NewValidator())

	r := withPrincipal(httptest.NewRequest("POST", "/api/v1/appointments/appt-1/cancel", nil), "alice@example.com")
	r = mux.SetURLVars(r, map[string]string{"appointmentId": "appt-1"})
	w := httptest.NewRecorder()
	h.Cancel(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "CANCELLED", resp.Status)
}

func TestListForPatientWrapsItems(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentUsecase{}, validator.NewValidator())

	r := withPrincipal(httptest.NewRequest("GET", "/api/v1/appointments/patient", nil), "alice@example.com")
	w := httptest.NewRecorder()
	h.ListForPatient(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "items")
}
