package handler

import (
	"net/http"

	"health-booking-api/internal/usecase"
	"health-booking-api/pkg/response"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase) *DoctorHandler {
	return &DoctorHandler{doctorUsecase: doctorUsecase}
}

func (h *DoctorHandler) List(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	city := params.Get("city")
	if city == "" {
		city = params.Get("location")
	}

	items, err := h.doctorUsecase.List(r.Context(), params.Get("specialty"), city)
	if err != nil {
		response.InternalServerError(w, "unable to load doctors")
		return
	}

	response.Items(w, items)
}
