package handler

import (
	"encoding/json"
	"net/http"

	"health-booking-api/internal/delivery/dto"
	"health-booking-api/internal/usecase"
	"health-booking-api/pkg/response"
	"health-booking-api/pkg/validator"
)

type UserHandler struct {
	confirmationUsecase usecase.UserConfirmationUsecase
	validator           *validator.CustomValidator
}

func NewUserHandler(confirmationUsecase usecase.UserConfirmationUsecase, validator *validator.CustomValidator) *UserHandler {
	return &UserHandler{
		confirmationUsecase: confirmationUsecase,
		validator:           validator,
	}
}

// PostConfirmation receives the identity-provider lifecycle hook fired
// when a user completes confirmation.
func (h *UserHandler) PostConfirmation(w http.ResponseWriter, r *http.Request) {
	var req dto.PostConfirmationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.BadRequest(w, h.validator.FormatValidationError(err))
		return
	}

	user, err := h.confirmationUsecase.Confirm(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "unable to persist user")
		return
	}

	response.JSON(w, http.StatusCreated, user)
}
