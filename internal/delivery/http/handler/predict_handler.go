package handler

import (
	"errors"
	"io"
	"net/http"

	"health-booking-api/internal/service"
	"health-booking-api/pkg/response"

	"github.com/sirupsen/logrus"
)

type PredictHandler struct {
	predictClient *service.PredictClient
	log           *logrus.Logger
}

func NewPredictHandler(predictClient *service.PredictClient, log *logrus.Logger) *PredictHandler {
	return &PredictHandler{
		predictClient: predictClient,
		log:           log,
	}
}

// Predict forwards the request body to the external model endpoint and
// relays the upstream response. Upstream failures become 502 with
// best-effort detail; internal specifics are never exposed beyond that.
func (h *PredictHandler) Predict(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	result, err := h.predictClient.Forward(r.Context(), body)
	if err != nil {
		if errors.Is(err, service.ErrModelNotConfigured) {
			response.Message(w, http.StatusBadGateway, "model proxy not configured")
			return
		}
		h.log.Errorf("Model proxy failed: %+v", err)
		response.MessageWithDetail(w, http.StatusBadGateway, "model proxy failed", err.Error())
		return
	}

	if result.StatusCode >= http.StatusBadRequest {
		h.log.Warnf("Model proxy upstream error: status=%d", result.StatusCode)
		response.MessageWithDetail(w, http.StatusBadGateway, "model proxy error", result.Payload)
		return
	}

	response.JSON(w, result.StatusCode, result.Payload)
}
