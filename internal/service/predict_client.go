package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrModelNotConfigured is returned when no upstream model URL is set.
var ErrModelNotConfigured = errors.New("prediction model URL is not configured")

// PredictClient proxies prediction requests to an external model
// endpoint. The upstream call carries a short timeout so a stalled model
// never pins a request handler.
type PredictClient struct {
	modelURL string
	client   *http.Client
	log      *logrus.Logger
}

// PredictResult carries the upstream status code and decoded payload.
type PredictResult struct {
	StatusCode int
	Payload    interface{}
}

func NewPredictClient(modelURL string, timeout time.Duration, log *logrus.Logger) *PredictClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &PredictClient{
		modelURL: modelURL,
		client:   &http.Client{Timeout: timeout},
		log:      log,
	}
}

// Forward posts the body unchanged to the model endpoint and returns the
// upstream response. Payloads that fail to decode as JSON are wrapped as
// {"raw": <text>}.
func (c *PredictClient) Forward(ctx context.Context, body []byte) (*PredictResult, error) {
	if c.modelURL == "" {
		return nil, ErrModelNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.modelURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &PredictResult{
		StatusCode: resp.StatusCode,
		Payload:    decodePayload(raw),
	}, nil
}

func decodePayload(raw []byte) interface{} {
	var parsed interface{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return map[string]interface{}{"raw": string(raw)}
	}
	return parsed
}
