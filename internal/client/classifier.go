// HTTP client for the external status-classifier service.
//
// Environment:
//   - CLASSIFIER_URL: classifier service URL (e.g. http://localhost:8500)
//   - CLASSIFIER_TIMEOUT: request timeout (default 10s)
//
// The service holds the pre-trained model and scaler; it expects the 14
// features in the documented order and returns an integer class 0/1/2.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/statuswatch/backend/internal/config"
)

type ClassifierClient struct {
	baseURL    string
	httpClient *http.Client
}

type PredictRequest struct {
	Features []float64 `json:"features"`
}

type PredictResponse struct {
	Prediction int `json:"prediction"`
}

func NewClassifierClient(cfg config.ClassifierConfig) *ClassifierClient {
	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil || timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ClassifierClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Predict sends the ordered feature vector to POST /predict. Failures,
// including timeout, propagate to the caller; there is no retry.
func (c *ClassifierClient) Predict(ctx context.Context, features []float64) (int, error) {
	payload, err := json.Marshal(PredictRequest{Features: features})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewBuffer(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to reach classifier: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("classifier returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read classifier response: %w", err)
	}

	var predictResp PredictResponse
	if err := json.Unmarshal(body, &predictResp); err != nil {
		return 0, fmt.Errorf("failed to parse classifier response: %w", err)
	}

	return predictResp.Prediction, nil
}
