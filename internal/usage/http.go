package usage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HTTPRecorder forwards events to a remote calculator-usage endpoint as
// {calculatorType, inputData, resultData}.
type HTTPRecorder struct {
	endpoint string
	client   *http.Client
}

// NewHTTPRecorder creates a recorder posting to endpoint. A nil client uses
// http.DefaultClient.
func NewHTTPRecorder(endpoint string, client *http.Client) *HTTPRecorder {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPRecorder{endpoint: endpoint, client: client}
}

type remoteEvent struct {
	CalculatorType string          `json:"calculatorType"`
	InputData      json.RawMessage `json:"inputData,omitempty"`
	ResultData     json.RawMessage `json:"resultData,omitempty"`
}

// Record implements Recorder.
func (h *HTTPRecorder) Record(ctx context.Context, event Event) error {
	if err := event.Normalize(); err != nil {
		return err
	}

	body, err := json.Marshal(remoteEvent{
		CalculatorType: event.CalculatorType,
		InputData:      event.InputData,
		ResultData:     event.ResultData,
	})
	if err != nil {
		return fmt.Errorf("encode usage event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build usage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("post usage event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		preview, _ := io.ReadAll(io.LimitReader(resp.Body, 120))
		return fmt.Errorf("usage endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(preview)))
	}
	return nil
}
