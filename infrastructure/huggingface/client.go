// Package huggingface classifies text through the hosted inference API.
package huggingface

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sentify/domain"
	"sentify/errors"

	"github.com/goccy/go-json"
	"github.com/samber/lo"
)

const (
	DefaultBaseURL = "https://api-inference.huggingface.co"
	DefaultModel   = "nlptown/bert-base-multilingual-uncased-sentiment"
)

type Client struct {
	baseURL    string
	model      string
	token      string
	httpClient *http.Client
}

type inferenceRequest struct {
	Inputs  string         `json:"inputs"`
	Options requestOptions `json:"options"`
}

type requestOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type labelScore struct {
	Label string   `json:"label"`
	Score *float64 `json:"score"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewClient(baseURL, model, token string, timeout time.Duration) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		baseURL:    baseURL,
		model:      model,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Classify(ctx context.Context, text string) ([]domain.Observation, error) {
	body, err := json.Marshal(inferenceRequest{Inputs: text, Options: requestOptions{WaitForModel: true}})
	if err != nil {
		return nil, fmt.Errorf("huggingface: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/models/"+c.model, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("huggingface: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: huggingface: %v", errors.ErrClassifierUnavailable, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("huggingface: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr errorResponse
		_ = json.Unmarshal(payload, &apiErr)
		return nil, fmt.Errorf("%w: huggingface: status %d %s", errors.ErrClassifierUnavailable, resp.StatusCode, apiErr.Error)
	}
	return decode(payload)
}

// decode accepts both [[{label, score}]] and [{label, score}].
func decode(payload []byte) ([]domain.Observation, error) {
	var nested [][]labelScore
	if err := json.Unmarshal(payload, &nested); err == nil && len(nested) > 0 {
		return toObservations(nested[0])
	}
	var flat []labelScore
	if err := json.Unmarshal(payload, &flat); err != nil {
		return nil, fmt.Errorf("%w: huggingface: %v", errors.ErrMalformedObservation, err)
	}
	return toObservations(flat)
}

func toObservations(scores []labelScore) ([]domain.Observation, error) {
	if lo.ContainsBy(scores, func(s labelScore) bool { return s.Score == nil }) {
		return nil, fmt.Errorf("%w: huggingface: missing score", errors.ErrMalformedObservation)
	}
	return lo.Map(scores, func(s labelScore, _ int) domain.Observation {
		return domain.Observation{Label: s.Label, Probability: *s.Score}
	}), nil
}
