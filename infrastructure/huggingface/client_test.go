package huggingface

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sentify/domain"
	"sentify/errors"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

func TestClient_Classify(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected []domain.Observation
		err      error
	}{
		{
			name:   "Nested list",
			status: http.StatusOK,
			body:   `[[{"label":"5 stars","score":0.8},{"label":"1 star","score":0.2}]]`,
			expected: []domain.Observation{
				{Label: "5 stars", Probability: 0.8},
				{Label: "1 star", Probability: 0.2},
			},
		},
		{
			name:     "Flat list",
			status:   http.StatusOK,
			body:     `[{"label":"3 stars","score":0.6}]`,
			expected: []domain.Observation{{Label: "3 stars", Probability: 0.6}},
		},
		{
			name:   "Missing score",
			status: http.StatusOK,
			body:   `[[{"label":"3 stars"}]]`,
			err:    errors.ErrMalformedObservation,
		},
		{
			name:   "Model loading",
			status: http.StatusServiceUnavailable,
			body:   `{"error":"Model is currently loading"}`,
			err:    errors.ErrClassifierUnavailable,
		},
		{
			name:   "Not JSON",
			status: http.StatusOK,
			body:   `<html></html>`,
			err:    errors.ErrMalformedObservation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				req.Equal(http.MethodPost, r.Method)
				req.Equal("/models/"+DefaultModel, r.URL.Path)
				req.Equal("Bearer secret", r.Header.Get("Authorization"))

				raw, err := io.ReadAll(r.Body)
				req.NoError(err)
				var payload inferenceRequest
				req.NoError(json.Unmarshal(raw, &payload))
				req.Equal("great stuff", payload.Inputs)

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL+"/", "", "secret", time.Second)
			observations, err := client.Classify(context.Background(), "great stuff")
			if tt.err != nil {
				req.ErrorIs(err, tt.err)
				return
			}
			req.NoError(err)
			req.Equal(tt.expected, observations)
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	req := require.New(t)
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewClient(url, "model", "", 200*time.Millisecond).Classify(context.Background(), "hi")
	req.ErrorIs(err, errors.ErrClassifierUnavailable)
}
