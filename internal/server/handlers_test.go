// internal/server/handlers_test.go
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"linkedin-autoposter/internal/common/config"
	stderrors "linkedin-autoposter/internal/common/errors"
	"linkedin-autoposter/internal/common/logger"
	"linkedin-autoposter/internal/workflow"
)

type fakeRunner struct {
	result  *workflow.Result
	calls   int
	trigger string
}

func (f *fakeRunner) Run(ctx context.Context, trigger string) *workflow.Result {
	f.calls++
	f.trigger = trigger
	return f.result
}

func successResult() *workflow.Result {
	return &workflow.Result{
		Success:     true,
		PostText:    "Post body",
		ImagePrompt: "prompt",
		ImageURL:    "https://placehold.co/1200x630/4A90E2/FFFFFF/png?text=prompt",
		PostID:      "urn:li:share:456",
		Timestamp:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func fullConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, CronSecret: "topsecret"},
		Gemini: config.GeminiConfig{APIKey: "k"},
		LinkedIn: config.LinkedInConfig{
			AccessToken: "tok",
			PersonURN:   "urn:li:person:abc",
		},
	}
}

func serve(cfg *config.Config, runner WorkflowRunner, req *http.Request) *httptest.ResponseRecorder {
	r := NewRouter(cfg, runner, logger.NewNoOpLogger())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCron_Unauthorized(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong secret", header: "Bearer wrong"},
		{name: "no bearer prefix", header: "topsecret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{result: successResult()}
			req := httptest.NewRequest("GET", "/api/cron", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := serve(fullConfig(), runner, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
			// The secret check must short-circuit before any work happens.
			assert.Equal(t, 0, runner.calls)
		})
	}
}

func TestCron_NoSecretConfigured(t *testing.T) {
	cfg := fullConfig()
	cfg.Server.CronSecret = ""
	runner := &fakeRunner{result: successResult()}

	req := httptest.NewRequest("GET", "/api/cron", nil)
	w := serve(cfg, runner, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, runner.calls)
}

func TestCron_MissingCredentials(t *testing.T) {
	cfg := fullConfig()
	cfg.LinkedIn.AccessToken = ""
	runner := &fakeRunner{result: successResult()}

	req := httptest.NewRequest("GET", "/api/cron", nil)
	req.Header.Set("Authorization", "Bearer topsecret")
	w := serve(cfg, runner, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// The response names every required variable, not just the absent ones.
	assert.JSONEq(t, `{
		"error": "Missing required environment variables",
		"required": ["GEMINI_API_KEY", "LINKEDIN_ACCESS_TOKEN", "LINKEDIN_PERSON_URN"]
	}`, w.Body.String())
	assert.Equal(t, 0, runner.calls)
}

func TestCron_Success(t *testing.T) {
	runner := &fakeRunner{result: successResult()}

	req := httptest.NewRequest("GET", "/api/cron", nil)
	req.Header.Set("Authorization", "Bearer topsecret")
	w := serve(fullConfig(), runner, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, workflow.TriggerCron, runner.trigger)

	var body map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &body)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Post body", body["postText"])
	assert.Equal(t, "prompt", body["imagePrompt"])
	assert.Equal(t, "urn:li:share:456", body["postId"])
	assert.Equal(t, "2026-01-02T03:04:05Z", body["timestamp"])
}

func TestCron_WorkflowFailure(t *testing.T) {
	runner := &fakeRunner{result: &workflow.Result{
		Success:   false,
		Err:       stderrors.NewGenerationError(assert.AnError),
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}}

	req := httptest.NewRequest("GET", "/api/cron", nil)
	req.Header.Set("Authorization", "Bearer topsecret")
	w := serve(fullConfig(), runner, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &body)
	assert.Equal(t, "Failed to create LinkedIn post", body["error"])
	assert.Equal(t, assert.AnError.Error(), body["details"])
	assert.Equal(t, "2026-01-02T03:04:05Z", body["timestamp"])
}

func TestManualPost_SkipsSecretCheck(t *testing.T) {
	runner := &fakeRunner{result: successResult()}

	// No Authorization header even though a secret is configured.
	req := httptest.NewRequest("POST", "/api/manual-post", nil)
	w := serve(fullConfig(), runner, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, runner.calls)
	assert.Equal(t, workflow.TriggerManual, runner.trigger)
}

func TestManualPost_MissingCredentials(t *testing.T) {
	cfg := fullConfig()
	cfg.Gemini.APIKey = ""
	runner := &fakeRunner{result: successResult()}

	req := httptest.NewRequest("POST", "/api/manual-post", nil)
	w := serve(cfg, runner, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 0, runner.calls)
}

func TestHealthz(t *testing.T) {
	req := httptest.NewRequest("GET", "/healthz", nil)
	w := serve(fullConfig(), &fakeRunner{result: successResult()}, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	req := httptest.NewRequest("GET", "/metrics", nil)
	w := serve(fullConfig(), &fakeRunner{result: successResult()}, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
