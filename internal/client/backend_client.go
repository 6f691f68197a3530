package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SAP-F-2025/learning-assistant/internal/models"
	"github.com/SAP-F-2025/learning-assistant/internal/utils"
)

// BackendClient talks to the learning-assistant backend that owns documents,
// preferences and quiz generation.
type BackendClient interface {
	GenerateQuiz(ctx context.Context, req models.GenerateQuizRequest) (*models.GenerateQuizResponse, error)
	HealthCheck(ctx context.Context) (*models.HealthStatus, error)
	ListDocuments(ctx context.Context) ([]models.Document, error)
	SetLearningStyle(ctx context.Context, style models.LearningStyle) (*models.SetLearningStyleResponse, error)
	UserPreferences(ctx context.Context) (*models.UserPreferences, error)
}

// StatusError is returned when the backend answers with a non-2xx status and
// no usable JSON body.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// ErrNoPreferences is returned when the backend has no stored preferences for the user.
var ErrNoPreferences = errors.New("no user preferences")

type cookieKey struct{}

// WithCookie attaches the browser's Cookie header so the backend sees the
// same login session as the browser.
func WithCookie(ctx context.Context, cookie string) context.Context {
	if cookie == "" {
		return ctx
	}
	return context.WithValue(ctx, cookieKey{}, cookie)
}

func cookieFromContext(ctx context.Context) string {
	cookie, _ := ctx.Value(cookieKey{}).(string)
	return cookie
}

type backendClient struct {
	baseURL    string
	httpClient *http.Client
	logger     utils.Logger
}

var _ BackendClient = (*backendClient)(nil)

func NewBackendClient(baseURL string, timeout time.Duration, logger utils.Logger) BackendClient {
	return &backendClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// GenerateQuiz posts to /api/generate_quiz. The backend reports failures as
// {"error": "..."} with a non-2xx status; those come back as a response with
// Success=false rather than an error.
func (c *backendClient) GenerateQuiz(ctx context.Context, req models.GenerateQuizRequest) (*models.GenerateQuizResponse, error) {
	var resp models.GenerateQuizResponse
	status, err := c.doJSON(ctx, http.MethodPost, "/api/generate_quiz", req, &resp)
	if err != nil {
		return nil, err
	}
	if status >= 300 {
		resp.Success = false
	}

	c.logger.DebugContext(ctx, "Quiz generation response",
		"status_code", status,
		"success", resp.Success,
		"questions", len(resp.Questions))

	return &resp, nil
}

func (c *backendClient) HealthCheck(ctx context.Context) (*models.HealthStatus, error) {
	var health models.HealthStatus
	status, err := c.doJSON(ctx, http.MethodGet, "/api/healthcheck", nil, &health)
	if err != nil {
		return nil, err
	}
	if status >= 300 {
		return nil, &StatusError{StatusCode: status, Message: "health check failed"}
	}
	return &health, nil
}

func (c *backendClient) ListDocuments(ctx context.Context) ([]models.Document, error) {
	var resp models.DocumentsResponse
	status, err := c.doJSON(ctx, http.MethodGet, "/api/documents", nil, &resp)
	if err != nil {
		return nil, err
	}
	if status >= 300 {
		return nil, &StatusError{StatusCode: status, Message: resp.Error}
	}
	return resp.Documents, nil
}

func (c *backendClient) SetLearningStyle(ctx context.Context, style models.LearningStyle) (*models.SetLearningStyleResponse, error) {
	var resp models.SetLearningStyleResponse
	status, err := c.doJSON(ctx, http.MethodPost, "/api/learning-style", models.SetLearningStyleRequest{Style: style}, &resp)
	if err != nil {
		return nil, err
	}
	if status >= 300 {
		return nil, &StatusError{StatusCode: status, Message: resp.Error}
	}
	return &resp, nil
}

// UserPreferences returns ErrNoPreferences when the user is anonymous or never
// completed onboarding.
func (c *backendClient) UserPreferences(ctx context.Context) (*models.UserPreferences, error) {
	var resp models.UserPreferencesResponse
	status, err := c.doJSON(ctx, http.MethodGet, "/api/user-preferences", nil, &resp)
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusNotFound:
		return nil, ErrNoPreferences
	case status >= 300:
		return nil, &StatusError{StatusCode: status, Message: resp.Error}
	case resp.Preferences == nil:
		return nil, ErrNoPreferences
	}
	return resp.Preferences, nil
}

// doJSON sends body (if any) as JSON and decodes the response into out. It
// returns the status code; only transport and decoding problems are errors.
func (c *backendClient) doJSON(ctx context.Context, method, path string, body, out interface{}) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie := cookieFromContext(ctx); cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "Backend request failed", "method", method, "path", path, "error", err)
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "Backend request",
		"method", method,
		"path", path,
		"status_code", resp.StatusCode,
		"duration", time.Since(start).String())

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		if resp.StatusCode >= 300 {
			return resp.StatusCode, &StatusError{StatusCode: resp.StatusCode}
		}
		return resp.StatusCode, fmt.Errorf("failed to decode %s response: %w", path, err)
	}

	return resp.StatusCode, nil
}
