package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/liftcalc/internal/models"
	"github.com/claude/liftcalc/internal/session"
	"github.com/claude/liftcalc/internal/tracker"
	"github.com/google/uuid"
)

// HTTPClient implements SessionSource by calling the liftcalc REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// sessions live on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPClient creates an HTTPClient targeting the given base URL. apiKey
// is sent as X-API-Key on writes.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, params url.Values, payload any) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("httpclient: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode >= 300 {
		return nil, statusError(path, resp.StatusCode, respBody)
	}
	return respBody, nil
}

// statusError turns an API error response back into the sentinel errors
// the server mapped it from.
func statusError(path string, status int, body []byte) error {
	var e struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(body))
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		msg = e.Error
	}

	switch status {
	case http.StatusBadRequest:
		return fmt.Errorf("%w (%s)", models.ErrInvalidArgument, msg)
	case http.StatusNotFound:
		return session.ErrSessionNotFound
	}
	return fmt.Errorf("httpclient: %s returned %d: %s", path, status, msg)
}

func sessionPath(id uuid.UUID, suffix string) string {
	return "/api/v1/sessions/" + id.String() + suffix
}

func (c *HTTPClient) CreateSession(ctx context.Context, name string) (models.SessionRow, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/v1/sessions", nil, map[string]string{"name": name})
	if err != nil {
		return models.SessionRow{}, err
	}

	var row models.SessionRow
	if err := json.Unmarshal(body, &row); err != nil {
		return models.SessionRow{}, fmt.Errorf("httpclient: decode session: %w", err)
	}
	return row, nil
}

func (c *HTTPClient) ListSessions(ctx context.Context) ([]models.SessionRow, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/v1/sessions", nil, nil)
	if err != nil {
		return nil, err
	}

	var rows []models.SessionRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("httpclient: decode sessions: %w", err)
	}
	return rows, nil
}

func (c *HTTPClient) AddSet(ctx context.Context, id uuid.UUID, exercise string, reps int, weight float64) error {
	payload := map[string]any{"exercise": exercise, "reps": reps, "weight": weight}
	_, err := c.do(ctx, http.MethodPost, sessionPath(id, "/sets"), nil, payload)
	return err
}

func (c *HTTPClient) Volume(ctx context.Context, id uuid.UUID, exercise string) (float64, error) {
	params := url.Values{}
	if exercise != "" {
		params.Set("exercise", exercise)
	}

	body, err := c.do(ctx, http.MethodGet, sessionPath(id, "/volume"), params, nil)
	if err != nil {
		return 0, err
	}

	var resp struct {
		Volume float64 `json:"volume"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("httpclient: decode volume: %w", err)
	}
	return resp.Volume, nil
}

func (c *HTTPClient) Best1RM(ctx context.Context, id uuid.UUID, exercise string) (float64, error) {
	body, err := c.do(ctx, http.MethodGet, sessionPath(id, "/exercises/"+url.PathEscape(exercise)+"/1rm"), nil, nil)
	if err != nil {
		return 0, err
	}

	var resp struct {
		Best1RM float64 `json:"best_1rm"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("httpclient: decode 1rm: %w", err)
	}
	return resp.Best1RM, nil
}

func (c *HTTPClient) Exercises(ctx context.Context, id uuid.UUID) ([]string, error) {
	body, err := c.do(ctx, http.MethodGet, sessionPath(id, "/exercises"), nil, nil)
	if err != nil {
		return nil, err
	}

	var names []string
	if err := json.Unmarshal(body, &names); err != nil {
		return nil, fmt.Errorf("httpclient: decode exercises: %w", err)
	}
	return names, nil
}

func (c *HTTPClient) Reset(ctx context.Context, id uuid.UUID) error {
	_, err := c.do(ctx, http.MethodDelete, sessionPath(id, "/sets"), nil, nil)
	return err
}

func (c *HTTPClient) Summary(ctx context.Context, id uuid.UUID) ([]tracker.ExerciseSummary, error) {
	body, err := c.do(ctx, http.MethodGet, sessionPath(id, "/summary"), nil, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Exercises []tracker.ExerciseSummary `json:"exercises"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("httpclient: decode summary: %w", err)
	}
	return resp.Exercises, nil
}
