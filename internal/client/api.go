package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/i474232898/mood-tracker/internal/mood"
	"github.com/i474232898/mood-tracker/internal/weather"
)

// APIError is a non-2xx answer from the Mood API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("mood api: status %d", e.Status)
	}
	return fmt.Sprintf("mood api: status %d: %s", e.Status, e.Message)
}

// API is the Mood API as seen by the controller.
type API interface {
	Weather(ctx context.Context, place string) (weather.Snapshot, error)
	ListEntries(ctx context.Context) ([]mood.Entry, error)
	CreateEntry(ctx context.Context, sub Submission) (mood.Entry, error)
}

// HTTPClient talks JSON to a running Mood API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient creates a client for baseURL, e.g. http://localhost:3000.
// A nil httpClient gets a 10s timeout client.
func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (c *HTTPClient) Weather(ctx context.Context, place string) (weather.Snapshot, error) {
	var snap weather.Snapshot
	err := c.do(ctx, http.MethodGet, "/api/weather/"+url.PathEscape(place), nil, &snap)
	return snap, err
}

func (c *HTTPClient) ListEntries(ctx context.Context) ([]mood.Entry, error) {
	var entries []mood.Entry
	if err := c.do(ctx, http.MethodGet, "/api/moods", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *HTTPClient) CreateEntry(ctx context.Context, sub Submission) (mood.Entry, error) {
	var entry mood.Entry
	err := c.do(ctx, http.MethodPost, "/api/moods", sub, &entry)
	return entry, err
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&payload)
		return &APIError{Status: resp.StatusCode, Message: payload.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// IsAPIError reports whether err came back from the API rather than the network.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
