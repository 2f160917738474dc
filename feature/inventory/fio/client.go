package fio

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
)

var (
	// ErrUnauthorized is returned when the API rejects the key.
	ErrUnauthorized = errors.New("fio: api key rejected")
	// ErrHandleFailed is returned when the group hub lists a requested
	// handle under Failures.
	ErrHandleFailed = errors.New("fio: handle rejected")
)

const groupHubPath = "/fioweb/grouphub"

// maxErrorBody caps how much of an error response is kept in the error message.
const maxErrorBody = 512

// StatusError is returned for non-2xx responses other than 401.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fio: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Client calls the FIO REST API.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// NewClient creates a client from configuration.
func NewClient(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

// GroupHub fetches the storages and warehouses of the given players.
func (c *Client) GroupHub(ctx context.Context, apiKey string, handles ...string) (*GroupHub, error) {
	body, err := json.Marshal(handles)
	if err != nil {
		return nil, fmt.Errorf("fio: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+groupHubPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("fio: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", apiKey)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fio: group hub request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	var hub GroupHub
	if err := json.NewDecoder(resp.Body).Decode(&hub); err != nil {
		return nil, fmt.Errorf("fio: decode group hub: %w", err)
	}
	return &hub, nil
}
