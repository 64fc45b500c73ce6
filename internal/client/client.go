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

	"github.com/zhouzirui/restaurant-stars/backend/internal/model/catalog"
	"github.com/zhouzirui/restaurant-stars/backend/internal/model/starred"
)

// ErrNotFound is returned when the API answers 404.
var ErrNotFound = errors.New("not found")

// APIError carries a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps 404 responses onto ErrNotFound.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// Client talks to the starred restaurants API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the server at baseURL, e.g. http://localhost:8080.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host required", baseURL)
	}

	c := &Client{
		baseURL: u.String(),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListStarred fetches the joined starred list.
func (c *Client) ListStarred(ctx context.Context) ([]starred.View, error) {
	var views []starred.View
	err := c.do(ctx, http.MethodGet, "/api/starred", nil, &views)
	return views, err
}

// GetStarred fetches one starred entry.
func (c *Client) GetStarred(ctx context.Context, entryID string) (starred.View, error) {
	var view starred.View
	err := c.do(ctx, http.MethodGet, "/api/starred/"+url.PathEscape(entryID), nil, &view)
	return view, err
}

// Star adds a restaurant to the starred list.
func (c *Client) Star(ctx context.Context, restaurantID string) (starred.View, error) {
	var view starred.View
	err := c.do(ctx, http.MethodPost, "/api/starred", map[string]string{"id": restaurantID}, &view)
	return view, err
}

// Unstar deletes a starred entry.
func (c *Client) Unstar(ctx context.Context, entryID string) error {
	return c.do(ctx, http.MethodDelete, "/api/starred/"+url.PathEscape(entryID), nil, nil)
}

// UpdateComment sets or clears (nil) the comment of an entry.
func (c *Client) UpdateComment(ctx context.Context, entryID string, comment *string) error {
	body := map[string]*string{"newComment": comment}
	return c.do(ctx, http.MethodPut, "/api/starred/"+url.PathEscape(entryID), body, nil)
}

// ListRestaurants fetches the catalog.
func (c *Client) ListRestaurants(ctx context.Context) ([]catalog.Restaurant, error) {
	var items []catalog.Restaurant
	err := c.do(ctx, http.MethodGet, "/api/restaurants", nil, &items)
	return items, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
