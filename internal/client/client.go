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
)

// Student is a record as returned by the API.
type Student struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Age    *float64 `json:"age,omitempty"`
	Course string   `json:"course"`
	Gender string   `json:"gender"`
}

// Input is the body sent on create and update. Every field is sent as
// typed; the API treats an empty age as absent.
type Input struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Age    string `json:"age"`
	Course string `json:"course"`
	Gender string `json:"gender"`
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// Client talks to the /api/students REST surface. It does not retry.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("client: base URL is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("client: parse base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("client: base URL %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListStudents fetches every record.
func (c *Client) ListStudents(ctx context.Context) ([]Student, error) {
	var out []Student
	if err := c.do(ctx, http.MethodGet, "/api/students", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Student{}
	}
	return out, nil
}

// GetStudent fetches a single record.
func (c *Client) GetStudent(ctx context.Context, id string) (*Student, error) {
	var out Student
	if err := c.do(ctx, http.MethodGet, studentPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateStudent stores a new record.
func (c *Client) CreateStudent(ctx context.Context, in Input) (*Student, error) {
	var out Student
	if err := c.do(ctx, http.MethodPost, "/api/students", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStudent merge-updates the record with id.
func (c *Client) UpdateStudent(ctx context.Context, id string, in Input) (*Student, error) {
	var out Student
	if err := c.do(ctx, http.MethodPut, studentPath(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteStudent removes the record with id.
func (c *Client) DeleteStudent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, studentPath(id), nil, nil)
}

func studentPath(id string) string {
	return "/api/students/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	// path is already escaped; JoinPath keeps any prefix of the base URL.
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path).String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("client: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Message:    decodeErrorMessage(data),
			Body:       data,
		}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}
