// Package taskapi is the HTTP client for the Task Service collection endpoint.
package taskapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	dom "Todo/internal/domain"
	"Todo/internal/dto"

	"github.com/google/uuid"
)

// RequestIDHeader carries a per-request id so client diagnostics can be matched to server logs.
const RequestIDHeader = "X-Request-ID"

// ErrUnexpectedStatus matches every *StatusError.
var ErrUnexpectedStatus = errors.New("unexpected status")

// StatusError is a response with a non-2xx status. No distinction is made by code.
type StatusError struct {
	Method    string
	URL       string
	Code      int
	RequestID string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: http status %d (request %s)", e.Method, e.URL, e.Code, e.RequestID)
}

func (e *StatusError) Is(target error) bool { return target == ErrUnexpectedStatus }

// Client talks to a fixed collection endpoint, e.g. http://localhost:8080/api/todos.
// Items live at <base>/<id>.
type Client struct {
	base string
	http *http.Client
}

// New returns a Client for baseURL. A zero timeout means requests only end with their context.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

// NewWithHTTPClient is New with a caller-supplied http.Client, used by tests against httptest servers.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{base: strings.TrimRight(baseURL, "/"), http: hc}
}

// BaseURL returns the collection endpoint.
func (c *Client) BaseURL() string { return c.base }

// List fetches every task. GET <base>.
func (c *Client) List(ctx context.Context) ([]dom.Task, error) {
	var out []dto.TaskResponse
	if err := c.do(ctx, http.MethodGet, c.base, nil, &out); err != nil {
		return nil, err
	}
	tasks := make([]dom.Task, len(out))
	for i := range out {
		tasks[i] = out[i].Task()
	}
	return tasks, nil
}

// Create submits a new incomplete task. POST <base> {"text":..., "completed":false}.
func (c *Client) Create(ctx context.Context, text string) (dom.Task, error) {
	var out dto.TaskResponse
	body := dto.CreateTaskRequest{Text: text, Completed: false}
	if err := c.do(ctx, http.MethodPost, c.base, body, &out); err != nil {
		return dom.Task{}, err
	}
	return out.Task(), nil
}

// SetCompleted sends only the completion flag. PUT <base>/<id> {"completed":...}.
// The response body is not used.
func (c *Client) SetCompleted(ctx context.Context, id int64, completed bool) error {
	body := dto.UpdateTaskRequest{Completed: &completed}
	return c.do(ctx, http.MethodPut, c.itemURL(id), body, nil)
}

// Delete removes a task. DELETE <base>/<id>.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, c.itemURL(id), nil, nil)
}

func (c *Client) itemURL(id int64) string {
	return c.base + "/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, url string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s (request %s): %w", method, url, reqID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Method: method, URL: url, Code: resp.StatusCode, RequestID: reqID}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s (request %s): %w", method, url, reqID, err)
	}
	return nil
}
