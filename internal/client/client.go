// Package client talks to the Task API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/adanyl0v/taskboard/internal/models"
)

// TaskInput is the body of create and update requests. Update sends it
// as a full replacement.
type TaskInput struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      models.Status `json:"status,omitempty"`
	DueDate     string        `json:"dueDate"`
}

// Client wraps http.Client with the Task API endpoints.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New creates a Client for the API rooted at baseURL, e.g.
// "http://localhost:8080/api".
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// noTasksFound is the body error of a server that answers an empty
// collection with 404.
const noTasksFound = "No tasks found"

// List fetches every task in the store's order. A 404 from a server
// that reports an empty collection that way yields an empty list; any
// other 404 is an *APIError.
func (c *Client) List(ctx context.Context) ([]models.Task, error) {
	var out struct {
		Tasks []models.Task `json:"tasks"`
	}
	err := c.do(ctx, http.MethodGet, "/tasks", nil, &out)
	if err != nil {
		if isNoTasksFound(err) {
			return []models.Task{}, nil
		}
		return nil, err
	}
	if out.Tasks == nil {
		out.Tasks = []models.Task{}
	}
	return out.Tasks, nil
}

// Get fetches one task. It returns ErrNotFound if it doesn't exist.
func (c *Client) Get(ctx context.Context, id string) (*models.Task, error) {
	var out struct {
		Task *models.Task `json:"task"`
	}
	err := c.do(ctx, http.MethodGet, "/tasks/"+url.PathEscape(id), nil, &out)
	if err != nil {
		return nil, err
	}
	return out.Task, nil
}

func (c *Client) Create(ctx context.Context, in TaskInput) (*models.Task, error) {
	var out struct {
		Task *models.Task `json:"task"`
	}
	err := c.do(ctx, http.MethodPost, "/tasks", in, &out)
	if err != nil {
		return nil, err
	}
	return out.Task, nil
}

// Update replaces all four fields of the task with in.
func (c *Client) Update(ctx context.Context, id string, in TaskInput) (*models.Task, error) {
	var out struct {
		Task *models.Task `json:"task"`
	}
	err := c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id), in, &out)
	if err != nil {
		return nil, err
	}
	return out.Task, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil)
}

func isNoTasksFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) &&
		apiErr.StatusCode == http.StatusNotFound &&
		apiErr.Detail == noTasksFound
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return err
		}
		reqBody = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	op := method + " " + path
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		// The body is best effort; a proxy may not send JSON.
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    eb.Message,
			Detail:     eb.Error,
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, Err: err}
	}
	return nil
}
