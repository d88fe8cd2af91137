package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/amonks/taskboard/task"
)

// StatusError is returned by Client when the server answers with an error
// status. It matches task.ErrTaskNotFound for 404 and task.ErrInvalid for 400
// under errors.Is.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("taskboard error: %s", http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("taskboard error: %s", e.Message)
}

// Is maps well-known status codes onto the task package's error kinds.
func (e *StatusError) Is(target error) bool {
	switch e.StatusCode {
	case http.StatusNotFound:
		return target == task.ErrTaskNotFound
	case http.StatusBadRequest:
		return target == task.ErrInvalid
	default:
		return false
	}
}

// Client calls the task API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the given address or URL.
func NewClient(addr string) *Client {
	baseURL := strings.TrimRight(addr, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	return &Client{baseURL: baseURL, client: &http.Client{}}
}

// List runs a query. A query with no matches returns a Result for which Empty
// reports true.
func (c *Client) List(ctx context.Context, q task.Query) (task.Result, error) {
	var response listResponse
	if err := c.do(ctx, http.MethodGet, "/todos?"+encodeQuery(q).Encode(), nil, http.StatusOK, &response); err != nil {
		return task.Result{}, err
	}
	if response.Tasks == nil {
		response.Tasks = []task.Task{}
	}
	return task.Result{
		Tasks:       response.Tasks,
		CurrentPage: response.CurrentPage,
		TotalPages:  response.TotalPages,
	}, nil
}

// Create creates a task and returns its ID.
func (c *Client) Create(ctx context.Context, t task.Task) (int64, error) {
	var response idResponse
	if err := c.do(ctx, http.MethodPost, "/todos", payloadFromTask(t), http.StatusCreated, &response); err != nil {
		return 0, err
	}
	return strconv.ParseInt(response.ID, 10, 64)
}

// CreateBatch creates tasks in order. When one fails, the tasks the server
// created before it are returned along with the error.
func (c *Client) CreateBatch(ctx context.Context, tasks []task.Task) ([]task.Task, error) {
	payloads := make([]taskPayload, len(tasks))
	for i, t := range tasks {
		payloads[i] = payloadFromTask(t)
	}
	resp, err := c.send(ctx, http.MethodPost, "/todoslist", payloads)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var response batchErrorResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&response)
	if resp.StatusCode != http.StatusCreated {
		return response.CreatedTasks, &StatusError{StatusCode: resp.StatusCode, Message: response.Error}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}
	return response.CreatedTasks, nil
}

// Get returns one task.
func (c *Client) Get(ctx context.Context, id int64) (task.Task, error) {
	var found task.Task
	if err := c.do(ctx, http.MethodGet, "/todos/"+formatID(id), nil, http.StatusOK, &found); err != nil {
		return task.Task{}, err
	}
	return found, nil
}

// Update replaces the name, priority and due date of a task.
func (c *Client) Update(ctx context.Context, id int64, changes task.Changes) error {
	return c.do(ctx, http.MethodPut, "/todos/"+formatID(id), payloadFromChanges(changes), http.StatusOK, &messageResponse{})
}

// MarkDone completes a task.
func (c *Client) MarkDone(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, "/todos/"+formatID(id)+"/done", nil, http.StatusOK, &messageResponse{})
}

// MarkUndone reopens a task.
func (c *Client) MarkUndone(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPut, "/todos/"+formatID(id)+"/undone", nil, http.StatusOK, &messageResponse{})
}

// Delete removes a task.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/todos/"+formatID(id)+"/delete", nil, http.StatusNoContent, nil)
}

// Averages returns the average completion times in minutes.
func (c *Client) Averages(ctx context.Context) (task.Averages, error) {
	var averages task.Averages
	if err := c.do(ctx, http.MethodGet, "/avg-time", nil, http.StatusOK, &averages); err != nil {
		return task.Averages{}, err
	}
	return averages, nil
}

// Health checks that the server is up.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, http.StatusOK, &healthResponse{})
}

func (c *Client) do(ctx context.Context, method, path string, payload any, wantStatus int, dest any) error {
	resp, err := c.send(ctx, method, path, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		return readErrorResponse(resp)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+APIPrefix+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.client.Do(req)
}

func readErrorResponse(resp *http.Response) error {
	var payload errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		return &StatusError{StatusCode: resp.StatusCode, Message: payload.Error}
	}
	return &StatusError{StatusCode: resp.StatusCode}
}

func encodeQuery(q task.Query) url.Values {
	values := url.Values{}
	if q.SortBy != "" {
		values.Set("sortBy", q.SortBy)
	}
	if q.SortOrder != "" {
		values.Set("sortOrder", q.SortOrder)
	}
	if q.Page != 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Done != nil {
		values.Set("done", strconv.FormatBool(*q.Done))
	}
	if q.Name != "" {
		values.Set("name", q.Name)
	}
	if q.Priority != nil {
		values.Set("priority", strconv.Itoa(int(*q.Priority)))
	}
	return values
}
