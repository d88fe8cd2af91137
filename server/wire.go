package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/amonks/taskboard/task"
)

// errBadRequest marks malformed requests: undecodable bodies, bad path ids,
// unparsable query parameters.
var errBadRequest = errors.New("bad request")

// Timestamp layouts accepted in request bodies, tried in order. Layouts
// without a zone are read in local time.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	time.DateOnly,
}

// ParseTimestamp parses a timestamp in any of the layouts the API accepts.
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q (expected RFC 3339, 2006-01-02T15:04:05 or 2006-01-02)", value)
}

// timestamp is a JSON time that accepts every layout in timestampLayouts.
type timestamp struct {
	time.Time
}

func (t timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

func (t *timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func timestampFrom(t *time.Time) *timestamp {
	if t == nil {
		return nil
	}
	return &timestamp{Time: *t}
}

func (t *timestamp) value() *time.Time {
	if t == nil {
		return nil
	}
	v := t.Time
	return &v
}

// taskPayload is the request body of create, batch create and update. It
// accepts every field of a task so clients can send back what they read;
// the server ignores id and doneDate.
type taskPayload struct {
	ID           json.RawMessage `json:"id,omitempty"`
	Name         string          `json:"name"`
	Done         bool            `json:"done,omitempty"`
	Priority     task.Priority   `json:"priority"`
	CreationDate *timestamp      `json:"creationDate,omitempty"`
	DoneDate     *timestamp      `json:"doneDate,omitempty"`
	DueDate      *timestamp      `json:"dueDate,omitempty"`
}

func payloadFromTask(t task.Task) taskPayload {
	p := taskPayload{
		Name:     t.Name,
		Done:     t.Done,
		Priority: t.Priority,
		DueDate:  timestampFrom(t.DueDate),
	}
	if !t.CreatedAt.IsZero() {
		p.CreationDate = &timestamp{Time: t.CreatedAt}
	}
	return p
}

func payloadFromChanges(c task.Changes) taskPayload {
	return taskPayload{
		Name:     c.Name,
		Priority: c.Priority,
		DueDate:  timestampFrom(c.DueDate),
	}
}

func (p taskPayload) task() task.Task {
	t := task.Task{
		Name:     p.Name,
		Done:     p.Done,
		Priority: p.Priority,
		DueDate:  p.DueDate.value(),
	}
	if created := p.CreationDate.value(); created != nil {
		t.CreatedAt = *created
	}
	return t
}

func (p taskPayload) changes() task.Changes {
	return task.Changes{
		Name:     p.Name,
		Priority: p.Priority,
		DueDate:  p.DueDate.value(),
	}
}

// idResponse answers create calls. The id is a string for compatibility with
// existing browser clients.
type idResponse struct {
	ID string `json:"id"`
}

type messageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type batchResponse struct {
	CreatedTasks []task.Task `json:"createdTasks"`
}

type batchErrorResponse struct {
	Error        string      `json:"error"`
	CreatedTasks []task.Task `json:"createdTasks"`
}

// listResponse is either a task.Result or a bare message when nothing
// matched.
type listResponse struct {
	Tasks       []task.Task `json:"tasks"`
	CurrentPage int         `json:"currentPage"`
	TotalPages  int         `json:"totalPages"`
	Message     string      `json:"message"`
}

type healthResponse struct {
	Status string `json:"status"`
}

const noTasksMessage = "No tasks found"

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
