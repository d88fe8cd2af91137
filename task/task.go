package task

import "time"

// Task is a single to-do item.
type Task struct {
	// ID is assigned by the store on first save (0 until then).
	ID int64 `json:"id"`

	// Name is the short summary of the task (max 120 chars).
	Name string `json:"name"`

	// Done reports whether the task has been completed.
	Done bool `json:"done"`

	// Priority is the importance level (0=low, 2=high).
	Priority Priority `json:"priority"`

	// CreatedAt is when the task was constructed. It never changes.
	CreatedAt time.Time `json:"creationDate"`

	// DoneAt is when the task was last completed (nil unless Done).
	DoneAt *time.Time `json:"doneDate"`

	// DueDate is an optional deadline.
	DueDate *time.Time `json:"dueDate"`
}

// Complete marks the task done at now. It reports whether the task changed.
func (t *Task) Complete(now time.Time) bool {
	if t.Done {
		return false
	}
	t.Done = true
	t.DoneAt = &now
	return true
}

// Reopen marks the task not done. It reports whether the task changed.
func (t *Task) Reopen() bool {
	if !t.Done {
		return false
	}
	t.Done = false
	t.DoneAt = nil
	return true
}

// CompletionTime returns how long the task took from creation to completion.
// The second result is false while the task is not done.
func (t Task) CompletionTime() (time.Duration, bool) {
	if !t.Done || t.DoneAt == nil {
		return 0, false
	}
	return t.DoneAt.Sub(t.CreatedAt), true
}
