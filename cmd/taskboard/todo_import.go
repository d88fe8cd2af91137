package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/amonks/taskboard/task"
)

// importEntry is one element of an import file. Priority accepts a name or
// a number.
type importEntry struct {
	Name     string          `json:"name"`
	Priority json.RawMessage `json:"priority"`
	DueDate  string          `json:"dueDate"`
}

// parseImport reads a JSON array of tasks. Entries are checked for shape
// only; the server validates names and dates.
func parseImport(r io.Reader) ([]task.Task, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var entries []importEntry
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("parse import file: %w", err)
	}
	if len(entries) == 0 {
		return nil, errors.New("import file contains no tasks")
	}

	tasks := make([]task.Task, len(entries))
	for i, entry := range entries {
		priority, err := importPriority(entry.Priority)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		due, err := parseDueFlag(strings.TrimSpace(entry.DueDate))
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		tasks[i] = task.Task{
			Name:     entry.Name,
			Priority: priority,
			DueDate:  due,
		}
	}
	return tasks, nil
}

func importPriority(raw json.RawMessage) (task.Priority, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return task.PriorityLow, nil
	}
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return task.ParsePriority(name)
	}
	return task.ParsePriority(string(raw))
}
