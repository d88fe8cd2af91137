// Package task implements an in-memory task tracker with completion-time
// statistics.
//
// The public API mirrors the HTTP endpoints:
//   - Create, CreateBatch, Update, MarkDone, MarkUndone, Delete for the task lifecycle
//   - Get and Query for reading
//   - Averages for completion-time statistics
//
// A single Service owns the store, the average-time tracker and the page
// tracker, and serializes every call behind one lock.
package task

import (
	"fmt"
	"strconv"

	internalstrings "github.com/amonks/taskboard/internal/strings"
	"github.com/amonks/taskboard/internal/validation"
)

// Priority is the importance of a task.
type Priority int

// Priority constants for tasks.
const (
	PriorityLow    Priority = 0
	PriorityMedium Priority = 1
	PriorityHigh   Priority = 2

	PriorityMin = PriorityLow
	PriorityMax = PriorityHigh
)

// ValidPriorities returns all valid priority values, lowest first.
func ValidPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// IsValid returns true if the priority is a known value.
func (p Priority) IsValid() bool {
	return p >= PriorityMin && p <= PriorityMax
}

// String returns a human-readable name for the priority.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// ParsePriority accepts a priority name (low, medium, high) or its number.
func ParsePriority(value string) (Priority, error) {
	normalized := internalstrings.NormalizeLowerTrimSpace(value)
	for _, p := range ValidPriorities() {
		if normalized == p.String() {
			return p, nil
		}
	}
	n, err := strconv.Atoi(normalized)
	if err != nil {
		return 0, fmt.Errorf("%w: %q (valid: %s or %d-%d)", ErrInvalidPriority, value,
			validation.FormatValidValues(priorityNames()), PriorityMin, PriorityMax)
	}
	p := Priority(n)
	if err := ValidatePriority(p); err != nil {
		return 0, err
	}
	return p, nil
}

func priorityNames() []string {
	priorities := ValidPriorities()
	names := make([]string, len(priorities))
	for i, p := range priorities {
		names[i] = p.String()
	}
	return names
}

// PriorityPtr returns a pointer to the provided priority.
func PriorityPtr(p Priority) *Priority {
	return &p
}

// MaxNameLength is the maximum allowed length of a task name, in characters.
const MaxNameLength = 120

// PageSize is the number of tasks in one page of query results.
const PageSize = 10

// Sort keys understood by Query.
const (
	SortPriority = "priority"
	SortDueDate  = "dueDate"
)
