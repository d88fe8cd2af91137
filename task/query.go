package task

import (
	"fmt"
	"strings"
)

// Query selects, orders and paginates tasks. Zero values mean "not set".
type Query struct {
	// SortBy is SortPriority or SortDueDate; anything else keeps insertion order.
	SortBy string

	// SortOrder, set to SortDueDate together with SortBy == SortPriority,
	// breaks priority ties by due date.
	SortOrder string

	// Page is the 1-based page to return.
	Page int

	// Done filters by exact done state.
	Done *bool

	// Name filters to tasks whose name contains this text, ignoring case.
	Name string

	// Priority filters by exact priority.
	Priority *Priority
}

// Result is one page of query results.
type Result struct {
	Tasks       []Task `json:"tasks"`
	CurrentPage int    `json:"currentPage"`
	TotalPages  int    `json:"totalPages"`
}

// Empty reports whether no task matched the query. Empty results carry no
// pagination metadata.
func (r Result) Empty() bool {
	return len(r.Tasks) == 0 && r.TotalPages == 0
}

// Query runs the sort, filter and paginate pipeline.
//
// Page bounds are checked against the page count of all stored tasks, not of
// the filtered ones, and the reported TotalPages is that unfiltered count.
// A filtered query can therefore report pages it cannot fill.
func (s *Service) Query(q Query) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if q.Page < 1 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidPage, q.Page)
	}

	tasks := s.sortedView(q.SortBy, q.SortOrder)
	tasks = filterTasks(tasks, q)
	if len(tasks) == 0 {
		return Result{Tasks: []Task{}}, nil
	}

	if err := s.pages.SetCurrent(q.Page); err != nil {
		return Result{}, err
	}

	start := (q.Page - 1) * PageSize
	if start > len(tasks) {
		start = len(tasks)
	}
	end := min(start+PageSize, len(tasks))

	return Result{
		Tasks:       tasks[start:end],
		CurrentPage: s.pages.Current(),
		TotalPages:  s.pages.TotalPages(),
	}, nil
}

func (s *Service) sortedView(sortBy, sortOrder string) []Task {
	byPriority := strings.EqualFold(sortBy, SortPriority)
	switch {
	case byPriority && strings.EqualFold(sortOrder, SortDueDate):
		return s.store.ListByPriorityThenDueDate()
	case byPriority:
		return s.store.ListByPriority()
	case strings.EqualFold(sortBy, SortDueDate):
		return s.store.ListByDueDate()
	default:
		return s.store.List()
	}
}

func filterTasks(tasks []Task, q Query) []Task {
	nameQuery := strings.ToLower(q.Name)

	result := tasks[:0]
	for _, t := range tasks {
		if q.Done != nil && t.Done != *q.Done {
			continue
		}
		if nameQuery != "" && !strings.Contains(strings.ToLower(t.Name), nameQuery) {
			continue
		}
		if q.Priority != nil && t.Priority != *q.Priority {
			continue
		}
		result = append(result, t)
	}
	return result
}
