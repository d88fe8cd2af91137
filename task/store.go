package task

import (
	"errors"
	"fmt"
	"sort"
)

// Store is the contract for task persistence.
type Store interface {
	// Create assigns the next unused ID to t and stores it.
	Create(t Task) (Task, error)

	// Get returns the task with the given ID.
	Get(id int64) (Task, error)

	// Save overwrites the stored task with the same ID.
	Save(t Task) error

	// Delete removes the task with the given ID.
	Delete(id int64) error

	// Count returns the number of stored tasks.
	Count() int

	// List returns all tasks in insertion order.
	List() []Task

	// ListByPriority returns all tasks, highest priority first.
	ListByPriority() []Task

	// ListByDueDate returns all tasks, earliest due date first and tasks
	// without a due date last.
	ListByDueDate() []Task

	// ListByPriorityThenDueDate orders like ListByPriority, breaking ties
	// like ListByDueDate.
	ListByPriorityThenDueDate() []Task
}

var errUnassignedID = errors.New("task has no id")

// MemStore is an in-memory Store. It is not safe for concurrent use; Service
// serializes access to it.
type MemStore struct {
	tasks  map[int64]Task
	nextID int64
}

// NewMemStore creates an empty MemStore. IDs start at 1.
func NewMemStore() *MemStore {
	return &MemStore{tasks: make(map[int64]Task), nextID: 1}
}

// Create stores t under a fresh ID, ignoring any ID it already carries.
// IDs are never reused, even after Delete.
func (s *MemStore) Create(t Task) (Task, error) {
	t.ID = s.nextID
	s.nextID++
	s.tasks[t.ID] = t
	return t, nil
}

// Get returns the task with the given ID.
func (s *MemStore) Get(id int64) (Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return Task{}, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	return t, nil
}

// Save overwrites an existing task.
func (s *MemStore) Save(t Task) error {
	if t.ID == 0 {
		return errUnassignedID
	}
	if _, ok := s.tasks[t.ID]; !ok {
		return fmt.Errorf("%w: %d", ErrTaskNotFound, t.ID)
	}
	s.tasks[t.ID] = t
	return nil
}

// Delete removes a task.
func (s *MemStore) Delete(id int64) error {
	if _, ok := s.tasks[id]; !ok {
		return fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	delete(s.tasks, id)
	return nil
}

// Count returns the number of stored tasks.
func (s *MemStore) Count() int {
	return len(s.tasks)
}

// List returns all tasks ordered by ID, which is insertion order.
func (s *MemStore) List() []Task {
	tasks := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].ID < tasks[j].ID
	})
	return tasks
}

// ListByPriority returns all tasks, highest priority first.
func (s *MemStore) ListByPriority() []Task {
	tasks := s.List()
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Priority > tasks[j].Priority
	})
	return tasks
}

// ListByDueDate returns all tasks by ascending due date, undated last.
func (s *MemStore) ListByDueDate() []Task {
	tasks := s.List()
	sort.SliceStable(tasks, func(i, j int) bool {
		return dueBefore(tasks[i], tasks[j])
	})
	return tasks
}

// ListByPriorityThenDueDate returns all tasks by descending priority, then
// ascending due date with undated tasks last.
func (s *MemStore) ListByPriorityThenDueDate() []Task {
	tasks := s.List()
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Priority != tasks[j].Priority {
			return tasks[i].Priority > tasks[j].Priority
		}
		return dueBefore(tasks[i], tasks[j])
	})
	return tasks
}

// dueBefore orders by due date with nil due dates sorting last.
func dueBefore(a, b Task) bool {
	switch {
	case a.DueDate == nil:
		return false
	case b.DueDate == nil:
		return true
	default:
		return a.DueDate.Before(*b.DueDate)
	}
}
