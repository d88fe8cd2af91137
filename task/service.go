package task

import (
	"fmt"
	"sync"
	"time"
)

// ServiceOptions configures a Service.
type ServiceOptions struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Service orchestrates validation, storage, completion statistics and
// pagination. All methods are safe for concurrent use: each call runs as one
// critical section.
type Service struct {
	mu      sync.Mutex
	store   Store
	tracker Tracker
	pages   Pages
	now     func() time.Time
}

// NewService creates a Service backed by store.
func NewService(store Store, opts ServiceOptions) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	s := &Service{store: store, now: now}
	s.pages.Recompute(store.Count(), PageSize)
	return s
}

// Changes holds the fields Update replaces. A nil DueDate clears the due date.
type Changes struct {
	Name     string
	Priority Priority
	DueDate  *time.Time
}

// Create validates and stores a new task. CreatedAt is stamped when zero and
// must not lie in the future otherwise.
func (s *Service) Create(t Task) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.create(t)
}

func (s *Service) create(t Task) (Task, error) {
	now := s.now()
	if err := Validate(t, now); err != nil {
		return Task{}, err
	}
	if err := ValidateNotDone(t.Done); err != nil {
		return Task{}, err
	}
	if err := ValidateCreationDate(t.CreatedAt, now); err != nil {
		return Task{}, err
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.DoneAt = nil

	created, err := s.store.Create(t)
	if err != nil {
		return Task{}, fmt.Errorf("create task: %w", err)
	}
	s.pages.Recompute(s.store.Count(), PageSize)
	return created, nil
}

// CreateBatch creates tasks in order and stops at the first failure. Tasks
// created before the failure stay in the store and are returned with the
// error.
func (s *Service) CreateBatch(tasks []Task) ([]Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := make([]Task, 0, len(tasks))
	for i, t := range tasks {
		result, err := s.create(t)
		if err != nil {
			return created, fmt.Errorf("task %d: %w", i, err)
		}
		created = append(created, result)
	}
	return created, nil
}

// Get returns the task with the given ID.
func (s *Service) Get(id int64) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Get(id)
}

// Update replaces the name, priority and due date of an existing task. The
// changes are validated before the task is looked up.
func (s *Service) Update(id int64, changes Changes) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := Validate(Task{Name: changes.Name, Priority: changes.Priority, DueDate: changes.DueDate}, s.now()); err != nil {
		return Task{}, err
	}
	t, err := s.store.Get(id)
	if err != nil {
		return Task{}, err
	}
	t.Name = changes.Name
	t.Priority = changes.Priority
	t.DueDate = changes.DueDate
	if err := s.store.Save(t); err != nil {
		return Task{}, fmt.Errorf("save task %d: %w", id, err)
	}
	return t, nil
}

// MarkDone completes a task and records its completion time. Completing a
// done task changes nothing.
func (s *Service) MarkDone(id int64) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.store.Get(id)
	if err != nil {
		return Task{}, err
	}
	if !t.Complete(s.now()) {
		return t, nil
	}
	if err := s.store.Save(t); err != nil {
		return Task{}, fmt.Errorf("save task %d: %w", id, err)
	}
	duration, _ := t.CompletionTime()
	s.tracker.RecordCompletion(t.Priority, duration)
	return t, nil
}

// MarkUndone reopens a task and retracts its completion time. Reopening an
// open task changes nothing.
func (s *Service) MarkUndone(id int64) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.store.Get(id)
	if err != nil {
		return Task{}, err
	}
	duration, done := t.CompletionTime()
	if !done {
		return t, nil
	}
	s.tracker.RetractCompletion(t.Priority, duration)
	t.Reopen()
	if err := s.store.Save(t); err != nil {
		return Task{}, fmt.Errorf("save task %d: %w", id, err)
	}
	return t, nil
}

// Delete removes a task, retracting its completion time if it was done.
func (s *Service) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.store.Get(id)
	if err != nil {
		return err
	}
	if duration, done := t.CompletionTime(); done {
		s.tracker.RetractCompletion(t.Priority, duration)
	}
	if err := s.store.Delete(id); err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	s.pages.Recompute(s.store.Count(), PageSize)
	return nil
}

// Averages returns the average completion times in whole minutes.
func (s *Service) Averages() Averages {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Averages()
}
