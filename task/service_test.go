package task

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestService(t *testing.T) (*Service, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Date(2026, 2, 25, 12, 0, 0, 0, time.UTC)}
	return NewService(NewMemStore(), ServiceOptions{Now: clock.Now}), clock
}

func mustCreate(t *testing.T, s *Service, item Task) Task {
	t.Helper()
	created, err := s.Create(item)
	if err != nil {
		t.Fatalf("create %q: %v", item.Name, err)
	}
	return created
}

func TestService_CreateThenGet(t *testing.T) {
	s, clock := newTestService(t)
	due := clock.now.Add(72 * time.Hour)

	input := Task{Name: "Buy milk", Priority: PriorityMedium, DueDate: &due, CreatedAt: clock.now.Add(-time.Minute)}
	created := mustCreate(t, s, input)
	if created.ID != 1 {
		t.Fatalf("expected id 1, got %d", created.ID)
	}

	got, err := s.Get(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	input.ID = created.ID
	if !reflect.DeepEqual(got, input) {
		t.Fatalf("expected %+v, got %+v", input, got)
	}
}

func TestService_CreateStampsCreationDate(t *testing.T) {
	s, clock := newTestService(t)

	created := mustCreate(t, s, Task{Name: "Buy milk"})
	if !created.CreatedAt.Equal(clock.now) {
		t.Fatalf("expected creation date %v, got %v", clock.now, created.CreatedAt)
	}
	if created.Done || created.DoneAt != nil {
		t.Fatalf("expected new task to be open, got %+v", created)
	}
}

func TestService_CreateRejectsInvalidTasks(t *testing.T) {
	s, clock := newTestService(t)
	past := clock.now.Add(-time.Hour)

	tests := []struct {
		name    string
		task    Task
		wantErr error
	}{
		{"done", Task{Name: "Done already", Done: true}, ErrDoneOnCreate},
		{"name too long", Task{Name: strings.Repeat("x", 121)}, ErrNameTooLong},
		{"empty name", Task{}, ErrEmptyName},
		{"priority 3", Task{Name: "Too important", Priority: 3}, ErrInvalidPriority},
		{"past due date", Task{Name: "Late", DueDate: &past}, ErrDueDateInPast},
		{"future creation date", Task{Name: "Later", CreatedAt: clock.now.Add(48 * time.Hour)}, ErrCreatedInFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(tt.task)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if got := s.store.Count(); got != 0 {
		t.Fatalf("expected no tasks stored, got %d", got)
	}
}

func TestService_CreateBatchStopsAtFirstFailure(t *testing.T) {
	s, _ := newTestService(t)

	created, err := s.CreateBatch([]Task{
		{Name: "one"},
		{Name: "two"},
		{Name: ""},
		{Name: "four"},
	})
	if !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected empty name error, got %v", err)
	}
	if !strings.Contains(err.Error(), "task 2") {
		t.Fatalf("expected error to name the failing index, got %q", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 tasks created before the failure, got %d", len(created))
	}
	if got := s.store.Count(); got != 2 {
		t.Fatalf("expected earlier tasks to stay stored, got %d", got)
	}
	if got := s.pages.TotalPages(); got != 1 {
		t.Fatalf("expected pages to reflect stored tasks, got %d", got)
	}
}

func TestService_UpdateReplacesEditableFields(t *testing.T) {
	s, clock := newTestService(t)
	due := clock.now.Add(time.Hour)
	created := mustCreate(t, s, Task{Name: "Draft", Priority: PriorityLow, DueDate: &due})
	done, err := s.MarkDone(created.ID)
	if err != nil {
		t.Fatalf("mark done: %v", err)
	}

	updated, err := s.Update(created.ID, Changes{Name: "Final", Priority: PriorityHigh})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Final" || updated.Priority != PriorityHigh || updated.DueDate != nil {
		t.Fatalf("expected replaced fields, got %+v", updated)
	}
	if !updated.Done || updated.DoneAt == nil || !updated.DoneAt.Equal(*done.DoneAt) {
		t.Fatalf("expected done state untouched, got %+v", updated)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) || updated.ID != created.ID {
		t.Fatalf("expected id and creation date untouched, got %+v", updated)
	}
}

func TestService_UpdateValidatesBeforeLookup(t *testing.T) {
	s, _ := newTestService(t)

	if _, err := s.Update(99, Changes{Name: ""}); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected validation error first, got %v", err)
	}
	if _, err := s.Update(99, Changes{Name: "valid"}); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestService_MarkDoneRecordsCompletionTime(t *testing.T) {
	s, clock := newTestService(t)
	created := mustCreate(t, s, Task{Name: "Ship release", Priority: PriorityHigh})

	clock.Advance(30 * time.Minute)
	done, err := s.MarkDone(created.ID)
	if err != nil {
		t.Fatalf("mark done: %v", err)
	}
	if !done.Done || done.DoneAt == nil || !done.DoneAt.Equal(clock.now) {
		t.Fatalf("expected task done at %v, got %+v", clock.now, done)
	}

	want := Averages{Total: 30, High: 30}
	if got := s.Averages(); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestService_MarkDoneIsIdempotent(t *testing.T) {
	s, clock := newTestService(t)
	created := mustCreate(t, s, Task{Name: "Ship release", Priority: PriorityHigh})

	clock.Advance(10 * time.Minute)
	first, err := s.MarkDone(created.ID)
	if err != nil {
		t.Fatalf("mark done: %v", err)
	}
	tracker := s.tracker

	clock.Advance(10 * time.Minute)
	second, err := s.MarkDone(created.ID)
	if err != nil {
		t.Fatalf("mark done again: %v", err)
	}
	if s.tracker != tracker {
		t.Fatalf("expected tracker unchanged, got %+v want %+v", s.tracker, tracker)
	}
	if !second.DoneAt.Equal(*first.DoneAt) {
		t.Fatalf("expected done date to stay %v, got %v", first.DoneAt, second.DoneAt)
	}
}

func TestService_MarkUndoneRestoresTracker(t *testing.T) {
	for _, p := range ValidPriorities() {
		t.Run(p.String(), func(t *testing.T) {
			s, clock := newTestService(t)
			other := mustCreate(t, s, Task{Name: "other", Priority: PriorityMedium})
			clock.Advance(5 * time.Minute)
			if _, err := s.MarkDone(other.ID); err != nil {
				t.Fatalf("mark other done: %v", err)
			}
			before := s.tracker

			created := mustCreate(t, s, Task{Name: "subject", Priority: p})
			clock.Advance(17 * time.Minute)
			if _, err := s.MarkDone(created.ID); err != nil {
				t.Fatalf("mark done: %v", err)
			}
			undone, err := s.MarkUndone(created.ID)
			if err != nil {
				t.Fatalf("mark undone: %v", err)
			}
			if undone.Done || undone.DoneAt != nil {
				t.Fatalf("expected task reopened, got %+v", undone)
			}
			if s.tracker != before {
				t.Fatalf("expected tracker %+v, got %+v", before, s.tracker)
			}
		})
	}
}

func TestService_MarkUndoneOnOpenTaskIsNoop(t *testing.T) {
	s, _ := newTestService(t)
	created := mustCreate(t, s, Task{Name: "open"})

	got, err := s.MarkUndone(created.ID)
	if err != nil {
		t.Fatalf("mark undone: %v", err)
	}
	if got.Done || (s.tracker != Tracker{}) {
		t.Fatalf("expected nothing to change, got %+v and tracker %+v", got, s.tracker)
	}
}

func TestService_MissingTasks(t *testing.T) {
	s, _ := newTestService(t)

	if _, err := s.Get(1); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("get: expected not found, got %v", err)
	}
	if _, err := s.MarkDone(1); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("mark done: expected not found, got %v", err)
	}
	if _, err := s.MarkUndone(1); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("mark undone: expected not found, got %v", err)
	}
	if err := s.Delete(1); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("delete: expected not found, got %v", err)
	}
}

func TestService_DeleteDoneTaskRetractsDuration(t *testing.T) {
	s, clock := newTestService(t)
	keep := mustCreate(t, s, Task{Name: "keep", Priority: PriorityHigh})
	drop := mustCreate(t, s, Task{Name: "drop", Priority: PriorityHigh})

	clock.Advance(10 * time.Minute)
	s.MarkDone(keep.ID)
	clock.Advance(10 * time.Minute)
	s.MarkDone(drop.ID)
	if got := s.Averages(); got.High != 15 || got.Total != 15 {
		t.Fatalf("expected 15 minute averages, got %+v", got)
	}

	if err := s.Delete(drop.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	want := Averages{Total: 10, High: 10}
	if got := s.Averages(); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if _, err := s.Get(drop.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected deleted task to be gone, got %v", err)
	}
}

func TestService_DeleteOpenTaskLeavesTracker(t *testing.T) {
	s, _ := newTestService(t)
	created := mustCreate(t, s, Task{Name: "open"})

	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if (s.tracker != Tracker{}) {
		t.Fatalf("expected untouched tracker, got %+v", s.tracker)
	}
}

func TestService_PagesFollowTaskCount(t *testing.T) {
	s, _ := newTestService(t)

	var last Task
	for i := 0; i < 21; i++ {
		last = mustCreate(t, s, Task{Name: "task"})
	}
	if got := s.pages.TotalPages(); got != 3 {
		t.Fatalf("expected 3 pages for 21 tasks, got %d", got)
	}

	if err := s.Delete(last.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := s.pages.TotalPages(); got != 2 {
		t.Fatalf("expected 2 pages for 20 tasks, got %d", got)
	}
}

func TestService_ConcurrentLifecycle(t *testing.T) {
	s := NewService(NewMemStore(), ServiceOptions{})

	const workers = 50
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- runLifecycle(s, fmt.Sprintf("worker-%03d", i))
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Error(err)
		}
	}

	if got := s.Averages(); got != (Averages{}) {
		t.Fatalf("expected zero averages, got %+v", got)
	}
	if got := s.pages.TotalPages(); got != 0 {
		t.Fatalf("expected 0 pages, got %d", got)
	}
	if got := s.store.Count(); got != 0 {
		t.Fatalf("expected empty store, got %d tasks", got)
	}
}

func runLifecycle(s *Service, name string) error {
	created, err := s.Create(Task{Name: name, Priority: PriorityHigh})
	if err != nil {
		return fmt.Errorf("%s: create: %w", name, err)
	}
	if _, err := s.MarkDone(created.ID); err != nil {
		return fmt.Errorf("%s: mark done: %w", name, err)
	}
	result, err := s.Query(Query{Page: 1, Name: name})
	if err != nil {
		return fmt.Errorf("%s: query: %w", name, err)
	}
	if len(result.Tasks) != 1 || result.Tasks[0].ID != created.ID {
		return fmt.Errorf("%s: expected only task %d, got %+v", name, created.ID, result.Tasks)
	}
	if _, err := s.MarkUndone(created.ID); err != nil {
		return fmt.Errorf("%s: mark undone: %w", name, err)
	}
	if _, err := s.MarkDone(created.ID); err != nil {
		return fmt.Errorf("%s: mark done again: %w", name, err)
	}
	if err := s.Delete(created.ID); err != nil {
		return fmt.Errorf("%s: delete: %w", name, err)
	}
	return nil
}
