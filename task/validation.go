package task

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

var (
	// ErrInvalid is wrapped by every error caused by bad client input.
	ErrInvalid = errors.New("invalid input")

	// ErrTaskNotFound is returned when a task with the given ID doesn't exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrEmptyName is returned when a task name is empty.
	ErrEmptyName = fmt.Errorf("%w: task name cannot be null or empty", ErrInvalid)

	// ErrNameTooLong is returned when a task name exceeds MaxNameLength.
	ErrNameTooLong = fmt.Errorf("%w: task name cannot exceed %d characters", ErrInvalid, MaxNameLength)

	// ErrInvalidPriority is returned when priority is outside the valid range.
	ErrInvalidPriority = fmt.Errorf("%w: task priority must be 0 = Low, 1 = Medium or 2 = High", ErrInvalid)

	// ErrDueDateInPast is returned when a due date lies before the current time.
	ErrDueDateInPast = fmt.Errorf("%w: due date cannot be in the past", ErrInvalid)

	// ErrDoneOnCreate is returned when a task is created already done.
	ErrDoneOnCreate = fmt.Errorf("%w: the 'done' field cannot be set when creating a task", ErrInvalid)

	// ErrCreatedInFuture is returned when a supplied creation date lies after
	// the current time.
	ErrCreatedInFuture = fmt.Errorf("%w: creation date cannot be in the future", ErrInvalid)

	// ErrInvalidPage is returned when a requested page number is below 1.
	ErrInvalidPage = fmt.Errorf("%w: page number must be greater than or equal to 1", ErrInvalid)

	// ErrPageOutOfRange is returned when a page lies outside [1, total pages].
	ErrPageOutOfRange = fmt.Errorf("%w: page number exceeds total pages", ErrInvalid)
)

// ValidateName checks that the name is present and short enough.
func ValidateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if n := utf8.RuneCountInString(name); n > MaxNameLength {
		return fmt.Errorf("%w: got %d", ErrNameTooLong, n)
	}
	return nil
}

// ValidatePriority checks that the priority is low, medium or high.
func ValidatePriority(p Priority) error {
	if !p.IsValid() {
		return fmt.Errorf("%w: got %d", ErrInvalidPriority, int(p))
	}
	return nil
}

// ValidateDueDate rejects due dates strictly before now. A nil due date is valid.
func ValidateDueDate(due *time.Time, now time.Time) error {
	if due != nil && due.Before(now) {
		return ErrDueDateInPast
	}
	return nil
}

// ValidateNotDone rejects tasks that claim to be done. Only enforced on creation.
func ValidateNotDone(done bool) error {
	if done {
		return ErrDoneOnCreate
	}
	return nil
}

// ValidateCreationDate rejects creation dates strictly after now. A zero
// creation date is valid; the service stamps it.
func ValidateCreationDate(created time.Time, now time.Time) error {
	if created.After(now) {
		return ErrCreatedInFuture
	}
	return nil
}

// Validate checks the client-controlled fields of a task.
func Validate(t Task, now time.Time) error {
	if err := ValidateName(t.Name); err != nil {
		return err
	}
	if err := ValidatePriority(t.Priority); err != nil {
		return err
	}
	return ValidateDueDate(t.DueDate, now)
}
