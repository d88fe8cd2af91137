package task

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr error
	}{
		{"valid short", "Buy milk", nil},
		{"valid max length", strings.Repeat("a", MaxNameLength), nil},
		{"valid max length unicode", strings.Repeat("é", MaxNameLength), nil},
		{"whitespace only", "   ", nil},
		{"empty", "", ErrEmptyName},
		{"too long", strings.Repeat("a", MaxNameLength+1), ErrNameTooLong},
		{"too long unicode", strings.Repeat("a", MaxNameLength) + "é", ErrNameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.value)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateName(%q) unexpected error: %v", tt.value, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateName(%q) = %v, want %v", tt.value, err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("ValidateName(%q) = %v, want it to wrap ErrInvalid", tt.value, err)
			}
		})
	}
}

func TestValidatePriority(t *testing.T) {
	tests := []struct {
		priority Priority
		wantErr  error
	}{
		{PriorityLow, nil},
		{PriorityMedium, nil},
		{PriorityHigh, nil},
		{-1, ErrInvalidPriority},
		{3, ErrInvalidPriority},
		{100, ErrInvalidPriority},
	}

	for _, tt := range tests {
		t.Run(tt.priority.String(), func(t *testing.T) {
			err := ValidatePriority(tt.priority)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidatePriority(%d) unexpected error: %v", tt.priority, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePriority(%d) = %v, want %v", tt.priority, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDueDate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Second)
	future := now.Add(time.Hour)

	if err := ValidateDueDate(nil, now); err != nil {
		t.Errorf("nil due date: unexpected error %v", err)
	}
	if err := ValidateDueDate(&now, now); err != nil {
		t.Errorf("due date equal to now: unexpected error %v", err)
	}
	if err := ValidateDueDate(&future, now); err != nil {
		t.Errorf("future due date: unexpected error %v", err)
	}
	if err := ValidateDueDate(&past, now); !errors.Is(err, ErrDueDateInPast) {
		t.Errorf("past due date: got %v, want %v", err, ErrDueDateInPast)
	}
}

func TestValidateCreationDate(t *testing.T) {
	now := time.Date(2026, 2, 25, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		created time.Time
		wantErr error
	}{
		{"zero", time.Time{}, nil},
		{"past", now.Add(-24 * time.Hour), nil},
		{"now", now, nil},
		{"future", now.Add(time.Second), ErrCreatedInFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCreationDate(tt.created, now)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr != nil && !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected %v to wrap ErrInvalid", err)
			}
		})
	}
}

func TestValidateNotDone(t *testing.T) {
	if err := ValidateNotDone(false); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateNotDone(true); !errors.Is(err, ErrDoneOnCreate) {
		t.Errorf("got %v, want %v", err, ErrDoneOnCreate)
	}
}

func TestValidateChecksEveryField(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)

	tests := []struct {
		name    string
		task    Task
		wantErr error
	}{
		{"valid", Task{Name: "Ship release", Priority: PriorityHigh}, nil},
		{"bad name", Task{Name: "", Priority: PriorityHigh}, ErrEmptyName},
		{"bad priority", Task{Name: "Ship release", Priority: 3}, ErrInvalidPriority},
		{"bad due date", Task{Name: "Ship release", DueDate: &yesterday}, ErrDueDateInPast},
		{"done is not checked", Task{Name: "Ship release", Done: true}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.task, now)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input   string
		want    Priority
		wantErr bool
	}{
		{"low", PriorityLow, false},
		{"Medium", PriorityMedium, false},
		{" HIGH ", PriorityHigh, false},
		{"0", PriorityLow, false},
		{"2", PriorityHigh, false},
		{"3", 0, true},
		{"urgent", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePriority(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPriority) {
					t.Fatalf("ParsePriority(%q) error = %v, want %v", tt.input, err, ErrInvalidPriority)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePriority(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParsePriority(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
