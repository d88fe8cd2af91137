package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/amonks/taskboard/internal/age"
	"github.com/amonks/taskboard/internal/ui"
	"github.com/amonks/taskboard/task"
)

func formatTaskTable(tasks []task.Task, styler *ui.Styler, now time.Time) string {
	headers := []string{"ID", "PRIORITY", "STATUS", "DUE", "AGE", "NAME"}
	for i, header := range headers {
		headers[i] = styler.Header(header)
	}
	builder := ui.NewTableBuilder(headers, len(tasks))

	for _, t := range tasks {
		builder.AddRow([]string{
			styler.ID(formatTaskID(t.ID)),
			styler.Priority(t.Priority),
			styler.Status(t.Done),
			formatTaskDue(t, styler, now),
			formatTaskAge(t, now),
			ui.TruncateTableCell(t.Name),
		})
	}

	return builder.String()
}

// formatTaskAge shows how long the task has been open, or how long it took.
func formatTaskAge(t task.Task, now time.Time) string {
	open, ok := age.Open(t.CreatedAt, t.DoneAt, now)
	if !ok {
		return "-"
	}
	return ui.FormatDurationShort(open)
}

// formatTaskDue shows the due date relative to now. Done tasks are never
// overdue.
func formatTaskDue(t task.Task, styler *ui.Styler, now time.Time) string {
	if t.DueDate == nil {
		return "-"
	}
	if t.Done {
		return styler.Muted(ui.FormatDate(t.DueDate))
	}
	due := ui.FormatDue(t.DueDate, now)
	if t.DueDate.Before(now) {
		return styler.Overdue(due)
	}
	return due
}

// formatTaskDetail renders one task as aligned "Label: value" lines.
func formatTaskDetail(t task.Task, styler *ui.Styler, now time.Time) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "ID:       %s\n", styler.ID(formatTaskID(t.ID)))
	fmt.Fprintf(&builder, "Name:     %s\n", t.Name)
	fmt.Fprintf(&builder, "Priority: %s (%d)\n", styler.Priority(t.Priority), t.Priority)
	fmt.Fprintf(&builder, "Status:   %s\n", styler.Status(t.Done))
	fmt.Fprintf(&builder, "Created:  %s\n", ui.FormatDate(&t.CreatedAt))

	if t.DueDate != nil {
		fmt.Fprintf(&builder, "Due:      %s (%s)\n", ui.FormatDate(t.DueDate), formatTaskDue(t, styler, now))
	}

	if t.DoneAt != nil {
		fmt.Fprintf(&builder, "Done:     %s\n", ui.FormatDate(t.DoneAt))
		fmt.Fprintf(&builder, "Took:     %s\n", formatTaskAge(t, now))
	} else {
		fmt.Fprintf(&builder, "Open for: %s\n", formatTaskAge(t, now))
	}

	return builder.String()
}
