package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/amonks/taskboard/internal/ui"
	"github.com/amonks/taskboard/internal/validation"
	"github.com/amonks/taskboard/server"
	"github.com/amonks/taskboard/task"
)

var todoCmd = &cobra.Command{
	Use:     "todo",
	Short:   "Manage tasks on a running taskboard server",
	Aliases: []string{"task"},
}

// todo create
var todoCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTodoCreate,
}

var (
	todoCreatePriority string
	todoCreateDue      string
)

// todo import
var todoImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Create tasks from a JSON file",
	Long: `Create tasks from a JSON array of {"name", "priority", "dueDate"} objects.

Use "-" to read from stdin. Tasks are created in order; when one is rejected,
the tasks before it stay created.`,
	Args: cobra.ExactArgs(1),
	RunE: runTodoImport,
}

// todo update
var todoUpdateCmd = &cobra.Command{
	Use:     "update <id>",
	Short:   "Change the name, priority or due date of a task",
	Long: `Change the name, priority or due date of a task.

Flags that are not passed keep the task's current values, and the server
validates the whole task again. A task whose due date has already passed
cannot be updated until that date is replaced with --due or cleared with
--no-due.`,
	Aliases: []string{"edit"},
	Args:    cobra.ExactArgs(1),
	RunE:    runTodoUpdate,
}

var (
	todoUpdateName     string
	todoUpdatePriority string
	todoUpdateDue      string
	todoUpdateNoDue    bool
)

// todo done
var todoDoneCmd = &cobra.Command{
	Use:     "done <id>...",
	Short:   "Mark one or more tasks as done",
	Aliases: []string{"finish"},
	Args:    cobra.MinimumNArgs(1),
	RunE:    runTodoDone,
}

// todo undone
var todoUndoneCmd = &cobra.Command{
	Use:     "undone <id>...",
	Short:   "Mark one or more tasks as not done",
	Aliases: []string{"reopen"},
	Args:    cobra.MinimumNArgs(1),
	RunE:    runTodoUndone,
}

// todo delete
var todoDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTodoDelete,
}

// todo show
var todoShowCmd = &cobra.Command{
	Use:   "show <id>...",
	Short: "Show detailed information about tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTodoShow,
}

var todoShowJSON bool

// todo list
var todoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, one page at a time",
	Args:  cobra.NoArgs,
	RunE:  runTodoList,
}

var (
	todoListSort     string
	todoListThen     string
	todoListPage     int
	todoListDone     bool
	todoListUndone   bool
	todoListName     string
	todoListPriority string
	todoListJSON     bool
)

func init() {
	rootCmd.AddCommand(todoCmd)
	todoCmd.AddCommand(todoCreateCmd, todoImportCmd, todoUpdateCmd, todoDoneCmd, todoUndoneCmd,
		todoDeleteCmd, todoShowCmd, todoListCmd)
	addTaskFlagAliases(todoCreateCmd, todoUpdateCmd, todoListCmd)

	// todo create flags
	todoCreateCmd.Flags().StringVarP(&todoCreatePriority, "priority", "p", "low", "Priority (low, medium, high or 0-2)")
	todoCreateCmd.Flags().StringVar(&todoCreateDue, "due", "", "Due date (2006-01-02, 2006-01-02T15:04 or RFC 3339)")

	// todo update flags
	todoUpdateCmd.Flags().StringVar(&todoUpdateName, "name", "", "New name")
	todoUpdateCmd.Flags().StringVarP(&todoUpdatePriority, "priority", "p", "", "New priority (low, medium, high or 0-2)")
	todoUpdateCmd.Flags().StringVar(&todoUpdateDue, "due", "", "New due date")
	todoUpdateCmd.Flags().BoolVar(&todoUpdateNoDue, "no-due", false, "Clear the due date")
	todoUpdateCmd.MarkFlagsMutuallyExclusive("due", "no-due")

	// todo show flags
	todoShowCmd.Flags().BoolVar(&todoShowJSON, "json", false, "Output as JSON")

	// todo list flags
	todoListCmd.Flags().StringVar(&todoListSort, "sort", "", "Sort by priority or dueDate (default: creation order)")
	todoListCmd.Flags().StringVar(&todoListThen, "then", "", "With --sort priority, break ties by dueDate")
	todoListCmd.Flags().IntVar(&todoListPage, "page", 1, "Page to show (10 tasks per page)")
	todoListCmd.Flags().BoolVar(&todoListDone, "done", false, "Only show done tasks")
	todoListCmd.Flags().BoolVar(&todoListUndone, "undone", false, "Only show tasks that are not done")
	todoListCmd.Flags().StringVar(&todoListName, "name", "", "Filter by name substring (case-insensitive)")
	todoListCmd.Flags().StringVarP(&todoListPriority, "priority", "p", "", "Filter by priority")
	todoListCmd.Flags().BoolVar(&todoListJSON, "json", false, "Output as JSON")
	todoListCmd.MarkFlagsMutuallyExclusive("done", "undone")
}

func runTodoCreate(cmd *cobra.Command, args []string) error {
	priority, err := task.ParsePriority(todoCreatePriority)
	if err != nil {
		return err
	}
	due, err := parseDueFlag(todoCreateDue)
	if err != nil {
		return err
	}

	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	id, err := client.Create(cmd.Context(), task.Task{
		Name:     args[0],
		Priority: priority,
		DueDate:  due,
	})
	if err != nil {
		return err
	}

	styler := ui.NewStyler(cmd.OutOrStdout())
	fmt.Fprintf(cmd.OutOrStdout(), "Created task %s: %s\n", styler.ID(formatTaskID(id)), args[0])
	return nil
}

func runTodoImport(cmd *cobra.Command, args []string) error {
	var input io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open import file: %w", err)
		}
		defer file.Close()
		input = file
	}

	tasks, err := parseImport(input)
	if err != nil {
		return err
	}

	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	created, batchErr := client.CreateBatch(cmd.Context(), tasks)

	styler := ui.NewStyler(cmd.OutOrStdout())
	for _, item := range created {
		fmt.Fprintf(cmd.OutOrStdout(), "Created task %s: %s\n", styler.ID(formatTaskID(item.ID)), item.Name)
	}
	if batchErr != nil {
		return fmt.Errorf("import stopped after %d of %d tasks: %w", len(created), len(tasks), batchErr)
	}
	return nil
}

func runTodoUpdate(cmd *cobra.Command, args []string) error {
	changed, err := requireChangedFlag(cmd, "update", "name", "priority", "due", "no-due")
	if err != nil {
		return err
	}
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	existing, err := client.Get(cmd.Context(), id)
	if err != nil {
		return err
	}

	changes := task.Changes{
		Name:     existing.Name,
		Priority: existing.Priority,
		DueDate:  existing.DueDate,
	}
	if cmd.Flags().Changed("name") {
		changes.Name = todoUpdateName
	}
	if cmd.Flags().Changed("priority") {
		priority, err := task.ParsePriority(todoUpdatePriority)
		if err != nil {
			return err
		}
		changes.Priority = priority
	}
	if cmd.Flags().Changed("due") {
		due, err := parseDueFlag(todoUpdateDue)
		if err != nil {
			return err
		}
		changes.DueDate = due
	}
	if todoUpdateNoDue {
		changes.DueDate = nil
	}
	if !slices.Contains(changed, "due") && !slices.Contains(changed, "no-due") {
		if err := checkKeptDueDate(existing, time.Now()); err != nil {
			return err
		}
	}

	if err := client.Update(cmd.Context(), id, changes); err != nil {
		return err
	}
	styler := ui.NewStyler(cmd.OutOrStdout())
	fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s: %s\n", styler.ID(formatTaskID(id)), changes.Name)
	return nil
}

func runTodoDone(cmd *cobra.Command, args []string) error {
	return forEachTaskID(cmd, args, "Marked task %s done\n", func(client *server.Client, id int64) error {
		return client.MarkDone(cmd.Context(), id)
	})
}

func runTodoUndone(cmd *cobra.Command, args []string) error {
	return forEachTaskID(cmd, args, "Marked task %s not done\n", func(client *server.Client, id int64) error {
		return client.MarkUndone(cmd.Context(), id)
	})
}

func runTodoDelete(cmd *cobra.Command, args []string) error {
	return forEachTaskID(cmd, args, "Deleted task %s\n", func(client *server.Client, id int64) error {
		return client.Delete(cmd.Context(), id)
	})
}

// forEachTaskID parses every id before calling fn so a typo does not leave a
// partial change behind.
func forEachTaskID(cmd *cobra.Command, args []string, format string, fn func(*server.Client, int64) error) error {
	ids := make([]int64, len(args))
	for i, arg := range args {
		id, err := parseTaskID(arg)
		if err != nil {
			return err
		}
		ids[i] = id
	}

	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	styler := ui.NewStyler(cmd.OutOrStdout())
	for _, id := range ids {
		if err := fn(client, id); err != nil {
			return fmt.Errorf("task %d: %w", id, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), format, styler.ID(formatTaskID(id)))
	}
	return nil
}

func runTodoShow(cmd *cobra.Command, args []string) error {
	ids := make([]int64, len(args))
	for i, arg := range args {
		id, err := parseTaskID(arg)
		if err != nil {
			return err
		}
		ids[i] = id
	}

	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	items := make([]task.Task, 0, len(ids))
	for _, id := range ids {
		item, err := client.Get(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("task %d: %w", id, err)
		}
		items = append(items, item)
	}

	if todoShowJSON {
		return encodeJSON(cmd.OutOrStdout(), items)
	}

	styler := ui.NewStyler(cmd.OutOrStdout())
	now := time.Now()
	for i, item := range items {
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		fmt.Fprint(cmd.OutOrStdout(), formatTaskDetail(item, styler, now))
	}
	return nil
}

func runTodoList(cmd *cobra.Command, args []string) error {
	query, err := todoListQuery(cmd)
	if err != nil {
		return err
	}

	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	result, err := client.List(cmd.Context(), query)
	if err != nil {
		return err
	}

	if todoListJSON {
		return encodeJSON(cmd.OutOrStdout(), result.Tasks)
	}
	if result.Empty() {
		fmt.Fprintln(cmd.OutOrStdout(), "No tasks found")
		return nil
	}

	styler := ui.NewStyler(cmd.OutOrStdout())
	fmt.Fprint(cmd.OutOrStdout(), formatTaskTable(result.Tasks, styler, time.Now()))
	fmt.Fprintln(cmd.OutOrStdout(), styler.Muted(fmt.Sprintf("page %d of %d", result.CurrentPage, result.TotalPages)))
	return nil
}

var errInvalidSortKey = errors.New("invalid sort key")

func todoListQuery(cmd *cobra.Command) (task.Query, error) {
	if err := checkSortKey(todoListSort, task.SortPriority, task.SortDueDate); err != nil {
		return task.Query{}, fmt.Errorf("--sort: %w", err)
	}
	if err := checkSortKey(todoListThen, task.SortDueDate); err != nil {
		return task.Query{}, fmt.Errorf("--then: %w", err)
	}

	query := task.Query{
		SortBy:    todoListSort,
		SortOrder: todoListThen,
		Page:      todoListPage,
		Name:      todoListName,
	}
	switch {
	case todoListDone:
		query.Done = boolPtr(true)
	case todoListUndone:
		query.Done = boolPtr(false)
	}
	if cmd.Flags().Changed("priority") {
		priority, err := task.ParsePriority(todoListPriority)
		if err != nil {
			return task.Query{}, err
		}
		query.Priority = task.PriorityPtr(priority)
	}
	return query, nil
}

// checkSortKey accepts an empty key or one of valid, ignoring case.
func checkSortKey(key string, valid ...string) error {
	if key == "" {
		return nil
	}
	for _, candidate := range valid {
		if strings.EqualFold(key, candidate) {
			return nil
		}
	}
	return validation.FormatInvalidValueError(errInvalidSortKey, key, valid)
}

func parseDueFlag(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	due, err := server.ParseTimestamp(value)
	if err != nil {
		return nil, err
	}
	return &due, nil
}

// checkKeptDueDate reports an overdue task whose due date an update would
// resend unchanged.
func checkKeptDueDate(existing task.Task, now time.Time) error {
	if existing.DueDate == nil || !existing.DueDate.Before(now) {
		return nil
	}
	return fmt.Errorf("task %d is overdue (due %s); pass --due or --no-due to update it",
		existing.ID, existing.DueDate.Format(time.RFC3339))
}

func parseTaskID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", value)
	}
	return id, nil
}

func formatTaskID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func boolPtr(value bool) *bool {
	return &value
}
