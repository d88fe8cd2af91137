package main

import (
	"reflect"
	"testing"

	"github.com/spf13/cobra"
)

func newFlagTestCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "example"}
	cmd.Flags().String("name", "", "")
	cmd.Flags().String("priority", "", "")
	cmd.Flags().Bool("no-due", false, "")
	return cmd
}

func TestChangedFlags(t *testing.T) {
	cmd := newFlagTestCommand()

	if got := changedFlags(cmd, "name", "priority", "no-due"); len(got) != 0 {
		t.Fatalf("expected no changed flags, got %v", got)
	}

	if err := cmd.Flags().Set("no-due", "true"); err != nil {
		t.Fatalf("set no-due: %v", err)
	}
	if err := cmd.Flags().Set("name", "Renamed"); err != nil {
		t.Fatalf("set name: %v", err)
	}

	got := changedFlags(cmd, "name", "priority", "no-due")
	want := []string{"name", "no-due"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRequireChangedFlag(t *testing.T) {
	cmd := newFlagTestCommand()

	_, err := requireChangedFlag(cmd, "update", "name", "priority", "no-due")
	if err == nil {
		t.Fatal("expected error with no flags set")
	}
	want := "nothing to update (use --name, --priority or --no-due)"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}

	if err := cmd.Flags().Set("priority", "high"); err != nil {
		t.Fatalf("set priority: %v", err)
	}
	changed, err := requireChangedFlag(cmd, "update", "name", "priority", "no-due")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !reflect.DeepEqual(changed, []string{"priority"}) {
		t.Fatalf("expected [priority], got %v", changed)
	}
}

func TestJoinOr(t *testing.T) {
	tests := []struct {
		items []string
		want  string
	}{
		{nil, ""},
		{[]string{"--a"}, "--a"},
		{[]string{"--a", "--b"}, "--a or --b"},
		{[]string{"--a", "--b", "--c"}, "--a, --b or --c"},
	}

	for _, tt := range tests {
		if got := joinOr(tt.items); got != tt.want {
			t.Fatalf("joinOr(%v): expected %q, got %q", tt.items, tt.want, got)
		}
	}
}
