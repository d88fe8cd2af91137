package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// changedFlags returns the names among flags that were set on the command
// line, in the order given.
func changedFlags(cmd *cobra.Command, flags ...string) []string {
	var changed []string
	for _, flag := range flags {
		if cmd.Flags().Changed(flag) {
			changed = append(changed, flag)
		}
	}
	return changed
}

// requireChangedFlag fails unless at least one of flags was set.
func requireChangedFlag(cmd *cobra.Command, action string, flags ...string) ([]string, error) {
	changed := changedFlags(cmd, flags...)
	if len(changed) > 0 {
		return changed, nil
	}
	names := make([]string, len(flags))
	for i, flag := range flags {
		names[i] = "--" + flag
	}
	return nil, fmt.Errorf("nothing to %s (use %s)", action, joinOr(names))
}

func joinOr(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " or " + items[len(items)-1]
}
