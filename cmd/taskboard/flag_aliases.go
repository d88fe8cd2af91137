package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// taskFlagAliases maps alternate spellings of task flags to their canonical
// names.
var taskFlagAliases = map[string]string{
	"prio":     "priority",
	"due-date": "due",
}

func addTaskFlagAliases(cmds ...*cobra.Command) {
	for _, cmd := range cmds {
		setFlagAliases(cmd.Flags(), taskFlagAliases)
	}
}

// setFlagAliases makes flags accept underscores in place of dashes and
// resolves aliases to their canonical flag. Aliases stay out of usage output.
func setFlagAliases(flags *pflag.FlagSet, aliases map[string]string) {
	normalize := flags.GetNormalizeFunc()
	flags.SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		name = strings.ReplaceAll(name, "_", "-")
		if canonical, ok := aliases[name]; ok {
			name = canonical
		}
		return normalize(f, name)
	})
}
