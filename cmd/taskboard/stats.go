package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amonks/taskboard/internal/markdown"
	"github.com/amonks/taskboard/internal/ui"
	"github.com/amonks/taskboard/task"
)

var statsCmd = &cobra.Command{
	Use:     "stats",
	Short:   "Show average completion times",
	Aliases: []string{"avg-time"},
	Args:    cobra.NoArgs,
	RunE:    runStats,
}

var (
	statsJSON     bool
	statsMarkdown bool
)

const statsFallbackWidth = 80

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
	statsCmd.Flags().BoolVar(&statsMarkdown, "markdown", false, "Print the report as markdown source")
	statsCmd.MarkFlagsMutuallyExclusive("json", "markdown")
}

func runStats(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	averages, err := client.Averages(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if statsJSON {
		return encodeJSON(out, averages)
	}

	report := statsReport(averages)
	if statsMarkdown {
		_, err := fmt.Fprint(out, report.String())
		return err
	}
	_, err = fmt.Fprintln(out, string(report.Render(ui.TerminalWidth(out, statsFallbackWidth))))
	return err
}

func statsReport(averages task.Averages) *markdown.Report {
	report := &markdown.Report{}
	report.Heading(1, "Average completion time")
	report.Table([]string{"Priority", "Average"}, [][]string{
		{"all", ui.FormatMinutes(averages.Total)},
		{task.PriorityHigh.String(), ui.FormatMinutes(averages.High)},
		{task.PriorityMedium.String(), ui.FormatMinutes(averages.Medium)},
		{task.PriorityLow.String(), ui.FormatMinutes(averages.Low)},
	})
	report.Paragraph("Measured from creation to completion over tasks that are currently done.")
	return report
}
