package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/amonks/taskboard/task"
)

// Styler colours CLI output. A Styler for a writer that is not a terminal
// returns text unchanged.
type Styler struct {
	enabled bool

	header   lipgloss.Style
	id       lipgloss.Style
	done     lipgloss.Style
	muted    lipgloss.Style
	overdue  lipgloss.Style
	priority map[task.Priority]lipgloss.Style
}

// NewStyler returns a Styler for out.
func NewStyler(out io.Writer) *Styler {
	renderer := lipgloss.NewRenderer(out)
	return &Styler{
		enabled: ColorEnabled(out),
		header:  renderer.NewStyle().Bold(true),
		id:      renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		done:    renderer.NewStyle().Foreground(lipgloss.Color("2")),
		muted:   renderer.NewStyle().Foreground(lipgloss.Color("244")),
		overdue: renderer.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		priority: map[task.Priority]lipgloss.Style{
			task.PriorityHigh:   renderer.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
			task.PriorityMedium: renderer.NewStyle().Foreground(lipgloss.Color("3")),
			task.PriorityLow:    renderer.NewStyle().Foreground(lipgloss.Color("244")),
		},
	}
}

// ColorEnabled reports whether ANSI styling should be written to out.
// NO_COLOR and TERM=dumb disable it; otherwise out must be a terminal.
func ColorEnabled(out io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// Enabled reports whether the styler emits ANSI codes.
func (s *Styler) Enabled() bool {
	return s.enabled
}

// Header styles a table header or section title.
func (s *Styler) Header(value string) string {
	return s.render(s.header, value)
}

// ID styles a task id.
func (s *Styler) ID(value string) string {
	return s.render(s.id, value)
}

// Priority renders a priority name in its colour.
func (s *Styler) Priority(p task.Priority) string {
	style, ok := s.priority[p]
	if !ok {
		return p.String()
	}
	return s.render(style, p.String())
}

// Status renders "done" or "open".
func (s *Styler) Status(done bool) string {
	if done {
		return s.render(s.done, "done")
	}
	return s.render(s.muted, "open")
}

// Muted styles secondary text.
func (s *Styler) Muted(value string) string {
	return s.render(s.muted, value)
}

// Overdue styles text that needs attention.
func (s *Styler) Overdue(value string) string {
	return s.render(s.overdue, value)
}

func (s *Styler) render(style lipgloss.Style, value string) string {
	if !s.enabled {
		return value
	}
	return style.Render(value)
}

// TerminalWidth returns the column count of out when it is a terminal, or
// fallback otherwise.
func TerminalWidth(out io.Writer, fallback int) int {
	file, ok := out.(*os.File)
	if !ok {
		return fallback
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
