package markdown

import (
	"fmt"
	"strings"

	internalstrings "github.com/amonks/taskboard/internal/strings"
)

// Report accumulates markdown blocks separated by blank lines.
type Report struct {
	blocks []string
}

// Heading adds a heading at the given level (1-6).
func (r *Report) Heading(level int, text string) {
	level = min(max(level, 1), 6)
	r.blocks = append(r.blocks, strings.Repeat("#", level)+" "+escapeInline(text))
}

// Paragraph adds a paragraph of plain text.
func (r *Report) Paragraph(text string) {
	r.blocks = append(r.blocks, escapeInline(text))
}

// List adds a bullet list.
func (r *Report) List(items ...string) {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + escapeInline(item)
	}
	r.blocks = append(r.blocks, strings.Join(lines, "\n"))
}

// Table adds a table. Rows shorter than headers are padded with empty cells.
func (r *Report) Table(headers []string, rows [][]string) {
	var builder strings.Builder
	writeRow := func(cells []string) {
		builder.WriteString("|")
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = escapeCell(cells[i])
			}
			fmt.Fprintf(&builder, " %s |", cell)
		}
		builder.WriteString("\n")
	}
	writeRow(headers)
	builder.WriteString("|")
	for range headers {
		builder.WriteString(" --- |")
	}
	builder.WriteString("\n")
	for _, row := range rows {
		writeRow(row)
	}
	r.blocks = append(r.blocks, strings.TrimRight(builder.String(), "\n"))
}

// String returns the markdown source.
func (r *Report) String() string {
	if len(r.blocks) == 0 {
		return ""
	}
	return strings.Join(r.blocks, "\n\n") + "\n"
}

// Render renders the report for a terminal of the given width.
func (r *Report) Render(width int) []byte {
	return Render(width, 0, []byte(r.String()))
}

var inlineEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
)

func escapeInline(value string) string {
	value = internalstrings.NormalizeWhitespace(value)
	return inlineEscaper.Replace(value)
}

func escapeCell(value string) string {
	return strings.ReplaceAll(escapeInline(value), "|", `\|`)
}
