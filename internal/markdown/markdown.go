// Package markdown builds small markdown reports and renders them for the
// terminal.
package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"

	internalstrings "github.com/amonks/taskboard/internal/strings"
)

type renderer interface {
	Render(string) (string, error)
}

var (
	rendererMu sync.Mutex
	renderers  = map[int]renderer{}
)

// Render formats markdown text for terminal output. When rendering fails or
// panics the trimmed markdown source is returned instead.
func Render(width, indent int, input []byte) []byte {
	value := internalstrings.TrimTrailingNewlines(internalstrings.NormalizeNewlines(string(input)))
	if strings.TrimSpace(value) == "" {
		return nil
	}
	width = max(width, 1)
	indent = max(indent, 0)
	renderWidth := max(width-indent, 1)

	rendered := safeRender(markdownRenderer(renderWidth), value)
	rendered = internalstrings.TrimTrailingNewlines(rendered)
	if strings.TrimSpace(rendered) == "" {
		return nil
	}
	return []byte(internalstrings.IndentBlock(rendered, indent))
}

func safeRender(r renderer, value string) (out string) {
	if r == nil {
		return value
	}
	defer func() {
		if recover() != nil {
			out = value
		}
	}()
	formatted, err := r.Render(value)
	if err != nil {
		return value
	}
	return formatted
}

func markdownRenderer(width int) renderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if cached, ok := renderers[width]; ok {
		return cached
	}
	style := styles.ASCIIStyleConfig
	style.Item.BlockPrefix = "- "
	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[width] = created
	return created
}
