package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Glamour renderers are expensive to build, so they are cached per style and width
var rendererCache sync.Map // map[rendererKey]*glamour.TermRenderer

type rendererKey struct {
	style string
	width int
}

func getRenderer(style string, width int) (*glamour.TermRenderer, error) {
	k := rendererKey{style: style, width: width}
	if cached, ok := rendererCache.Load(k); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	rendererCache.Store(k, renderer)
	return renderer, nil
}

// renderMarkdown renders a task description, falling back to the raw text
func renderMarkdown(text, style string, width int) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	renderer, err := getRenderer(style, max(width, 20))
	if err != nil {
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(out)
}
