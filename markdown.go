package main

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// mdRenderer renders message text for the terminal. Markdown goes through a
// glamour renderer cached per width; plain text is only word-wrapped.
type mdRenderer struct {
	hasDarkBg bool
	renderer  *glamour.TermRenderer
	width     int
}

func newMDRenderer(hasDarkBg bool) *mdRenderer {
	return &mdRenderer{hasDarkBg: hasDarkBg}
}

// styleConfig picks the glamour style for the output and zeroes
// Document.Margin so the bubble around the text handles its own padding.
// Glamour never passes raw HTML through, which keeps agent text inert.
func (r *mdRenderer) styleConfig() ansi.StyleConfig {
	var style ansi.StyleConfig
	switch {
	case !term.IsTerminal(int(os.Stdout.Fd())):
		style = styles.NoTTYStyleConfig
	case r.hasDarkBg:
		style = styles.DarkStyleConfig
	default:
		style = styles.LightStyleConfig
	}
	style.Document.Margin = uintPtr(0)
	return style
}

func uintPtr(v uint) *uint { return &v }

// render returns content wrapped to width, as markdown when markdown is set.
func (r *mdRenderer) render(content string, width int, markdown bool) string {
	if markdown {
		return r.renderMarkdown(content, width)
	}
	return renderPlain(content, width)
}

// renderMarkdown renders markdown content for terminal display.
// Returns the plain-wrapped content on error. Recreates the renderer if
// width changed.
func (r *mdRenderer) renderMarkdown(content string, width int) string {
	if width <= 0 {
		return content
	}
	if r.renderer == nil || r.width != width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStyles(r.styleConfig()),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return renderPlain(content, width)
		}
		r.renderer = renderer
		r.width = width
	}
	out, err := r.renderer.Render(content)
	if err != nil {
		return renderPlain(content, width)
	}
	return strings.Trim(out, "\n")
}

// renderPlain word-wraps content to width without interpreting it. Lines
// keep their natural length so short messages get narrow bubbles.
func renderPlain(content string, width int) string {
	if width <= 0 {
		return content
	}
	wrapped := lipgloss.NewStyle().Width(width).Render(content)
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}
