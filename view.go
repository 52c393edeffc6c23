package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// viewList renders the message list (main view).
func (m model) viewList() string {
	width := m.clampWidth()

	var content string
	if len(m.rows) == 0 {
		content = lipgloss.PlaceHorizontal(width, lipgloss.Center, StyleDim.Render("No messages yet"))
	} else {
		rendered := make([]string, len(m.rows))
		for i, r := range m.rows {
			rendered[i] = m.renderRow(r, width, i == m.cursor, m.expanded[r.msg.ID])
		}
		content = strings.Join(rendered, "\n")
	}

	// Simple line-based scroll
	lines := strings.Split(content, "\n")
	if m.scroll > 0 && m.scroll < len(lines) {
		lines = lines[m.scroll:]
	}

	viewHeight := m.listViewHeight()
	if len(lines) > viewHeight {
		lines = lines[:viewHeight]
	}
	// Keep the footer pinned to the bottom of the screen.
	if !m.dumpMode {
		for len(lines) < viewHeight {
			lines = append(lines, "")
		}
	}

	output := strings.Join(lines, "\n")
	if footer := m.renderFooter(width); footer != "" {
		output += "\n" + footer
	}
	return output + "\n" + m.renderStatusBar(m.listHints()...)
}

// listHints returns the key hints for the list status bar.
func (m model) listHints() []string {
	if m.composing {
		return []string{
			"enter", "send",
			"alt+enter", "newline",
			"/attach", "file",
			"esc", "done",
		}
	}
	hints := []string{
		"j/k", "nav",
		"enter", "detail",
		"tab", "expand",
	}
	if m.svc != nil {
		hints = append(hints,
			"i", "write",
			"r", "retry",
			"L", "older",
			"f", "fail",
			"s", "scenarios",
		)
	}
	return append(hints, "q", "quit")
}

// viewDetail renders a single message full-screen with scrolling.
func (m model) viewDetail() string {
	msg, ok := m.selected()
	if !ok {
		return ""
	}
	width := m.clampWidth()

	content := strings.TrimRight(m.renderDetailContent(msg, width), "\n")
	lines := strings.Split(content, "\n")

	scroll := m.detailScroll
	if scroll > len(lines)-1 {
		scroll = len(lines) - 1
	}
	if scroll < 0 {
		scroll = 0
	}
	lines = lines[scroll:]

	viewHeight := m.detailViewHeight()
	if len(lines) > viewHeight {
		lines = lines[:viewHeight]
	}
	for len(lines) < viewHeight {
		lines = append(lines, "")
	}

	status := m.renderStatusBar(
		"j/k", "scroll",
		"G/g", "jump",
		"q", "back",
	)
	return strings.Join(lines, "\n") + "\n" + status
}
