package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// clampWidth returns m.width capped at maxContentWidth.
func (m model) clampWidth() int {
	if m.width > maxContentWidth {
		return maxContentWidth
	}
	return m.width
}

// listViewHeight is the number of lines available to the message list:
// the terminal minus the status bar and whatever the footer (typing
// indicator, quick replies, composer, announcement) currently needs.
func (m model) listViewHeight() int {
	h := m.height - statusBarHeight - m.footerHeight()
	if h < 1 {
		h = 1
	}
	return h
}

// detailViewHeight is the number of lines available to the detail view.
func (m model) detailViewHeight() int {
	h := m.height - statusBarHeight
	if h < 1 {
		h = 1
	}
	return h
}

// footerHeight returns the rendered height of the footer, 0 when empty.
func (m model) footerHeight() int {
	footer := m.renderFooter(m.clampWidth())
	if footer == "" {
		return 0
	}
	return lipgloss.Height(footer)
}

// computeLineOffsets calculates the starting line of each row in the
// rendered output. Must mirror viewList()'s rendering to keep scroll accurate.
func (m *model) computeLineOffsets() {
	if m.width == 0 || len(m.rows) == 0 {
		m.lineOffsets = nil
		m.messageLines = nil
		m.totalRenderedLines = 0
		return
	}
	width := m.clampWidth()

	m.lineOffsets = make([]int, len(m.rows))
	m.messageLines = make([]int, len(m.rows))
	currentLine := 0
	for i, r := range m.rows {
		m.lineOffsets[i] = currentLine
		rendered := m.renderRow(r, width, false, m.expanded[r.msg.ID])
		m.messageLines[i] = lipgloss.Height(rendered)
		currentLine += m.messageLines[i]
	}

	last := len(m.rows) - 1
	m.totalRenderedLines = m.lineOffsets[last] + m.messageLines[last]
}

// ensureCursorVisible adjusts scroll so the cursor's row is within
// the visible viewport.
func (m *model) ensureCursorVisible() {
	if len(m.lineOffsets) == 0 || m.height == 0 || m.cursor >= len(m.lineOffsets) {
		return
	}
	viewHeight := m.listViewHeight()

	cursorStart := m.lineOffsets[m.cursor]
	cursorEnd := cursorStart + m.messageLines[m.cursor] - 1

	if cursorStart < m.scroll {
		m.scroll = cursorStart
	}
	if cursorEnd >= m.scroll+viewHeight {
		m.scroll = cursorEnd - viewHeight + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// clampListScroll caps the list scroll offset so it can't exceed the content.
func (m *model) clampListScroll() {
	maxScroll := m.totalRenderedLines - m.listViewHeight()
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// computeDetailMaxScroll caches the maximum scroll offset for the detail view.
// Called when entering detail view and on window resize.
func (m *model) computeDetailMaxScroll() {
	if m.width == 0 || m.height == 0 || m.cursor >= len(m.rows) {
		m.detailMaxScroll = 0
		return
	}

	content := m.renderDetailContent(m.rows[m.cursor].msg, m.clampWidth())
	// Trim trailing newlines that lipgloss may add (phantom blank lines).
	trimmed := strings.TrimRight(content, "\n")
	totalLines := strings.Count(trimmed, "\n") + 1

	m.detailMaxScroll = totalLines - m.detailViewHeight()
	if m.detailMaxScroll < 0 {
		m.detailMaxScroll = 0
	}
}
