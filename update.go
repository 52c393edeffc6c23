package main

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
)

// updateList handles key events in the message list view.
func (m model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		m.ensureCursorVisible()
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		m.ensureCursorVisible()
	case "G":
		if len(m.rows) > 0 {
			m.cursor = len(m.rows) - 1
			m.ensureCursorVisible()
		}
	case "g":
		m.cursor = 0
		m.scroll = 0
	case "tab":
		// Toggle expand/collapse of a long text message.
		if sel, ok := m.selected(); ok && !sel.IsSystem() {
			m.expanded[sel.ID] = !m.expanded[sel.ID]
		}
		m.computeLineOffsets()
		m.clampListScroll()
		m.ensureCursorVisible()
	case "e":
		for _, r := range m.rows {
			m.expanded[r.msg.ID] = true
		}
		m.computeLineOffsets()
		m.ensureCursorVisible()
	case "c":
		clear(m.expanded)
		m.computeLineOffsets()
		m.ensureCursorVisible()
	case "enter":
		if len(m.rows) > 0 {
			m.view = viewDetail
			m.detailScroll = 0
			m.computeDetailMaxScroll()
		}
	case "J", "ctrl+d":
		// Scroll viewport down (half page)
		m.scroll += m.height / 2
		m.clampListScroll()
	case "K", "ctrl+u":
		// Scroll viewport up (half page)
		m.scroll -= m.height / 2
		if m.scroll < 0 {
			m.scroll = 0
		}
	default:
		if m.svc != nil {
			return m.updateDemoKeys(msg)
		}
	}
	return m, nil
}

// updateDemoKeys handles the list keys that only make sense against the
// demo service: composing, quick replies, retry, load more and scenarios.
func (m model) updateDemoKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch s := msg.String(); s {
	case "i", "a":
		m.composing = true
		m.ensureCursorVisible()
	case "r":
		return m.retrySelected()
	case "f":
		wasAtEnd := m.atEnd()
		failed := m.svc.SimulateFailedMessage()
		m.announcer.Message(failed)
		m.syncDemo(wasAtEnd)
	case "L":
		m.loadMore()
	case "S":
		return m.submitMultipleChoice()
	case "s":
		m.openPicker()
	default:
		if len(s) == 1 && unicode.IsDigit(rune(s[0])) && s != "0" {
			return m.chooseQuickReply(int(s[0] - '1'))
		}
	}
	return m, nil
}

// updateDetail handles key events in the full-screen detail view.
func (m model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "escape", "backspace", "enter":
		m.view = viewList
		m.detailScroll = 0
	case "j", "down":
		m.detailScroll++
	case "k", "up":
		m.detailScroll--
	case "J", "ctrl+d":
		m.detailScroll += m.height / 2
	case "K", "ctrl+u":
		m.detailScroll -= m.height / 2
	case "G":
		m.detailScroll = m.detailMaxScroll
	case "g":
		m.detailScroll = 0
	case "ctrl+c":
		return m, tea.Quit
	}
	// Clamp to valid range after any modification
	if m.detailScroll > m.detailMaxScroll {
		m.detailScroll = m.detailMaxScroll
	}
	if m.detailScroll < 0 {
		m.detailScroll = 0
	}
	return m, nil
}

// updateListMouse handles mouse events in the list view.
func (m model) updateListMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.scroll > 0 {
			m.scroll -= 3
			if m.scroll < 0 {
				m.scroll = 0
			}
		}
	case tea.MouseButtonWheelDown:
		m.scroll += 3
		m.clampListScroll()
	}
	return m, nil
}

// updateDetailMouse handles mouse events in the detail view.
func (m model) updateDetailMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.detailScroll > 0 {
			m.detailScroll -= 3
			if m.detailScroll < 0 {
				m.detailScroll = 0
			}
		}
	case tea.MouseButtonWheelDown:
		m.detailScroll += 3
		if m.detailScroll > m.detailMaxScroll {
			m.detailScroll = m.detailMaxScroll
		}
	}
	return m, nil
}
