package main

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kylesnowschwartz/support-chat/chat"
	"github.com/kylesnowschwartz/support-chat/demo"
)

// openPicker shows the scenario picker with the current scenario selected.
func (m *model) openPicker() {
	m.view = viewPicker
	m.pickerCursor = max(slices.Index(demo.Scenarios, m.scenario), 0)
}

// updatePicker handles key events in the scenario picker view.
func (m model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "escape", "s":
		m.view = viewList
	case "ctrl+c":
		return m, tea.Quit
	case "j", "down":
		if m.pickerCursor < len(demo.Scenarios)-1 {
			m.pickerCursor++
		}
	case "k", "up":
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}
	case "G":
		m.pickerCursor = len(demo.Scenarios) - 1
	case "g":
		m.pickerCursor = 0
	case "enter":
		if err := m.loadScenario(demo.Scenarios[m.pickerCursor]); err != nil {
			m.lastErr = err
		}
		m.view = viewList
	}
	return m, nil
}

// loadScenario swaps the conversation for another demo scenario. Steps
// still pending from the old conversation are dropped.
func (m *model) loadScenario(sc demo.Scenario) error {
	if err := m.svc.LoadScenario(sc); err != nil {
		return err
	}
	m.scenario = sc
	m.generation++
	m.composing = false
	m.input = nil
	m.lastErr = nil
	clear(m.expanded)
	clear(m.qrSelected)
	m.announcer.ClearTyping()

	m.scroll = 0
	m.setMessages(m.svc.Messages())
	m.cursor = max(len(m.rows)-1, 0)
	m.ensureCursorVisible()
	m.live.announce(fmt.Sprintf("Loaded %s scenario, %s", sc, formatCount(len(m.messages), "message")), chat.Polite)
	return nil
}

// viewPicker renders the scenario list.
func (m model) viewPicker() string {
	width := m.clampWidth()
	selectedStyle := lipgloss.NewStyle().Background(ColorPickerSelectedBg).Width(width)

	lines := []string{StylePrimaryBold.Render("Demo scenarios"), ""}
	for i, sc := range demo.Scenarios {
		marker := "  "
		if i == m.pickerCursor {
			marker = IconCursor.Render() + " "
		}
		name := StylePrimaryBold.Render(fmt.Sprintf("%-14s", sc))
		if sc == m.scenario {
			name = StyleAccentBold.Render(fmt.Sprintf("%-14s", sc))
		}
		line := marker + name + "  " + StyleDim.Render(scenarioDescriptions[sc])
		if i == m.pickerCursor {
			line = selectedStyle.Render(line)
		}
		lines = append(lines, line)
	}

	viewHeight := m.detailViewHeight()
	if len(lines) > viewHeight {
		lines = lines[:viewHeight]
	}
	for len(lines) < viewHeight {
		lines = append(lines, "")
	}

	status := m.renderStatusBar(
		"j/k", "nav",
		"enter", "load",
		"q", "back",
	)
	return strings.Join(lines, "\n") + "\n" + status
}
