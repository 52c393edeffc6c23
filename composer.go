package main

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kylesnowschwartz/support-chat/demo"
)

// attachCommand prefixes a draft that sends a file instead of text.
const attachCommand = "/attach"

// updateComposer handles key events while typing a message. Enter sends,
// alt+enter inserts a newline, esc returns to the list.
func (m model) updateComposer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.composing = false
	case tea.KeyEnter:
		if msg.Alt {
			m.input = append(m.input, '\n')
			return m, nil
		}
		return m.sendDraft()
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeyCtrlU:
		m.input = nil
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	}
	return m, nil
}

// parseDraft splits a draft into text and attachments. A draft of the form
// "/attach <path>" becomes a single attachment with no text.
func parseDraft(draft string) (string, []demo.Attachment, error) {
	trimmed := strings.TrimSpace(draft)
	rest, ok := strings.CutPrefix(trimmed, attachCommand)
	if !ok || (rest != "" && rest[0] != ' ') {
		return draft, nil, nil
	}
	path := strings.TrimSpace(rest)
	if path == "" {
		return "", nil, errors.New("usage: /attach <path>")
	}
	a, err := demo.NewAttachment(path)
	if err != nil {
		return "", nil, err
	}
	return "", []demo.Attachment{a}, nil
}
