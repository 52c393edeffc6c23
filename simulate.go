package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kylesnowschwartz/support-chat/chat"
	"github.com/kylesnowschwartz/support-chat/demo"
)

// stepMsg fires when the first of steps is due. generation ties the chain
// to the conversation that started it; loading another scenario orphans it.
type stepMsg struct {
	steps      []demo.Step
	generation int
}

// runSteps schedules the first step; each step schedules the next one once
// it has run, so delays add up.
func runSteps(steps []demo.Step, generation int) tea.Cmd {
	if len(steps) == 0 {
		return nil
	}
	return tea.Tick(steps[0].Delay, func(time.Time) tea.Msg {
		return stepMsg{steps: steps, generation: generation}
	})
}

// runStep applies a due step on the update loop, where the service lives.
func (m model) runStep(msg stepMsg) (tea.Model, tea.Cmd) {
	if m.svc == nil || len(msg.steps) == 0 || msg.generation != m.generation {
		return m, nil
	}
	wasAtEnd := m.atEnd()
	m.applyEvents(msg.steps[0].Run())
	m.syncDemo(wasAtEnd)
	return m, runSteps(msg.steps[1:], msg.generation)
}

// applyEvents announces what a step changed.
func (m *model) applyEvents(events []demo.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case demo.EventMessage:
			m.announcer.Message(ev.Message)
		case demo.EventStatus:
			m.announcer.StatusChange(ev.Message, ev.Old)
		case demo.EventTyping:
			if ev.Typing != nil {
				m.announcer.Typing(*ev.Typing)
			} else {
				m.announcer.ClearTyping()
			}
		case demo.EventQuickReply:
			clear(m.qrSelected)
		}
	}
}

// syncDemo pulls the service's conversation into the view.
func (m *model) syncDemo(wasAtEnd bool) {
	m.setMessages(m.svc.Messages())
	m.followTail(wasAtEnd)
}

// sendDraft posts the composer contents. "/attach <path>" sends a file
// instead of text.
func (m model) sendDraft() (tea.Model, tea.Cmd) {
	text, attachments, err := parseDraft(string(m.input))
	if err != nil {
		m.lastErr = err
		return m, nil
	}
	sent, steps := m.svc.Send(text, attachments...)
	if len(sent) == 0 {
		return m, nil
	}
	m.input = nil
	m.lastErr = nil
	m.syncDemo(true)
	return m, runSteps(steps, m.generation)
}

// retrySelected resends the selected message if it failed.
func (m model) retrySelected() (tea.Model, tea.Cmd) {
	sel, ok := m.selected()
	if !ok || sel.Status != chat.StatusFailed {
		return m, nil
	}
	events, steps := m.svc.Retry(sel.ID)
	m.applyEvents(events)
	m.syncDemo(false)
	return m, runSteps(steps, m.generation)
}

// loadMore prepends older history and keeps the cursor on the same message.
func (m *model) loadMore() {
	sel, _ := m.selected()
	older := m.svc.LoadMore()
	m.setMessages(m.svc.Messages())
	if i := rowIndex(m.rows, sel.ID); i >= 0 {
		m.cursor = i
	}
	m.ensureCursorVisible()
	m.live.announce(fmt.Sprintf("Loaded %s", formatCount(len(older), "older message")), chat.Polite)
}

// chooseQuickReply answers the pending quick reply with option i. Multiple
// choice toggles the option instead; S submits the selection.
func (m model) chooseQuickReply(i int) (tea.Model, tea.Cmd) {
	set := m.svc.QuickReplies()
	if set == nil || set.Submitted || i < 0 || i >= len(set.Options) {
		return m, nil
	}
	opt := set.Options[i]
	if opt.Disabled {
		return m, nil
	}
	if set.Type == chat.QuickReplyMultipleChoice {
		m.qrSelected[i] = !m.qrSelected[i]
		if m.qrSelected[i] {
			m.announcer.QuickReplySelection(opt)
		}
		return m, nil
	}
	submit := chat.QuickReplySubmit{Type: set.Type, Value: opt.Value}
	return m.submitQuickReply(submit, []chat.QuickReplyOption{opt})
}

// submitMultipleChoice submits the toggled options, in display order.
func (m model) submitMultipleChoice() (tea.Model, tea.Cmd) {
	set := m.svc.QuickReplies()
	if set == nil || set.Submitted || set.Type != chat.QuickReplyMultipleChoice {
		return m, nil
	}
	var values []any
	var chosen []chat.QuickReplyOption
	for i, opt := range set.Options {
		if m.qrSelected[i] && !opt.Disabled {
			values = append(values, opt.Value)
			chosen = append(chosen, opt)
		}
	}
	if len(chosen) == 0 {
		return m, nil
	}
	submit := chat.QuickReplySubmit{Type: set.Type, Value: values}
	return m.submitQuickReply(submit, chosen)
}

func (m model) submitQuickReply(submit chat.QuickReplySubmit, chosen []chat.QuickReplyOption) (tea.Model, tea.Cmd) {
	m.announcer.QuickReplySubmit(chosen)
	_, steps := m.svc.SubmitQuickReply(submit)
	clear(m.qrSelected)
	m.syncDemo(true)
	return m, runSteps(steps, m.generation)
}
