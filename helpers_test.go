package main

import (
	"math/rand/v2"
	"strconv"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kylesnowschwartz/support-chat/chat"
	"github.com/kylesnowschwartz/support-chat/config"
	"github.com/kylesnowschwartz/support-chat/demo"
)

// key constructs a tea.KeyMsg from a string like "j", "tab", "enter", "ctrl+c".
// Single-character strings are mapped to KeyRunes; named keys get their
// corresponding KeyType constant.
func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "alt+enter":
		return tea.KeyMsg{Type: tea.KeyEnter, Alt: true}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "esc", "escape":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// mouseScroll constructs a tea.MouseMsg for wheel events.
func mouseScroll(button tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{Button: button}
}

// asModel extracts the model from an Update return value.
// Panics when the type assertion fails, which is a test bug.
func asModel(t tea.Model) model {
	return t.(model)
}

// isQuit returns true when cmd is the Quit command.
func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// fixedNow is the clock every test model runs on: Sunday, June 15 2025, 14:00.
var fixedNow = time.Date(2025, 6, 15, 14, 0, 0, 0, time.Local)

func fixedClock() time.Time { return fixedNow }

func testConfig() config.Config {
	return config.Config{
		DateFormat:     config.DefaultDateFormat,
		TimeFormat:     "HH:mm",
		LabelToday:     "Today",
		LabelYesterday: "Yesterday",
		GroupThreshold: chat.DefaultGroupThreshold,
		CurrentUser:    "user-1",
		LogLevel:       "ERROR",
	}
}

// at returns a time on the fixedNow day.
func at(hour, min int) time.Time {
	return time.Date(2025, 6, 15, hour, min, 0, 0, time.Local)
}

// textMsg builds a read text message. user-1 is "You", anyone else "Sarah".
func textMsg(id, sender string, ts time.Time, text string) chat.Message {
	name := "Sarah"
	if sender == "user-1" {
		name = "You"
	}
	return chat.Message{
		ID:         id,
		Type:       chat.TypeText,
		SenderID:   sender,
		SenderName: name,
		Timestamp:  ts,
		Status:     chat.StatusRead,
		Content:    chat.TextContent{Text: text},
	}
}

func systemMsg(id string, ts time.Time, text string) chat.Message {
	return chat.Message{
		ID:         id,
		Type:       chat.TypeSystem,
		SenderID:   "system",
		SenderName: "System",
		Timestamp:  ts,
		Status:     chat.StatusRead,
		Content:    chat.SystemContent{Text: text},
	}
}

// conversation spans two days: one agent message yesterday, then an agent
// message, two user messages and a system notice today.
func conversation() []chat.Message {
	return []chat.Message{
		textMsg("y1", "agent-1", time.Date(2025, 6, 14, 9, 0, 0, 0, time.Local), "Good morning"),
		textMsg("a1", "agent-1", at(12, 0), "Hello! How can I help?"),
		textMsg("u1", "user-1", at(12, 1), "Hi"),
		textMsg("u2", "user-1", at(12, 2), "I have a question"),
		systemMsg("s1", at(12, 3), "Agent joined"),
	}
}

// testModel returns a log-mode model over msgs at width=120, height=40,
// with the cursor on the last message.
func testModel(msgs ...chat.Message) model {
	m := initialModel(testConfig(), nil, true)
	m.now = fixedClock
	m.width = 120
	m.height = 40
	m.setMessages(msgs)
	m.cursor = max(len(m.rows)-1, 0)
	return m
}

// demoModel returns a demo-mode model on a deterministic service loaded
// with scenario sc. New message ids are "new-1", "new-2", ...
func demoModel(t *testing.T, sc demo.Scenario) model {
	t.Helper()
	n := 0
	svc := demo.New(
		demo.WithClock(fixedClock),
		demo.WithRand(rand.New(rand.NewPCG(1, 2))),
		demo.WithIDs(func() string {
			n++
			return "new-" + strconv.Itoa(n)
		}),
	)
	if err := svc.LoadScenario(sc); err != nil {
		t.Fatalf("LoadScenario(%s): %v", sc, err)
	}
	m := newDemoModel(testConfig(), svc, sc, true)
	m.now = fixedClock
	m.width = 120
	m.height = 40
	m.setMessages(svc.Messages())
	m.cursor = max(len(m.rows)-1, 0)
	return m
}

// runAll plays steps through the model's update path, ignoring delays.
func runAll(m model, steps []demo.Step) model {
	for len(steps) > 0 {
		result, _ := m.runStep(stepMsg{steps: steps, generation: m.generation})
		m = asModel(result)
		steps = steps[1:]
	}
	return m
}

func lastMessage(m model) chat.Message {
	return m.messages[len(m.messages)-1]
}
