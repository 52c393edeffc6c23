package main

import (
	"strings"
	"testing"

	"github.com/kylesnowschwartz/support-chat/chat"
	"github.com/kylesnowschwartz/support-chat/demo"
)

func TestRunStepsPlaysTheReply(t *testing.T) {
	m := demoModel(t, demo.ScenarioConversation)
	before := len(m.messages)

	_, steps := m.svc.Send("ok")
	m.syncDemo(true)
	sentID := lastMessage(m).ID

	// Deliver: sending -> sent -> delivered.
	m = runAll(m, steps[:2])
	if got := lastMessage(m).Status; got != chat.StatusDelivered {
		t.Fatalf("status after delivery = %s, want delivered", got)
	}
	if m.live.text != "Message delivered" {
		t.Errorf("announcement = %q, want %q", m.live.text, "Message delivered")
	}

	// Agent starts typing.
	m = runAll(m, steps[2:3])
	if m.svc.Typing() == nil {
		t.Fatal("agent not typing")
	}
	if !strings.Contains(m.View(), "Support Agent is typing...") {
		t.Error("view missing typing indicator")
	}
	if m.live.text != "Support Agent is typing" {
		t.Errorf("announcement = %q, want typing", m.live.text)
	}

	// Agent replies and the user's message is read.
	m = runAll(m, steps[3:])
	if len(m.messages) != before+2 {
		t.Fatalf("messages = %d, want %d", len(m.messages), before+2)
	}
	if m.svc.Typing() != nil {
		t.Error("typing indicator still shown after the reply")
	}
	reply := lastMessage(m)
	if reply.SenderID != demo.Agent.ID {
		t.Errorf("last sender = %s, want the agent", reply.SenderID)
	}
	i := rowIndex(m.rows, sentID)
	if i < 0 || m.rows[i].msg.Status != chat.StatusRead {
		t.Errorf("sent message not read")
	}
	if m.live.text != "Message read" {
		t.Errorf("announcement = %q, want %q", m.live.text, "Message read")
	}
	if m.cursor != len(m.rows)-1 {
		t.Errorf("cursor = %d, want to follow the reply to %d", m.cursor, len(m.rows)-1)
	}
}

func TestRunStepIgnoresStaleGeneration(t *testing.T) {
	m := demoModel(t, demo.ScenarioConversation)
	_, steps := m.svc.Send("ok")
	m.syncDemo(true)

	result, cmd := m.runStep(stepMsg{steps: steps, generation: m.generation - 1})
	m = asModel(result)
	if cmd != nil {
		t.Error("stale step scheduled another step")
	}
	if got := lastMessage(m).Status; got != chat.StatusSending {
		t.Errorf("status = %s, want sending", got)
	}
}

func TestRunStepSchedulesTheNext(t *testing.T) {
	m := demoModel(t, demo.ScenarioConversation)
	_, steps := m.svc.Send("ok")

	_, cmd := m.runStep(stepMsg{steps: steps, generation: m.generation})
	if cmd == nil {
		t.Error("expected the next step to be scheduled")
	}
	_, cmd = m.runStep(stepMsg{steps: steps[len(steps)-1:], generation: m.generation})
	if cmd != nil {
		t.Error("last step scheduled another")
	}
}

func TestRunStepWithoutService(t *testing.T) {
	m := testModel(conversation()...)
	steps := []demo.Step{{Run: func() []demo.Event {
		t.Fatal("step ran without a service")
		return nil
	}}}
	if _, cmd := m.runStep(stepMsg{steps: steps}); cmd != nil {
		t.Error("unexpected cmd")
	}
}

func TestSimulateFailedMessage(t *testing.T) {
	m := demoModel(t, demo.ScenarioConversation)
	result, _ := m.Update(key("f"))
	m = asModel(result)

	failed := lastMessage(m)
	if failed.Status != chat.StatusFailed {
		t.Fatalf("status = %s, want failed", failed.Status)
	}
	if m.rows[m.cursor].msg.ID != failed.ID {
		t.Error("cursor did not follow the failed message")
	}
	if !strings.Contains(m.View(), "Failed to send") {
		t.Error("view missing the failure notice")
	}
}

func TestRetrySelected(t *testing.T) {
	t.Run("failed message goes back to sending", func(t *testing.T) {
		m := demoModel(t, demo.ScenarioFailed)
		m.cursor = rowIndex(m.rows, "fail-2")

		result, cmd := m.Update(key("r"))
		m = asModel(result)
		if cmd == nil {
			t.Error("retry returned no step cmd")
		}
		i := rowIndex(m.rows, "fail-2")
		if got := m.rows[i].msg.Status; got != chat.StatusSending {
			t.Errorf("status = %s, want sending", got)
		}
		if m.cursor != i {
			t.Errorf("cursor moved to %d, want %d", m.cursor, i)
		}
		if m.live.text != "Message sending" {
			t.Errorf("announcement = %q", m.live.text)
		}
	})

	t.Run("other messages are left alone", func(t *testing.T) {
		m := demoModel(t, demo.ScenarioFailed)
		m.cursor = rowIndex(m.rows, "fail-4")
		result, cmd := m.Update(key("r"))
		if cmd != nil {
			t.Error("retry of a sending message returned a cmd")
		}
		if got := asModel(result).rows[m.cursor].msg.Status; got != chat.StatusSending {
			t.Errorf("status = %s, want sending", got)
		}
	})
}

func TestLoadMoreKeepsCursor(t *testing.T) {
	m := demoModel(t, demo.ScenarioConversation)
	m.cursor = rowIndex(m.rows, "init-4")

	result, _ := m.Update(key("L"))
	m = asModel(result)
	if len(m.messages) != 26 {
		t.Fatalf("messages = %d, want 26", len(m.messages))
	}
	if got := m.rows[m.cursor].msg.ID; got != "init-4" {
		t.Errorf("cursor on %s, want init-4", got)
	}
	if m.live.text != "Loaded 20 older messages" {
		t.Errorf("announcement = %q", m.live.text)
	}
	if !m.messages[0].Timestamp.Before(m.messages[20].Timestamp) {
		t.Error("older page is not older")
	}
}

func TestQuickReplySingleChoice(t *testing.T) {
	m := demoModel(t, demo.ScenarioQuickReplies)
	if !strings.Contains(m.View(), "Technical Support") {
		t.Fatal("view missing quick reply options")
	}

	result, cmd := m.Update(key("2"))
	m = asModel(result)
	if cmd == nil {
		t.Error("submit returned no step cmd")
	}
	if got := lastMessage(m).Text(); got != "technical" {
		t.Errorf("posted %q, want %q", got, "technical")
	}
	if set := m.svc.QuickReplies(); set == nil || !set.Submitted {
		t.Error("set not marked submitted")
	}
	if m.live.text != "Submitted: Technical Support" || m.live.politeness != chat.Assertive {
		t.Errorf("announcement = %q (%s)", m.live.text, m.live.politeness)
	}
	if strings.Contains(m.View(), "Billing & Payments") {
		t.Error("submitted options still shown")
	}

	t.Run("a submitted set ignores further answers", func(t *testing.T) {
		before := len(m.messages)
		result, cmd := m.Update(key("1"))
		if cmd != nil || len(asModel(result).messages) != before {
			t.Error("answered twice")
		}
	})
}

func TestQuickReplyOutOfRange(t *testing.T) {
	m := demoModel(t, demo.ScenarioQuickReplies)
	before := len(m.messages)
	result, cmd := m.Update(key("9"))
	if cmd != nil || len(asModel(result).messages) != before {
		t.Error("option 9 of 4 was accepted")
	}
}

func TestQuickReplyMultipleChoice(t *testing.T) {
	m := demoModel(t, demo.ScenarioConversation)
	m.svc.ShowQuickReply(demo.KindMultipleChoice)

	result, _ := m.Update(key("S"))
	m = asModel(result)
	if set := m.svc.QuickReplies(); set.Submitted {
		t.Fatal("empty selection was submitted")
	}

	for _, k := range []string{"1", "3", "4", "4"} {
		result, _ = m.Update(key(k))
		m = asModel(result)
	}
	if !m.qrSelected[0] || !m.qrSelected[2] || m.qrSelected[3] {
		t.Fatalf("selection = %v, want options 1 and 3", m.qrSelected)
	}
	if !strings.Contains(m.View(), IconChecked.Glyph) {
		t.Error("view missing checked box")
	}

	result, cmd := m.Update(key("S"))
	m = asModel(result)
	if cmd == nil {
		t.Error("submit returned no step cmd")
	}
	if got := lastMessage(m).Text(); got != "analytics, integrations" {
		t.Errorf("posted %q", got)
	}
	if want := "Submitted: Analytics Dashboard, Third-party Integrations"; m.live.text != want {
		t.Errorf("announcement = %q, want %q", m.live.text, want)
	}
	if len(m.qrSelected) != 0 {
		t.Errorf("selection not cleared: %v", m.qrSelected)
	}
}

func TestQuickReplySelectionAnnounced(t *testing.T) {
	m := demoModel(t, demo.ScenarioConversation)
	m.svc.ShowQuickReply(demo.KindMultipleChoice)
	result, _ := m.Update(key("2"))
	m = asModel(result)
	if m.live.text != "Selected: Automated Reports" {
		t.Errorf("announcement = %q", m.live.text)
	}
}
