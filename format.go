package main

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/kylesnowschwartz/support-chat/chat"
	"github.com/kylesnowschwartz/support-chat/demo"
)

// truncate shortens s to at most maxLen display runes, ending in an ellipsis.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen == 1 {
		return GlyphEllipsis
	}
	return string(r[:maxLen-1]) + GlyphEllipsis
}

// formatCount formats a count with its unit: 1 -> "1 message", 3 -> "3 messages".
func formatCount(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// senderStyle colors a sender name by role.
func senderStyle(isCurrentUser bool) lipgloss.Style {
	if isCurrentUser {
		return lipgloss.NewStyle().Bold(true).Foreground(ColorTextPrimary)
	}
	return lipgloss.NewStyle().Bold(true).Foreground(ColorAgent)
}

// typeLabel is the human name of a message type.
func typeLabel(t chat.MessageType) string {
	switch t {
	case chat.TypeText:
		return "Text"
	case chat.TypeImage:
		return "Image"
	case chat.TypeFile:
		return "File"
	case chat.TypeSystem:
		return "System"
	}
	return string(t)
}

// scenarioDescriptions explain each demo scenario in the picker.
var scenarioDescriptions = map[demo.Scenario]string{
	demo.ScenarioEmpty:        "No messages, start from scratch",
	demo.ScenarioConversation: "A short support exchange",
	demo.ScenarioPerformance:  "500 generated messages across several hours",
	demo.ScenarioAllTypes:     "Markdown, image, file and every delivery status",
	demo.ScenarioQuickReplies: "A conversation waiting on a quick reply",
	demo.ScenarioFailed:       "Messages that could not be sent",
}

// sourceLabel names what the list is showing, for the status bar.
func (m model) sourceLabel() string {
	if m.svc != nil {
		return "demo: " + string(m.scenario)
	}
	return filepath.Base(m.logPath)
}
