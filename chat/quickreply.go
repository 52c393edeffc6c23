package chat

import (
	"fmt"
	"strings"
)

// QuickReplyType selects how a quick reply set is answered.
type QuickReplyType string

const (
	QuickReplyConfirmation   QuickReplyType = "confirmation"
	QuickReplySingleChoice   QuickReplyType = "single-choice"
	QuickReplyMultipleChoice QuickReplyType = "multiple-choice"
)

// QuickReplyOption is one selectable answer.
type QuickReplyOption struct {
	Value    any
	Label    string
	Disabled bool
}

// QuickReplySet is a prompt with predefined answers shown under the messages.
type QuickReplySet struct {
	ID             string
	Type           QuickReplyType
	Prompt         string
	Options        []QuickReplyOption
	Submitted      bool
	SelectedValues []any
}

// QuickReplySubmit is the answer to a QuickReplySet. Value is a bool for
// confirmations, a single option value for single choice and a []any for
// multiple choice.
type QuickReplySubmit struct {
	Type  QuickReplyType
	Value any
}

// FormatQuickReplyResponse turns a submitted answer into the text posted on
// the user's behalf.
func FormatQuickReplyResponse(s QuickReplySubmit) string {
	if s.Type == QuickReplyConfirmation {
		if yes, _ := s.Value.(bool); yes {
			return "Yes"
		}
		return "No"
	}
	if values, ok := s.Value.([]any); ok {
		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = fmt.Sprint(v)
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprint(s.Value)
}
