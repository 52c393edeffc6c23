package chat

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Politeness mirrors ARIA live-region levels.
type Politeness string

const (
	Polite    Politeness = "polite"
	Assertive Politeness = "assertive"
)

// AnnounceFunc receives announcement text for assistive output.
type AnnounceFunc func(text string, politeness Politeness)

// maxSummaryRunes caps the text quoted in a message announcement.
const maxSummaryRunes = 100

// Announcer builds short spoken-style descriptions of chat events and hands
// them to an AnnounceFunc. It remembers the last typing user so a typing
// burst is announced once. Not safe for concurrent use.
type Announcer struct {
	announce       AnnounceFunc
	timeFormat     string
	lastTypingUser string
}

// NewAnnouncer returns an Announcer writing to fn and formatting message
// times with timeFormat (a FormatTime pattern).
func NewAnnouncer(fn AnnounceFunc, timeFormat string) *Announcer {
	return &Announcer{announce: fn, timeFormat: timeFormat}
}

// Message announces a new message: "<sender> at <time>: <summary>".
func (a *Announcer) Message(m Message) {
	text := fmt.Sprintf("%s at %s: %s", m.SenderName, FormatTime(m.Timestamp, a.timeFormat), ContentSummary(m))
	a.announce(text, Polite)
}

// Typing announces that someone started typing. Repeated calls for the same
// user are ignored until ClearTyping.
func (a *Announcer) Typing(t TypingIndicator) {
	if a.lastTypingUser == t.UserID {
		return
	}
	a.lastTypingUser = t.UserID
	a.announce(t.UserName+" is typing", Polite)
}

// ClearTyping forgets the last typing user.
func (a *Announcer) ClearTyping() {
	a.lastTypingUser = ""
}

// StatusChange announces a delivery status transition. Unchanged status is
// not announced.
func (a *Announcer) StatusChange(m Message, old MessageStatus) {
	if m.Status == old {
		return
	}
	a.announce("Message "+StatusLabel(m.Status), Polite)
}

// QuickReplySelection confirms a highlighted option.
func (a *Announcer) QuickReplySelection(opt QuickReplyOption) {
	a.announce("Selected: "+opt.Label, Polite)
}

// QuickReplySubmit announces the submitted options. Nothing is announced for
// an empty submission.
func (a *Announcer) QuickReplySubmit(opts []QuickReplyOption) {
	if len(opts) == 0 {
		return
	}
	labels := lo.Map(opts, func(o QuickReplyOption, _ int) string { return o.Label })
	a.announce("Submitted: "+strings.Join(labels, ", "), Assertive)
}

// ContentSummary describes a message's content in one line.
func ContentSummary(m Message) string {
	switch c := m.Content.(type) {
	case TextContent:
		return truncateRunes(c.Text, maxSummaryRunes)
	case ImageContent:
		if c.AltText != "" {
			return "Image: " + c.AltText
		}
		return "Image from " + m.SenderName
	case FileContent:
		if c.FileSize > 0 {
			return c.FileName + ", " + spokenFileSize(c.FileSize)
		}
		return c.FileName
	case SystemContent:
		return c.Text
	}
	return "Message"
}

// StatusLabel is the spoken form of a delivery status.
func StatusLabel(s MessageStatus) string {
	switch s {
	case StatusSending, StatusSent, StatusDelivered, StatusRead:
		return string(s)
	case StatusFailed:
		return "failed to send"
	default:
		return "updated"
	}
}

func spokenFileSize(bytes int64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%d bytes", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.1f kilobytes", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%.1f megabytes", float64(bytes)/(1024*1024))
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
