package demo

import (
	"fmt"
	"time"

	"github.com/kylesnowschwartz/support-chat/chat"
)

// Participant identifies one side of the demo conversation.
type Participant struct {
	ID     string
	Name   string
	Avatar string
}

// Agent is the simulated support agent.
var Agent = Participant{
	ID:     "agent-1",
	Name:   "Support Agent",
	Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=support-agent",
}

// DefaultUser is the demo's current user unless overridden.
var DefaultUser = Participant{ID: "user-1", Name: "You"}

const systemSender = "system"

// Canned agent replies, picked by keyword.
const (
	replyGreeting = "Hello! How can I assist you today?"
	replyHelp     = "I'd be happy to help! Here are some things I can assist with:\n\n- Product information\n- Order status\n- Technical support\n- Account questions\n\nWhat would you like to know more about?"
	replyPricing  = "Our pricing varies depending on the plan you choose. We offer:\n\n- **Basic**: $9/month\n- **Pro**: $29/month\n- **Enterprise**: Custom pricing\n\nWould you like more details on any of these plans?"
	replyThanks   = "You're welcome! Is there anything else I can help you with?"
	replyGoodbye  = "Thank you for chatting with us today! Have a great day! 👋"
)

var genericReplies = []string{
	"That's a great question! Let me look into that for you.",
	"I understand. Let me help you with that.",
	"Thanks for the information. Here's what I can tell you...",
	"I see what you mean. Let me explain how that works.",
	"Good point! Here's some more context on that topic.",
	"I appreciate you sharing that. Let me provide some guidance.",
	"That makes sense. Here's what I'd recommend...",
	"I'm checking our resources now. One moment please...",
}

var perfUserLines = []string{
	"How does this feature work?",
	"Can you explain more about the pricing?",
	"I need help with my account.",
	"Is there a way to export my data?",
	"What are the system requirements?",
	"Can I upgrade my plan later?",
	"How do I reset my password?",
	"Is there a mobile app available?",
	"What payment methods do you accept?",
	"How long does shipping take?",
}

var perfAgentLines = []string{
	"Let me help you with that.",
	"Great question! Here's what you need to know...",
	"I'd be happy to explain that further.",
	"Yes, you can definitely do that. Here's how...",
	"That's available in our Pro plan.",
	"I'll send you the details right away.",
	"Let me check on that for you.",
	"Here's a step-by-step guide...",
	"I understand your concern. Let me help.",
	"Thanks for your patience. Here's the answer...",
}

// QuickReplyKind names one of the canned quick reply prompts.
type QuickReplyKind string

const (
	KindConfirmation   QuickReplyKind = "confirmation"
	KindSingleChoice   QuickReplyKind = "singleChoice"
	KindMultipleChoice QuickReplyKind = "multipleChoice"
)

// quickReplySet returns a fresh copy of the canned prompt for kind.
func quickReplySet(kind QuickReplyKind) chat.QuickReplySet {
	switch kind {
	case KindConfirmation:
		return chat.QuickReplySet{
			ID:     "qr-confirm",
			Type:   chat.QuickReplyConfirmation,
			Prompt: "Would you like to proceed with this option?",
			Options: []chat.QuickReplyOption{
				{Value: true, Label: "Yes, proceed"},
				{Value: false, Label: "No, cancel"},
			},
		}
	case KindMultipleChoice:
		return chat.QuickReplySet{
			ID:     "qr-multi",
			Type:   chat.QuickReplyMultipleChoice,
			Prompt: "Which features are you interested in? (Select all that apply)",
			Options: []chat.QuickReplyOption{
				{Value: "analytics", Label: "Analytics Dashboard"},
				{Value: "reporting", Label: "Automated Reports"},
				{Value: "integrations", Label: "Third-party Integrations"},
				{Value: "api", Label: "API Access"},
				{Value: "support", Label: "Priority Support"},
			},
		}
	default:
		return chat.QuickReplySet{
			ID:     "qr-single",
			Type:   chat.QuickReplySingleChoice,
			Prompt: "What topic would you like help with?",
			Options: []chat.QuickReplyOption{
				{Value: "billing", Label: "Billing & Payments"},
				{Value: "technical", Label: "Technical Support"},
				{Value: "account", Label: "Account Settings"},
				{Value: "other", Label: "Something Else"},
			},
		}
	}
}

func (s *Service) userMessage(id string, ts time.Time, status chat.MessageStatus, text string) chat.Message {
	return chat.Message{
		ID:         id,
		Type:       chat.TypeText,
		SenderID:   s.user.ID,
		SenderName: s.user.Name,
		Timestamp:  ts,
		Status:     status,
		Content:    chat.TextContent{Text: text},
	}
}

func agentMessage(id string, ts time.Time, text string) chat.Message {
	return chat.Message{
		ID:           id,
		Type:         chat.TypeText,
		SenderID:     Agent.ID,
		SenderName:   Agent.Name,
		SenderAvatar: Agent.Avatar,
		Timestamp:    ts,
		Status:       chat.StatusRead,
		Content:      chat.TextContent{Text: text},
	}
}

func systemMessage(id string, ts time.Time, text string) chat.Message {
	return chat.Message{
		ID:         id,
		Type:       chat.TypeSystem,
		SenderID:   systemSender,
		SenderName: "System",
		Timestamp:  ts,
		Status:     chat.StatusRead,
		Content:    chat.SystemContent{Text: text},
	}
}

func (s *Service) initialMessages(now time.Time) []chat.Message {
	ago := func(ms int) time.Time { return now.Add(-time.Duration(ms) * time.Millisecond) }
	return []chat.Message{
		systemMessage("init-1", ago(7200000), "Chat session started"),
		agentMessage("init-2", ago(7190000), "Hello! Welcome to our support chat. I'm here to help you with any questions you may have."),
		s.userMessage("init-3", ago(7100000), chat.StatusRead, "Hi! Thanks for the quick response."),
		agentMessage("init-4", ago(7000000), "Of course! What can I help you with today?"),
		s.userMessage("init-5", ago(6900000), chat.StatusRead, "I have a question about your products."),
		agentMessage("init-6", ago(6800000), "I'd be happy to help! Feel free to ask anything about our products, pricing, or services."),
	}
}

func (s *Service) allTypesMessages(now time.Time) []chat.Message {
	ago := func(ms int) time.Time { return now.Add(-time.Duration(ms) * time.Millisecond) }
	image := chat.Message{
		ID: "demo-5", Type: chat.TypeImage, SenderID: s.user.ID, SenderName: s.user.Name,
		Timestamp: ago(3200000), Status: chat.StatusRead,
		Content: chat.ImageContent{
			ThumbnailURL: "https://picsum.photos/200/150?random=1",
			FullURL:      "https://picsum.photos/800/600?random=1",
			AltText:      "Screenshot of the issue",
			Width:        200,
			Height:       150,
		},
	}
	file := chat.Message{
		ID: "demo-6", Type: chat.TypeFile, SenderID: s.user.ID, SenderName: s.user.Name,
		Timestamp: ago(3100000), Status: chat.StatusRead,
		Content: chat.FileContent{
			FileName:    "order-receipt.pdf",
			FileSize:    245760,
			FileType:    "application/pdf",
			DownloadURL: "#",
		},
	}
	return []chat.Message{
		systemMessage("demo-1", ago(3600000), "Chat session started"),
		agentMessage("demo-2", ago(3500000), "Hello! Welcome to our support chat. How can I help you today?"),
		s.userMessage("demo-3", ago(3400000), chat.StatusRead, "Hi! I need help with my order."),
		agentMessage("demo-4", ago(3300000), "Of course! I can help with:\n\n- **Order status**\n- **Returns & refunds**\n- **Shipping questions**\n\nWhat would you like to know?"),
		image,
		file,
		agentMessage("demo-7", ago(3000000), "Thank you for sharing those. I can see the issue now. Let me check what we can do."),
		s.userMessage("demo-8", ago(2900000), chat.StatusFailed, "This message failed to send - press r to retry!"),
		s.userMessage("demo-9", ago(100000), chat.StatusSending, "This message is still sending..."),
		s.userMessage("demo-10", ago(50000), chat.StatusDelivered, "This message has been delivered!"),
	}
}

func (s *Service) failedMessages(now time.Time) []chat.Message {
	ago := func(ms int) time.Time { return now.Add(-time.Duration(ms) * time.Millisecond) }
	return []chat.Message{
		systemMessage("fail-1", ago(60000), "Network connection unstable"),
		s.userMessage("fail-2", ago(50000), chat.StatusFailed, "First failed message - press r to retry"),
		s.userMessage("fail-3", ago(40000), chat.StatusFailed, "Second failed message - press r to retry"),
		s.userMessage("fail-4", ago(30000), chat.StatusSending, "This one is still trying to send..."),
	}
}

// history generates count messages one minute apart, the last one a minute
// before end. Every 20th index is a system event, every 3rd is from the
// user, the rest from the agent.
func (s *Service) history(count, startIndex int, end time.Time) []chat.Message {
	base := end.Add(-time.Duration(count) * time.Minute)
	msgs := make([]chat.Message, 0, count)
	for i := range count {
		index := startIndex + i
		id := fmt.Sprintf("perf-%d", index)
		ts := base.Add(time.Duration(i) * time.Minute)

		switch {
		case index%20 == 0:
			msgs = append(msgs, systemMessage(id, ts, fmt.Sprintf("System event at message %d", index)))
		case index%3 == 0:
			msgs = append(msgs, s.userMessage(id, ts, chat.StatusRead, perfUserLines[index%len(perfUserLines)]))
		default:
			msgs = append(msgs, agentMessage(id, ts, perfAgentLines[index%len(perfAgentLines)]))
		}
	}
	return msgs
}
