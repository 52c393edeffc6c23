// Package demo simulates a support conversation without a backend: canned
// scenarios, a keyword-driven agent, delivery status progression and quick
// replies.
//
// Delays are not slept on. Operations that play out over time return a list
// of Steps; the caller runs each Step after its Delay (the TUI chains
// tea.Tick commands, tests just call them in order).
package demo

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/kylesnowschwartz/support-chat/chat"
)

// Scenario selects the conversation a Service starts with.
type Scenario string

const (
	ScenarioEmpty        Scenario = "empty"
	ScenarioConversation Scenario = "conversation"
	ScenarioPerformance  Scenario = "performance"
	ScenarioAllTypes     Scenario = "all-types"
	ScenarioQuickReplies Scenario = "quick-replies"
	ScenarioFailed       Scenario = "failed"
)

// Scenarios lists every scenario in display order.
var Scenarios = []Scenario{
	ScenarioEmpty, ScenarioConversation, ScenarioPerformance,
	ScenarioAllTypes, ScenarioQuickReplies, ScenarioFailed,
}

// ErrUnknownScenario is returned for a scenario name not in Scenarios.
var ErrUnknownScenario = errors.New("unknown scenario")

// ParseScenario validates a scenario name.
func ParseScenario(name string) (Scenario, error) {
	s := Scenario(name)
	if !slices.Contains(Scenarios, s) {
		return "", fmt.Errorf("%w %q", ErrUnknownScenario, name)
	}
	return s, nil
}

const (
	performanceCount = 500
	loadMoreCount    = 20

	statusStepDelay   = 300 * time.Millisecond
	typingStartDelay  = 500 * time.Millisecond
	quickReplyDelay   = 500 * time.Millisecond
	typingMin         = 1500 * time.Millisecond
	typingJitter      = 2000 * time.Millisecond
	retryMin          = time.Second
	retryJitter       = time.Second
	retryStatusDelay  = 500 * time.Millisecond
	retrySuccessRatio = 0.8
)

// EventKind says what a Step changed.
type EventKind int

const (
	EventMessage    EventKind = iota // Message was appended
	EventStatus                      // Message.Status changed from Old
	EventTyping                      // typing started (Typing set) or stopped
	EventQuickReply                  // the quick reply set changed
)

// Event describes one observable change, for announcements.
type Event struct {
	Kind    EventKind
	Message chat.Message
	Old     chat.MessageStatus
	Typing  *chat.TypingIndicator
}

// Step is a delayed state change. Run returns the events it caused.
type Step struct {
	Delay time.Duration
	Run   func() []Event
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the time source used for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRand sets the randomness used for typing delays and retry outcomes.
func WithRand(r *rand.Rand) Option {
	return func(s *Service) { s.rand = r }
}

// WithUser sets the participant acting as the current user.
func WithUser(p Participant) Option {
	return func(s *Service) { s.user = p }
}

// WithIDs sets the generator for ids of newly sent messages.
func WithIDs(next func() string) Option {
	return func(s *Service) { s.newID = next }
}

// Service holds the simulated conversation. Not safe for concurrent use;
// the TUI drives it from its update loop.
type Service struct {
	messages      []chat.Message
	typing        *chat.TypingIndicator
	quickReplies  *chat.QuickReplySet
	counter       int
	responseIndex int

	user  Participant
	now   func() time.Time
	rand  *rand.Rand
	newID func() string
}

// New returns a Service with no messages.
func New(opts ...Option) *Service {
	s := &Service{
		user:  DefaultUser,
		now:   time.Now,
		rand:  rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		newID: func() string { return "msg-" + uuid.NewString() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// User is the current user of the conversation.
func (s *Service) User() Participant { return s.user }

// Messages returns a copy of the conversation in chronological order.
func (s *Service) Messages() []chat.Message { return slices.Clone(s.messages) }

// Typing is the active typing indicator, or nil.
func (s *Service) Typing() *chat.TypingIndicator { return s.typing }

// QuickReplies is the pending quick reply set, or nil.
func (s *Service) QuickReplies() *chat.QuickReplySet { return s.quickReplies }

// Reset clears the conversation.
func (s *Service) Reset() {
	s.messages = nil
	s.typing = nil
	s.quickReplies = nil
	s.counter = 0
	s.responseIndex = 0
}

// LoadScenario replaces the conversation with a canned scenario.
func (s *Service) LoadScenario(sc Scenario) error {
	s.Reset()
	now := s.now()

	switch sc {
	case ScenarioEmpty:
	case ScenarioConversation:
		s.messages = s.initialMessages(now)
	case ScenarioPerformance:
		s.messages = s.history(performanceCount, 0, now)
	case ScenarioAllTypes:
		s.messages = s.allTypesMessages(now)
	case ScenarioQuickReplies:
		s.messages = s.initialMessages(now)
		s.ShowQuickReply(KindSingleChoice)
	case ScenarioFailed:
		s.messages = s.failedMessages(now)
	default:
		return fmt.Errorf("%w %q", ErrUnknownScenario, sc)
	}
	s.counter = len(s.messages)
	return nil
}

// Send posts the user's text and attachments as new messages in the sending
// state. The returned steps deliver them and play the agent's reply.
// Blank text with no attachments sends nothing.
func (s *Service) Send(text string, attachments ...Attachment) ([]chat.Message, []Step) {
	var sent []chat.Message
	if strings.TrimSpace(text) != "" {
		sent = append(sent, s.userMessage(s.nextID(), s.now(), chat.StatusSending, text))
	}
	for _, a := range attachments {
		sent = append(sent, s.attachmentMessage(a))
	}
	if len(sent) == 0 {
		return nil, nil
	}
	s.messages = append(s.messages, sent...)

	steps := s.deliverySteps(lo.Map(sent, func(m chat.Message, _ int) string { return m.ID }))
	return sent, append(steps, s.replySteps(text)...)
}

// SimulateFailedMessage appends a user message that failed to send.
func (s *Service) SimulateFailedMessage() chat.Message {
	m := s.userMessage(s.nextID(), s.now(), chat.StatusFailed, "This message will fail to send...")
	s.messages = append(s.messages, m)
	return m
}

// Retry resends a failed message. The message goes back to sending at once;
// the steps resolve it to sent (then delivered and read) or failed again.
// Retrying an unknown or non-failed message does nothing.
func (s *Service) Retry(id string) ([]Event, []Step) {
	m, ok := s.find(id)
	if !ok || m.Status != chat.StatusFailed {
		return nil, nil
	}
	first := s.setStatus(id, chat.StatusSending)

	delay := retryMin + time.Duration(s.rand.Float64()*float64(retryJitter))
	steps := []Step{
		{Delay: delay, Run: func() []Event {
			if s.rand.Float64() < retrySuccessRatio {
				return s.setStatus(id, chat.StatusSent)
			}
			return s.setStatus(id, chat.StatusFailed)
		}},
		{Delay: retryStatusDelay, Run: func() []Event { return s.advance(id, chat.StatusSent, chat.StatusDelivered) }},
		{Delay: retryStatusDelay, Run: func() []Event { return s.advance(id, chat.StatusDelivered, chat.StatusRead) }},
	}
	return first, steps
}

// SubmitQuickReply answers the pending quick reply set on the user's behalf.
// The set is cleared shortly after and the agent replies to the answer.
func (s *Service) SubmitQuickReply(submit chat.QuickReplySubmit) (chat.Message, []Step) {
	if s.quickReplies != nil {
		s.quickReplies.Submitted = true
		if values, ok := submit.Value.([]any); ok {
			s.quickReplies.SelectedValues = values
		} else {
			s.quickReplies.SelectedValues = []any{submit.Value}
		}
	}

	text := chat.FormatQuickReplyResponse(submit)
	m := s.userMessage(s.nextID(), s.now(), chat.StatusSending, text)
	s.messages = append(s.messages, m)

	steps := []Step{{Delay: quickReplyDelay, Run: func() []Event {
		s.quickReplies = nil
		return []Event{{Kind: EventQuickReply}}
	}}}
	steps = append(steps, s.deliverySteps([]string{m.ID})...)
	return m, append(steps, s.replySteps(text)...)
}

// ShowQuickReply presents one of the canned quick reply prompts.
func (s *Service) ShowQuickReply(kind QuickReplyKind) {
	set := quickReplySet(kind)
	s.quickReplies = &set
}

// LoadMore prepends a page of older history and returns it.
func (s *Service) LoadMore() []chat.Message {
	end := s.now()
	if len(s.messages) > 0 {
		end = s.messages[0].Timestamp
	}
	older := s.history(loadMoreCount, s.counter, end)
	s.messages = append(older, s.messages...)
	s.counter += loadMoreCount
	return older
}

// AgentResponse picks the agent's reply to text by keyword, cycling through
// generic replies when nothing matches.
func (s *Service) AgentResponse(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "hello") || strings.Contains(lower, "hi"):
		return replyGreeting
	case strings.Contains(lower, "help"):
		return replyHelp
	case strings.Contains(lower, "price") || strings.Contains(lower, "cost"):
		return replyPricing
	case strings.Contains(lower, "thank"):
		return replyThanks
	case strings.Contains(lower, "bye"):
		return replyGoodbye
	}
	reply := genericReplies[s.responseIndex%len(genericReplies)]
	s.responseIndex++
	return reply
}

// quickReplyFor reports whether text should be followed by a quick reply
// prompt, and which one.
func quickReplyFor(text string) (QuickReplyKind, bool) {
	lower := strings.ToLower(text)
	if !lo.SomeBy([]string{"help", "option", "choose", "prefer"}, func(k string) bool {
		return strings.Contains(lower, k)
	}) {
		return "", false
	}
	switch {
	case strings.Contains(lower, "confirm") || strings.Contains(lower, "yes or no"):
		return KindConfirmation, true
	case strings.Contains(lower, "multiple") || strings.Contains(lower, "several"):
		return KindMultipleChoice, true
	default:
		return KindSingleChoice, true
	}
}

// deliverySteps move each id from sending to sent to delivered.
func (s *Service) deliverySteps(ids []string) []Step {
	var steps []Step
	for _, id := range ids {
		steps = append(steps,
			Step{Delay: statusStepDelay, Run: func() []Event { return s.advance(id, chat.StatusSending, chat.StatusSent) }},
			Step{Delay: statusStepDelay, Run: func() []Event { return s.advance(id, chat.StatusSent, chat.StatusDelivered) }},
		)
	}
	return steps
}

// replySteps play the agent typing, then replying to text.
func (s *Service) replySteps(text string) []Step {
	typingFor := typingMin + time.Duration(s.rand.Float64()*float64(typingJitter))
	steps := []Step{
		{Delay: typingStartDelay, Run: func() []Event {
			s.typing = &chat.TypingIndicator{UserID: Agent.ID, UserName: Agent.Name, Avatar: Agent.Avatar}
			return []Event{{Kind: EventTyping, Typing: s.typing}}
		}},
		{Delay: typingFor, Run: func() []Event { return s.reply(text) }},
	}
	if kind, ok := quickReplyFor(text); ok {
		steps = append(steps, Step{Delay: quickReplyDelay, Run: func() []Event {
			s.ShowQuickReply(kind)
			return []Event{{Kind: EventQuickReply}}
		}})
	}
	return steps
}

// reply stops typing, posts the agent's answer and marks the user's
// delivered messages read.
func (s *Service) reply(text string) []Event {
	s.typing = nil
	events := []Event{{Kind: EventTyping}}

	s.counter++
	m := agentMessage(s.newID(), s.now(), s.AgentResponse(text))
	s.messages = append(s.messages, m)
	events = append(events, Event{Kind: EventMessage, Message: m})

	delivered := lo.Filter(s.messages, func(u chat.Message, _ int) bool {
		return u.SenderID == s.user.ID && u.Status == chat.StatusDelivered
	})
	for _, d := range delivered {
		events = append(events, s.setStatus(d.ID, chat.StatusRead)...)
	}
	return events
}

func (s *Service) attachmentMessage(a Attachment) chat.Message {
	m := chat.Message{
		ID:         s.nextID(),
		SenderID:   s.user.ID,
		SenderName: s.user.Name,
		Timestamp:  s.now(),
		Status:     chat.StatusSending,
	}
	if a.IsImage() {
		m.Type = chat.TypeImage
		m.Content = chat.ImageContent{
			ThumbnailURL: a.URL(),
			FullURL:      a.URL(),
			AltText:      a.Name,
			Width:        200,
			Height:       150,
		}
		return m
	}
	m.Type = chat.TypeFile
	m.Content = chat.FileContent{
		FileName:    a.Name,
		FileSize:    a.Size,
		FileType:    a.MIME,
		DownloadURL: a.URL(),
	}
	return m
}

func (s *Service) nextID() string {
	s.counter++
	return s.newID()
}

func (s *Service) find(id string) (chat.Message, bool) {
	return lo.Find(s.messages, func(m chat.Message) bool { return m.ID == id })
}

// advance moves id to status only if it is currently in from.
func (s *Service) advance(id string, from, to chat.MessageStatus) []Event {
	m, ok := s.find(id)
	if !ok || m.Status != from {
		return nil
	}
	return s.setStatus(id, to)
}

func (s *Service) setStatus(id string, status chat.MessageStatus) []Event {
	i := slices.IndexFunc(s.messages, func(m chat.Message) bool { return m.ID == id })
	if i < 0 || s.messages[i].Status == status {
		return nil
	}
	old := s.messages[i].Status
	s.messages[i].Status = status
	return []Event{{Kind: EventStatus, Message: s.messages[i], Old: old}}
}
