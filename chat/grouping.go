package chat

import (
	"slices"
	"time"

	"github.com/samber/lo"
)

// DefaultGroupThreshold is the largest gap between two consecutive messages
// from one sender that still keeps them in the same group.
const DefaultGroupThreshold = 5 * time.Minute

// MessageGroup is a run of consecutive messages from one sender.
type MessageGroup struct {
	SenderID      string
	SenderName    string
	SenderAvatar  string
	IsCurrentUser bool
	Messages      []Message
}

// DateGroup holds the sender groups of one calendar day.
type DateGroup struct {
	Date   time.Time // midnight, in the location of the day's messages
	Groups []MessageGroup
}

// MessageIndex locates a message inside a []DateGroup.
type MessageIndex struct {
	DateIndex    int
	GroupIndex   int
	MessageIndex int
}

// GroupByDate buckets messages by calendar day, then into runs of consecutive
// messages from the same sender. A run breaks when the sender changes, when
// either message is a system message, or when the gap to the previous message
// exceeds threshold. Runs never span a day boundary.
//
// messages must be sorted by Timestamp ascending; see SortByTimestamp. The
// threshold is used as given: 0 groups only identical timestamps, and callers
// wanting the usual window pass DefaultGroupThreshold. The input slice is not
// modified.
func GroupByDate(messages []Message, currentUserID string, threshold time.Duration) []DateGroup {
	if len(messages) == 0 {
		return nil
	}

	var result []DateGroup
	var previous *Message

	for i := range messages {
		msg := messages[i]
		day := StartOfDay(msg.Timestamp)

		if len(result) == 0 || !IsSameDay(result[len(result)-1].Date, day) {
			result = append(result, DateGroup{Date: day})
			previous = nil
		}
		dg := &result[len(result)-1]

		if previous == nil || !ShouldGroupWithPrevious(msg, *previous, threshold) {
			dg.Groups = append(dg.Groups, MessageGroup{
				SenderID:      msg.SenderID,
				SenderName:    msg.SenderName,
				SenderAvatar:  msg.SenderAvatar,
				IsCurrentUser: msg.SenderID == currentUserID,
			})
		}
		g := &dg.Groups[len(dg.Groups)-1]
		g.Messages = append(g.Messages, msg)

		previous = &messages[i]
	}

	return result
}

// ShouldGroupWithPrevious reports whether current continues previous's sender
// group: same sender, neither is a system message, and the two are at most
// threshold apart (compared in milliseconds).
func ShouldGroupWithPrevious(current, previous Message, threshold time.Duration) bool {
	if current.SenderID != previous.SenderID {
		return false
	}
	if current.IsSystem() || previous.IsSystem() {
		return false
	}
	return TimeDifferenceMs(current.Timestamp, previous.Timestamp) <= threshold.Milliseconds()
}

// TotalMessageCount returns the number of messages across all groups.
func TotalMessageCount(groups []DateGroup) int {
	return lo.SumBy(groups, func(dg DateGroup) int {
		return lo.SumBy(dg.Groups, func(g MessageGroup) int {
			return len(g.Messages)
		})
	})
}

// FindMessage returns the position of the first message with the given id,
// searching day by day, group by group. ok is false when no message matches.
func FindMessage(groups []DateGroup, id string) (idx MessageIndex, ok bool) {
	for di, dg := range groups {
		for gi, g := range dg.Groups {
			if mi := slices.IndexFunc(g.Messages, func(m Message) bool { return m.ID == id }); mi >= 0 {
				return MessageIndex{DateIndex: di, GroupIndex: gi, MessageIndex: mi}, true
			}
		}
	}
	return MessageIndex{}, false
}

// Flatten returns every message in traversal order. For sorted input,
// Flatten(GroupByDate(m, u, t)) equals m.
func Flatten(groups []DateGroup) []Message {
	return lo.FlatMap(groups, func(dg DateGroup, _ int) []Message {
		return lo.FlatMap(dg.Groups, func(g MessageGroup, _ int) []Message {
			return g.Messages
		})
	})
}

// SortByTimestamp returns a copy of messages stably sorted by Timestamp.
// GroupByDate does not sort on its own; use this when the source order is
// not guaranteed.
func SortByTimestamp(messages []Message) []Message {
	out := slices.Clone(messages)
	slices.SortStableFunc(out, func(a, b Message) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return out
}
