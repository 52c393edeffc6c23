package main

import (
	"time"

	"github.com/kylesnowschwartz/support-chat/chat"
	"github.com/kylesnowschwartz/support-chat/config"
)

// row is one message in the list plus its place in the grouping. The list
// view renders rows top to bottom; separators and sender headers are drawn
// as part of the row that opens them so the cursor only stops on messages.
type row struct {
	msg          chat.Message
	group        *chat.MessageGroup
	dateLabel    string // set on the first message of a day
	firstInGroup bool
	lastInGroup  bool
	top          bool // first row of the list
}

// buildRows flattens grouped messages into display rows. Date labels are
// resolved against now so "Today" and "Yesterday" are right at build time.
func buildRows(groups []chat.DateGroup, now time.Time, cfg config.Config) []row {
	var rows []row
	for di := range groups {
		dg := &groups[di]
		label := chat.DateSeparatorLabel(dg.Date, now, cfg.Labels(), cfg.DateFormat)
		for gi := range dg.Groups {
			g := &dg.Groups[gi]
			for mi, msg := range g.Messages {
				r := row{
					msg:          msg,
					group:        g,
					firstInGroup: mi == 0,
					lastInGroup:  mi == len(g.Messages)-1,
					top:          len(rows) == 0,
				}
				if gi == 0 && mi == 0 {
					r.dateLabel = label
				}
				rows = append(rows, r)
			}
		}
	}
	return rows
}

// rowIndex returns the index of the row holding message id, or -1.
func rowIndex(rows []row, id string) int {
	for i, r := range rows {
		if r.msg.ID == id {
			return i
		}
	}
	return -1
}

// selected returns the message under the cursor.
func (m model) selected() (chat.Message, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return chat.Message{}, false
	}
	return m.rows[m.cursor].msg, true
}
