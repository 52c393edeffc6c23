package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kylesnowschwartz/support-chat/chat"
)

// Icon is a glyph with its default color.
type Icon struct {
	Glyph string
	Color lipgloss.AdaptiveColor
}

// Render returns the glyph in its color.
func (i Icon) Render() string {
	return lipgloss.NewStyle().Foreground(i.Color).Render(i.Glyph)
}

// RenderBold returns the glyph in its color, bold.
func (i Icon) RenderBold() string {
	return lipgloss.NewStyle().Bold(true).Foreground(i.Color).Render(i.Glyph)
}

// Icons used throughout the TUI.
// Using standard Unicode symbols for maximum terminal compatibility.
var (
	IconAgent     = Icon{"◆", ColorAgent}         // other participant's group header
	IconUser      = Icon{"●", ColorUser}          // current user's group header
	IconSystem    = Icon{"○", ColorTextMuted}     // system message
	IconImage     = Icon{"▣", ColorInfo}          // image attachment
	IconFile      = Icon{"▤", ColorInfo}          // file attachment
	IconTyping    = Icon{"•", ColorTyping}        // typing dots
	IconDot       = Icon{"·", ColorTextMuted}     // separator dot
	IconSelected  = Icon{"│", ColorAccent}        // selected message sidebar
	IconCursor    = Icon{"▸", ColorAccent}        // picker and quick reply cursor
	IconChecked   = Icon{"☑", ColorQuickReply}    // selected multiple-choice option
	IconUnchecked = Icon{"☐", ColorTextMuted}     // unselected multiple-choice option
	IconLive      = Icon{"»", ColorTextSecondary} // announcement line
)

// Delivery status icons.
var (
	IconSending   = Icon{"◌", ColorStatusPending}
	IconSent      = Icon{"✓", ColorStatusPending}
	IconDelivered = Icon{"✓✓", ColorStatusPending}
	IconRead      = Icon{"✓✓", ColorStatusRead}
	IconFailed    = Icon{"✕", ColorError}
)

// Glyphs without a fixed color.
const (
	GlyphHRule    = "─"
	GlyphEllipsis = "…"
	GlyphCaret    = "▏"
)

// statusIcon maps a delivery status to its icon. Unknown statuses have none.
func statusIcon(s chat.MessageStatus) (Icon, bool) {
	switch s {
	case chat.StatusSending:
		return IconSending, true
	case chat.StatusSent:
		return IconSent, true
	case chat.StatusDelivered:
		return IconDelivered, true
	case chat.StatusRead:
		return IconRead, true
	case chat.StatusFailed:
		return IconFailed, true
	}
	return Icon{}, false
}
