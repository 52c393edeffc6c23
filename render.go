package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kylesnowschwartz/support-chat/chat"
)

// -- Layout constants ---------------------------------------------------------

// maxContentWidth is the maximum width for content rendering.
const maxContentWidth = 120

// maxCollapsedLines is the maximum content lines shown when a message is collapsed.
const maxCollapsedLines = 6

// statusBarHeight is the number of rendered lines the status bar occupies.
// Rounded border: top + content + bottom = 3 lines.
const statusBarHeight = 3

// maxQuickReplyKeys is how many options number keys can reach.
const maxQuickReplyKeys = 9

// composerPlaceholder is shown in an empty composer.
const composerPlaceholder = "Type a message..."

// detailDatePattern and detailTimePattern format the detail header.
const (
	detailDatePattern = "EEEE, MMMM d, yyyy"
	detailTimePattern = "h:mm:ss a"
)

// -- Helpers ------------------------------------------------------------------

// selectionIndicator returns a left-margin marker for the selected message
func selectionIndicator(selected bool) string {
	if selected {
		return IconSelected.Render() + " "
	}
	return "  "
}

// spaceBetween lays out left and right strings with gap-fill spacing to span width.
func spaceBetween(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap) + right
}

// indentBlock adds a prefix to every line of a block of text.
func indentBlock(text string, indent string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}

// contentWidth returns the inner width for bubble content, given a bubble width.
// Subtracts border (2) + padding (4) = 6 and floors at 20.
func contentWidth(cardWidth int) int {
	w := cardWidth - 6
	if w < 20 {
		w = 20
	}
	return w
}

// truncateLines caps content to maxLines and returns the truncated text plus
// the number of hidden lines. Returns (content, 0) when within the limit.
func truncateLines(content string, maxLines int) (string, int) {
	lines := strings.Split(content, "\n")
	if len(lines) <= maxLines {
		return content, 0
	}
	return strings.Join(lines[:maxLines], "\n"), len(lines) - maxLines
}

// centeredRule draws text in the middle of a horizontal rule spanning width.
func centeredRule(text string, width int) string {
	textWidth := lipgloss.Width(text) + 2 // " text "
	leftPad := (width - textWidth) / 2
	if leftPad < 0 {
		leftPad = 0
	}
	rightPad := width - leftPad - textWidth
	if rightPad < 0 {
		rightPad = 0
	}
	left := strings.Repeat(GlyphHRule, leftPad)
	right := strings.Repeat(GlyphHRule, rightPad)
	return StyleMuted.Render(left+" ") + StyleSecondary.Render(text) + StyleMuted.Render(" "+right)
}

// -- Message rendering --------------------------------------------------------

// renderRow renders one list row: the date separator or group gap it opens,
// the sender header on the first message of a group, then the message.
func (m model) renderRow(r row, width int, isSelected, isExpanded bool) string {
	var parts []string
	switch {
	case r.dateLabel != "":
		if !r.top {
			parts = append(parts, "")
		}
		parts = append(parts, centeredRule(r.dateLabel, width), "")
	case r.firstInGroup && !r.top:
		parts = append(parts, "")
	}

	switch {
	case r.msg.IsSystem():
		parts = append(parts, m.renderSystemMessage(r.msg, width, isSelected))
	case r.group.IsCurrentUser:
		parts = append(parts, m.renderUserMessage(r, width, isSelected, isExpanded))
	default:
		parts = append(parts, m.renderAgentMessage(r, width, isSelected, isExpanded))
	}
	return strings.Join(parts, "\n")
}

// renderContent renders a message body at the given inner width. Long text
// is cut to maxCollapsedLines unless expanded.
func (m model) renderContent(msg chat.Message, width int, isExpanded bool) string {
	switch c := msg.Content.(type) {
	case chat.TextContent:
		text := c.Text
		var hint string
		if !isExpanded {
			truncated, hidden := truncateLines(text, maxCollapsedLines)
			if hidden > 0 {
				text = truncated
				hint = StyleDim.Render(fmt.Sprintf("%s (%d lines hidden)", GlyphEllipsis, hidden))
			}
		}
		out := m.md.render(text, width, m.cfg.RenderMarkdown())
		if hint != "" {
			out += "\n" + hint
		}
		return out

	case chat.ImageContent:
		label := c.AltText
		if label == "" {
			label = "Image"
		}
		line := IconImage.Render() + " " + StylePrimaryBold.Render(truncate(label, width-4))
		if c.Width > 0 && c.Height > 0 {
			line += StyleDim.Render(fmt.Sprintf("  %d×%d", c.Width, c.Height))
		}
		url := c.FullURL
		if url == "" {
			url = c.ThumbnailURL
		}
		if url == "" {
			return line
		}
		return line + "\n" + StyleMuted.Render(truncate(url, width))

	case chat.FileContent:
		line := IconFile.Render() + " " + StylePrimaryBold.Render(truncate(c.FileName, width-2))
		meta := []string{chat.FormatFileSize(c.FileSize, 1)}
		if c.FileType != "" {
			meta = append(meta, c.FileType)
		}
		return line + "\n" + StyleDim.Render(strings.Join(meta, " "+IconDot.Glyph+" "))

	case chat.SystemContent:
		return c.Text
	}
	return ""
}

// bubble wraps rendered content in a rounded border.
func bubble(content string, maxWidth int, border lipgloss.AdaptiveColor) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 2).
		MaxWidth(maxWidth).
		Render(content)
}

func (m model) renderAgentMessage(r row, containerWidth int, isSelected, isExpanded bool) string {
	sel := selectionIndicator(isSelected)
	maxBubbleWidth := containerWidth * 3 / 4

	var lines []string
	if r.firstInGroup {
		name := senderStyle(false).Render(r.group.SenderName)
		ts := StyleDim.Render(chat.FormatTime(r.msg.Timestamp, m.cfg.TimeFormat))
		lines = append(lines, IconAgent.Render()+" "+name+"  "+ts)
	}

	borderColor := ColorBorder
	if isSelected {
		borderColor = ColorAccent
	}
	content := m.renderContent(r.msg, contentWidth(maxBubbleWidth), isExpanded)
	lines = append(lines, bubble(content, maxBubbleWidth, borderColor))

	return indentBlock(strings.Join(lines, "\n"), sel)
}

func (m model) renderUserMessage(r row, containerWidth int, isSelected, isExpanded bool) string {
	sel := selectionIndicator(isSelected)
	maxBubbleWidth := containerWidth * 3 / 4

	// Use full terminal width for alignment so user messages right-align to
	// the terminal edge, not just within the 120-col content area.
	alignWidth := max(m.width, containerWidth) - lipgloss.Width(sel)

	var lines []string
	if r.firstInGroup {
		ts := StyleDim.Render(chat.FormatTime(r.msg.Timestamp, m.cfg.TimeFormat))
		name := senderStyle(true).Render(r.group.SenderName)
		header := ts + "  " + name + " " + IconUser.Render()
		lines = append(lines, lipgloss.PlaceHorizontal(alignWidth, lipgloss.Right, header))
	}

	borderColor := ColorTextMuted
	switch {
	case isSelected:
		borderColor = ColorAccent
	case r.msg.Status == chat.StatusFailed:
		borderColor = ColorError
	}
	content := m.renderContent(r.msg, contentWidth(maxBubbleWidth), isExpanded)
	b := bubble(content, maxBubbleWidth, borderColor)
	lines = append(lines, lipgloss.PlaceHorizontal(alignWidth, lipgloss.Right, b))

	if status := renderDeliveryStatus(r); status != "" {
		lines = append(lines, lipgloss.PlaceHorizontal(alignWidth, lipgloss.Right, status))
	}

	return indentBlock(strings.Join(lines, "\n"), sel)
}

// renderDeliveryStatus shows the delivery state under the user's own
// messages: always while sending or after a failure, otherwise only under
// the last message of a group.
func renderDeliveryStatus(r row) string {
	s := r.msg.Status
	icon, ok := statusIcon(s)
	if !ok {
		return ""
	}
	switch {
	case s == chat.StatusFailed:
		return icon.Render() + " " + StyleErrorBold.Render("Failed to send") +
			StyleDim.Render(" "+IconDot.Glyph+" r to retry")
	case s == chat.StatusSending || r.lastInGroup:
		return icon.Render() + " " + StyleDim.Render(chat.StatusLabel(s))
	}
	return ""
}

func (m model) renderSystemMessage(msg chat.Message, width int, isSelected bool) string {
	// System messages always show inline -- they're short
	sel := selectionIndicator(isSelected)

	text := IconSystem.Render() + " " +
		StyleDim.Render(msg.Text()) + " " +
		IconDot.Render() + " " +
		StyleMuted.Render(chat.FormatTime(msg.Timestamp, m.cfg.TimeFormat))

	return sel + lipgloss.PlaceHorizontal(width-lipgloss.Width(sel), lipgloss.Center, text)
}

// -- Footer -------------------------------------------------------------------

// renderFooter renders everything between the message list and the status
// bar: typing indicator, quick replies, composer, the latest announcement
// and the last error. Returns "" when there is nothing to show.
func (m model) renderFooter(width int) string {
	var parts []string
	if m.svc != nil {
		if t := m.svc.Typing(); t != nil {
			parts = append(parts, renderTypingIndicator(*t))
		}
		if set := m.svc.QuickReplies(); set != nil && !set.Submitted {
			parts = append(parts, m.renderQuickReplies(*set))
		}
		parts = append(parts, m.renderComposer(width))
	}
	if line := m.renderLiveRegion(width); line != "" {
		parts = append(parts, line)
	}
	if m.lastErr != nil {
		parts = append(parts, StyleErrorBold.Render(truncate("error: "+m.lastErr.Error(), width)))
	}
	return strings.Join(parts, "\n")
}

func renderTypingIndicator(t chat.TypingIndicator) string {
	dots := strings.Repeat(IconTyping.Render(), 3)
	return "  " + dots + " " + StyleDim.Render(t.UserName+" is typing...")
}

// renderQuickReplies lists the options of a pending quick reply set with
// the number key that answers each.
func (m model) renderQuickReplies(set chat.QuickReplySet) string {
	numStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorQuickReply)
	disabledStyle := lipgloss.NewStyle().Foreground(ColorQuickReplyDisabled).Strikethrough(true)

	lines := []string{StyleSecondaryBold.Render(set.Prompt)}
	for i, opt := range set.Options {
		num := " "
		if i < maxQuickReplyKeys {
			num = numStyle.Render(strconv.Itoa(i + 1))
		}
		mark := ""
		if set.Type == chat.QuickReplyMultipleChoice {
			if m.qrSelected[i] {
				mark = IconChecked.Render() + " "
			} else {
				mark = IconUnchecked.Render() + " "
			}
		}
		label := StyleSecondary.Render(opt.Label)
		if opt.Disabled {
			label = disabledStyle.Render(opt.Label)
		}
		lines = append(lines, "  "+num+"  "+mark+label)
	}

	keys := min(len(set.Options), maxQuickReplyKeys)
	hint := fmt.Sprintf("1-%d choose", keys)
	if set.Type == chat.QuickReplyMultipleChoice {
		hint = fmt.Sprintf("1-%d toggle %s S submit", keys, IconDot.Glyph)
	}
	lines = append(lines, StyleMuted.Render("  "+hint))
	return strings.Join(lines, "\n")
}

// renderComposer draws the message input box. With markdown input enabled
// a rendered preview of the draft follows the box.
func (m model) renderComposer(width int) string {
	var content string
	switch {
	case len(m.input) > 0:
		content = string(m.input)
		if m.composing {
			content += GlyphCaret
		}
	case m.composing:
		content = GlyphCaret + StyleMuted.Render(composerPlaceholder)
	default:
		content = StyleMuted.Render(composerPlaceholder + " (i to write)")
	}

	borderColor := ColorBorder
	if m.composing {
		borderColor = ColorAccent
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(width-2). // border chars take 2 columns
		Padding(0, 1).
		Render(content)

	if m.cfg.MarkdownComposer() && len(m.input) > 0 {
		preview := m.md.renderMarkdown(string(m.input), width-4)
		box += "\n" + StyleMuted.Render("preview") + "\n" + indentBlock(preview, "  ")
	}
	return box
}

// renderLiveRegion shows the latest announcement; assertive ones stand out.
func (m model) renderLiveRegion(width int) string {
	if m.live == nil || m.live.text == "" {
		return ""
	}
	style := StyleDim
	if m.live.politeness == chat.Assertive {
		style = StyleAccentBold
	}
	return IconLive.Render() + " " + style.Render(truncate(m.live.text, width-2))
}

// -- Detail rendering ---------------------------------------------------------

// renderDetailContent renders the full detail content for a message.
// Used by both computeDetailMaxScroll and viewDetail to avoid duplication.
func (m model) renderDetailContent(msg chat.Message, width int) string {
	header := m.renderDetailHeader(msg, width)
	body := indentBlock(m.renderContent(msg, width-4, true), "  ")

	raw, err := m.jsonHL.message(msg)
	if err != nil {
		raw = StyleErrorBold.Render(err.Error())
	}
	rawBlock := StyleSecondaryBold.Render("Raw") + "\n" + indentBlock(strings.TrimRight(raw, "\n"), "  ")

	return header + "\n\n" + body + "\n\n" + rawBlock
}

// renderDetailHeader renders the sender, full timestamp, relative age,
// type and delivery status of a message.
func (m model) renderDetailHeader(msg chat.Message, width int) string {
	isCurrentUser := msg.SenderID == m.cfg.CurrentUser

	icon := IconAgent
	switch {
	case msg.IsSystem():
		icon = IconSystem
	case isCurrentUser:
		icon = IconUser
	}
	left := icon.Render() + " " + senderStyle(isCurrentUser).Render(msg.SenderName)
	right := StyleDim.Render(m.relTime.Get(msg.Timestamp, m.now()))
	first := spaceBetween(left, right, width)

	when := chat.FormatDate(msg.Timestamp, detailDatePattern) + " " + IconDot.Glyph + " " +
		chat.FormatTime(msg.Timestamp, detailTimePattern)
	second := StyleSecondary.Render(when)

	meta := []string{typeLabel(msg.Type)}
	if s, ok := statusIcon(msg.Status); ok {
		meta = append(meta, s.Render()+" "+chat.StatusLabel(msg.Status))
	}
	meta = append(meta, StyleMuted.Render(msg.ID))
	third := strings.Join(meta, "  "+IconDot.Render()+"  ")

	return first + "\n" + second + "\n" + third
}

// -- Status bar ---------------------------------------------------------------

// renderStatusBar renders key hints in a rounded-border box, led by what is
// being shown. When m.watching is true, a dim "tail" indicator is prepended.
func (m model) renderStatusBar(pairs ...string) string {
	keyStyle := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(ColorTextDim)

	sep := " " + IconDot.Render() + " "

	var hints []string

	if m.watching {
		tailLabel := lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Render("tail")
		hints = append(hints, tailLabel)
	}
	hints = append(hints, StyleSecondary.Render(m.sourceLabel()+" ("+formatCount(len(m.messages), "message")+")"))
	if m.skipped > 0 {
		hints = append(hints, StyleErrorBold.Render(formatCount(m.skipped, "line")+" skipped"))
	}

	// Hints that would wrap the bar onto a second line are dropped.
	inner := m.width - 4
	for i := 0; i+1 < len(pairs); i += 2 {
		hint := keyStyle.Render(pairs[i]) + " " + descStyle.Render(pairs[i+1])
		if lipgloss.Width(strings.Join(append(hints, hint), sep)) > inner {
			break
		}
		hints = append(hints, hint)
	}

	barStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(m.width-2). // border chars take 2 columns
		Padding(0, 1)

	return barStyle.Render(strings.Join(hints, sep))
}
