package main

import "github.com/charmbracelet/lipgloss"

// -- Colors ---------------------------------------------------------------
// All colors use AdaptiveColor for dark/light terminal support.
// Light values: ANSI 0-15 for accents (palette-adaptive), 256-color for grays
// (predictable). ANSI 7/15 (white) are invisible on light backgrounds, never
// use them for Light values.
// Dark values: ANSI 256-color codes tuned for dark backgrounds.
//
// | Name              | Light | Dark  | Light desc    | Dark desc      |
// |-------------------|-------|-------|---------------|----------------|
// | TextPrimary       |   "0" | "252" | black         | light gray     |
// | TextSecondary     |   "8" | "245" | ANSI dk gray  | gray           |
// | TextDim           | "242" | "243" | medium gray   | gray           |
// | TextMuted         | "245" | "240" | med-lt gray   | dark gray      |
// | Accent            |   "4" |  "75" | blue          | blue           |
// | Error             |   "1" | "196" | red           | red            |
// | Info              |   "4" |  "69" | blue          | blue           |
// | Border            | "250" |  "60" | subtle gray   | muted blue     |
// | Agent             |   "5" | "177" | magenta       | lilac          |
// | StatusRead        |   "2" | "114" | green         | green          |
// | Typing            |   "2" |  "76" | green dot     | green dot      |
// | PickerSelectedBg  | "254" | "237" | subtle elev.  | subtle elev.   |

var (
	// Text hierarchy
	ColorTextPrimary   = ac("0", "252")
	ColorTextSecondary = ac("8", "245")
	ColorTextDim       = ac("242", "243")
	ColorTextMuted     = ac("245", "240")

	// Accents
	ColorAccent = ac("4", "75")
	ColorError  = ac("1", "196")
	ColorInfo   = ac("4", "69")

	// Surfaces
	ColorBorder = ac("250", "60")

	// Senders
	ColorAgent = ac("5", "177")
	ColorUser  = ColorAccent

	// Delivery status
	ColorStatusPending = ColorTextMuted
	ColorStatusRead    = ac("2", "114")

	// Typing indicator
	ColorTyping = ac("2", "76")

	// Quick replies
	ColorQuickReply         = ac("6", "80")
	ColorQuickReplyDisabled = ColorTextMuted

	// Picker
	ColorPickerSelectedBg = ac("254", "237")
)

// -- Semantic text styles -----------------------------------------------------
// Reusable styles for the four text hierarchy levels + common bold/accent
// combos. Safe to chain (.Width(), .Padding(), etc.) since lipgloss styles
// are immutable value types -- each method returns a copy.

var (
	StylePrimaryBold   = lipgloss.NewStyle().Bold(true).Foreground(ColorTextPrimary)
	StyleSecondary     = lipgloss.NewStyle().Foreground(ColorTextSecondary)
	StyleSecondaryBold = lipgloss.NewStyle().Bold(true).Foreground(ColorTextSecondary)
	StyleDim           = lipgloss.NewStyle().Foreground(ColorTextDim)
	StyleMuted         = lipgloss.NewStyle().Foreground(ColorTextMuted)
	StyleAccentBold    = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	StyleErrorBold     = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
)

// ac is a shorthand constructor for lipgloss.AdaptiveColor.
func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}
