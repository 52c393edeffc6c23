package main

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/colorprofile"

	"github.com/kylesnowschwartz/support-chat/chat"
)

// jsonHL syntax-highlights the wire form of a message for the detail view.
// Built once with the detected background; chroma objects are reused.
type jsonHL struct {
	lexer     chroma.Lexer
	formatter chroma.Formatter
	style     *chroma.Style
}

func newJSONHL(hasDarkBg bool) *jsonHL {
	styleName := "github"
	if hasDarkBg {
		styleName = "dracula"
	}
	profile := colorprofile.Detect(os.Stderr, os.Environ())

	return &jsonHL{
		lexer:     chroma.Coalesce(lexers.Get("json")),
		formatter: formatters.Get(chromaFormatter(profile)),
		style:     styles.Get(styleName),
	}
}

// message returns the indented JSON of msg, highlighted when possible.
// Falls back to the uncolored JSON if the lexer or formatter fails.
func (h *jsonHL) message(msg chat.Message) (string, error) {
	raw, err := json.MarshalIndent(msg, "", "  ")
	if err != nil {
		return "", err
	}
	if out, ok := h.highlight(raw); ok {
		return out, nil
	}
	return string(raw), nil
}

// highlight colors already-indented JSON. Returns ("", false) for invalid
// input so the caller can fall back to plain rendering.
func (h *jsonHL) highlight(raw []byte) (string, bool) {
	if !json.Valid(raw) {
		return "", false
	}
	iterator, err := h.lexer.Tokenise(nil, string(raw))
	if err != nil {
		return "", false
	}

	var out bytes.Buffer
	if err := h.formatter.Format(&out, h.style, iterator); err != nil {
		return "", false
	}
	return out.String(), true
}

// chromaFormatter maps colorprofile profiles to chroma terminal formatter names.
func chromaFormatter(profile colorprofile.Profile) string {
	switch profile {
	case colorprofile.TrueColor:
		return "terminal16m"
	case colorprofile.ANSI256:
		return "terminal256"
	case colorprofile.ANSI:
		return "terminal16"
	default:
		return "terminal"
	}
}
