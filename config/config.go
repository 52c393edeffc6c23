// Package config loads the chat display settings from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/kylesnowschwartz/support-chat/chat"
)

var validate = validator.New()

// DefaultDateFormat is preset before unmarshalling because env tags cannot
// carry a comma in their default.
const DefaultDateFormat = "MMMM d, yyyy"

// Config mirrors the CHAT_* environment. Every field has a default so an
// empty environment is valid.
type Config struct {
	DateFormat      string        `env:"CHAT_DATE_FORMAT" validate:"required"`
	TimeFormat      string        `env:"CHAT_TIME_FORMAT,default=HH:mm" validate:"required"`
	LabelToday      string        `env:"CHAT_LABEL_TODAY,default=Today" validate:"required"`
	LabelYesterday  string        `env:"CHAT_LABEL_YESTERDAY,default=Yesterday" validate:"required"`
	Markdown        bool          `env:"CHAT_MARKDOWN_ENABLED,default=false"`
	MarkdownDisplay bool          `env:"CHAT_MARKDOWN_DISPLAY,default=false"`
	MarkdownInput   bool          `env:"CHAT_MARKDOWN_INPUT,default=false"`
	GroupThreshold  time.Duration `env:"CHAT_GROUP_THRESHOLD,default=5m" validate:"gt=0"`
	CurrentUser     string        `env:"CHAT_CURRENT_USER,default=user-1" validate:"required,max=256"`
	LogLevel        string        `env:"CHAT_LOG_LEVEL,default=ERROR" validate:"oneof=DEBUG INFO WARN ERROR"`
}

// Load reads an optional .env file from the working directory, then the
// process environment, and validates the result.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnviron()
}

// FromEnviron builds a Config from the process environment only.
func FromEnviron() (Config, error) {
	c := Config{DateFormat: DefaultDateFormat}
	if _, err := env.UnmarshalFromEnviron(&c); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	c.LogLevel = strings.ToUpper(c.LogLevel)
	if err := validate.Struct(c); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

// Labels returns the date separator words.
func (c Config) Labels() chat.DateSeparatorLabels {
	return chat.DateSeparatorLabels{Today: c.LabelToday, Yesterday: c.LabelYesterday}
}

// RenderMarkdown reports whether message text should be rendered as
// markdown. Display rendering needs both the master switch and the display
// flag.
func (c Config) RenderMarkdown() bool {
	return c.Markdown && c.MarkdownDisplay
}

// MarkdownComposer reports whether the composer accepts markdown input.
func (c Config) MarkdownComposer() bool {
	return c.Markdown && c.MarkdownInput
}
