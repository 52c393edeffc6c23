package chat

import (
	"encoding/json"
	"fmt"
	"time"
)

// MessageType discriminates the shape of a message's Content.
type MessageType string

const (
	TypeText   MessageType = "text"
	TypeImage  MessageType = "image"
	TypeFile   MessageType = "file"
	TypeSystem MessageType = "system"
)

// MessageStatus tracks delivery of a message.
type MessageStatus string

const (
	StatusSending   MessageStatus = "sending"
	StatusSent      MessageStatus = "sent"
	StatusDelivered MessageStatus = "delivered"
	StatusRead      MessageStatus = "read"
	StatusFailed    MessageStatus = "failed"
)

// Content is the payload of a message. The concrete type always matches
// Message.Type: TextContent, ImageContent, FileContent or SystemContent.
type Content interface {
	contentType() MessageType
}

// TextContent is plain or markdown text.
type TextContent struct {
	Text string `json:"text"`
}

// ImageContent carries a thumbnail for preview and the full-size URL.
type ImageContent struct {
	ThumbnailURL string `json:"thumbnailUrl"`
	FullURL      string `json:"fullUrl"`
	AltText      string `json:"altText,omitempty"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
}

// FileContent is a non-image attachment.
type FileContent struct {
	FileName    string `json:"fileName"`
	FileSize    int64  `json:"fileSize,omitempty"`
	FileType    string `json:"fileType"`
	DownloadURL string `json:"downloadUrl"`
	Icon        string `json:"icon,omitempty"`
}

// SystemContent is an automated notice ("Agent joined", "Chat started").
type SystemContent struct {
	Text string `json:"text"`
}

func (TextContent) contentType() MessageType   { return TypeText }
func (ImageContent) contentType() MessageType  { return TypeImage }
func (FileContent) contentType() MessageType   { return TypeFile }
func (SystemContent) contentType() MessageType { return TypeSystem }

// Message is a single chat message. Values are treated as immutable by
// everything in this package.
type Message struct {
	ID           string
	Type         MessageType
	SenderID     string
	SenderName   string
	SenderAvatar string // empty when the sender has no avatar
	Timestamp    time.Time
	Status       MessageStatus
	Content      Content
}

// IsSystem reports whether m is an automated system message.
func (m Message) IsSystem() bool { return m.Type == TypeSystem }

// Text returns the text of a text or system message, "" otherwise.
func (m Message) Text() string {
	switch c := m.Content.(type) {
	case TextContent:
		return c.Text
	case SystemContent:
		return c.Text
	}
	return ""
}

// wireMessage is the JSONL form of a Message.
type wireMessage struct {
	ID           string          `json:"id"`
	Type         MessageType     `json:"type"`
	SenderID     string          `json:"senderId"`
	SenderName   string          `json:"senderName"`
	SenderAvatar string          `json:"senderAvatar,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
	Status       MessageStatus   `json:"status"`
	Content      json.RawMessage `json:"content"`
}

// MarshalJSON encodes the message with its content inlined under "content".
func (m Message) MarshalJSON() ([]byte, error) {
	content, err := json.Marshal(m.Content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireMessage{
		ID:           m.ID,
		Type:         m.Type,
		SenderID:     m.SenderID,
		SenderName:   m.SenderName,
		SenderAvatar: m.SenderAvatar,
		Timestamp:    m.Timestamp,
		Status:       m.Status,
		Content:      content,
	})
}

// UnmarshalJSON decodes "content" according to "type".
func (m *Message) UnmarshalJSON(data []byte) error {
	var w wireMessage
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	content, err := decodeContent(w.Type, w.Content)
	if err != nil {
		return err
	}
	*m = Message{
		ID:           w.ID,
		Type:         w.Type,
		SenderID:     w.SenderID,
		SenderName:   w.SenderName,
		SenderAvatar: w.SenderAvatar,
		Timestamp:    w.Timestamp,
		Status:       w.Status,
		Content:      content,
	}
	return nil
}

func decodeContent(t MessageType, raw json.RawMessage) (Content, error) {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	switch t {
	case TypeText:
		var c TextContent
		err := json.Unmarshal(raw, &c)
		return c, err
	case TypeImage:
		var c ImageContent
		err := json.Unmarshal(raw, &c)
		return c, err
	case TypeFile:
		var c FileContent
		err := json.Unmarshal(raw, &c)
		return c, err
	case TypeSystem:
		var c SystemContent
		err := json.Unmarshal(raw, &c)
		return c, err
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessageType, t)
	}
}

// ParseMessage parses a single JSONL line into a Message.
// Returns false if the JSON is invalid, the type is unknown, or the message
// has no ID.
func ParseMessage(line []byte) (Message, bool) {
	var m Message
	if err := json.Unmarshal(line, &m); err != nil {
		return Message{}, false
	}
	if m.ID == "" {
		return Message{}, false
	}
	return m, true
}

// TypingIndicator describes a participant who is currently typing.
type TypingIndicator struct {
	UserID   string
	UserName string
	Avatar   string
}
