package chat

import "errors"

var (
	ErrUnknownMessageType = errors.New("unknown message type")
	ErrEmptyLog           = errors.New("chat log has no messages")
)
