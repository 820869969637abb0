// Package mail delivers outgoing messages, either through SMTP or through a
// simulated transport that only logs.
package mail

import (
	"context"
	"errors"
	"strings"
)

// ErrNoRecipient is returned when a message has no recipient address.
var ErrNoRecipient = errors.New("mail: no recipient")

// ErrInvalidAddress is returned when a recipient address is malformed.
var ErrInvalidAddress = errors.New("mail: invalid recipient address")

// Message is one outgoing email with an HTML body and a plain-text alternative.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers a single message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// PlainText returns msg.Text, or the text content of msg.HTML when no text was given.
func (m Message) PlainText() string {
	if strings.TrimSpace(m.Text) != "" {
		return m.Text
	}
	return HTMLToText(m.HTML)
}
