// Package mail is the outbound email boundary of the planner API.
// A Sender accepts a fully composed Message and hands it to a transport;
// delivery is not tracked beyond the transport accepting it.
package mail

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
)

// ErrNoRecipient is returned when a Message has no usable To address.
var ErrNoRecipient = errors.New("mail: recipient address is required")

// Address is an email address with an optional display name.
type Address struct {
	Name    string
	Address string
}

// String renders the address for a header, quoting the name when needed.
func (a Address) String() string {
	return (&mail.Address{Name: a.Name, Address: a.Address}).String()
}

// Message is an outbound HTML email.
type Message struct {
	From    Address
	To      Address
	Subject string
	HTML    string
}

// Receipt is what a transport reports back once it accepted a message.
type Receipt struct {
	// MessageID is the Message-ID header value, without angle brackets.
	MessageID string
}

// Sender defines behaviour for sending email messages.
type Sender interface {
	Send(ctx context.Context, msg Message) (Receipt, error)
}

// validate checks the addresses every transport needs.
func validate(msg Message) error {
	if strings.TrimSpace(msg.To.Address) == "" {
		return ErrNoRecipient
	}
	if _, err := mail.ParseAddress(msg.From.Address); err != nil {
		return errors.Join(errors.New("mail: invalid from address"), err)
	}
	if _, err := mail.ParseAddress(msg.To.Address); err != nil {
		return errors.Join(errors.New("mail: invalid recipient address"), err)
	}
	return nil
}

// newMessageID returns a random id in the form <hex>@<domain of from>.
func newMessageID(from string) string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	domain := "localhost"
	if at := strings.LastIndexByte(from, '@'); at >= 0 && at < len(from)-1 {
		domain = from[at+1:]
	}
	return hex.EncodeToString(b[:]) + "@" + domain
}

// LogSender is a Sender that only logs. It is used when SMTP delivery is
// disabled so local development works without a mail server.
type LogSender struct {
	log *slog.Logger
}

// NewLogSender returns a LogSender writing to log.
func NewLogSender(log *slog.Logger) *LogSender {
	return &LogSender{log: log}
}

// Send validates msg, logs it at debug level with the full body, and returns a fresh id.
func (s *LogSender) Send(ctx context.Context, msg Message) (Receipt, error) {
	if err := validate(msg); err != nil {
		return Receipt{}, err
	}
	id := newMessageID(msg.From.Address)
	s.log.InfoContext(ctx, "email not delivered: smtp disabled",
		"message_id", id,
		"to", msg.To.Address,
		"subject", msg.Subject,
	)
	s.log.DebugContext(ctx, "email body", "message_id", id, "html", msg.HTML)
	return Receipt{MessageID: id}, nil
}
