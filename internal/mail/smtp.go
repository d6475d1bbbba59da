package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// SMTPSettings capture the runtime configuration required by the SMTP sender.
type SMTPSettings struct {
	Host     string
	Port     int
	Username string
	Password string
	// UseTLS dials with implicit TLS (port 465 style). Otherwise STARTTLS is
	// used when the server offers it.
	UseTLS  bool
	Timeout time.Duration
}

type smtpClient interface {
	Mail(string) error
	Rcpt(string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
	StartTLS(*tls.Config) error
	Auth(smtp.Auth) error
	Extension(string) (bool, string)
}

type smtpDialFunc func(ctx context.Context, cfg SMTPSettings) (smtpClient, error)

// SMTPSender delivers messages through an SMTP relay.
// One dial per message; the relay is expected to be local or pooled upstream.
type SMTPSender struct {
	cfg    SMTPSettings
	dialFn smtpDialFunc
	now    func() time.Time
}

// NewSMTPSender validates cfg and returns a Sender for it.
func NewSMTPSender(cfg SMTPSettings) (*SMTPSender, error) {
	if strings.TrimSpace(cfg.Host) == "" {
		return nil, errors.New("smtp: host is required")
	}
	if cfg.Port <= 0 {
		return nil, errors.New("smtp: port is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &SMTPSender{cfg: cfg, dialFn: defaultDial, now: time.Now}, nil
}

// Send delivers msg and returns the Message-ID it was sent with.
func (s *SMTPSender) Send(ctx context.Context, msg Message) (Receipt, error) {
	if err := validate(msg); err != nil {
		return Receipt{}, err
	}

	client, err := s.dialFn(ctx, s.cfg)
	if err != nil {
		return Receipt{}, err
	}
	defer client.Close()

	if s.cfg.Username != "" {
		auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return Receipt{}, fmt.Errorf("smtp: auth: %w", err)
		}
	}

	if err := client.Mail(msg.From.Address); err != nil {
		return Receipt{}, fmt.Errorf("smtp: mail from: %w", err)
	}
	if err := client.Rcpt(msg.To.Address); err != nil {
		return Receipt{}, fmt.Errorf("smtp: rcpt to %s: %w", msg.To.Address, err)
	}

	wc, err := client.Data()
	if err != nil {
		return Receipt{}, fmt.Errorf("smtp: data command: %w", err)
	}

	id := newMessageID(msg.From.Address)
	if _, err := io.WriteString(wc, formatMessage(id, s.now(), msg)); err != nil {
		_ = wc.Close()
		return Receipt{}, fmt.Errorf("smtp: write body: %w", err)
	}
	if err := wc.Close(); err != nil {
		return Receipt{}, fmt.Errorf("smtp: close data writer: %w", err)
	}

	if err := client.Quit(); err != nil {
		return Receipt{}, fmt.Errorf("smtp: quit: %w", err)
	}
	return Receipt{MessageID: id}, nil
}

func defaultDial(ctx context.Context, cfg SMTPSettings) (smtpClient, error) {
	address := net.JoinHostPort(cfg.Host, fmt.Sprint(cfg.Port))
	dialer := &net.Dialer{Timeout: cfg.Timeout}

	var (
		conn net.Conn
		err  error
	)
	if cfg.UseTLS {
		tlsDialer := &tls.Dialer{NetDialer: dialer, Config: &tls.Config{ServerName: cfg.Host}}
		conn, err = tlsDialer.DialContext(ctx, "tcp", address)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", address)
	}
	if err != nil {
		return nil, fmt.Errorf("smtp: dial %s: %w", address, err)
	}

	client, err := smtp.NewClient(conn, cfg.Host)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("smtp: new client: %w", err)
	}

	if !cfg.UseTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: cfg.Host}); err != nil {
				_ = client.Close()
				return nil, fmt.Errorf("smtp: start tls: %w", err)
			}
		}
	}
	return client, nil
}

// formatMessage renders headers and body as an RFC 5322 message.
func formatMessage(id string, date time.Time, msg Message) string {
	headers := []string{
		"From: " + msg.From.String(),
		"To: " + msg.To.String(),
		"Subject: " + mime.QEncoding.Encode("utf-8", escapeHeader(msg.Subject)),
		"Date: " + date.Format(time.RFC1123Z),
		"Message-ID: <" + id + ">",
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
		"",
	}
	return strings.Join(headers, "\r\n") + "\r\n" + msg.HTML
}

func escapeHeader(value string) string {
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "\n", " ")
	return value
}
