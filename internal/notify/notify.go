// Package notify composes the planner's transactional emails and hands them
// to a mail.Sender. It knows how confirmation links are built; services only
// say who should be told about which trip.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/pkordes/planner/backend/internal/domain"
	"github.com/pkordes/planner/backend/internal/mail"
)

// Template names, also used as metric labels.
const (
	TemplateTripConfirmation  = "trip_confirmation"
	TemplateParticipantInvite = "participant_invite"
)

// EmailRecorder receives one call per send attempt. *metrics.Collector satisfies it.
type EmailRecorder interface {
	RecordEmail(template string, err error)
}

// Config holds the addresses the notifier renders into every email.
type Config struct {
	From mail.Address
	// APIBaseURL prefixes confirmation links, e.g. https://api.plann.er.
	APIBaseURL string
	// PreviewBaseURL is the web UI of a mail catcher (Mailpit). Optional.
	PreviewBaseURL string
}

// Notifier sends trip confirmation and participant invite emails.
type Notifier struct {
	sender   mail.Sender
	cfg      Config
	log      *slog.Logger
	recorder EmailRecorder
}

// New constructs a Notifier.
func New(sender mail.Sender, cfg Config, log *slog.Logger, recorder EmailRecorder) *Notifier {
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	cfg.PreviewBaseURL = strings.TrimRight(cfg.PreviewBaseURL, "/")
	return &Notifier{sender: sender, cfg: cfg, log: log, recorder: recorder}
}

// TripCreated asks the owner to confirm the trip they just created.
func (n *Notifier) TripCreated(ctx context.Context, trip domain.Trip, owner domain.Participant) error {
	link := n.cfg.APIBaseURL + "/trips/" + trip.ID.String() + "/confirm"
	subject, body, err := mail.TripConfirmation(tripEmail(trip, link))
	if err != nil {
		return fmt.Errorf("notify.Notifier.TripCreated: %w", err)
	}
	to := mail.Address{Address: owner.Email}
	if owner.Name != nil {
		to.Name = mail.SanitizeText(*owner.Name)
	}
	if err := n.send(ctx, TemplateTripConfirmation, to, subject, body); err != nil {
		return fmt.Errorf("notify.Notifier.TripCreated: %w", err)
	}
	return nil
}

// ParticipantInvited asks an invitee to confirm attendance.
func (n *Notifier) ParticipantInvited(ctx context.Context, trip domain.Trip, p domain.Participant) error {
	link := n.cfg.APIBaseURL + "/participants/" + p.ID.String() + "/confirm"
	subject, body, err := mail.ParticipantInvite(tripEmail(trip, link))
	if err != nil {
		return fmt.Errorf("notify.Notifier.ParticipantInvited: %w", err)
	}
	if err := n.send(ctx, TemplateParticipantInvite, mail.Address{Address: p.Email}, subject, body); err != nil {
		return fmt.Errorf("notify.Notifier.ParticipantInvited: %w", err)
	}
	return nil
}

func (n *Notifier) send(ctx context.Context, template string, to mail.Address, subject, body string) error {
	receipt, err := n.sender.Send(ctx, mail.Message{
		From:    n.cfg.From,
		To:      to,
		Subject: subject,
		HTML:    body,
	})
	n.recorder.RecordEmail(template, err)
	if err != nil {
		return err
	}

	attrs := []any{"template", template, "to", to.Address, "message_id", receipt.MessageID}
	if preview := n.previewURL(receipt.MessageID); preview != "" {
		attrs = append(attrs, "preview_url", preview)
	}
	n.log.InfoContext(ctx, "email sent", attrs...)
	return nil
}

// previewURL links to the message in the mail catcher's search UI.
func (n *Notifier) previewURL(messageID string) string {
	if n.cfg.PreviewBaseURL == "" || messageID == "" {
		return ""
	}
	return n.cfg.PreviewBaseURL + "/search?q=" + url.QueryEscape("message-id:"+messageID)
}

func tripEmail(trip domain.Trip, link string) mail.TripEmail {
	return mail.TripEmail{
		Destination: trip.Destination,
		StartsAt:    trip.StartsAt,
		EndsAt:      trip.EndsAt,
		Link:        link,
	}
}
