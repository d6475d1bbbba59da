package notify_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/planner/backend/internal/domain"
	"github.com/pkordes/planner/backend/internal/mail"
	"github.com/pkordes/planner/backend/internal/notify"
)

// fakeSender captures every message it is asked to send.
type fakeSender struct {
	sent []mail.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg mail.Message) (mail.Receipt, error) {
	if f.err != nil {
		return mail.Receipt{}, f.err
	}
	f.sent = append(f.sent, msg)
	return mail.Receipt{MessageID: "abc123@plann.er"}, nil
}

type recordedEmail struct {
	template string
	failed   bool
}

type fakeRecorder struct{ calls []recordedEmail }

func (f *fakeRecorder) RecordEmail(template string, err error) {
	f.calls = append(f.calls, recordedEmail{template: template, failed: err != nil})
}

func newNotifier(sender mail.Sender, rec notify.EmailRecorder, logs *bytes.Buffer) *notify.Notifier {
	return notify.New(sender, notify.Config{
		From:           mail.Address{Name: "plann.er team", Address: "hello@plann.er"},
		APIBaseURL:     "https://api.plann.er/",
		PreviewBaseURL: "http://localhost:8025",
	}, slog.New(slog.NewJSONHandler(logs, nil)), rec)
}

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:          uuid.MustParse("6f1c7d1e-2b1a-4c55-9d1e-0c5f7e3b9a10"),
		Destination: "Lisbon",
		StartsAt:    time.Date(2030, 6, 1, 9, 0, 0, 0, time.UTC),
		EndsAt:      time.Date(2030, 6, 3, 18, 0, 0, 0, time.UTC),
	}
}

func TestNotifier_TripCreated(t *testing.T) {
	sender := &fakeSender{}
	rec := &fakeRecorder{}
	var logs bytes.Buffer
	n := newNotifier(sender, rec, &logs)

	name := "Ana"
	err := n.TripCreated(context.Background(), tripFixture(), domain.Participant{Name: &name, Email: "ana@example.com", IsOwner: true})

	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, mail.Address{Name: "Ana", Address: "ana@example.com"}, msg.To)
	assert.Equal(t, "hello@plann.er", msg.From.Address)
	assert.Equal(t, "Confirm your trip to Lisbon", msg.Subject)
	assert.Contains(t, msg.HTML, "https://api.plann.er/trips/6f1c7d1e-2b1a-4c55-9d1e-0c5f7e3b9a10/confirm")

	assert.Equal(t, []recordedEmail{{template: notify.TemplateTripConfirmation}}, rec.calls)
	assert.Contains(t, logs.String(), `"preview_url":"http://localhost:8025/search?q=message-id%3Aabc123%40plann.er"`)
}

func TestNotifier_ParticipantInvited(t *testing.T) {
	sender := &fakeSender{}
	n := newNotifier(sender, &fakeRecorder{}, &bytes.Buffer{})

	p := domain.Participant{ID: uuid.MustParse("0b8f0a63-7f32-4d0c-8f3c-3a2a9d1f6e21"), Email: "bia@example.com"}
	err := n.ParticipantInvited(context.Background(), tripFixture(), p)

	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "bia@example.com", sender.sent[0].To.Address)
	assert.Empty(t, sender.sent[0].To.Name)
	assert.Contains(t, sender.sent[0].HTML, "https://api.plann.er/participants/0b8f0a63-7f32-4d0c-8f3c-3a2a9d1f6e21/confirm")
}

func TestNotifier_sendFailureIsRecordedAndReturned(t *testing.T) {
	sendErr := errors.New("smtp: dial: connection refused")
	rec := &fakeRecorder{}
	n := newNotifier(&fakeSender{err: sendErr}, rec, &bytes.Buffer{})

	err := n.ParticipantInvited(context.Background(), tripFixture(), domain.Participant{ID: uuid.New(), Email: "bia@example.com"})

	assert.ErrorIs(t, err, sendErr)
	assert.Equal(t, []recordedEmail{{template: notify.TemplateParticipantInvite, failed: true}}, rec.calls)
}
