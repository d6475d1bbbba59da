package mail

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// dateLayout is how trip dates appear in email copy.
const dateLayout = "January 2, 2006"

// strict strips every tag; user-typed text is rendered as plain text only.
var strict = bluemonday.StrictPolicy()

var (
	tripConfirmationTmpl = template.Must(template.New("trip_confirmation").Parse(`<div style="font-family: sans-serif; font-size: 16px; line-height: 1.6">
  <p>You asked to create a trip to <strong>{{.Destination}}</strong> from <strong>{{.StartsAt}}</strong> to <strong>{{.EndsAt}}</strong>.</p>
  <p></p>
  <p>To confirm your trip, click the link below:</p>
  <p></p>
  <p><a href="{{.Link}}">Confirm trip</a></p>
  <p></p>
  <p>If you don't know what this email is about, just ignore it.</p>
</div>`))

	participantInviteTmpl = template.Must(template.New("participant_invite").Parse(`<div style="font-family: sans-serif; font-size: 16px; line-height: 1.6">
  <p>You have been invited to join a trip to <strong>{{.Destination}}</strong> from <strong>{{.StartsAt}}</strong> to <strong>{{.EndsAt}}</strong>.</p>
  <p></p>
  <p>To confirm your attendance, click the link below:</p>
  <p></p>
  <p><a href="{{.Link}}">Confirm attendance</a></p>
  <p></p>
  <p>If you don't know what this email is about, just ignore it.</p>
</div>`))
)

// TripEmail is the data both transactional templates render.
type TripEmail struct {
	Destination string
	StartsAt    time.Time
	EndsAt      time.Time
	// Link is the absolute confirmation URL.
	Link string
}

type tripEmailView struct {
	Destination string
	StartsAt    string
	EndsAt      string
	Link        template.URL
}

func (e TripEmail) view() tripEmailView {
	return tripEmailView{
		Destination: SanitizeText(e.Destination),
		StartsAt:    e.StartsAt.Format(dateLayout),
		EndsAt:      e.EndsAt.Format(dateLayout),
		// Links are built by the server from configured base URLs, never from input.
		Link: template.URL(e.Link),
	}
}

// TripConfirmation renders the subject and body asking the owner to confirm a new trip.
func TripConfirmation(e TripEmail) (subject, body string, err error) {
	body, err = render(tripConfirmationTmpl, e.view())
	if err != nil {
		return "", "", err
	}
	return "Confirm your trip to " + SanitizeText(e.Destination), body, nil
}

// ParticipantInvite renders the subject and body asking an invitee to confirm attendance.
func ParticipantInvite(e TripEmail) (subject, body string, err error) {
	body, err = render(participantInviteTmpl, e.view())
	if err != nil {
		return "", "", err
	}
	return "Confirm your attendance on the trip to " + SanitizeText(e.Destination), body, nil
}

// SanitizeText removes any markup from user-supplied text and returns plain
// text. bluemonday escapes entities in its output; they are unescaped here so
// html/template escapes exactly once.
func SanitizeText(s string) string {
	return html.UnescapeString(strict.Sanitize(s))
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("mail: render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}
