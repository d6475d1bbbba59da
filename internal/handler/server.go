// Package handler implements the HTTP handlers for the planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, etc.) but share the same Server struct so they
// can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/planner/backend/internal/domain"
	"github.com/pkordes/planner/backend/internal/service"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, in service.NewTrip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	Update(ctx context.Context, trip domain.Trip) error
	Confirm(ctx context.Context, id uuid.UUID) (domain.Trip, error)
}

// ParticipantServicer defines the operations the participant handlers depend on.
type ParticipantServicer interface {
	Invite(ctx context.Context, tripID uuid.UUID, name *string, email string) (domain.Participant, error)
	Confirm(ctx context.Context, id uuid.UUID) (domain.Participant, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)
}

// ActivityServicer defines the operations the activity handlers depend on.
type ActivityServicer interface {
	Create(ctx context.Context, a domain.Activity) (domain.Activity, error)
	ListByDay(ctx context.Context, tripID uuid.UUID) ([]domain.DayActivities, error)
}

// LinkServicer defines the operations the link handlers depend on.
type LinkServicer interface {
	Create(ctx context.Context, l domain.Link) (domain.Link, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error)
}

// Server serves every planner API route.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	trips        TripServicer
	participants ParticipantServicer
	activities   ActivityServicer
	links        LinkServicer

	// frontEndBaseURL is where confirmation redirects land, without trailing slash.
	frontEndBaseURL string
	log             *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil log falls back to slog.Default().
func NewServer(
	trips TripServicer,
	participants ParticipantServicer,
	activities ActivityServicer,
	links LinkServicer,
	frontEndBaseURL string,
	log *slog.Logger,
) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		trips:           trips,
		participants:    participants,
		activities:      activities,
		links:           links,
		frontEndBaseURL: strings.TrimRight(frontEndBaseURL, "/"),
		log:             log,
	}
}

// Routes registers every API route on r.
// main.go adds the middleware stack and the /metrics endpoint on the same router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.getHealth)
	r.Get("/openapi.yaml", s.getOpenAPI)

	r.Post("/trips", s.createTrip)
	r.Get("/trips/{tripId}", s.getTrip)
	r.Put("/trips/{tripId}", s.updateTrip)
	r.Get("/trips/{tripId}/confirm", s.confirmTrip)

	r.Post("/trips/{tripId}/invites", s.createInvite)
	r.Get("/trips/{tripId}/participants", s.listParticipants)
	r.Get("/participants/{participantId}", s.getParticipant)
	r.Get("/participants/{participantId}/confirm", s.confirmParticipant)

	r.Post("/trips/{tripId}/activities", s.createActivity)
	r.Get("/trips/{tripId}/activities", s.listActivities)

	r.Post("/trips/{tripId}/links", s.createLink)
	r.Get("/trips/{tripId}/links", s.listLinks)
}

// tripPage is the front-end URL a confirmation redirects to.
func (s *Server) tripPage(tripID uuid.UUID) string {
	return s.frontEndBaseURL + "/trips/" + tripID.String()
}
