// Package service contains the business logic for the planner API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/planner/backend/internal/domain"
	"github.com/pkordes/planner/backend/internal/repo"
)

// inviteFanOut caps concurrent sends when a confirmed trip notifies its invitees.
const inviteFanOut = 8

// Notifier sends the transactional emails a service operation triggers.
// *notify.Notifier is the production implementation.
type Notifier interface {
	TripCreated(ctx context.Context, trip domain.Trip, owner domain.Participant) error
	ParticipantInvited(ctx context.Context, trip domain.Trip, p domain.Participant) error
}

// NewTrip is the input for TripService.Create.
type NewTrip struct {
	Destination    string
	StartsAt       time.Time
	EndsAt         time.Time
	OwnerName      string
	OwnerEmail     string
	EmailsToInvite []string
}

// TripService implements business logic for Trip operations.
type TripService struct {
	trips        repo.TripRepo
	participants repo.ParticipantRepo
	notifier     Notifier
	now          func() time.Time
}

// NewTripService constructs a TripService. now is the clock used for the
// "start date in the past" rule; nil means time.Now.
func NewTripService(trips repo.TripRepo, participants repo.ParticipantRepo, notifier Notifier, now func() time.Time) *TripService {
	if now == nil {
		now = time.Now
	}
	return &TripService{trips: trips, participants: participants, notifier: notifier, now: now}
}

// Create validates the dates, persists the trip with the owner (confirmed)
// followed by one unconfirmed participant per invited email, then emails the
// owner a confirmation link.
// Returns domain.ErrBadRequest if the dates break a rule.
func (s *TripService) Create(ctx context.Context, in NewTrip) (domain.Trip, error) {
	if err := s.validateDates(in.StartsAt, in.EndsAt); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	ownerName := in.OwnerName
	owner := domain.Participant{
		Name:        &ownerName,
		Email:       in.OwnerEmail,
		IsOwner:     true,
		IsConfirmed: true,
	}
	participants := make([]domain.Participant, 0, len(in.EmailsToInvite)+1)
	participants = append(participants, owner)
	for _, email := range in.EmailsToInvite {
		participants = append(participants, domain.Participant{Email: email})
	}

	trip, err := s.trips.Create(ctx, domain.Trip{
		Destination: in.Destination,
		StartsAt:    in.StartsAt,
		EndsAt:      in.EndsAt,
	}, participants)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	owner.TripID = trip.ID
	if err := s.notifier.TripCreated(ctx, trip, owner); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return trip, nil
}

// GetByID returns a single trip by ID.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// Update changes destination and dates of an existing trip. Confirmed trips
// can be edited too. Activities already scheduled are not re-validated
// against a moved start date.
// Returns domain.ErrNotFound if the trip does not exist and
// domain.ErrBadRequest if the dates break a rule.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) error {
	if _, err := s.trips.GetByID(ctx, trip.ID); err != nil {
		return fmt.Errorf("service.TripService.Update: %w", err)
	}
	if err := s.validateDates(trip.StartsAt, trip.EndsAt); err != nil {
		return fmt.Errorf("service.TripService.Update: %w", err)
	}
	if _, err := s.trips.Update(ctx, trip); err != nil {
		return fmt.Errorf("service.TripService.Update: %w", err)
	}
	return nil
}

// Confirm marks the trip as confirmed and invites every non-owner participant.
// Confirming an already confirmed trip returns it unchanged without sending
// anything. Invites are sent concurrently and all of them are attempted; if
// any failed the combined error is returned, but the trip stays confirmed.
// The returned trip is valid whenever the trip exists, even alongside an error.
func (s *TripService) Confirm(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Confirm: %w", err)
	}
	if trip.IsConfirmed {
		return trip, nil
	}

	if err := s.trips.Confirm(ctx, id); err != nil {
		return trip, fmt.Errorf("service.TripService.Confirm: %w", err)
	}
	trip.IsConfirmed = true

	participants, err := s.participants.ListByTripID(ctx, id)
	if err != nil {
		return trip, fmt.Errorf("service.TripService.Confirm: %w", err)
	}

	var invitees []domain.Participant
	for _, p := range participants {
		if !p.IsOwner {
			invitees = append(invitees, p)
		}
	}

	errs := make([]error, len(invitees))
	var g errgroup.Group
	g.SetLimit(inviteFanOut)
	for i, p := range invitees {
		g.Go(func() error {
			errs[i] = s.notifier.ParticipantInvited(ctx, trip, p)
			return nil
		})
	}
	_ = g.Wait()

	if err := multierr.Combine(errs...); err != nil {
		return trip, fmt.Errorf("service.TripService.Confirm: invites: %w", err)
	}
	return trip, nil
}

// validateDates enforces the rules shared by Create and Update.
//   - StartsAt must not be before the current instant.
//   - EndsAt must not be before StartsAt.
func (s *TripService) validateDates(startsAt, endsAt time.Time) error {
	if startsAt.Before(s.now()) {
		return fmt.Errorf("%w: The start date must be greater than or equal to the current date.", domain.ErrBadRequest)
	}
	if endsAt.Before(startsAt) {
		return fmt.Errorf("%w: The end date must be greater than or equal to the start date.", domain.ErrBadRequest)
	}
	return nil
}
