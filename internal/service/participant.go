package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/planner/backend/internal/domain"
	"github.com/pkordes/planner/backend/internal/repo"
)

// ParticipantService implements business logic for Participant operations.
type ParticipantService struct {
	trips        repo.TripRepo
	participants repo.ParticipantRepo
	notifier     Notifier
}

// NewParticipantService constructs a ParticipantService backed by the provided repos.
func NewParticipantService(trips repo.TripRepo, participants repo.ParticipantRepo, notifier Notifier) *ParticipantService {
	return &ParticipantService{trips: trips, participants: participants, notifier: notifier}
}

// Invite adds email to the trip as an unconfirmed participant and sends them
// a confirmation link. name is optional.
// Returns domain.ErrNotFound if the trip does not exist and
// domain.ErrAlreadyInvited if the email is already on the trip.
func (s *ParticipantService) Invite(ctx context.Context, tripID uuid.UUID, name *string, email string) (domain.Participant, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Invite: %w", err)
	}

	existing, err := s.participants.ListByTripID(ctx, tripID)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Invite: %w", err)
	}
	for _, p := range existing {
		if p.Email == email {
			return domain.Participant{}, fmt.Errorf("service.ParticipantService.Invite: %w", domain.ErrAlreadyInvited)
		}
	}

	created, err := s.participants.Create(ctx, domain.Participant{
		TripID: tripID,
		Name:   name,
		Email:  email,
	})
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Invite: %w", err)
	}

	if err := s.notifier.ParticipantInvited(ctx, trip, created); err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Invite: %w", err)
	}
	return created, nil
}

// Confirm marks the participant as confirmed. Already confirmed participants
// are returned unchanged.
// Returns domain.ErrNotFound if the participant does not exist.
func (s *ParticipantService) Confirm(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	p, err := s.participants.GetByID(ctx, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Confirm: %w", err)
	}
	if p.IsConfirmed {
		return p, nil
	}
	if err := s.participants.Confirm(ctx, id); err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Confirm: %w", err)
	}
	p.IsConfirmed = true
	return p, nil
}

// GetByID returns a single participant.
// Returns domain.ErrNotFound if the participant does not exist.
func (s *ParticipantService) GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	p, err := s.participants.GetByID(ctx, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.GetByID: %w", err)
	}
	return p, nil
}

// ListByTripID returns the participants of a trip, owner first.
// Returns domain.ErrNotFound if the trip does not exist.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ParticipantService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.ParticipantService.ListByTripID: %w", err)
	}
	participants, err := s.participants.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ParticipantService.ListByTripID: %w", err)
	}
	if participants == nil {
		return []domain.Participant{}, nil
	}
	return participants, nil
}
