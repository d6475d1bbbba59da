package handler

import (
	"net/http"

	"github.com/google/uuid"
)

type createInviteRequest struct {
	Email string  `json:"email" validate:"required,email"`
	Name  *string `json:"name"`
}

type createInviteResponse struct {
	ParticipantID uuid.UUID `json:"participantId"`
}

// participantView withholds isOwner and tripId.
type participantView struct {
	ID          uuid.UUID `json:"id"`
	Name        *string   `json:"name"`
	Email       string    `json:"email"`
	IsConfirmed bool      `json:"isConfirmed"`
}

type participantsResponse struct {
	Participants []participantView `json:"participants"`
}

type participantResponse struct {
	Participant participantView `json:"participant"`
}

// createInvite handles POST /trips/{tripId}/invites.
func (s *Server) createInvite(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}
	var req createInviteRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}

	p, err := s.participants.Invite(r.Context(), tripID, req.Name, req.Email)
	if err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}

	writeJSON(w, http.StatusCreated, createInviteResponse{ParticipantID: p.ID})
}

// listParticipants handles GET /trips/{tripId}/participants.
func (s *Server) listParticipants(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}

	participants, err := s.participants.ListByTripID(r.Context(), tripID)
	if err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}

	views := make([]participantView, len(participants))
	for i, p := range participants {
		views[i] = participantView{ID: p.ID, Name: p.Name, Email: p.Email, IsConfirmed: p.IsConfirmed}
	}
	writeJSON(w, http.StatusOK, participantsResponse{Participants: views})
}

// getParticipant handles GET /participants/{participantId}.
func (s *Server) getParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "participantId")
	if err != nil {
		s.writeError(w, r, err, msgParticipantNotFound)
		return
	}

	p, err := s.participants.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, msgParticipantNotFound)
		return
	}

	writeJSON(w, http.StatusOK, participantResponse{
		Participant: participantView{ID: p.ID, Name: p.Name, Email: p.Email, IsConfirmed: p.IsConfirmed},
	})
}

// confirmParticipant handles GET /participants/{participantId}/confirm,
// the link in an invite email.
func (s *Server) confirmParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "participantId")
	if err != nil {
		s.writeError(w, r, err, msgParticipantNotFound)
		return
	}

	p, err := s.participants.Confirm(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, msgParticipantNotFound)
		return
	}

	http.Redirect(w, r, s.tripPage(p.TripID), http.StatusFound)
}
