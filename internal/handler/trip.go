package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/planner/backend/internal/domain"
	"github.com/pkordes/planner/backend/internal/service"
	"github.com/pkordes/planner/backend/internal/validate"
)

type createTripRequest struct {
	Destination    string   `json:"destination" validate:"required,min=2"`
	StartsAt       string   `json:"startsAt" validate:"required,coercedate"`
	EndsAt         string   `json:"endsAt" validate:"required,coercedate"`
	OwnerName      *string  `json:"ownerName" validate:"required"`
	OwnerEmail     string   `json:"ownerEmail" validate:"required,email"`
	EmailsToInvite []string `json:"emailsToInvite" validate:"required,dive,email"`
}

type updateTripRequest struct {
	Destination string `json:"destination" validate:"required,min=2"`
	StartsAt    string `json:"startsAt" validate:"required,coercedate"`
	EndsAt      string `json:"endsAt" validate:"required,coercedate"`
}

type createTripResponse struct {
	TripID uuid.UUID `json:"tripId"`
}

type tripView struct {
	ID          uuid.UUID `json:"id"`
	Destination string    `json:"destination"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	IsConfirmed bool      `json:"isConfirmed"`
}

type tripResponse struct {
	Trip tripView `json:"trip"`
}

// createTrip handles POST /trips.
func (s *Server) createTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}

	created, err := s.trips.Create(r.Context(), service.NewTrip{
		Destination:    req.Destination,
		StartsAt:       validate.MustParseDate(req.StartsAt),
		EndsAt:         validate.MustParseDate(req.EndsAt),
		OwnerName:      *req.OwnerName,
		OwnerEmail:     req.OwnerEmail,
		EmailsToInvite: req.EmailsToInvite,
	})
	if err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}

	writeJSON(w, http.StatusCreated, createTripResponse{TripID: created.ID})
}

// getTrip handles GET /trips/{tripId}.
func (s *Server) getTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}

	writeJSON(w, http.StatusOK, tripResponse{Trip: tripToView(trip)})
}

// updateTrip handles PUT /trips/{tripId}.
func (s *Server) updateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}
	var req updateTripRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}

	err = s.trips.Update(r.Context(), domain.Trip{
		ID:          id,
		Destination: req.Destination,
		StartsAt:    validate.MustParseDate(req.StartsAt),
		EndsAt:      validate.MustParseDate(req.EndsAt),
	})
	if err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// confirmTrip handles GET /trips/{tripId}/confirm, the link in the owner's email.
// If any invite email fails the trip stays confirmed and the answer is 500.
func (s *Server) confirmTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}

	trip, err := s.trips.Confirm(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}

	http.Redirect(w, r, s.tripPage(trip.ID), http.StatusFound)
}

// --- mapping helpers --------------------------------------------------------

func tripToView(t domain.Trip) tripView {
	return tripView{
		ID:          t.ID,
		Destination: t.Destination,
		StartsAt:    t.StartsAt.UTC(),
		EndsAt:      t.EndsAt.UTC(),
		IsConfirmed: t.IsConfirmed,
	}
}
