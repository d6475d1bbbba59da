package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/planner/backend/internal/domain"
	"github.com/pkordes/planner/backend/internal/validate"
)

type createActivityRequest struct {
	Title    string `json:"title" validate:"required,min=2"`
	OccursAt string `json:"occursAt" validate:"required,coercedate"`
}

type createActivityResponse struct {
	ActivityID uuid.UUID `json:"activityId"`
}

type activityView struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	OccursAt time.Time `json:"occursAt"`
	TripID   uuid.UUID `json:"tripId"`
}

type dayView struct {
	Date       time.Time      `json:"date"`
	Activities []activityView `json:"activities"`
}

type activitiesResponse struct {
	Activities []dayView `json:"activities"`
}

// createActivity handles POST /trips/{tripId}/activities.
func (s *Server) createActivity(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}
	var req createActivityRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}

	a, err := s.activities.Create(r.Context(), domain.Activity{
		TripID:   tripID,
		Title:    req.Title,
		OccursAt: validate.MustParseDate(req.OccursAt),
	})
	if err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}

	writeJSON(w, http.StatusCreated, createActivityResponse{ActivityID: a.ID})
}

// listActivities handles GET /trips/{tripId}/activities.
// The answer has one entry per trip day, each possibly empty.
func (s *Server) listActivities(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}

	days, err := s.activities.ListByDay(r.Context(), tripID)
	if err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}

	views := make([]dayView, len(days))
	for i, d := range days {
		acts := make([]activityView, len(d.Activities))
		for j, a := range d.Activities {
			acts[j] = activityView{ID: a.ID, Title: a.Title, OccursAt: a.OccursAt.UTC(), TripID: a.TripID}
		}
		views[i] = dayView{Date: d.Date.UTC(), Activities: acts}
	}
	writeJSON(w, http.StatusOK, activitiesResponse{Activities: views})
}
