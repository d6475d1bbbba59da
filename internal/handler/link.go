package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/planner/backend/internal/domain"
)

type createLinkRequest struct {
	Title string `json:"title" validate:"required,min=2"`
	URL   string `json:"url" validate:"required,url"`
}

type createLinkResponse struct {
	LinkID uuid.UUID `json:"linkId"`
}

type linkView struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	URL    string    `json:"url"`
	TripID uuid.UUID `json:"tripId"`
}

type linksResponse struct {
	Links []linkView `json:"links"`
}

// createLink handles POST /trips/{tripId}/links.
func (s *Server) createLink(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}
	var req createLinkRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}

	l, err := s.links.Create(r.Context(), domain.Link{TripID: tripID, Title: req.Title, URL: req.URL})
	if err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}

	writeJSON(w, http.StatusCreated, createLinkResponse{LinkID: l.ID})
}

// listLinks handles GET /trips/{tripId}/links.
func (s *Server) listLinks(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}

	links, err := s.links.ListByTripID(r.Context(), tripID)
	if err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}

	views := make([]linkView, len(links))
	for i, l := range links {
		views[i] = linkView{ID: l.ID, Title: l.Title, URL: l.URL, TripID: l.TripID}
	}
	writeJSON(w, http.StatusOK, linksResponse{Links: views})
}
