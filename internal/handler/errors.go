package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/planner/backend/internal/domain"
	"github.com/pkordes/planner/backend/internal/validate"
)

// Not-found messages. Both are answered with 400, not 404.
const (
	msgTripNotFound        = "Trip not found."
	msgParticipantNotFound = "Participant not found."
)

// errorResponse is the body of every non-2xx answer.
type errorResponse struct {
	Message string          `json:"message"`
	Errors  validate.Errors `json:"errors,omitempty"`
}

// writeError maps err onto the API's error contract:
//
//	validate.Errors       → 400 {"message":"Validation error","errors":{...}}
//	domain.ErrNotFound    → 400 {"message":notFound}
//	domain.ErrBadRequest  → 400 {"message":<rule message>}
//	*http.MaxBytesError   → 413
//	anything else         → 500, logged
//
// notFound is supplied by the caller because the handler is the layer that
// knows what was being looked up.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var (
		report   validate.Errors
		tooLarge *http.MaxBytesError
	)
	switch {
	case errors.As(err, &report):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Validation error", Errors: report})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: notFound})
	case errors.Is(err, domain.ErrBadRequest):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: unwrapMessage(err)})
	case errors.As(err, &tooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Message: http.StatusText(http.StatusRequestEntityTooLarge)})
	default:
		s.log.ErrorContext(r.Context(), "unhandled error",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Internal Server Error"})
	}
}

// unwrapMessage extracts the human-readable part from a wrapped domain.ErrBadRequest.
// e.g. "service.TripService.Create: bad request: The end date ..." → "The end date ..."
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if _, after, ok := strings.Cut(msg, domain.ErrBadRequest.Error()+": "); ok {
		return after
	}
	return msg
}
