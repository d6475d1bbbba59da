package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers map this to HTTP 400, not 404, to keep the public contract stable.
var ErrNotFound = errors.New("not found")

// ErrBadRequest is returned by service functions when input is well-formed but
// breaks a business rule (start date in the past, end date before start date).
// Handlers map this to HTTP 400 and echo the rule message.
var ErrBadRequest = errors.New("bad request")

// ErrAlreadyInvited is returned when an invite targets an email that is
// already a participant of the trip. Handlers treat it as an unhandled error.
var ErrAlreadyInvited = errors.New("this e-mail is already invited")

// ErrActivityBeforeTrip is returned when an activity would occur before the
// trip starts. Handlers treat it as an unhandled error.
var ErrActivityBeforeTrip = errors.New("the activity must not occur before the start date of the trip")
