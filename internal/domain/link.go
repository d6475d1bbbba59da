package domain

import "github.com/google/uuid"

// Link is a titled reference URL attached to a trip (bookings, docs, maps).
type Link struct {
	ID     uuid.UUID
	TripID uuid.UUID
	Title  string
	URL    string
}
