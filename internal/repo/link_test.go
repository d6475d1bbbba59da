package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/planner/backend/internal/domain"
)

func TestLinkRepo_CreateAndList(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	trip := createTrip(t, r)

	created, err := r.links.Create(ctx, domain.Link{
		TripID: trip.ID,
		Title:  "Airbnb",
		URL:    "https://airbnb.com/rooms/123",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	got, err := r.links.ListByTripID(ctx, trip.ID)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, created, got[0])
}

func TestLinkRepo_ListByTripID_OtherTripIsolated(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	first := createTrip(t, r)
	second := createTrip(t, r)

	_, err := r.links.Create(ctx, domain.Link{TripID: first.ID, Title: "Map", URL: "https://maps.example.com"})
	require.NoError(t, err)

	got, err := r.links.ListByTripID(ctx, second.ID)

	require.NoError(t, err)
	assert.Empty(t, got)
}
