package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/planner/backend/internal/domain"
	"github.com/pkordes/planner/backend/internal/repo"
)

// ActivityService implements business logic for Activity operations.
type ActivityService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
}

// NewActivityService constructs an ActivityService backed by the provided repos.
func NewActivityService(trips repo.TripRepo, activities repo.ActivityRepo) *ActivityService {
	return &ActivityService{trips: trips, activities: activities}
}

// Create persists an activity for an existing trip.
// Returns domain.ErrNotFound if the trip does not exist and
// domain.ErrActivityBeforeTrip if the activity occurs before the trip starts.
func (s *ActivityService) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	trip, err := s.trips.GetByID(ctx, a.TripID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	if a.OccursAt.Before(trip.StartsAt) {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", domain.ErrActivityBeforeTrip)
	}
	created, err := s.activities.Create(ctx, a)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	return created, nil
}

// ListByDay returns the trip's activities bucketed per calendar day.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ActivityService) ListByDay(ctx context.Context, tripID uuid.UUID) ([]domain.DayActivities, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByDay: %w", err)
	}
	activities, err := s.activities.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByDay: %w", err)
	}
	return GroupByDay(trip, activities), nil
}

// GroupByDay builds one bucket per day from trip.StartsAt to trip.EndsAt.
// The bucket count is the number of whole 24h periods between the two plus
// one; bucket i is dated StartsAt + i days. An activity lands in the bucket
// whose UTC calendar date matches its own; activities outside the span are
// dropped. Every bucket has a non-nil Activities slice.
func GroupByDay(trip domain.Trip, activities []domain.Activity) []domain.DayActivities {
	start := trip.StartsAt.UTC()
	days := int(trip.EndsAt.Sub(trip.StartsAt) / (24 * time.Hour))
	if days < 0 {
		return []domain.DayActivities{}
	}

	sorted := slices.Clone(activities)
	slices.SortStableFunc(sorted, func(a, b domain.Activity) int {
		return a.OccursAt.Compare(b.OccursAt)
	})

	buckets := make([]domain.DayActivities, 0, days+1)
	next := 0
	for i := 0; i <= days; i++ {
		date := start.AddDate(0, 0, i)
		day := calendarDay(date)
		bucket := domain.DayActivities{Date: date, Activities: []domain.Activity{}}

		for next < len(sorted) && calendarDay(sorted[next].OccursAt).Before(day) {
			next++
		}
		for next < len(sorted) && calendarDay(sorted[next].OccursAt).Equal(day) {
			bucket.Activities = append(bucket.Activities, sorted[next])
			next++
		}
		buckets = append(buckets, bucket)
	}
	return buckets
}

// calendarDay truncates t to midnight of its UTC date.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
