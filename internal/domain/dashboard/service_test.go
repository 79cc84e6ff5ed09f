package dashboard_test

import (
	"context"
	"testing"
	"time"

	"tour-planning-assistant/internal/adapters/storage/memory"
	"tour-planning-assistant/internal/domain/bands"
	"tour-planning-assistant/internal/domain/dashboard"
	"tour-planning-assistant/internal/domain/schedule"
	"tour-planning-assistant/internal/domain/venues"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary(t *testing.T) {
	ctx := context.Background()
	tourRepo := memory.NewTourRepo()
	venueRepo := memory.NewVenueRepo()

	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	base := now.Add(-48 * time.Hour)
	for i, v := range []schedule.Venue{
		{ID: "v1", Name: "Paradiso", City: "Amsterdam", Capacity: 1500},
		{ID: "v2", Name: "Vega", City: "Copenhagen", Capacity: 1200},
		{ID: "v3", Name: "Razzmatazz", City: "Barcelona", Capacity: 3000},
	} {
		v.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, venueRepo.Create(ctx, v))
	}

	june := schedule.Tour{
		ID: "t-june", Name: "June Run", Status: schedule.TourStatusInProgress,
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		Events: []schedule.Event{
			{ID: "past", TourID: "t-june", VenueID: "v1", StartsAt: now.Add(-24 * time.Hour), Status: schedule.EventStatusConfirmed},
			{ID: "next", TourID: "t-june", VenueID: "v2", StartsAt: now.Add(24 * time.Hour), Status: schedule.EventStatusConfirmed},
			{ID: "dropped", TourID: "t-june", VenueID: "v3", StartsAt: now.Add(48 * time.Hour), Status: schedule.EventStatusCancelled},
			{ID: "later", TourID: "t-june", VenueID: "ghost", StartsAt: now.Add(72 * time.Hour), Status: schedule.EventStatusUnconfirmed},
		},
	}
	spring := schedule.Tour{
		ID: "t-spring", Name: "Spring", Status: schedule.TourStatusPlanning,
		StartDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC),
	}
	done := schedule.Tour{
		ID: "t-done", Name: "Winter", Status: schedule.TourStatusCompleted,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC),
	}
	for _, tr := range []schedule.Tour{june, spring, done} {
		require.NoError(t, tourRepo.Save(ctx, tr))
	}

	bandRepo := memory.NewBandRepo()
	for _, b := range []bands.Band{{ID: "b1", Name: "Los Bunkers"}, {ID: "b2", Name: "Zoé"}} {
		require.NoError(t, bandRepo.Create(ctx, b))
	}

	svc := dashboard.NewServiceAt(tourRepo, venues.NewService(venueRepo, nil), bands.NewService(bandRepo, nil), func() time.Time { return now })

	sum, err := svc.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Stats.ActiveTours, "planning + in progress")
	assert.Equal(t, 2, sum.Stats.UpcomingEvents, "future and not cancelled")
	assert.Equal(t, 3, sum.Stats.Venues)
	assert.Equal(t, 2, sum.Stats.Bands)

	// spring ya terminó aunque siga en PLANNING
	require.Len(t, sum.UpcomingTours, 1)
	assert.Equal(t, "t-june", sum.UpcomingTours[0].Tour.ID)
	assert.Equal(t, 4, sum.UpcomingTours[0].EventCount)

	require.Len(t, sum.UpcomingEvents, 2)
	assert.Equal(t, "next", sum.UpcomingEvents[0].Event.ID)
	assert.Equal(t, "Vega", sum.UpcomingEvents[0].Venue.Name)
	assert.Equal(t, "Copenhagen", sum.UpcomingEvents[0].Venue.City)
	assert.Equal(t, "later", sum.UpcomingEvents[1].Event.ID)
	assert.Empty(t, sum.UpcomingEvents[1].Venue.Name)

	require.Len(t, sum.RecentVenues, 3)
	assert.Equal(t, "v3", sum.RecentVenues[0].ID)
}

func TestSummary_Empty(t *testing.T) {
	svc := dashboard.NewService(memory.NewTourRepo(), venues.NewService(memory.NewVenueRepo(), nil), memory.NewBandRepo())

	sum, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sum.Stats)
	assert.NotNil(t, sum.UpcomingTours)
	assert.NotNil(t, sum.UpcomingEvents)
	assert.NotNil(t, sum.RecentVenues)
}
