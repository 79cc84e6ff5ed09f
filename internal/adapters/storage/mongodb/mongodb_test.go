package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"tour-planning-assistant/internal/domain/bands"
	"tour-planning-assistant/internal/domain/schedule"
	"tour-planning-assistant/internal/domain/tours"
	"tour-planning-assistant/internal/domain/venues"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

// newTestDB crea una base descartable; sin TEST_MONGODB_URI se salta.
func newTestDB(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("TEST_MONGODB_URI")
	if uri == "" {
		t.Skip("TEST_MONGODB_URI not set; skipping MongoDB integration tests")
	}

	ctx := context.Background()
	client, db, err := Connect(ctx, uri, "tourplanner_test_"+uuid.NewString()[:8])
	if err != nil {
		t.Skipf("mongodb not reachable: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	_, err = EnsureIndexes(ctx, db)
	require.NoError(t, err)
	return db
}

func TestToursRepo_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewToursRepo(db)
	ctx := context.Background()

	tokyo := time.FixedZone("JST", 9*3600)
	now := time.Now().UTC().Truncate(time.Millisecond)
	tour := schedule.Tour{
		ID:        uuid.NewString(),
		Name:      "Asia Leg",
		StartDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC),
		Status:    schedule.TourStatusPlanning,
		CreatedAt: now,
		UpdatedAt: now,
		Events: []schedule.Event{
			{ID: "e1", VenueID: "v1", StartsAt: time.Date(2025, 9, 2, 1, 0, 0, 0, tokyo), Status: schedule.EventStatusConfirmed, CreatedAt: now},
		},
	}
	require.NoError(t, repo.Save(ctx, tour))
	require.NoError(t, repo.Save(ctx, tour), "save is an upsert")

	got, err := repo.GetByID(ctx, tour.ID)
	require.NoError(t, err)
	require.Len(t, got.Events, 1)
	assert.Equal(t, tour.ID, got.Events[0].TourID)
	assert.Equal(t, 2, got.Events[0].StartsAt.Day())
	assert.Equal(t, tour.EndDate, got.EndDate)

	from := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	none, err := repo.List(ctx, tours.ListFilter{From: &from})
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := repo.List(ctx, tours.ListFilter{Statuses: []schedule.TourStatus{schedule.TourStatusPlanning}})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	lastDay := time.Date(2025, 9, 30, 15, 0, 0, 0, time.UTC)
	some, err := repo.List(ctx, tours.ListFilter{From: &lastDay})
	require.NoError(t, err)
	assert.Len(t, some, 1)

	e, err := repo.FindEvent(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, tour.ID, e.TourID)
	_, err = repo.FindEvent(ctx, "ghost")
	assert.ErrorIs(t, err, schedule.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, tour.ID))
	assert.ErrorIs(t, repo.Delete(ctx, tour.ID), tours.ErrNotFound)
}

func TestVenuesRepo_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewVenuesRepo(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	v := schedule.Venue{ID: uuid.NewString(), Name: "Vega", City: "Copenhagen", Capacity: 1200, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(ctx, v))
	assert.Error(t, repo.Create(ctx, v))

	items, err := repo.List(ctx, venues.ListFilter{City: "COPENHAGEN"})
	require.NoError(t, err)
	assert.Len(t, items, 1)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.ErrorIs(t, repo.Update(ctx, schedule.Venue{ID: "ghost"}), venues.ErrNotFound)
	_, err = repo.GetByID(ctx, "ghost")
	assert.ErrorIs(t, err, venues.ErrNotFound)
}

func TestBandsRepo_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewBandsRepo(db)
	toursRepo := NewToursRepo(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, repo.Create(ctx, bands.Band{ID: "b1", Name: "zoé", Genre: "rock", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repo.Create(ctx, bands.Band{ID: "b2", Name: "Aterciopelados", Genre: "rock", CreatedAt: now, UpdatedAt: now}))
	assert.Error(t, repo.Create(ctx, bands.Band{ID: "b1", Name: "dup"}))

	items, err := repo.List(ctx, bands.ListFilter{Query: "ROCK"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "b2", items[0].ID)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = repo.GetByID(ctx, "ghost")
	assert.ErrorIs(t, err, bands.ErrNotFound)

	require.NoError(t, toursRepo.Save(ctx, schedule.Tour{ID: "t1", Name: "Leg", BandID: "b1", Status: schedule.TourStatusPlanning, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, toursRepo.Save(ctx, schedule.Tour{ID: "t2", Name: "Other", Status: schedule.TourStatusPlanning, CreatedAt: now, UpdatedAt: now}))
	byBand, err := toursRepo.List(ctx, tours.ListFilter{BandID: "b1"})
	require.NoError(t, err)
	require.Len(t, byBand, 1)
	assert.Equal(t, "b1", byBand[0].BandID)
}
