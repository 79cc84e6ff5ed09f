package postgres

import (
	"context"
	"database/sql"
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
)

// newTestDB usa TEST_DATABASE_URL; sin ella los tests de integración se saltan.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping Postgres integration tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := Open(ctx, dsn)
	if err != nil {
		t.Skipf("postgres not reachable: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	_, err = Migrate(ctx, db)
	require.NoError(t, err)

	// Segunda corrida: nada pendiente.
	again, err := Migrate(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, again)

	_, err = db.ExecContext(ctx, `TRUNCATE tour_events, tours, venues, bands`)
	require.NoError(t, err)
	return db
}

func TestToursRepo_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewToursRepo(db)
	ctx := context.Background()

	tokyo := time.FixedZone("JST", 9*3600)
	now := time.Now().UTC().Truncate(time.Second)
	tour := schedule.Tour{
		ID:        uuid.NewString(),
		Name:      "Asia Leg",
		Artist:    "The Lanterns",
		StartDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC),
		Status:    schedule.TourStatusConfirmed,
		CreatedBy: "user-1",
		CreatedAt: now,
		UpdatedAt: now,
		Events: []schedule.Event{
			{ID: "e1", VenueID: "v1", StartsAt: time.Date(2025, 9, 2, 1, 0, 0, 0, tokyo), Duration: 90 * time.Minute, Status: schedule.EventStatusConfirmed, CreatedAt: now},
			{ID: "e2", VenueID: "v2", StartsAt: time.Date(2025, 9, 5, 20, 0, 0, 0, time.UTC), Status: schedule.EventStatusUnconfirmed, CreatedAt: now},
		},
	}
	for i := range tour.Events {
		tour.Events[i].TourID = tour.ID
	}
	require.NoError(t, repo.Save(ctx, tour))

	got, err := repo.GetByID(ctx, tour.ID)
	require.NoError(t, err)
	assert.Equal(t, tour.StartDate, got.StartDate)
	require.Len(t, got.Events, 2)
	assert.Equal(t, "e1", got.Events[0].ID)
	assert.True(t, got.Events[0].StartsAt.Equal(tour.Events[0].StartsAt))
	assert.Equal(t, 2, got.Events[0].StartsAt.Day(), "calendar date keeps the original offset")
	assert.Equal(t, 90*time.Minute, got.Events[0].Duration)

	// Save reemplaza los eventos.
	tour.Events = tour.Events[1:]
	require.NoError(t, repo.Save(ctx, tour))
	got, err = repo.GetByID(ctx, tour.ID)
	require.NoError(t, err)
	require.Len(t, got.Events, 1)
	assert.Equal(t, "e2", got.Events[0].ID)

	listed, err := repo.List(ctx, tours.ListFilter{Statuses: []schedule.TourStatus{schedule.TourStatusConfirmed}})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Len(t, listed[0].Events, 1)

	// Un instante dentro del último día sigue incluyendo el tour.
	from := time.Date(2025, 9, 30, 15, 0, 0, 0, time.UTC)
	listed, err = repo.List(ctx, tours.ListFilter{From: &from})
	require.NoError(t, err)
	assert.Len(t, listed, 1)
	to := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	listed, err = repo.List(ctx, tours.ListFilter{To: &to})
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	e, err := repo.FindEvent(ctx, "e2")
	require.NoError(t, err)
	assert.Equal(t, tour.ID, e.TourID)
	_, err = repo.FindEvent(ctx, "e1")
	assert.ErrorIs(t, err, schedule.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, tour.ID))
	_, err = repo.GetByID(ctx, tour.ID)
	assert.ErrorIs(t, err, tours.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, tour.ID), tours.ErrNotFound)
}

func TestVenuesRepo_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewVenuesRepo(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	v := schedule.Venue{ID: uuid.NewString(), Name: "Paradiso", City: "Amsterdam", Capacity: 1500, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(ctx, v))
	assert.Error(t, repo.Create(ctx, v))

	v.Capacity = 1600
	require.NoError(t, repo.Update(ctx, v))

	got, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 1600, got.Capacity)

	items, err := repo.List(ctx, venues.ListFilter{City: "amsterdam", Query: "para", Limit: 5})
	require.NoError(t, err)
	assert.Len(t, items, 1)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = repo.GetByID(ctx, "ghost")
	assert.ErrorIs(t, err, venues.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, schedule.Venue{ID: "ghost"}), venues.ErrNotFound)
}

func TestBandsRepo_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewBandsRepo(db)
	toursRepo := NewToursRepo(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	b := bands.Band{ID: uuid.NewString(), Name: "The Lanterns", Genre: "indie", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(ctx, b))
	assert.Error(t, repo.Create(ctx, b))

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "indie", got.Genre)

	items, err := repo.List(ctx, bands.ListFilter{Query: "lant", Limit: 5})
	require.NoError(t, err)
	assert.Len(t, items, 1)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = repo.GetByID(ctx, "ghost")
	assert.ErrorIs(t, err, bands.ErrNotFound)

	tour := schedule.Tour{ID: uuid.NewString(), Name: "Band Leg", BandID: b.ID, Status: schedule.TourStatusPlanning, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, toursRepo.Save(ctx, tour))
	byBand, err := toursRepo.List(ctx, tours.ListFilter{BandID: b.ID})
	require.NoError(t, err)
	require.Len(t, byBand, 1)
	assert.Equal(t, b.ID, byBand[0].BandID)
}
