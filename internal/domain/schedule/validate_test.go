package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codes(vs []Violation) []ViolationCode {
	out := make([]ViolationCode, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Code)
	}
	return out
}

func TestValidateTour_ValidTour(t *testing.T) {
	tour, err := AddEvent(julyTour(), Event{ID: "a", VenueID: "v1", StartsAt: at(2025, time.July, 15, 20, 0)})
	require.NoError(t, err)

	got := ValidateTour(tour, map[string]Venue{"v1": {ID: "v1", Capacity: 1200}})

	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestValidateTour_ReportsEveryViolation(t *testing.T) {
	// Datos "importados" que nunca pasaron por AddEvent.
	tour := Tour{
		ID:        "imported",
		StartDate: day(2025, time.July, 10),
		EndDate:   day(2025, time.July, 1),
		Events: []Event{
			{ID: "e1", VenueID: "v1", StartsAt: at(2025, time.July, 5, 20, 0)},
			{ID: "e2", VenueID: "v1", StartsAt: at(2025, time.July, 5, 21, 0)},
			{ID: "e3", VenueID: "ghost", StartsAt: at(2025, time.July, 4, 20, 0)},
			{ID: "e4", VenueID: "v0", StartsAt: at(2025, time.July, 6, 20, 0)},
		},
	}
	venues := map[string]Venue{
		"v1": {ID: "v1", Capacity: 1000},
		"v0": {ID: "v0", Capacity: 0},
	}

	got := ValidateTour(tour, venues)

	assert.Equal(t, []ViolationCode{
		ViolationInvalidDateRange,
		ViolationDateOutOfRange, // e1
		ViolationDateOutOfRange, // e2
		ViolationOutOfOrder,     // e3
		ViolationDateOutOfRange, // e3
		ViolationUnknownVenue,   // e3
		ViolationDateOutOfRange, // e4
		ViolationInvalidCapacity,
		ViolationVenueConflict,
	}, codes(got))

	last := got[len(got)-1]
	assert.Equal(t, "e1", last.EventID)
	assert.Equal(t, "e2", last.OtherEventID)
	assert.Equal(t, "v1", last.VenueID)
}

func TestValidateTour_Idempotent(t *testing.T) {
	tour := Tour{
		ID:        "t",
		StartDate: day(2025, time.July, 1),
		EndDate:   day(2025, time.July, 31),
		Events: []Event{
			{ID: "e1", VenueID: "v1", StartsAt: at(2025, time.July, 15, 20, 0)},
			{ID: "e2", VenueID: "v1", StartsAt: at(2025, time.July, 15, 20, 30)},
			{ID: "e3", VenueID: "v2", StartsAt: at(2025, time.August, 2, 20, 0)},
		},
	}
	venues := map[string]Venue{"v1": {ID: "v1", Capacity: 10}}

	first := ValidateTour(tour, venues)
	second := ValidateTour(tour, venues)

	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
}

func TestValidateTour_MissingDates(t *testing.T) {
	got := ValidateTour(Tour{ID: "t"}, nil)

	assert.Equal(t, []ViolationCode{ViolationInvalidDateRange}, codes(got))
}
