package dashboard

import (
	"context"
	"sort"
	"time"

	"tour-planning-assistant/internal/domain/schedule"
	"tour-planning-assistant/internal/domain/tours"
	"tour-planning-assistant/internal/domain/venues"
)

const listSize = 5

// VenueSource es lo que el dashboard necesita de venues.
type VenueSource interface {
	List(ctx context.Context, filter venues.ListFilter) ([]schedule.Venue, error)
	Lookup(ctx context.Context, ids []string) (map[string]schedule.Venue, error)
	Count(ctx context.Context) (int, error)
}

// BandCounter cuenta las bandas registradas.
type BandCounter interface {
	Count(ctx context.Context) (int, error)
}

type Stats struct {
	ActiveTours    int
	UpcomingEvents int
	Venues         int
	Bands          int
}

type UpcomingTour struct {
	Tour       schedule.Tour
	EventCount int
}

type UpcomingEvent struct {
	Event    schedule.Event
	TourName string
	Venue    schedule.Venue // vacío si el venue ya no existe
}

type Summary struct {
	Stats          Stats
	UpcomingTours  []UpcomingTour
	UpcomingEvents []UpcomingEvent
	RecentVenues   []schedule.Venue
	GeneratedAt    time.Time
}

type Service struct {
	tours  tours.Repository
	venues VenueSource
	bands  BandCounter
	now    func() time.Time
}

func NewService(toursRepo tours.Repository, venueSource VenueSource, bandCounter BandCounter) *Service {
	return NewServiceAt(toursRepo, venueSource, bandCounter, time.Now)
}

// NewServiceAt fija el reloj.
func NewServiceAt(toursRepo tours.Repository, venueSource VenueSource, bandCounter BandCounter, now func() time.Time) *Service {
	return &Service{tours: toursRepo, venues: venueSource, bands: bandCounter, now: now}
}

// Summary arma la vista de inicio:
// - tours activos = no COMPLETED ni CANCELLED.
// - eventos próximos = no cancelados con StartsAt >= now, sólo de tours activos.
// - venues recientes = últimos creados.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	now := s.now().UTC()
	today := schedule.DateOf(now)

	active, err := s.tours.List(ctx, tours.ListFilter{Statuses: []schedule.TourStatus{
		schedule.TourStatusPlanning,
		schedule.TourStatusConfirmed,
		schedule.TourStatusInProgress,
	}})
	if err != nil {
		return Summary{}, err
	}

	out := Summary{
		UpcomingTours:  []UpcomingTour{},
		UpcomingEvents: []UpcomingEvent{},
		GeneratedAt:    now,
	}
	out.Stats.ActiveTours = len(active)

	// 1) tours que todavía no terminaron, por fecha de inicio (el repo ya ordena).
	for _, t := range active {
		if t.EndDate.Before(today) {
			continue
		}
		if len(out.UpcomingTours) < listSize {
			out.UpcomingTours = append(out.UpcomingTours, UpcomingTour{Tour: t, EventCount: len(t.Events)})
		}
	}

	// 2) eventos próximos de todos los tours activos.
	var upcoming []UpcomingEvent
	for _, t := range active {
		for _, e := range t.Events {
			if e.Status == schedule.EventStatusCancelled || e.StartsAt.Before(now) {
				continue
			}
			upcoming = append(upcoming, UpcomingEvent{Event: e, TourName: t.Name})
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Event.StartsAt.Before(upcoming[j].Event.StartsAt)
	})
	out.Stats.UpcomingEvents = len(upcoming)
	if len(upcoming) > listSize {
		upcoming = upcoming[:listSize]
	}

	ids := make([]string, 0, len(upcoming))
	for _, u := range upcoming {
		ids = append(ids, u.Event.VenueID)
	}
	byID, err := s.venues.Lookup(ctx, ids)
	if err != nil {
		return Summary{}, err
	}
	for i := range upcoming {
		upcoming[i].Venue = byID[upcoming[i].Event.VenueID]
	}
	out.UpcomingEvents = append(out.UpcomingEvents, upcoming...)

	// 3) venues.
	if out.Stats.Venues, err = s.venues.Count(ctx); err != nil {
		return Summary{}, err
	}
	if out.RecentVenues, err = s.venues.List(ctx, venues.ListFilter{Limit: listSize}); err != nil {
		return Summary{}, err
	}
	if out.RecentVenues == nil {
		out.RecentVenues = []schedule.Venue{}
	}

	// 4) bandas.
	if s.bands != nil {
		if out.Stats.Bands, err = s.bands.Count(ctx); err != nil {
			return Summary{}, err
		}
	}

	return out, nil
}
