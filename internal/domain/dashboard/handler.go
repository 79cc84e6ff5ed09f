package dashboard

import (
	"net/http"
	"time"

	"tour-planning-assistant/internal/domain/tours"
	"tour-planning-assistant/internal/domain/venues"
	"tour-planning-assistant/internal/middleware"
	"tour-planning-assistant/internal/platform/respond"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/dashboard", summaryHandler(svc))
}

type statsResponse struct {
	ActiveTours    int `json:"active_tours"`
	UpcomingEvents int `json:"upcoming_events"`
	Venues         int `json:"venues"`
	Bands          int `json:"bands"`
}

type upcomingTourResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Artist     string `json:"artist,omitempty"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Status     string `json:"status"`
	EventCount int    `json:"event_count"`
}

type upcomingEventResponse struct {
	ID        string    `json:"id"`
	TourID    string    `json:"tour_id"`
	TourName  string    `json:"tour_name"`
	VenueID   string    `json:"venue_id"`
	VenueName string    `json:"venue_name"`
	City      string    `json:"city"`
	StartsAt  time.Time `json:"starts_at"`
	Status    string    `json:"status"`
}

type summaryResponse struct {
	Stats          statsResponse           `json:"stats"`
	UpcomingTours  []upcomingTourResponse  `json:"upcoming_tours"`
	UpcomingEvents []upcomingEventResponse `json:"upcoming_events"`
	RecentVenues   []venues.VenueResponse  `json:"recent_venues"`
	GeneratedAt    time.Time               `json:"generated_at"`
}

// summaryHandler godoc
// @Summary Resumen para la pantalla de inicio
// @Tags dashboard
// @Produce json
// @Success 200 {object} summaryResponse
// @Failure 401 {object} map[string]string
// @Router /dashboard [get]
func summaryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			respond.Unauthorized(w)
			return
		}

		sum, err := svc.Summary(r.Context())
		if err != nil {
			respond.Internal(w)
			return
		}
		respond.JSON(w, http.StatusOK, toResponse(sum))
	}
}

func toResponse(s Summary) summaryResponse {
	out := summaryResponse{
		Stats: statsResponse{
			ActiveTours:    s.Stats.ActiveTours,
			UpcomingEvents: s.Stats.UpcomingEvents,
			Venues:         s.Stats.Venues,
			Bands:          s.Stats.Bands,
		},
		UpcomingTours:  make([]upcomingTourResponse, 0, len(s.UpcomingTours)),
		UpcomingEvents: make([]upcomingEventResponse, 0, len(s.UpcomingEvents)),
		RecentVenues:   make([]venues.VenueResponse, 0, len(s.RecentVenues)),
		GeneratedAt:    s.GeneratedAt,
	}

	for _, u := range s.UpcomingTours {
		t := tours.ToResponse(u.Tour)
		out.UpcomingTours = append(out.UpcomingTours, upcomingTourResponse{
			ID:         t.ID,
			Name:       t.Name,
			Artist:     t.Artist,
			StartDate:  t.StartDate,
			EndDate:    t.EndDate,
			Status:     t.Status,
			EventCount: u.EventCount,
		})
	}
	for _, u := range s.UpcomingEvents {
		out.UpcomingEvents = append(out.UpcomingEvents, upcomingEventResponse{
			ID:        u.Event.ID,
			TourID:    u.Event.TourID,
			TourName:  u.TourName,
			VenueID:   u.Event.VenueID,
			VenueName: u.Venue.Name,
			City:      u.Venue.City,
			StartsAt:  u.Event.StartsAt,
			Status:    string(u.Event.Status),
		})
	}
	for _, v := range s.RecentVenues {
		out.RecentVenues = append(out.RecentVenues, venues.ToResponse(v))
	}
	return out
}
