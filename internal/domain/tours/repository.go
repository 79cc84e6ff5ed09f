package tours

import (
	"context"
	"time"

	"tour-planning-assistant/internal/domain/schedule"
)

// Repository persiste el tour junto con sus eventos de forma atómica.
type Repository interface {
	Save(ctx context.Context, t schedule.Tour) error
	GetByID(ctx context.Context, id string) (schedule.Tour, error)
	List(ctx context.Context, filter ListFilter) ([]schedule.Tour, error)
	Delete(ctx context.Context, id string) error
	// FindEvent devuelve schedule.ErrNotFound si ningún tour tiene el evento.
	FindEvent(ctx context.Context, eventID string) (schedule.Event, error)
}

// ListFilter:
// - From: tours que terminan en o después de From.
// - To: tours que empiezan en o antes de To.
// - From y To se comparan como fecha de calendario (schedule.DateOf).
// - BandID vacío = cualquier banda.
// - Limit 0 = sin límite.
// Orden: start_date asc, luego created_at asc.
type ListFilter struct {
	Statuses []schedule.TourStatus
	BandID   string
	From     *time.Time
	To       *time.Time
	Limit    int
}

type EventFilter struct {
	From    *time.Time
	To      *time.Time
	Status  schedule.EventStatus
	VenueID string
	Limit   int
}
