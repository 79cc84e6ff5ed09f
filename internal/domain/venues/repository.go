package venues

import (
	"context"

	"tour-planning-assistant/internal/domain/schedule"
)

type Repository interface {
	Create(ctx context.Context, v schedule.Venue) error
	Update(ctx context.Context, v schedule.Venue) error
	GetByID(ctx context.Context, id string) (schedule.Venue, error)
	List(ctx context.Context, filter ListFilter) ([]schedule.Venue, error)
	Count(ctx context.Context) (int, error)
}

// ListFilter: City exacto (case-insensitive), Query busca en nombre y ciudad.
// Resultados ordenados por created_at desc (más recientes primero).
type ListFilter struct {
	City  string
	Query string
	Limit int
}
