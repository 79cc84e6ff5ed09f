package bands

import "context"

type Repository interface {
	Create(ctx context.Context, b Band) error
	GetByID(ctx context.Context, id string) (Band, error)
	List(ctx context.Context, filter ListFilter) ([]Band, error)
	Count(ctx context.Context) (int, error)
}

// ListFilter: Query busca en nombre y género (case-insensitive).
// Orden alfabético por nombre.
type ListFilter struct {
	Query string
	Limit int
}
