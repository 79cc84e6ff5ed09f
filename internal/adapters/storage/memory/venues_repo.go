package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"tour-planning-assistant/internal/domain/schedule"
	"tour-planning-assistant/internal/domain/venues"
)

type venueRepo struct {
	mu   sync.RWMutex
	byID map[string]schedule.Venue
}

func NewVenueRepo() venues.Repository {
	return &venueRepo{
		byID: make(map[string]schedule.Venue),
	}
}

func (r *venueRepo) Create(ctx context.Context, v schedule.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(v.ID) == "" {
		return errors.New("venue id required")
	}
	if _, exists := r.byID[v.ID]; exists {
		return errors.New("venue already exists")
	}
	r.byID[v.ID] = v
	return nil
}

func (r *venueRepo) Update(ctx context.Context, v schedule.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[v.ID]; !exists {
		return venues.ErrNotFound
	}
	r.byID[v.ID] = v
	return nil
}

func (r *venueRepo) GetByID(ctx context.Context, id string) (schedule.Venue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byID[id]
	if !ok {
		return schedule.Venue{}, venues.ErrNotFound
	}
	return v, nil
}

func (r *venueRepo) List(ctx context.Context, filter venues.ListFilter) ([]schedule.Venue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]schedule.Venue, 0)
	for _, v := range r.byID {
		if filter.City != "" && !strings.EqualFold(v.City, filter.City) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(v.Name), q) && !strings.Contains(strings.ToLower(v.City), q) {
			continue
		}
		out = append(out, v)
	}

	// Más recientes primero
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *venueRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}
